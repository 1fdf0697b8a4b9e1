// Package model converts scanned declarations into typed request and handler
// descriptors. Role annotations are parsed once here; no later stage branches
// on raw attribute names.
package model

// Category represents the dispatch category of a request or handler
type Category string

const (
	// CategoryQuery is a point-to-point request with a response
	CategoryQuery Category = "query"
	// CategoryCommand is a fire-and-forget or result-bearing mutation
	CategoryCommand Category = "command"
	// CategoryNotification is a fan-out event with zero or more handlers
	CategoryNotification Category = "notification"
	// CategoryStreamQuery is a request answered with a lazy element sequence
	CategoryStreamQuery Category = "stream_query"
)

// Role is the closed set of recognized role annotations
type Role string

const (
	RoleQuery               Role = "Query"
	RoleCommand             Role = "Command"
	RoleNotification        Role = "Notification"
	RoleStreamQuery         Role = "StreamQuery"
	RoleQueryHandler        Role = "QueryHandler"
	RoleCommandHandler      Role = "CommandHandler"
	RoleNotificationHandler Role = "NotificationHandler"
	RoleStreamQueryHandler  Role = "StreamQueryHandler"
	// RoleRequestHandler is the legacy method-level retrofit annotation
	RoleRequestHandler Role = "RequestHandler"
)

var roleCategories = map[Role]Category{
	RoleQuery:               CategoryQuery,
	RoleCommand:             CategoryCommand,
	RoleNotification:        CategoryNotification,
	RoleStreamQuery:         CategoryStreamQuery,
	RoleQueryHandler:        CategoryQuery,
	RoleCommandHandler:      CategoryCommand,
	RoleNotificationHandler: CategoryNotification,
	RoleStreamQueryHandler:  CategoryStreamQuery,
}

// ParseRole maps a raw attribute name to a recognized role
func ParseRole(name string) (Role, bool) {
	switch Role(name) {
	case RoleQuery, RoleCommand, RoleNotification, RoleStreamQuery,
		RoleQueryHandler, RoleCommandHandler, RoleNotificationHandler,
		RoleStreamQueryHandler, RoleRequestHandler:
		return Role(name), true
	}
	return "", false
}

// IsRequest reports whether the role declares a request type
func (r Role) IsRequest() bool {
	switch r {
	case RoleQuery, RoleCommand, RoleNotification, RoleStreamQuery:
		return true
	}
	return false
}

// IsHandler reports whether the role declares a handler type
func (r Role) IsHandler() bool {
	switch r {
	case RoleQueryHandler, RoleCommandHandler, RoleNotificationHandler, RoleStreamQueryHandler:
		return true
	}
	return false
}

// IsLegacy reports whether the role is the method-level retrofit annotation
func (r Role) IsLegacy() bool {
	return r == RoleRequestHandler
}

// Category returns the dispatch category a role belongs to.
// RoleRequestHandler has no fixed category; it is inferred per method.
func (r Role) Category() Category {
	return roleCategories[r]
}

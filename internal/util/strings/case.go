package strings

import "strings"

// Common initialisms that should be all caps in Go
var initialisms = map[string]string{
	"id":    "ID",
	"url":   "URL",
	"uri":   "URI",
	"uuid":  "UUID",
	"api":   "API",
	"http":  "HTTP",
	"https": "HTTPS",
	"json":  "JSON",
	"xml":   "XML",
	"html":  "HTML",
	"sql":   "SQL",
	"ip":    "IP",
	"tcp":   "TCP",
	"udp":   "UDP",
}

// ToPascalCase converts snake_case or camelCase to PascalCase, upcasing
// known initialisms (user_id -> UserID)
func ToPascalCase(name string) string {
	if name == "" {
		return ""
	}

	if !strings.Contains(name, "_") {
		// camelCase input: upcase the first rune unless the whole word is
		// a known initialism
		if upper, ok := initialisms[strings.ToLower(name)]; ok {
			return upper
		}
		return strings.ToUpper(name[0:1]) + name[1:]
	}

	parts := strings.Split(name, "_")
	for i, part := range parts {
		if len(part) == 0 {
			continue
		}
		if upper, ok := initialisms[strings.ToLower(part)]; ok {
			parts[i] = upper
		} else {
			parts[i] = strings.ToUpper(part[0:1]) + part[1:]
		}
	}
	return strings.Join(parts, "")
}

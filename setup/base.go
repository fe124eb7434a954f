package setup

import (
	"strings"
)

// resolveBase returns the base path for player assets. The placeholder "."
// and missing values resolve to the script location; any other string is
// the caller's own address and is kept verbatim.
func resolveBase(v interface{}, location string) string {
	if s, ok := stringValue(v); ok && s != basePlaceholder {
		return s
	}
	return scriptBase(location)
}

// scriptBase guarantees a slash terminated script location.
func scriptBase(location string) string {
	if location == "" {
		return "/"
	}
	if !strings.HasSuffix(location, "/") {
		return location + "/"
	}
	return location
}

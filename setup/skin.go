package setup

import (
	"strings"
)

// Skin is a flattened skin descriptor.
type Skin struct {
	Name            string
	URL             string
	ColorInactive   string
	ColorActive     string
	ColorBackground string
}

// resolveSkin flattens the skin option. Structured descriptors contribute
// only the sub-fields they carry; legacy names lose their ".xml" suffix.
// The boolean result reports whether the option was a structured descriptor.
func resolveSkin(v interface{}) (Skin, bool) {
	if s, ok := v.(string); ok {
		name := strings.TrimSuffix(s, ".xml")
		if name == "" {
			name = DefaultSkin
		}
		return Skin{Name: name}, false
	}

	obj := asMap(v)
	if len(obj) == 0 {
		return Skin{Name: DefaultSkin}, false
	}

	skin := Skin{Name: DefaultSkin}
	if name, ok := stringValue(obj["name"]); ok {
		skin.Name = name
	}
	skin.URL, _ = stringValue(obj["url"])
	skin.ColorInactive, _ = stringValue(obj["inactive"])
	skin.ColorActive, _ = stringValue(obj["active"])
	skin.ColorBackground, _ = stringValue(obj["background"])
	return skin, true
}

// isLegacySkin reports whether a skin option names an XML skin.
func isLegacySkin(v interface{}) bool {
	s, ok := v.(string)
	return ok && strings.HasSuffix(s, ".xml")
}

package setup

import (
	"testing"
)

func TestResolveSkin(t *testing.T) {
	cases := []struct {
		name       string
		in         interface{}
		want       Skin
		structured bool
	}{
		{"absent", nil, Skin{Name: DefaultSkin}, false},
		{"empty string", "", Skin{Name: DefaultSkin}, false},
		{"name", "six", Skin{Name: "six"}, false},
		{"xml", "six.xml", Skin{Name: "six"}, false},
		{"only xml", ".xml", Skin{Name: DefaultSkin}, false},
		{"empty object", map[string]interface{}{}, Skin{Name: DefaultSkin}, false},
		{"number", 7, Skin{Name: DefaultSkin}, false},
		{
			"object",
			map[string]interface{}{
				"name":       "foo",
				"url":        "skin/url",
				"inactive":   "#888888",
				"active":     "#FFFFFF",
				"background": "#000000",
			},
			Skin{
				Name:            "foo",
				URL:             "skin/url",
				ColorInactive:   "#888888",
				ColorActive:     "#FFFFFF",
				ColorBackground: "#000000",
			},
			true,
		},
		{
			"partial object",
			map[string]interface{}{"active": "#FF0000"},
			Skin{Name: DefaultSkin, ColorActive: "#FF0000"},
			true,
		},
		{
			"non string fields",
			map[string]interface{}{"name": 5, "url": true},
			Skin{Name: DefaultSkin},
			true,
		},
	}
	for _, c := range cases {
		got, structured := resolveSkin(c.in)
		if got != c.want || structured != c.structured {
			t.Errorf("%s: resolveSkin(%#v) = %+v, %v; want %+v, %v", c.name, c.in, got, structured, c.want, c.structured)
		}
	}
}

func TestIsLegacySkin(t *testing.T) {
	if !isLegacySkin("six.xml") {
		t.Error("six.xml is a legacy skin")
	}
	if isLegacySkin("six") || isLegacySkin(nil) {
		t.Error("only .xml names are legacy skins")
	}
}

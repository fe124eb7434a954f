package setup

import (
	"testing"
)

func TestResolveBase(t *testing.T) {
	const location = "https://cdn.example.com/player/"
	cases := []struct {
		base     interface{}
		location string
		want     string
	}{
		{nil, location, location},
		{"", location, location},
		{".", location, location},
		{".", "https://cdn.example.com/player", location},
		{".", "", "/"},
		{42, location, location},
		{"http://mywebsite.com/jwplayer/", location, "http://mywebsite.com/jwplayer/"},
		{"assets", location, "assets"},
	}
	for _, c := range cases {
		if got := resolveBase(c.base, c.location); got != c.want {
			t.Errorf("resolveBase(%#v, %q) = %q, want %q", c.base, c.location, got, c.want)
		}
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeOptions(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create options file: %v", err)
	}
	return path
}

func TestNormalizeFile(t *testing.T) {
	Config.InitConfig()
	defer func() { Config = config{} }()

	cases := []struct {
		name    string
		content string
		width   interface{}
		skin    string
	}{
		{"options.json", `{"width":"100px","skin":{"name":"foo"}}`, "100", "foo"},
		{"options.yaml", "width: 320\nskin: six.xml\n", 320.0, "six"},
		{"empty.json", ``, 640.0, "seven"},
		{"broken.yaml", "width: [}", 640.0, "seven"},
		{"shapes.yaml", "width: .nan\nheight: {1: a}\n", 640.0, "seven"},
	}
	for _, c := range cases {
		var out bytes.Buffer
		if err := normalizeFile(writeOptions(t, c.name, c.content), &out); err != nil {
			t.Fatalf("%s: normalizeFile failed: %v", c.name, err)
		}

		var got map[string]interface{}
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("%s: output is not JSON: %v", c.name, err)
		}
		if got["width"] != c.width {
			t.Errorf("%s: width = %#v, want %#v", c.name, got["width"], c.width)
		}
		if got["skin"] != c.skin {
			t.Errorf("%s: skin = %#v, want %#v", c.name, got["skin"], c.skin)
		}
		if got["base"] != defaultScriptLocation {
			t.Errorf("%s: base = %#v, want %#v", c.name, got["base"], defaultScriptLocation)
		}
	}
}

func TestNormalizeFileMissing(t *testing.T) {
	if err := normalizeFile(filepath.Join(t.TempDir(), "missing.json"), &bytes.Buffer{}); err == nil {
		t.Fatal("Expected error for missing options file")
	}
}

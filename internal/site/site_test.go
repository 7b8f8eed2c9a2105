package site

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderSubstitutesValues(t *testing.T) {
	var buf bytes.Buffer
	data := Data{SpawnX: 12, SpawnZ: -34, CacheVersion: "7", MapsStacked: 5}

	if err := Render(&buf, data); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"7"`, "12", "-34", "5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEscapesCacheVersionInScriptContext(t *testing.T) {
	var buf bytes.Buffer
	data := Data{CacheVersion: `"; alert(1); //`}

	if err := Render(&buf, data); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if strings.Contains(buf.String(), `alert(1); //";`) {
		t.Fatal("expected html/template to escape an embedded quote in a JS string context")
	}
}

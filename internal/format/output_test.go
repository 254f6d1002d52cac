package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, map[string]any{"data": []string{"a", "b"}}, "json", false)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"data":["a","b"]}` {
		t.Fatalf("got %q", got)
	}
}

func TestWriteEDN(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, map[string]any{"date": "2024-05-01", "count": 3, "flagged": true}, "edn", false)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	want := `{:count 3 :date "2024-05-01" :flagged true}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, 1, "yaml", false); err == nil {
		t.Fatalf("unknown format accepted")
	}
}

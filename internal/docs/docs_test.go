package docs

import (
	"strings"
	"testing"
)

func TestTopicsListEmbeddedContent(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatal("no embedded topics")
	}
	for _, want := range []string{"templates", "url-state", "views"} {
		found := false
		for _, got := range topics {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("topic %q missing from %v", want, topics)
		}
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	body, ok := Get("  Templates ")
	if !ok {
		t.Fatal("templates topic not found")
	}
	if !strings.Contains(body, "almanac templates create") {
		t.Fatalf("unexpected body:\n%s", body)
	}
}

func TestGetUnknownTopic(t *testing.T) {
	if _, ok := Get("no-such-topic"); ok {
		t.Fatal("unknown topic reported as found")
	}
}

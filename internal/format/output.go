package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Write renders v in the requested output format (json is the default; edn
// is offered for Clojure-side tooling).
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON followed by a newline. CLI payloads stay
// machine-readable; human hints belong in dedicated fields, not stdout prose.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter writes indented JSON, one document per call.
//
// Record keys are user text, so HTML characters are written as typed
// rather than \u-escaped. A nil listing is written as [] so scripts
// always receive an array.
type JSONFormatter struct{}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(emptyListing(data)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// emptyListing turns a nil Records into an empty one.
func emptyListing(data any) any {
	if r, ok := data.(Records); ok && r == nil {
		return Records{}
	}
	return data
}

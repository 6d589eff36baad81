// Package output renders command results as JSON or tables.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// JSONTo writes data as indented JSON to w.
func JSONTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Write renders data to w in the given format.
func Write(w io.Writer, format string, data any) error {
	switch format {
	case FormatJSON:
		return JSONTo(w, data)
	case FormatTable, "":
		return TableTo(w, data)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

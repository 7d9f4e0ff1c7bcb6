// Package output writes command results in the selected format.
package output

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Format is an output format name.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatText  Format = "text"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatJSONL, FormatText:
		return Format(s), nil
	default:
		return "", fmt.Errorf("invalid format %q (valid: json, jsonl, text)", s)
	}
}

// Printer writes values one at a time so results stream while pages arrive.
type Printer struct {
	w      io.Writer
	format Format
	count  int
}

// NewPrinter creates a printer for w.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Count returns the number of values printed so far.
func (p *Printer) Count() int {
	return p.count
}

// Print writes a single value.
func (p *Printer) Print(v any) error {
	var err error
	switch p.format {
	case FormatJSON:
		err = p.encode(v, true)
	case FormatJSONL:
		err = p.encode(v, false)
	default:
		err = p.text(v)
	}
	if err != nil {
		return err
	}
	p.count++
	return nil
}

func (p *Printer) encode(v any, indent bool) error {
	encoder := json.NewEncoder(p.w)
	if indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func (p *Printer) text(v any) error {
	var line string
	switch val := v.(type) {
	case string:
		line = val
	case *string:
		if val == nil {
			return nil
		}
		line = *val
	case fmt.Stringer:
		line = val.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		line = string(data)
	}
	_, err := fmt.Fprintln(p.w, line)
	return err
}

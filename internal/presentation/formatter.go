package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatEntriesJSON formats a list of entries as indented JSON.
func (f *Formatter) FormatEntriesJSON(entries []EntryDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}

// FormatEntriesTable formats a list of entries as an aligned text table.
func (f *Formatter) FormatEntriesTable(entries []EntryDTO) error {
	w := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tUID")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Name, e.UID)
	}
	return w.Flush()
}

// FormatResult formats any result value as indented JSON.
func (f *Formatter) FormatResult(result any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

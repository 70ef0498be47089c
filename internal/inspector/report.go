package inspector

import (
	"fmt"
	"io"
)

const (
	reportHeader    = "Field Name\tData Type"
	reportSeparator = "------------------------"
)

// Report writes the header, the separator and one line per column.
// An empty slice still gets the two header lines.
func Report(w io.Writer, columns []ColumnInfo) error {
	if _, err := fmt.Fprintln(w, reportHeader); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, reportSeparator); err != nil {
		return err
	}

	for _, col := range columns {
		if _, err := fmt.Fprintf(w, "%s\t\t%s\n", col.Name, col.DeclaredType); err != nil {
			return err
		}
	}
	return nil
}

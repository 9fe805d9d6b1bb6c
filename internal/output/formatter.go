// Package output renders the final scan snapshot.
package output

import (
	"fmt"
	"io"

	"github.com/minion/minion-scan/pkg/types"
)

// Formatter renders a terminal scan to a writer. Sessions and issues are
// rendered in the order the backend returned them.
type Formatter interface {
	Format(w io.Writer, scan *types.Scan) error
}

// GetFormatter returns the appropriate formatter for the given format string.
func GetFormatter(format string) (Formatter, error) {
	switch format {
	case "text", "":
		return &TextFormatter{}, nil
	case "table":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "markdown":
		return &MarkdownFormatter{}, nil
	case "html":
		return &HTMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: text, table, json, markdown, html)", format)
	}
}

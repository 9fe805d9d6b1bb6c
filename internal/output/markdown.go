package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/minion/minion-scan/pkg/types"
)

// MarkdownFormatter renders the scan as Markdown tables suitable for
// pasting into docs, issues, or pull-request descriptions.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, scan *types.Scan) error {
	fmt.Fprintf(w, "# Scan %s — %s\n", scan.ID, scan.State)

	for _, session := range scan.Sessions {
		fmt.Fprintf(w, "\n## %s\n\n", escapeMarkdown(session.Plugin.Name))

		if len(session.Issues) == 0 {
			fmt.Fprintln(w, "_No issues._")
			continue
		}

		fmt.Fprintln(w, "| Issue | Severity | Summary |")
		fmt.Fprintln(w, "|-------|----------|---------|")
		for _, issue := range session.Issues {
			fmt.Fprintf(w, "| %s | %s | %s |\n",
				escapeMarkdown(issue.ID), severityBadge(issue.Severity), escapeMarkdown(issue.Summary))
		}
	}

	return nil
}

// severityBadge returns a bold severity label for Markdown.
func severityBadge(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("**%s**", s)
}

// escapeMarkdown escapes pipe characters that would break Markdown tables.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

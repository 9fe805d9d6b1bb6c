package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/minion/minion-scan/pkg/types"
)

// TableFormatter renders all issues as a colored terminal table.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, scan *types.Scan) error {
	fmt.Fprintf(w, "\n[%s] %s — %d issues\n", scan.ID, scan.Configuration.Target, scan.IssueCount())

	if scan.IssueCount() == 0 {
		for _, session := range scan.Sessions {
			fmt.Fprintf(w, "  %s: no issues.\n", session.Plugin.Name)
		}
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Plugin", "Issue", "Severity", "Summary"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	for _, session := range scan.Sessions {
		for _, issue := range session.Issues {
			table.Append([]string{session.Plugin.Name, issue.ID, colorSeverity(issue.Severity), issue.Summary})
		}
	}

	table.Render()
	return nil
}

// colorSeverity colors the backend's severity labels (High, Medium, Low, Info).
func colorSeverity(s string) string {
	switch strings.ToLower(s) {
	case "critical", "high":
		return color.RedString(s)
	case "medium":
		return color.YellowString(s)
	case "low":
		return color.CyanString(s)
	case "info":
		return color.WhiteString(s)
	default:
		return s
	}
}

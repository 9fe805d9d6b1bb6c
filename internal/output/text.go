package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/minion/minion-scan/pkg/types"
)

// TextFormatter prints one line per session naming its plugin, followed by
// one indented line per issue.
type TextFormatter struct{}

func (f *TextFormatter) Format(w io.Writer, scan *types.Scan) error {
	bold := color.New(color.Bold)
	for _, session := range scan.Sessions {
		if _, err := fmt.Fprintln(w, bold.Sprint(session.Plugin.Name)); err != nil {
			return err
		}
		for _, issue := range session.Issues {
			if _, err := fmt.Fprintf(w, "  %s %s\n", issue.ID, issue.Summary); err != nil {
				return err
			}
		}
	}
	return nil
}

// ColorState colors a scan state for progress lines.
func ColorState(s types.ScanState) string {
	switch s {
	case types.StateFinished:
		return color.GreenString(string(s))
	case types.StateFailed, types.StateAborted:
		return color.RedString(string(s))
	case types.StateTerminated, types.StateStopped:
		return color.YellowString(string(s))
	default:
		if !s.IsKnown() {
			return color.MagentaString(string(s))
		}
		return color.CyanString(string(s))
	}
}

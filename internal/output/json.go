package output

import (
	"encoding/json"
	"io"

	"github.com/minion/minion-scan/pkg/types"
)

// JSONFormatter renders the scan as indented JSON inside the same "scan"
// envelope the backend uses.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, scan *types.Scan) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Scan *types.Scan `json:"scan"`
	}{scan})
}

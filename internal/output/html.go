package output

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/minion/minion-scan/pkg/types"
)

// HTMLFormatter renders the scan as a self-contained HTML report with
// styled severity badges and expandable issue details.
type HTMLFormatter struct{}

func (f *HTMLFormatter) Format(w io.Writer, scan *types.Scan) error {
	return htmlTpl.Execute(w, scan)
}

// severityClass maps a backend severity label to a CSS class name.
func severityClass(s string) string {
	switch strings.ToLower(s) {
	case "critical":
		return "critical"
	case "high":
		return "high"
	case "medium":
		return "medium"
	case "low":
		return "low"
	default:
		return "info"
	}
}

var funcMap = template.FuncMap{
	"severityClass": severityClass,
}

var htmlTpl = template.Must(template.New("report").Funcs(funcMap).Parse(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Minion Scan {{.ID}}</title>
<style>%s</style>
</head>
<body>
<div class="container">
  <h1>Minion Scan {{.ID}}</h1>

  <div class="summary-bar">
    <span class="badge state">{{.State}}</span>
    <span class="total">{{.Configuration.Target}} &mdash; {{.IssueCount}} issues</span>
  </div>

  {{range .Sessions}}
  <section class="scanner-section">
    <h2>{{.Plugin.Name}}</h2>

    {{if not .Issues}}
      <p class="no-findings">No issues.</p>
    {{else}}
      <table>
        <thead>
          <tr><th>Issue</th><th>Severity</th><th>Summary</th></tr>
        </thead>
        <tbody>
          {{range .Issues}}
          <tr>
            <td>{{.ID}}</td>
            <td>{{if .Severity}}<span class="badge {{severityClass .Severity}}">{{.Severity}}</span>{{end}}</td>
            <td>
              {{.Summary}}
              {{if or .Description .Solution .URLs .FurtherInfo}}
              <details>
                <summary>Details</summary>
                {{if .Description}}<p>{{.Description}}</p>{{end}}
                {{if .Solution}}<p><strong>Solution:</strong> {{.Solution}}</p>{{end}}
                {{range .URLs}}{{if .URL}}<p><code>{{.URL}}</code></p>{{end}}{{end}}
                {{range .FurtherInfo}}{{if .URL}}<p><a href="{{.URL}}">{{if .Title}}{{.Title}}{{else}}{{.URL}}{{end}}</a></p>{{end}}{{end}}
              </details>
              {{end}}
            </td>
          </tr>
          {{end}}
        </tbody>
      </table>
    {{end}}
  </section>
  {{end}}
</div>
</body>
</html>`, cssStyles)))

const cssStyles = `
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Helvetica,Arial,sans-serif;
     line-height:1.6;color:#1a1a2e;background:#f5f5fa;padding:2rem}
.container{max-width:960px;margin:0 auto}
h1{margin-bottom:1rem;font-size:1.8rem}
h2{margin:1.5rem 0 .75rem;font-size:1.3rem;border-bottom:2px solid #e0e0e0;padding-bottom:.3rem}
.summary-bar{display:flex;gap:.5rem;flex-wrap:wrap;align-items:center;margin-bottom:1.5rem}
.total{margin-left:.5rem;font-weight:600}
.badge{display:inline-block;padding:2px 10px;border-radius:12px;font-size:.8rem;font-weight:700;color:#fff;text-transform:uppercase}
.badge.critical{background:#d32f2f}
.badge.high{background:#e53935}
.badge.medium{background:#f9a825;color:#333}
.badge.low{background:#0288d1}
.badge.info{background:#757575}
.badge.state{background:#3949ab}
table{width:100%;border-collapse:collapse;margin-bottom:1rem}
th,td{text-align:left;padding:.5rem .75rem;border-bottom:1px solid #e0e0e0}
th{background:#eaeaea;font-weight:600}
tr:hover{background:#f0f0ff}
details{margin-top:.4rem}
summary{cursor:pointer;color:#1565c0;font-size:.85rem}
.no-findings{color:#666;font-style:italic}
.scanner-section{margin-bottom:2rem}
`

package report

import (
	"html/template"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/chris-rands/phigaro/pkg/model"
)

// Template functions for the HTML report.
var templateFuncs = template.FuncMap{
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"bases": func(n int) string {
		return humanize.Comma(int64(n)) + " bp"
	},
	"percent": func(f float64) string {
		return humanize.FtoaWithDigits(f*100, 1) + "%"
	},
	"yesno": func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	},
	"vogs": func(vs []string) string {
		return strings.Join(vs, ", ")
	},
}

var htmlTemplate = template.Must(template.New("report").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Phigaro report: {{.Sample}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f0f0f0; }
tr:nth-child(even) { background: #fafafa; }
.empty { color: #777; font-style: italic; }
</style>
</head>
<body>
<h1>Prophage regions: {{.Sample}}</h1>
{{if .Regions}}
<table>
<tr>
<th>Scaffold</th><th>Begin</th><th>End</th><th>Length</th>
<th>Transposable</th><th>Taxonomy</th><th>GC</th>{{if .PrintVOGs}}<th>pVOGs</th>{{end}}
</tr>
{{range .Regions}}
<tr>
<td>{{.Scaffold}}</td>
<td>{{comma .Begin}}</td>
<td>{{comma .End}}</td>
<td>{{bases .Length}}</td>
<td>{{yesno .Transposable}}</td>
<td>{{.Taxonomy}}</td>
<td>{{percent .GC}}</td>
{{if $.PrintVOGs}}<td>{{vogs .VOGs}}</td>{{end}}
</tr>
{{end}}
</table>
{{else}}
<p class="empty">No prophage regions found.</p>
{{end}}
</body>
</html>
`))

// htmlData is the template context for the HTML report.
type htmlData struct {
	Sample    string
	Regions   []model.Region
	PrintVOGs bool
}

// WriteHTML renders the interactive report.
func WriteHTML(w io.Writer, sample string, regions []model.Region, printVOGs bool) error {
	return htmlTemplate.Execute(w, htmlData{
		Sample:    sample,
		Regions:   regions,
		PrintVOGs: printVOGs,
	})
}

// OpenBrowser opens the rendered report in the user's browser. Failures
// are returned for logging; they never fail the run.
func OpenBrowser(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}

package report

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/lvezzaro/buildsweep/internal/analysis"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/tui"
)

// cppcheckResults mirrors the engine's XML report.
type cppcheckResults struct {
	XMLName xml.Name          `xml:"results"`
	Errors  []cppcheckFinding `xml:"errors>error"`
}

type cppcheckFinding struct {
	ID        string             `xml:"id,attr"`
	Severity  string             `xml:"severity,attr"`
	Msg       string             `xml:"msg,attr"`
	Locations []cppcheckLocation `xml:"location"`
}

type cppcheckLocation struct {
	File   string `xml:"file,attr"`
	Line   string `xml:"line,attr"`
	Column string `xml:"column,attr"`
	Info   string `xml:"info,attr"`
}

// findingRow is one rendered table row.
type findingRow struct {
	ID        string
	Severity  string
	RowClass  string
	Msg       string
	Locations []string
}

type htmlPage struct {
	Title     string
	Source    string
	Generated string
	Rows      []findingRow
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{ .Title }}</title>
<style>
table { border-collapse: collapse; width: 100%; font-family: Arial, sans-serif; font-size: 14px; }
th, td { border: 1px solid #ccc; padding: 4px 8px; }
th { background-color: #f2f2f2; }
tbody tr:hover td { background-color: #e8f2ff; }
tr.advisory td { background-color: #ffff99; }
tr.required td { background-color: #ffcc80; }
tr.mandatory td { background-color: #ff9999; }
.meta { margin: 6px 0 10px 0; }
</style>
</head>
<body>
<h1>{{ .Title }}</h1>
<p class="meta"><strong>Generated: {{ .Generated }}</strong></p>
<p>Source file: <code>{{ .Source }}</code></p>
<table>
<thead><tr><th>id</th><th>severity</th><th>msg</th><th>locations</th></tr></thead>
<tbody>
{{- range .Rows }}
<tr{{ if .RowClass }} class="{{ .RowClass }}"{{ end }}><td>{{ .ID | html }}</td><td>{{ .Severity | html | title }}</td><td>{{ .Msg | html }}</td><td>{{ join "<br>" .Locations }}</td></tr>
{{- end }}
</tbody>
</table>
</body>
</html>
`

// HTMLRenderer converts per-unit XML reports into styled HTML tables with
// MISRA severities applied.
type HTMLRenderer struct {
	fs    filesystem.FileSystem
	rules analysis.Rules
	out   io.Writer
	tmpl  *template.Template

	// Now is overridable for deterministic rendering in tests
	Now func() time.Time
}

// NewHTMLRenderer creates a new HTMLRenderer. Warnings about individual
// reports go to out; they never abort the pass.
func NewHTMLRenderer(fs filesystem.FileSystem, rules analysis.Rules, out io.Writer) *HTMLRenderer {
	return &HTMLRenderer{
		fs:    fs,
		rules: rules,
		out:   out,
		tmpl:  template.Must(template.New("findings").Funcs(sprig.TxtFuncMap()).Parse(htmlTemplate)),
		Now:   time.Now,
	}
}

// RenderFile converts one XML report into HTML next to it and removes the
// source XML on success, as consumers only ever read the HTML.
func (r *HTMLRenderer) RenderFile(xmlPath string) (string, error) {
	data, err := r.fs.ReadFile(xmlPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", xmlPath, err)
	}

	var results cppcheckResults
	if err := xml.Unmarshal(data, &results); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", xmlPath, err)
	}

	page := htmlPage{
		Title:     "Cppcheck MISRA Results",
		Source:    xmlPath,
		Generated: r.Now().Format("02/01/06 15:04:05"),
	}
	for _, finding := range results.Errors {
		severity := r.rules.SeverityFor(finding.ID, finding.Severity)
		page.Rows = append(page.Rows, findingRow{
			ID:        finding.ID,
			Severity:  severity,
			RowClass:  rowClass(severity),
			Msg:       finding.Msg,
			Locations: renderLocations(finding.Locations),
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", xmlPath, err)
	}

	htmlPath := strings.TrimSuffix(xmlPath, filepath.Ext(xmlPath)) + ".html"
	if err := r.fs.WriteFile(htmlPath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", htmlPath, err)
	}

	if err := r.fs.Remove(xmlPath); err != nil {
		fmt.Fprintf(r.out, "%s\n", tui.WarnStyle.Render(fmt.Sprintf("could not delete %s: %v", xmlPath, err)))
	}

	return htmlPath, nil
}

// RenderAll converts every report named reportName under root. Individual
// failures are warned about and skipped.
func (r *HTMLRenderer) RenderAll(root, reportName string) ([]string, error) {
	var xmlPaths []string
	err := r.fs.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() && entry.Name() == reportName {
			xmlPaths = append(xmlPaths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(xmlPaths)

	var rendered []string
	for _, xmlPath := range xmlPaths {
		htmlPath, renderErr := r.RenderFile(xmlPath)
		if renderErr != nil {
			fmt.Fprintf(r.out, "%s\n", tui.WarnStyle.Render(renderErr.Error()))
			continue
		}
		rendered = append(rendered, htmlPath)
	}

	return rendered, nil
}

func rowClass(severity string) string {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "advisory":
		return "advisory"
	case "required":
		return "required"
	case "mandatory":
		return "mandatory"
	}
	return ""
}

func renderLocations(locations []cppcheckLocation) []string {
	var out []string
	for _, loc := range locations {
		var parts []string
		for _, part := range []string{loc.File, loc.Line, loc.Column} {
			if part != "" {
				parts = append(parts, part)
			}
		}
		position := strings.Join(parts, ":")
		if loc.Info != "" {
			position += " - " + loc.Info
		}
		out = append(out, html.EscapeString(position))
	}
	return out
}

package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/form-atlas/pkg/models/api"
)

type TableConfig struct {
	NameWidth   int
	StatusWidth int
	DetailWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:   38,
		StatusWidth: 10,
		DetailWidth: 80,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (r *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(name, status, detail string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s |",
				r.config.NameWidth, name,
				r.config.StatusWidth, status,
				r.config.DetailWidth, detail)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", r.config.NameWidth+2),
				strings.Repeat("-", r.config.StatusWidth+2),
				strings.Repeat("-", r.config.DetailWidth+2))
		},
		"percent": func(v *float64) string {
			if v == nil {
				return "n/a"
			}
			return fmt.Sprintf("%.2f%%", *v*100)
		},
	}
}

const auditTemplate = `
Audit Report: {{.OrganizationName}} ({{.OrganizationEIN}}){{if .Year}} / {{.Year}}{{end}}
Overall severity: {{.OverallSeverity}}
{{if .OverallSummary}}{{.OverallSummary}}
{{end}}
{{separator}}
{{formatRow "Section" "Severity" "Summary"}}
{{separator}}
{{range .Sections}}{{formatRow .Section (printf "%s" .Severity) .Summary}}
{{end}}{{separator}}

{{separator}}
{{formatRow "Check" "Severity" "Message"}}
{{separator}}
{{range .Findings}}{{formatRow .CheckID (printf "%s" .Severity) .Message}}
{{end}}{{separator}}
{{if .Notes}}
{{.Notes}}
{{end}}`

const analystTemplate = `
Performance Report: {{.OrganizationName}} ({{.OrganizationEIN}})
Years analyzed: {{range $i, $y := .YearsAnalyzed}}{{if $i}}, {{end}}{{$y}}{{end}}

{{range .KeyMetrics}}=== {{.Name}} ({{.Unit}}) ===
Direction: {{.Direction}}  CAGR: {{percent .CAGR}}
{{range .Points}}  {{.Year}}: {{printf "%.2f" .Value}}  growth {{percent .Growth}}
{{end}}{{if .Notes}}{{.Notes}}
{{end}}
{{end}}{{if .Insights}}Insights:
{{range .Insights}}  - [{{.Direction}}] {{.Summary}}
{{end}}
{{end}}{{if .Recommendations}}Recommendations:
{{range .Recommendations}}  - {{.}}
{{end}}
{{end}}Outlook: {{.Outlook}}
`

func (r *Reporter) render(name, text string, data any) error {
	t, err := template.New(name).Funcs(r.funcMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, data)
}

func (r *Reporter) HandleAudit(report *api.AuditReport) error {
	return r.render("audit", auditTemplate, report)
}

func (r *Reporter) HandleAnalyst(report *api.AnalystReport) error {
	return r.render("analyst", analystTemplate, report)
}

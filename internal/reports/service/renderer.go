package service

import (
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/carteapp/carte-backend/internal/projects/domain"
)

// Renderer flattens a committed project into a printable HTML document:
// a title page followed by one page-break-separated block per section.
// The browser's print pipeline turns it into a PDF; there is no
// server-side PDF generation.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{tmpl: reportTemplate}
}

type reportData struct {
	Project     *domain.Project
	GeneratedOn string
}

// Render writes the print view for p to w.
func (r *Renderer) Render(w io.Writer, p *domain.Project) error {
	return r.tmpl.Execute(w, reportData{
		Project:     p,
		GeneratedOn: time.Now().Format("January 2, 2006"),
	})
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": func(items []string) string {
		return strings.Join(items, ", ")
	},
	"orNotSpecified": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "Not specified"
		}
		return s
	},
	"date": func(t *time.Time) string {
		if t == nil {
			return "Not specified"
		}
		return t.Format("January 2, 2006")
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Project.Name}} - Cartea Tehnica</title>
<style>
  @page { size: A4; margin: 2cm; }
  body { font-family: Georgia, serif; color: #111; }
  h1 { font-size: 28pt; }
  h2 { font-size: 18pt; border-bottom: 1px solid #999; padding-bottom: 4px; }
  h3 { font-size: 12pt; margin-bottom: 2px; }
  p { margin-top: 0; }
  .title-page { text-align: center; padding-top: 35%; }
  .page-break { page-break-before: always; }
  .attachment-text { white-space: pre-wrap; font-size: 10pt; color: #333; }
</style>
</head>
<body>
<div class="title-page">
  <h1>Cartea Tehnica</h1>
  <h2>{{.Project.Name}}</h2>
  <p>Generated on {{.GeneratedOn}}</p>
</div>

{{with .Project.Sections.General}}
<div class="page-break">
  <h2>General Information</h2>
  <h3>Project Type</h3>
  <p>{{orNotSpecified .ProjectType}}</p>
  <h3>Client Name</h3>
  <p>{{orNotSpecified .ClientName}}</p>
  <h3>Project Timeline</h3>
  <p>Start Date: {{date .StartDate}}</p>
  <p>End Date: {{date .EndDate}}</p>
  {{if .Attachment}}
  <h3>Attached Document: {{.Attachment.Name}}</h3>
  <p class="attachment-text">{{.AttachmentText}}</p>
  {{end}}
</div>
{{end}}

{{with .Project.Sections.Technical}}
<div class="page-break">
  <h2>Technical Specifications</h2>
  <h3>Technologies</h3>
  <p>{{orNotSpecified (join .Technologies)}}</p>
  <h3>Complexity</h3>
  <p>{{.Complexity}}</p>
  <h3>Technical Requirements</h3>
  <p>{{orNotSpecified .TechnicalRequirements}}</p>
  {{if .Attachment}}
  <h3>Attached Document: {{.Attachment.Name}}</h3>
  <p class="attachment-text">{{.AttachmentText}}</p>
  {{end}}
</div>
{{end}}

{{with .Project.Sections.Financial}}
<div class="page-break">
  <h2>Financial Information</h2>
  <h3>Budget</h3>
  <p>{{.Budget}} {{.Currency}}</p>
  <h3>Estimated Cost</h3>
  <p>{{.EstimatedCost}} {{.Currency}}</p>
  <h3>Profit Margin</h3>
  <p>{{.ProfitMargin}}%</p>
  {{if .Attachment}}
  <h3>Attached Document: {{.Attachment.Name}}</h3>
  <p class="attachment-text">{{.AttachmentText}}</p>
  {{end}}
</div>
{{end}}

{{with .Project.Sections.Resources}}
<div class="page-break">
  <h2>Resources</h2>
  <h3>Team Members</h3>
  <p>{{orNotSpecified (join .TeamMembers)}}</p>
  <h3>Required Skills</h3>
  <p>{{orNotSpecified (join .RequiredSkills)}}</p>
  <h3>Equipment Needed</h3>
  <p>{{orNotSpecified (join .EquipmentNeeded)}}</p>
  {{if .Attachment}}
  <h3>Attached Document: {{.Attachment.Name}}</h3>
  <p class="attachment-text">{{.AttachmentText}}</p>
  {{end}}
</div>
{{end}}
</body>
</html>
`))

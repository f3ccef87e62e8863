package minutes

import (
	"html/template"
	"strings"
	"time"

	apperrors "github.com/johnquangdev/minutesgen/errors"
	"github.com/johnquangdev/minutesgen/internal/domain/entities"
)

// documentTemplate is the fixed-schema minutes fragment in Confluence
// storage format. All record fields are AI/transcript-sourced and go through
// contextual autoescaping. The Individual Updates heading renders even with
// zero entries; Blockers, Action Items, Decisions and Key Discussions render
// only when non-empty.
var documentTemplate = template.Must(template.New("minutes").Parse(`<h1>Stand-up Meeting Minutes - {{.Date}}</h1>

<table>
    <tr>
        <th>Date</th>
        <td>{{.Date}}</td>
    </tr>
    <tr>
        <th>Type</th>
        <td>Daily Stand-up</td>
    </tr>
    <tr>
        <th>Attendees</th>
        <td>{{.AttendeeLine}}</td>
    </tr>
</table>

<h2>Executive Summary</h2>
<p>{{.Minutes.Summary}}</p>

<h2>Individual Updates</h2>
{{range .Minutes.IndividualUpdates}}<h3>{{.Name}}</h3>
<ul>
    <li><strong>Yesterday:</strong> {{.Yesterday}}</li>
    <li><strong>Today:</strong> {{.Today}}</li>
    <li><strong>Blockers:</strong> {{.Blockers}}</li>
</ul>
{{end}}{{if .Minutes.Blockers}}
<h2>Blockers/Impediments</h2>
<ul>
{{range .Minutes.Blockers}}    <li>{{.}}</li>
{{end}}</ul>
{{end}}{{if .Minutes.ActionItems}}
<h2>Action Items</h2>
<table>
    <tr>
        <th>Action</th>
        <th>Assignee</th>
        <th>Due Date</th>
        <th>Priority</th>
    </tr>
{{range .Minutes.ActionItems}}    <tr>
        <td>{{.Action}}</td>
        <td>{{.Assignee}}</td>
        <td>{{.DueDate}}</td>
        <td>{{.Priority}}</td>
    </tr>
{{end}}</table>
{{end}}{{if .Minutes.Decisions}}
<h2>Decisions Made</h2>
<ul>
{{range .Minutes.Decisions}}    <li>{{.}}</li>
{{end}}</ul>
{{end}}{{if .Minutes.KeyDiscussions}}
<h2>Key Discussion Points</h2>
<ul>
{{range .Minutes.KeyDiscussions}}    <li>{{.}}</li>
{{end}}</ul>
{{end}}
<hr/>
<h2>Meeting Metrics</h2>
<ul>
    <li><strong>Total Attendees:</strong> {{len .Minutes.Attendees}}</li>
    <li><strong>Action Items:</strong> {{len .Minutes.ActionItems}}</li>
    <li><strong>Blockers:</strong> {{len .Minutes.Blockers}}</li>
    <li><strong>Decisions:</strong> {{len .Minutes.Decisions}}</li>
</ul>

<hr/>
<p><em>Minutes generated automatically on {{.GeneratedAt}} using AI</em></p>
`))

var suggestionTemplate = template.Must(template.New("suggestion").Parse(`
<h2>AI Suggestions for Improvement</h2>
<ac:structured-macro ac:name="note" ac:schema-version="1">
    <ac:rich-text-body>
        <p>{{.}}</p>
    </ac:rich-text-body>
</ac:structured-macro>
`))

type renderData struct {
	Date         string
	AttendeeLine string
	Minutes      *entities.MeetingMinutes
	GeneratedAt  string
}

// Renderer maps a normalized MeetingMinutes record to the HTML fragment.
// Now is the injectable clock behind the generation stamp, the one
// non-deterministic element of the output.
type Renderer struct {
	Now func() time.Time
}

// NewRenderer constructs a renderer on the wall clock
func NewRenderer() *Renderer {
	return &Renderer{Now: time.Now}
}

// Render produces the document fragment. The record must be normalized;
// counts in the metrics footer are computed from slice lengths at render
// time, never cached.
func (r *Renderer) Render(m *entities.MeetingMinutes, date string) (string, error) {
	attendeeLine := strings.Join(m.Attendees, ", ")
	if len(m.Attendees) == 0 {
		attendeeLine = entities.NoAttendeesLabel
	}

	var sb strings.Builder
	err := documentTemplate.Execute(&sb, renderData{
		Date:         date,
		AttendeeLine: attendeeLine,
		Minutes:      m,
		GeneratedAt:  r.Now().Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		return "", apperrors.ErrRenderFailed(err)
	}
	return sb.String(), nil
}

// AppendSuggestion concatenates the suggestion callout onto a rendered
// document. The document itself is never mutated.
func (r *Renderer) AppendSuggestion(doc string, suggestion string) string {
	var sb strings.Builder
	sb.WriteString(doc)
	if err := suggestionTemplate.Execute(&sb, suggestion); err != nil {
		return doc
	}
	return sb.String()
}

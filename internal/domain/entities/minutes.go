package entities

import "encoding/json"

// Literal defaults substituted for absent fields when minutes are normalized.
// The renderer relies on these being filled at construction time so it never
// has to guard individual field reads.
const (
	DefaultSummary   = "No summary available."
	DefaultName      = "Unknown"
	DefaultUpdate    = "Not mentioned"
	DefaultBlockers  = "None"
	DefaultAssignee  = "TBD"
	DefaultDueDate   = "TBD"
	DefaultPriority  = "Medium"
	NoAttendeesLabel = "No attendees extracted"
)

// IndividualUpdate is one person's stand-up entry.
type IndividualUpdate struct {
	Name      string `json:"name"`
	Yesterday string `json:"yesterday"`
	Today     string `json:"today"`
	Blockers  string `json:"blockers"`
}

// ActionItem is a single item in the action items table.
type ActionItem struct {
	Action   string `json:"action"`
	Assignee string `json:"assignee"`
	DueDate  string `json:"due_date"`
	Priority string `json:"priority"`
}

// UnmarshalJSON accepts either the full object shape or a bare string.
// The simplified extraction tier asks only for "action_items (list)" and
// models frequently answer with plain strings.
func (a *ActionItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = ActionItem{Action: s}
		return nil
	}
	type plain ActionItem
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = ActionItem(p)
	return nil
}

// MeetingMinutes is the structured record extracted from a transcript.
// JSON tags match the schema requested from the completion service, so the
// raw model output decodes directly into this type.
type MeetingMinutes struct {
	Attendees         []string           `json:"attendees"`
	Summary           string             `json:"summary"`
	IndividualUpdates []IndividualUpdate `json:"individual_updates"`
	ActionItems       []ActionItem       `json:"action_items"`
	Blockers          []string           `json:"blockers"`
	Decisions         []string           `json:"decisions"`
	KeyDiscussions    []string           `json:"key_discussions"`
}

// Normalize fills every absent field with its documented default and
// replaces nil slices with empty ones. After Normalize the record is always
// renderable; model output is untrusted and routinely omits fields.
func (m *MeetingMinutes) Normalize() {
	if m.Attendees == nil {
		m.Attendees = []string{}
	}
	if m.Summary == "" {
		m.Summary = DefaultSummary
	}
	if m.IndividualUpdates == nil {
		m.IndividualUpdates = []IndividualUpdate{}
	}
	for i := range m.IndividualUpdates {
		u := &m.IndividualUpdates[i]
		if u.Name == "" {
			u.Name = DefaultName
		}
		if u.Yesterday == "" {
			u.Yesterday = DefaultUpdate
		}
		if u.Today == "" {
			u.Today = DefaultUpdate
		}
		if u.Blockers == "" {
			u.Blockers = DefaultBlockers
		}
	}
	if m.ActionItems == nil {
		m.ActionItems = []ActionItem{}
	}
	for i := range m.ActionItems {
		a := &m.ActionItems[i]
		if a.Assignee == "" {
			a.Assignee = DefaultAssignee
		}
		if a.DueDate == "" {
			a.DueDate = DefaultDueDate
		}
		if a.Priority == "" {
			a.Priority = DefaultPriority
		}
	}
	if m.Blockers == nil {
		m.Blockers = []string{}
	}
	if m.Decisions == nil {
		m.Decisions = []string{}
	}
	if m.KeyDiscussions == nil {
		m.KeyDiscussions = []string{}
	}
}

// FallbackMinutes returns the fixed record used when every extraction tier
// has failed. The pipeline always has renderable input.
func FallbackMinutes() *MeetingMinutes {
	m := &MeetingMinutes{
		Attendees:   []string{"Unable to extract attendees"},
		Summary:     "Meeting transcript processed but extraction failed.",
		ActionItems: []ActionItem{},
		Blockers:    []string{},
	}
	m.Normalize()
	return m
}

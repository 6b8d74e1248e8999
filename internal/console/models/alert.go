package models

import (
	"encoding/json"
	"strings"
	"time"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

type AlertStatus string

const (
	AlertStatusNew           AlertStatus = "new"
	AlertStatusOpen          AlertStatus = "open"
	AlertStatusInProgress    AlertStatus = "in_progress"
	AlertStatusInvestigating AlertStatus = "investigating"
	AlertStatusClosed        AlertStatus = "closed"
)

// Disposition is an analyst's classification of an alert's outcome.
type Disposition string

const (
	DispositionTruePositive   Disposition = "true_positive"
	DispositionFalsePositive  Disposition = "false_positive"
	DispositionBenignPositive Disposition = "benign_positive"
	DispositionEscalated      Disposition = "escalated"
	DispositionUndecided      Disposition = "undecided"
)

// Unassigned is the assignee name the backend stores for an alert nobody owns.
const Unassigned = "None"

func (d Disposition) Valid() bool {
	switch d {
	case DispositionTruePositive, DispositionFalsePositive, DispositionBenignPositive,
		DispositionEscalated, DispositionUndecided:
		return true
	}
	return false
}

func (s AlertStatus) Valid() bool {
	switch s {
	case AlertStatusNew, AlertStatusOpen, AlertStatusInProgress, AlertStatusInvestigating, AlertStatusClosed:
		return true
	}
	return false
}

// NormalizeStatus lowercases s and turns spaces and dashes into
// underscores, so "In Progress" and "in-progress" both read in_progress.
func NormalizeStatus(s string) AlertStatus {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return AlertStatus(s)
}

type Alert struct {
	ID              ID          `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Severity        Severity    `json:"severity"`
	Status          AlertStatus `json:"status"`
	AssignedTo      string      `json:"assignedTo,omitempty"`
	AssignedToEmail string      `json:"assignedToEmail,omitempty"`
	Disposition     Disposition `json:"disposition,omitempty"`
	IncidentID      ID          `json:"incidentId,omitempty"`
	CreatedAt       *time.Time  `json:"createdAt,omitempty"`
}

// UnmarshalJSON also accepts "_id" for the id, "name" for the title and
// free-form status spellings.
func (a *Alert) UnmarshalJSON(b []byte) error {
	type plain Alert
	var aux struct {
		plain
		DocID       ID      `json:"_id"`
		Name        string  `json:"name"`
		Disposition *string `json:"disposition"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*a = Alert(aux.plain)
	if a.ID == "" {
		a.ID = aux.DocID
	}
	if a.Title == "" {
		a.Title = aux.Name
	}
	a.Status = NormalizeStatus(string(a.Status))
	a.Disposition = ""
	if aux.Disposition != nil {
		a.Disposition = Disposition(strings.ToLower(*aux.Disposition))
	}
	return nil
}

// Assigned reports whether someone owns the alert.
func (a Alert) Assigned() bool {
	return a.AssignedTo != "" && a.AssignedTo != Unassigned
}

// Assignee names the owner of an alert in an update. The zero value
// unassigns the alert.
type Assignee struct {
	Name  string
	Email string
}

// AlertUpdate is a partial alert sent with PATCH; nil fields are left alone.
// ClearDisposition sends an explicit null disposition.
type AlertUpdate struct {
	Status           *AlertStatus
	Disposition      *Disposition
	ClearDisposition bool
	Assignee         *Assignee
}

func (u AlertUpdate) Empty() bool {
	return u.Status == nil && u.Disposition == nil && !u.ClearDisposition && u.Assignee == nil
}

func (u AlertUpdate) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if u.Status != nil {
		body["status"] = *u.Status
	}
	switch {
	case u.ClearDisposition:
		body["disposition"] = nil
	case u.Disposition != nil:
		body["disposition"] = *u.Disposition
	}
	if u.Assignee != nil {
		if u.Assignee.Email == "" {
			body["assignedTo"] = Unassigned
			body["assignedToEmail"] = nil
		} else {
			body["assignedTo"] = u.Assignee.Name
			body["assignedToEmail"] = u.Assignee.Email
		}
	}
	return json.Marshal(body)
}

// AlertPage is one page of the alert triage table.
type AlertPage struct {
	Items []Alert
	Total int
	Limit int
	Skip  int
}

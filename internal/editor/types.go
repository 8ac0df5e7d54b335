package editor

import (
	"context"
	"slices"

	"github.com/sumeshkk123/cloud-sub008/internal/records"
)

// Record is one locale row as exchanged with the backend.
type Record struct {
	ID             string   `json:"id,omitempty"`
	Locale         string   `json:"locale"`
	Page           string   `json:"page,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Keywords       string   `json:"keywords,omitempty"`
	Features       []string `json:"features"`
	Icon           string   `json:"icon,omitempty"`
	Category       string   `json:"category,omitempty"`
	ShowOnHomePage bool     `json:"showOnHomePage"`
}

func (r Record) clone() Record {
	r.Features = slices.Clone(r.Features)
	if r.Features == nil {
		r.Features = []string{}
	}
	return r
}

// Draft is the editable copy of one locale. Exists marks drafts backed by a
// persisted row.
type Draft struct {
	Record
	Exists bool
}

func (d Draft) clone() Draft {
	d.Record = d.Record.clone()
	return d
}

// Backend persists localized records.
type Backend interface {
	Translations(ctx context.Context, kind records.Kind, recordID string) ([]Record, error)
	Create(ctx context.Context, kind records.Kind, record Record) (Record, error)
	Update(ctx context.Context, kind records.Kind, recordID string, record Record) (Record, error)
	Delete(ctx context.Context, kind records.Kind, recordID, locale string) error
}

// Translator machine-translates a single piece of text.
type Translator interface {
	Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error)
}

// Field names accepted by SetField.
type Field string

const (
	FieldPage           Field = "page"
	FieldTitle          Field = "title"
	FieldDescription    Field = "description"
	FieldKeywords       Field = "keywords"
	FieldFeatures       Field = "features"
	FieldIcon           Field = records.SharedIcon
	FieldCategory       Field = records.SharedCategory
	FieldShowOnHomePage Field = records.SharedShowOnHomePage
)

// Level grades a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is the user-facing outcome of a controller operation.
type Notification struct {
	Level     Level
	Operation string
	Message   string
	Succeeded int
	Failed    int
}

// Notifier receives one notification per controller operation.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) {
	if f != nil {
		f(n)
	}
}

// Status reports the in-flight flags the host UI disables controls against.
type Status struct {
	Loading     bool
	Saving      bool
	Translating bool
}

// TabState is the lifecycle of one locale tab.
type TabState string

const (
	TabEmpty    TabState = "empty"
	TabDrafting TabState = "drafting"
	TabSaved    TabState = "saved"
)

// Tab describes how a locale tab renders.
type Tab struct {
	Locale           string
	State            TabState
	Saved            bool
	Current          bool
	CategoryReadOnly bool
	AutoTranslate    bool
}

package records

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Kind names a family of localized records.
type Kind string

const (
	KindFeatures    Kind = "features"
	KindPageTitles  Kind = "page-titles"
	KindMetaDetails Kind = "meta-details"
)

// Field labels, in the order missing fields are reported.
const (
	FieldPage        = "Page"
	FieldTitle       = "Title"
	FieldDescription = "Description"
	FieldIcon        = "Icon"
	FieldCategory    = "Category"
)

// Shared field keys. Shared fields hold the same value on every locale row of a record.
const (
	SharedIcon           = "icon"
	SharedCategory       = "category"
	SharedShowOnHomePage = "showOnHomePage"
)

type kindSpec struct {
	pageKeyed bool
	required  []string
	shared    []string
}

var kindSpecs = map[Kind]kindSpec{
	KindFeatures: {
		required: []string{FieldTitle, FieldDescription, FieldIcon, FieldCategory},
		shared:   []string{SharedIcon, SharedCategory, SharedShowOnHomePage},
	},
	KindPageTitles: {
		pageKeyed: true,
		required:  []string{FieldPage, FieldTitle},
	},
	KindMetaDetails: {
		pageKeyed: true,
		required:  []string{FieldPage, FieldTitle, FieldDescription},
	},
}

// Kinds lists the supported record kinds.
func Kinds() []Kind {
	return []Kind{KindFeatures, KindPageTitles, KindMetaDetails}
}

// ParseKind validates a kind name taken from a route or message.
func ParseKind(value string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := kindSpecs[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, value)
	}
	return kind, nil
}

func (k Kind) Valid() bool {
	_, ok := kindSpecs[k]
	return ok
}

// PageKeyed reports whether records of this kind are keyed by page slug.
func (k Kind) PageKeyed() bool {
	return kindSpecs[k].pageKeyed
}

// RequiredFields returns the field labels a row must carry, in report order.
func (k Kind) RequiredFields() []string {
	return slices.Clone(kindSpecs[k].required)
}

// SharedFields returns the keys of the fields shared across locales.
func (k Kind) SharedFields() []string {
	return slices.Clone(kindSpecs[k].shared)
}

// IsShared reports whether field is shared across locales for this kind.
func (k Kind) IsShared(field string) bool {
	return slices.Contains(kindSpecs[k].shared, field)
}

// Row is one locale translation of a localized record.
type Row struct {
	bun.BaseModel `bun:"table:localized_rows,alias:lr"`

	ID             uuid.UUID `bun:",pk,type:uuid" json:"-"`
	RecordID       uuid.UUID `bun:"record_id,notnull,type:uuid" json:"id"`
	Kind           Kind      `bun:"kind,notnull" json:"kind"`
	Locale         string    `bun:"locale,notnull" json:"locale"`
	Page           string    `bun:"page" json:"page,omitempty"`
	Title          string    `bun:"title" json:"title"`
	Description    string    `bun:"description" json:"description"`
	Keywords       string    `bun:"keywords" json:"keywords,omitempty"`
	Features       []string  `bun:"features,type:jsonb" json:"features"`
	Icon           string    `bun:"icon" json:"icon,omitempty"`
	Category       string    `bun:"category" json:"category,omitempty"`
	ShowOnHomePage bool      `bun:"show_on_home_page,notnull" json:"showOnHomePage"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt"`

	// Fallback marks rows served in place of a missing locale.
	Fallback bool `bun:"-" json:"fallback,omitempty"`
}

// Shared holds the cross-locale values of a record.
type Shared struct {
	Icon           string
	Category       string
	ShowOnHomePage bool
}

// SharedValues extracts the shared fields of the row.
func (r *Row) SharedValues() Shared {
	return Shared{Icon: r.Icon, Category: r.Category, ShowOnHomePage: r.ShowOnHomePage}
}

func (r *Row) applyShared(shared Shared) {
	r.Icon = shared.Icon
	r.Category = shared.Category
	r.ShowOnHomePage = shared.ShowOnHomePage
}

func cloneRow(row *Row) *Row {
	if row == nil {
		return nil
	}
	cloned := *row
	cloned.Features = slices.Clone(row.Features)
	if cloned.Features == nil {
		cloned.Features = []string{}
	}
	return &cloned
}

// Input carries one locale's fields for create and save operations.
type Input struct {
	Kind           Kind
	RecordID       uuid.UUID
	Locale         string
	Page           string
	Title          string
	Description    string
	Keywords       string
	Features       []string
	Icon           string
	Category       string
	ShowOnHomePage bool
}

func (in Input) value(field string) string {
	switch field {
	case FieldPage:
		return in.Page
	case FieldTitle:
		return in.Title
	case FieldDescription:
		return in.Description
	case FieldIcon:
		return in.Icon
	case FieldCategory:
		return in.Category
	default:
		return ""
	}
}

// MissingFields returns the required labels whose values are blank, in report order.
func (in Input) MissingFields() []string {
	var missing []string
	for _, field := range in.Kind.RequiredFields() {
		if strings.TrimSpace(in.value(field)) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

var (
	ErrRepositoryRequired = errors.New("records: repository required")
	ErrUnknownKind        = errors.New("records: unknown record kind")
	ErrRecordIDRequired   = errors.New("records: record id required")
	ErrRowExists          = errors.New("records: locale row already exists")
	ErrKindMismatch       = errors.New("records: record belongs to another kind")
	ErrRecordNotFound     = errors.New("records: record not found")
)

// NotFoundError is returned when a record or locale row does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

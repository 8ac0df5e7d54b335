package records

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository persists locale rows.
type Repository interface {
	Create(ctx context.Context, row *Row) (*Row, error)
	Update(ctx context.Context, row *Row) (*Row, error)
	Get(ctx context.Context, recordID uuid.UUID, locale string) (*Row, error)
	ListByRecord(ctx context.Context, recordID uuid.UUID) ([]*Row, error)
	// ListByKind returns the rows of a kind, optionally restricted to a locale,
	// oldest first.
	ListByKind(ctx context.Context, kind Kind, locale string) ([]*Row, error)
	Delete(ctx context.Context, recordID uuid.UUID, locale string) error
	// WithinTx runs fn as one unit of work. Writes made through tx are
	// discarded when fn returns an error.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error
}

// NewRowRepository creates the generic repository for locale rows.
func NewRowRepository(db *bun.DB) repository.Repository[*Row] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Row]{
		NewRecord:          func() *Row { return &Row{} },
		GetID:              func(row *Row) uuid.UUID { return row.ID },
		SetID:              func(row *Row, id uuid.UUID) { row.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(row *Row) string { return row.ID.String() },
	})
}

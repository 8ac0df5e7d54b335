package records

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/sumeshkk123/cloud-sub008/internal/identity"
	"github.com/uptrace/bun"
)

// BunRepository implements Repository with optional caching. Inside WithinTx
// the same repository runs against the open transaction.
type BunRepository struct {
	db   *bun.DB
	idb  bun.IDB
	inTx bool
	repo repository.Repository[*Row]
}

// NewBunRepository creates a row repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a row repository with caching support.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewRowRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunRepository{db: db, idb: db, repo: base}
}

// CreateSchema creates the localized_rows table when missing.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().Model((*Row)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create localized_rows: %w", err)
	}
	if _, err := db.NewCreateIndex().
		Model((*Row)(nil)).
		Index("localized_rows_kind_locale_idx").
		Column("kind", "locale").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create localized_rows index: %w", err)
	}
	return nil
}

func (r *BunRepository) Create(ctx context.Context, row *Row) (*Row, error) {
	if row.ID == uuid.Nil {
		row.ID = identity.RowUUID(row.RecordID, row.Locale)
	}
	record, err := r.repo.CreateTx(ctx, r.idb, row)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunRepository) Update(ctx context.Context, row *Row) (*Row, error) {
	updated, err := r.repo.UpdateTx(ctx, r.idb, row,
		repository.UpdateByID(row.ID.String()),
		repository.UpdateColumns(
			"page",
			"title",
			"description",
			"keywords",
			"features",
			"icon",
			"category",
			"show_on_home_page",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "localized row", row.ID.String())
	}
	return updated, nil
}

func (r *BunRepository) Get(ctx context.Context, recordID uuid.UUID, locale string) (*Row, error) {
	record, err := r.repo.GetByIDTx(ctx, r.idb, identity.RowUUID(recordID, locale).String())
	if err != nil {
		return nil, mapRepositoryError(err, "localized row", recordID.String()+"/"+locale)
	}
	return record, nil
}

func (r *BunRepository) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]*Row, error) {
	records, _, err := r.repo.ListTx(ctx, r.idb, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.record_id = ?", recordID).
			OrderExpr("?TableAlias.created_at ASC").
			OrderExpr("?TableAlias.locale ASC")
	}))
	return records, err
}

func (r *BunRepository) ListByKind(ctx context.Context, kind Kind, locale string) ([]*Row, error) {
	records, _, err := r.repo.ListTx(ctx, r.idb, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("?TableAlias.kind = ?", string(kind))
		if locale != "" {
			q = q.Where("?TableAlias.locale = ?", locale)
		}
		return q.OrderExpr("?TableAlias.created_at ASC").OrderExpr("?TableAlias.record_id ASC")
	}))
	return records, err
}

func (r *BunRepository) Delete(ctx context.Context, recordID uuid.UUID, locale string) error {
	return r.repo.DeleteTx(ctx, r.idb, &Row{ID: identity.RowUUID(recordID, locale)})
}

// WithinTx runs fn inside a database transaction. Nested calls reuse the open
// transaction.
func (r *BunRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	if r.inTx {
		return fn(ctx, r)
	}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &BunRepository{db: r.db, idb: tx, inTx: true, repo: r.repo})
	})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

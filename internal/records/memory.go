package records

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/sumeshkk123/cloud-sub008/internal/identity"
)

// MemoryRepository is an in-memory Repository used for tests and the
// storage-less server profile.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Row
	order []uuid.UUID
}

// NewMemoryRepository constructs an empty memory-backed repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[uuid.UUID]*Row)}
}

func (r *MemoryRepository) Create(_ context.Context, row *Row) (*Row, error) {
	if row == nil {
		return nil, nil
	}
	cloned := cloneRow(row)
	if cloned.ID == uuid.Nil {
		cloned.ID = identity.RowUUID(cloned.RecordID, cloned.Locale)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[cloned.ID]; ok {
		return nil, ErrRowExists
	}
	r.byID[cloned.ID] = cloned
	r.order = append(r.order, cloned.ID)
	return cloneRow(cloned), nil
}

func (r *MemoryRepository) Update(_ context.Context, row *Row) (*Row, error) {
	if row == nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[row.ID]; !ok {
		return nil, &NotFoundError{Resource: "localized row", Key: row.ID.String()}
	}
	cloned := cloneRow(row)
	r.byID[cloned.ID] = cloned
	return cloneRow(cloned), nil
}

func (r *MemoryRepository) Get(_ context.Context, recordID uuid.UUID, locale string) (*Row, error) {
	id := identity.RowUUID(recordID, locale)
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "localized row", Key: recordID.String() + "/" + locale}
	}
	return cloneRow(row), nil
}

func (r *MemoryRepository) ListByRecord(_ context.Context, recordID uuid.UUID) ([]*Row, error) {
	return r.collect(func(row *Row) bool { return row.RecordID == recordID }), nil
}

func (r *MemoryRepository) ListByKind(_ context.Context, kind Kind, locale string) ([]*Row, error) {
	return r.collect(func(row *Row) bool {
		return row.Kind == kind && (locale == "" || row.Locale == locale)
	}), nil
}

func (r *MemoryRepository) Delete(_ context.Context, recordID uuid.UUID, locale string) error {
	id := identity.RowUUID(recordID, locale)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return &NotFoundError{Resource: "localized row", Key: recordID.String() + "/" + locale}
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(candidate uuid.UUID) bool { return candidate == id })
	return nil
}

func (r *MemoryRepository) collect(keep func(*Row) bool) []*Row {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Row, 0)
	for _, id := range r.order {
		if row := r.byID[id]; row != nil && keep(row) {
			out = append(out, cloneRow(row))
		}
	}
	return out
}

// WithinTx runs fn against a view of the repository that remembers the prior
// state of every row it writes, restoring them when fn fails.
func (r *MemoryRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	tx := &memoryTx{MemoryRepository: r, before: make(map[uuid.UUID]*Row)}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

type memoryTx struct {
	*MemoryRepository
	before map[uuid.UUID]*Row
}

func (t *memoryTx) Create(ctx context.Context, row *Row) (*Row, error) {
	if row != nil {
		id := row.ID
		if id == uuid.Nil {
			id = identity.RowUUID(row.RecordID, row.Locale)
		}
		t.remember(id)
	}
	return t.MemoryRepository.Create(ctx, row)
}

func (t *memoryTx) Update(ctx context.Context, row *Row) (*Row, error) {
	if row != nil {
		t.remember(row.ID)
	}
	return t.MemoryRepository.Update(ctx, row)
}

func (t *memoryTx) Delete(ctx context.Context, recordID uuid.UUID, locale string) error {
	t.remember(identity.RowUUID(recordID, locale))
	return t.MemoryRepository.Delete(ctx, recordID, locale)
}

func (t *memoryTx) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	return fn(ctx, t)
}

// remember keeps the first observed state of id; nil marks a row that did not
// exist.
func (t *memoryTx) remember(id uuid.UUID) {
	if _, seen := t.before[id]; seen {
		return
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if row, ok := t.byID[id]; ok {
		t.before[id] = cloneRow(row)
		return
	}
	t.before[id] = nil
}

func (t *memoryTx) rollback() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, row := range t.before {
		if row == nil {
			delete(t.byID, id)
			t.order = slices.DeleteFunc(t.order, func(candidate uuid.UUID) bool { return candidate == id })
			continue
		}
		if _, ok := t.byID[id]; !ok {
			t.order = append(t.order, id)
		}
		t.byID[id] = row
	}
}

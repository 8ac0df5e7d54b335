package records

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"github.com/sumeshkk123/cloud-sub008/internal/icons"
	"github.com/sumeshkk123/cloud-sub008/internal/identity"
	"github.com/sumeshkk123/cloud-sub008/internal/jobs"
	"github.com/sumeshkk123/cloud-sub008/internal/locales"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

// Service manages localized records: one row per (record, locale), with the
// shared fields kept identical across a record's rows.
type Service interface {
	// List returns one row per record of kind for locale, substituting the
	// default locale row when the requested locale has none.
	List(ctx context.Context, kind Kind, locale string) ([]*Row, error)
	Translations(ctx context.Context, kind Kind, recordID uuid.UUID) ([]*Row, error)
	Get(ctx context.Context, kind Kind, recordID uuid.UUID, locale string) (*Row, error)
	// Create starts a record from one locale's fields.
	Create(ctx context.Context, input Input) (*Row, error)
	// Save creates or updates the locale row of an existing record.
	Save(ctx context.Context, input Input) (*Row, error)
	// Import upserts a row, creating the record when it does not exist yet.
	Import(ctx context.Context, input Input) (*Row, error)
	// Delete removes one locale row, or every row of the record when locale is blank.
	Delete(ctx context.Context, kind Kind, recordID uuid.UUID, locale string) error
	// SyncShared copies the shared fields of the source locale row onto its siblings.
	SyncShared(ctx context.Context, kind Kind, recordID uuid.UUID, sourceLocale string) (int, error)
	Locales() []string
}

// IconResolver validates icon references at the write boundary.
type IconResolver interface {
	Resolve(ref string) *icons.Icon
}

// IDGenerator produces record identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithClock overrides the time source (primarily for tests).
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the default record id generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLocales sets the locales rows may be written in.
func WithLocales(set *locales.Set) ServiceOption {
	return func(s *service) {
		if set != nil {
			s.locales = set
		}
	}
}

// WithIconValidation rejects rows whose icon reference does not resolve.
func WithIconValidation(resolver IconResolver) ServiceOption {
	return func(s *service) {
		s.icons = resolver
	}
}

// WithAuditRecorder records every mutation.
func WithAuditRecorder(recorder jobs.AuditRecorder) ServiceOption {
	return func(s *service) {
		s.audit = recorder
	}
}

// WithLogger sets the logger used by the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo    Repository
	locales *locales.Set
	icons   IconResolver
	audit   jobs.AuditRecorder
	logger  interfaces.Logger
	id      IDGenerator
	now     func() time.Time
}

// DefaultLocales is the locale set used when none is configured.
func DefaultLocales() *locales.Set {
	return locales.MustSet("en", "es", "it", "de", "pt", "zh")
}

// NewService constructs a record service.
func NewService(repo Repository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	s := &service{
		repo:    repo,
		locales: DefaultLocales(),
		logger:  logging.NoOp(),
		id:      uuid.New,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Locales() []string {
	return s.locales.Codes()
}

func (s *service) List(ctx context.Context, kind Kind, locale string) ([]*Row, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	locale, err := s.resolveLocale(locale, true)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByKind(ctx, kind, "")
	if err != nil {
		return nil, err
	}

	var order []uuid.UUID
	seen := map[uuid.UUID]struct{}{}
	chosen := map[uuid.UUID]*Row{}
	fallback := map[uuid.UUID]*Row{}
	def := s.locales.Default()
	for _, row := range rows {
		if _, ok := seen[row.RecordID]; !ok {
			seen[row.RecordID] = struct{}{}
			order = append(order, row.RecordID)
		}
		switch row.Locale {
		case locale:
			chosen[row.RecordID] = row
		case def:
			fallback[row.RecordID] = row
		}
	}

	out := make([]*Row, 0, len(order))
	for _, id := range order {
		if row, ok := chosen[id]; ok {
			out = append(out, cloneRow(row))
			continue
		}
		if row, ok := fallback[id]; ok {
			cloned := cloneRow(row)
			cloned.Fallback = true
			out = append(out, cloned)
		}
	}
	return out, nil
}

func (s *service) Translations(ctx context.Context, kind Kind, recordID uuid.UUID) ([]*Row, error) {
	rows, err := s.siblings(ctx, kind, recordID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{Resource: string(kind), Key: recordID.String()}
	}
	out := make([]*Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, cloneRow(row))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, kind Kind, recordID uuid.UUID, locale string) (*Row, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	locale, err := s.resolveLocale(locale, false)
	if err != nil {
		return nil, err
	}
	row, err := s.repo.Get(ctx, recordID, locale)
	if err != nil {
		return nil, err
	}
	if row.Kind != kind {
		return nil, &NotFoundError{Resource: string(kind), Key: recordID.String()}
	}
	return cloneRow(row), nil
}

func (s *service) Create(ctx context.Context, input Input) (*Row, error) {
	input, err := s.normalize(input)
	if err != nil {
		return nil, err
	}

	if input.Kind.PageKeyed() {
		input.RecordID = identity.PageRecordUUID(string(input.Kind), input.Page)
	} else {
		input.RecordID = s.id()
	}

	if existing, err := s.repo.Get(ctx, input.RecordID, input.Locale); err == nil && existing != nil {
		return nil, goerrors.Wrap(ErrRowExists, goerrors.CategoryConflict, "a row for this locale already exists").
			WithTextCode("ROW_EXISTS").
			WithMetadata(map[string]any{"id": input.RecordID.String(), "locale": input.Locale})
	} else if err != nil && !isNotFound(err) {
		return nil, err
	}

	siblings, err := s.siblings(ctx, input.Kind, input.RecordID)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, input, nil, siblings)
}

func (s *service) Save(ctx context.Context, input Input) (*Row, error) {
	return s.upsert(ctx, input, false)
}

func (s *service) Import(ctx context.Context, input Input) (*Row, error) {
	return s.upsert(ctx, input, true)
}

func (s *service) upsert(ctx context.Context, input Input, allowCreate bool) (*Row, error) {
	input, err := s.normalize(input)
	if err != nil {
		return nil, err
	}
	if input.RecordID == uuid.Nil {
		if !allowCreate {
			return nil, goerrors.Wrap(ErrRecordIDRequired, goerrors.CategoryBadInput, "record id is required").
				WithTextCode("RECORD_ID_REQUIRED")
		}
		if !input.Kind.PageKeyed() {
			return nil, goerrors.Wrap(ErrRecordIDRequired, goerrors.CategoryBadInput, "record id is required").
				WithTextCode("RECORD_ID_REQUIRED")
		}
		input.RecordID = identity.PageRecordUUID(string(input.Kind), input.Page)
	}

	siblings, err := s.siblings(ctx, input.Kind, input.RecordID)
	if err != nil {
		return nil, err
	}
	if len(siblings) == 0 && !allowCreate {
		return nil, &NotFoundError{Resource: string(input.Kind), Key: input.RecordID.String()}
	}
	if input.Kind.PageKeyed() && len(siblings) > 0 {
		input.Page = siblings[0].Page
	}

	var existing *Row
	for _, row := range siblings {
		if row.Locale == input.Locale {
			existing = row
			break
		}
	}
	return s.write(ctx, input, existing, siblings)
}

// write persists input as a create (existing == nil) or update, then copies
// the shared fields onto every sibling row that drifted.
func (s *service) write(ctx context.Context, input Input, existing *Row, siblings []*Row) (*Row, error) {
	logger := logging.WithRecordContext(s.logger.WithContext(ctx), string(input.Kind), input.RecordID.String(), input.Locale)
	now := s.now().UTC()

	row := &Row{
		ID:             identity.RowUUID(input.RecordID, input.Locale),
		RecordID:       input.RecordID,
		Kind:           input.Kind,
		Locale:         input.Locale,
		Page:           input.Page,
		Title:          input.Title,
		Description:    input.Description,
		Keywords:       input.Keywords,
		Features:       slices.Clone(input.Features),
		Icon:           input.Icon,
		Category:       input.Category,
		ShowOnHomePage: input.ShowOnHomePage,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if row.Features == nil {
		row.Features = []string{}
	}

	var (
		saved  *Row
		synced int
		action = jobs.ActionCreated
	)
	if existing != nil {
		action = jobs.ActionUpdated
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	}
	err := s.repo.WithinTx(ctx, func(ctx context.Context, tx Repository) error {
		var err error
		if existing != nil {
			saved, err = tx.Update(ctx, row)
		} else {
			saved, err = tx.Create(ctx, row)
		}
		if err != nil {
			logger.Error("records.write.failed", "action", action, "error", err)
			return err
		}
		synced, err = propagate(ctx, tx, saved, siblings, now)
		if err != nil {
			logger.Error("records.shared_sync.failed", "error", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, jobs.AuditEvent{
		EntityType: string(saved.Kind),
		EntityID:   saved.RecordID.String(),
		Locale:     saved.Locale,
		Action:     action,
		OccurredAt: now,
		Metadata:   map[string]any{"synced_rows": synced},
	})
	logger.Info("records.write.succeeded", "action", action, "synced_rows", synced)
	return cloneRow(saved), nil
}

// propagate copies source's shared fields onto drifted siblings through repo.
func propagate(ctx context.Context, repo Repository, source *Row, siblings []*Row, now time.Time) (int, error) {
	if len(source.Kind.SharedFields()) == 0 {
		return 0, nil
	}
	shared := source.SharedValues()
	count := 0
	for _, sibling := range siblings {
		if sibling.Locale == source.Locale || sibling.SharedValues() == shared {
			continue
		}
		updated := cloneRow(sibling)
		updated.applyShared(shared)
		updated.UpdatedAt = now
		if _, err := repo.Update(ctx, updated); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (s *service) Delete(ctx context.Context, kind Kind, recordID uuid.UUID, locale string) error {
	rows, err := s.siblings(ctx, kind, recordID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return &NotFoundError{Resource: string(kind), Key: recordID.String()}
	}

	targets := rows
	if strings.TrimSpace(locale) != "" {
		canonical, err := s.resolveLocale(locale, false)
		if err != nil {
			return err
		}
		targets = slices.DeleteFunc(slices.Clone(rows), func(row *Row) bool { return row.Locale != canonical })
		if len(targets) == 0 {
			return &NotFoundError{Resource: "localized row", Key: recordID.String() + "/" + canonical}
		}
		locale = canonical
	}

	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx Repository) error {
		for _, row := range targets {
			if err := tx.Delete(ctx, row.RecordID, row.Locale); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.record(ctx, jobs.AuditEvent{
		EntityType: string(kind),
		EntityID:   recordID.String(),
		Locale:     locale,
		Action:     jobs.ActionDeleted,
		OccurredAt: s.now().UTC(),
		Metadata:   map[string]any{"rows": len(targets)},
	})
	logging.WithRecordContext(s.logger.WithContext(ctx), string(kind), recordID.String(), locale).
		Info("records.delete.succeeded", "rows", len(targets))
	return nil
}

func (s *service) SyncShared(ctx context.Context, kind Kind, recordID uuid.UUID, sourceLocale string) (int, error) {
	rows, err := s.siblings(ctx, kind, recordID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, &NotFoundError{Resource: string(kind), Key: recordID.String()}
	}
	if strings.TrimSpace(sourceLocale) == "" {
		sourceLocale = s.locales.Default()
	}
	sourceLocale, err = s.resolveLocale(sourceLocale, false)
	if err != nil {
		return 0, err
	}

	source := rows[0]
	for _, row := range rows {
		if row.Locale == sourceLocale {
			source = row
			break
		}
	}

	now := s.now().UTC()
	var synced int
	err = s.repo.WithinTx(ctx, func(ctx context.Context, tx Repository) error {
		var err error
		synced, err = propagate(ctx, tx, source, rows, now)
		return err
	})
	if err != nil {
		return 0, err
	}
	if synced > 0 {
		s.record(ctx, jobs.AuditEvent{
			EntityType: string(kind),
			EntityID:   recordID.String(),
			Locale:     source.Locale,
			Action:     jobs.ActionSynced,
			OccurredAt: now,
			Metadata:   map[string]any{"synced_rows": synced},
		})
	}
	return synced, nil
}

// siblings lists the rows of a record ordered by the configured locales.
func (s *service) siblings(ctx context.Context, kind Kind, recordID uuid.UUID) ([]*Row, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	if recordID == uuid.Nil {
		return nil, goerrors.Wrap(ErrRecordIDRequired, goerrors.CategoryBadInput, "record id is required").
			WithTextCode("RECORD_ID_REQUIRED")
	}
	rows, err := s.repo.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.Kind != kind {
			return nil, goerrors.Wrap(ErrKindMismatch, goerrors.CategoryConflict, "record belongs to "+string(row.Kind)).
				WithTextCode("KIND_MISMATCH")
		}
	}

	codes := s.locales.Codes()
	rank := func(locale string) int {
		if idx := slices.Index(codes, locale); idx >= 0 {
			return idx
		}
		return len(codes)
	}
	slices.SortStableFunc(rows, func(a, b *Row) int {
		return rank(a.Locale) - rank(b.Locale)
	})
	return rows, nil
}

func (s *service) normalize(input Input) (Input, error) {
	if !input.Kind.Valid() {
		return input, ErrUnknownKind
	}

	input.Locale = strings.TrimSpace(input.Locale)
	input.Page = strings.TrimSpace(input.Page)
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Keywords = strings.TrimSpace(input.Keywords)
	input.Icon = strings.TrimSpace(input.Icon)
	input.Category = strings.TrimSpace(input.Category)
	features := make([]string, 0, len(input.Features))
	for _, feature := range input.Features {
		if feature = strings.TrimSpace(feature); feature != "" {
			features = append(features, feature)
		}
	}
	input.Features = features
	if !input.Kind.IsShared(SharedIcon) {
		input.Icon, input.Category, input.ShowOnHomePage = "", "", false
	}

	if missing := input.MissingFields(); len(missing) > 0 {
		fields := make([]goerrors.FieldError, 0, len(missing))
		for _, field := range missing {
			fields = append(fields, goerrors.FieldError{Field: strings.ToLower(field), Message: "is required"})
		}
		return input, goerrors.NewValidation("Missing required fields: "+strings.Join(missing, ", "), fields...).
			WithTextCode("MISSING_FIELDS")
	}

	err := validation.ValidateStruct(&input,
		validation.Field(&input.Locale, validation.Required, validation.By(func(value any) error {
			code, _ := value.(string)
			if !s.locales.Contains(code) {
				return validation.NewError("validation_locale_unsupported", "is not a configured locale")
			}
			return nil
		})),
		validation.Field(&input.Title, validation.Length(0, 200)),
		validation.Field(&input.Keywords, validation.Length(0, 500)),
		validation.Field(&input.Features, validation.Length(0, 50), validation.Each(validation.Length(1, 300))),
		validation.Field(&input.Icon, validation.By(func(value any) error {
			ref, _ := value.(string)
			if ref == "" || s.icons == nil {
				return nil
			}
			if s.icons.Resolve(ref) == nil {
				return validation.NewError("validation_icon_unresolvable", "does not resolve to a known icon")
			}
			return nil
		})),
	)
	if err != nil {
		return input, goerrors.FromOzzoValidation(err, "invalid record input").WithTextCode("INVALID_INPUT")
	}

	input.Locale, _ = locales.Canonical(input.Locale)
	if input.Kind.PageKeyed() {
		page, err := slug.Normalize(input.Page)
		if err != nil || page == "" {
			return input, goerrors.NewValidation("invalid record input", goerrors.FieldError{
				Field: "page", Message: "must contain letters or digits", Value: input.Page,
			}).WithTextCode("INVALID_INPUT")
		}
		input.Page = page
	}
	return input, nil
}

// resolveLocale canonicalises locale. Blank values fall back to the default
// locale when allowDefault is set.
func (s *service) resolveLocale(locale string, allowDefault bool) (string, error) {
	if strings.TrimSpace(locale) == "" && allowDefault {
		return s.locales.Default(), nil
	}
	canonical, err := locales.Canonical(locale)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "invalid locale").WithTextCode("INVALID_LOCALE")
	}
	if !s.locales.Contains(canonical) {
		return "", goerrors.NewValidation("invalid locale", goerrors.FieldError{
			Field: "locale", Message: "is not a configured locale", Value: canonical,
		}).WithTextCode("INVALID_LOCALE")
	}
	return canonical, nil
}

func (s *service) record(ctx context.Context, event jobs.AuditEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, event); err != nil {
		s.logger.Warn("records.audit.failed", "error", err)
	}
}

func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

package editor

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

// Controller holds the per-locale drafts of one localized record and moves
// them between the form and the backend. Shared fields are fanned out to every
// draft on write. The mutex guards state only and is never held across
// backend or translator calls.
type Controller struct {
	kind          records.Kind
	backend       Backend
	translator    Translator
	notifier      Notifier
	logger        interfaces.Logger
	locales       []string
	defaultLocale string
	onSaved       func(locale string, record Record)
	onStatus      func(Status)

	mu       sync.Mutex
	recordID string
	active   string
	drafts   map[string]*Draft
	saved    map[string]bool
	dirty    map[string]bool
	pending  string
	status   Status
}

// Option configures a Controller.
type Option func(*Controller)

// WithLocales sets the editable locales in tab order. The default locale is
// added when missing.
func WithLocales(locales ...string) Option {
	return func(c *Controller) {
		cleaned := make([]string, 0, len(locales))
		for _, locale := range locales {
			if locale = strings.ToLower(strings.TrimSpace(locale)); locale != "" && !slices.Contains(cleaned, locale) {
				cleaned = append(cleaned, locale)
			}
		}
		if len(cleaned) > 0 {
			c.locales = cleaned
		}
	}
}

// WithDefaultLocale sets the locale shared fields are authored on (defaults to "en").
func WithDefaultLocale(locale string) Option {
	return func(c *Controller) {
		if locale = strings.ToLower(strings.TrimSpace(locale)); locale != "" {
			c.defaultLocale = locale
		}
	}
}

// WithTranslator enables AutoTranslate.
func WithTranslator(translator Translator) Option {
	return func(c *Controller) {
		c.translator = translator
	}
}

// WithNotifier receives operation outcomes.
func WithNotifier(notifier Notifier) Option {
	return func(c *Controller) {
		if notifier != nil {
			c.notifier = notifier
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOnSaved registers a callback invoked after each successful save.
func WithOnSaved(fn func(locale string, record Record)) Option {
	return func(c *Controller) {
		c.onSaved = fn
	}
}

// WithStatusHook observes the loading, saving and translating flags.
func WithStatusHook(fn func(Status)) Option {
	return func(c *Controller) {
		c.onStatus = fn
	}
}

// NewController builds a controller for a record of kind. The controller
// starts on a new, unsaved record.
func NewController(kind records.Kind, backend Backend, opts ...Option) (*Controller, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", records.ErrUnknownKind, kind)
	}
	if backend == nil {
		return nil, ErrBackendRequired
	}
	c := &Controller{
		kind:          kind,
		backend:       backend,
		notifier:      NotifierFunc(nil),
		logger:        logging.NoOp(),
		locales:       []string{"en", "es", "it", "de", "pt", "zh"},
		defaultLocale: "en",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if !slices.Contains(c.locales, c.defaultLocale) {
		c.locales = append([]string{c.defaultLocale}, c.locales...)
	}
	c.reset()
	return c, nil
}

// reset clears the drafts. Callers hold c.mu or own c exclusively.
func (c *Controller) reset() {
	c.recordID = ""
	c.active = c.defaultLocale
	c.drafts = make(map[string]*Draft, len(c.locales))
	c.saved = map[string]bool{}
	c.dirty = map[string]bool{}
	c.pending = ""
	for _, locale := range c.locales {
		c.drafts[locale] = &Draft{Record: Record{Locale: locale, Features: []string{}}}
	}
}

// Kind returns the record kind being edited.
func (c *Controller) Kind() records.Kind {
	return c.kind
}

// Locales returns the editable locales in tab order.
func (c *Controller) Locales() []string {
	return slices.Clone(c.locales)
}

// RecordID returns the id of the record, blank until the first save.
func (c *Controller) RecordID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recordID
}

// ActiveLocale returns the locale of the current tab.
func (c *Controller) ActiveLocale() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SetActiveLocale switches the current tab.
func (c *Controller) SetActiveLocale(locale string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.drafts[locale]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}
	c.active = locale
	return nil
}

// Draft returns a copy of the draft for locale.
func (c *Controller) Draft(locale string) (Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	draft, ok := c.drafts[locale]
	if !ok {
		return Draft{}, false
	}
	return draft.clone(), true
}

// SavedLocales lists the locales with a persisted row, in tab order.
func (c *Controller) SavedLocales() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.saved))
	for _, locale := range c.locales {
		if c.saved[locale] {
			out = append(out, locale)
		}
	}
	return out
}

// Status returns the current in-flight flags.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// PendingFeature returns the text typed into the add-feature input.
func (c *Controller) PendingFeature() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// LoadAll replaces the drafts with the saved rows of recordID. Shared fields
// are taken from the default locale row, or the first row when it is missing.
func (c *Controller) LoadAll(ctx context.Context, recordID string) error {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		err := validationError("A record id is required to load translations", "id")
		c.notify(Notification{Level: LevelError, Operation: "load", Message: "A record id is required to load translations"})
		return err
	}

	done := c.begin(func(s *Status, on bool) { s.Loading = on })
	defer done()

	logger := logging.WithRecordContext(c.logger.WithContext(ctx), string(c.kind), recordID, "")
	rows, err := c.backend.Translations(ctx, c.kind, recordID)
	if err != nil {
		message, wrapped := networkError(err, genericLoadMessage)
		logger.Error("editor.load.failed", "error", err)
		c.notify(Notification{Level: LevelError, Operation: "load", Message: message})
		return wrapped
	}

	byLocale := make(map[string]Record, len(rows))
	for _, row := range rows {
		byLocale[strings.ToLower(row.Locale)] = row
	}
	var source *Record
	if row, ok := byLocale[c.defaultLocale]; ok {
		source = &row
	} else if len(rows) > 0 {
		source = &rows[0]
	}

	c.mu.Lock()
	c.reset()
	c.recordID = recordID
	active := ""
	for _, locale := range c.locales {
		row, ok := byLocale[locale]
		if !ok {
			continue
		}
		row.Locale = locale
		row.ID = recordID
		c.drafts[locale] = &Draft{Record: row.clone(), Exists: true}
		c.saved[locale] = true
		if active == "" {
			active = locale
		}
	}
	if source != nil {
		c.fanOut(*source)
	}
	if active != "" {
		c.active = active
	}
	loaded := len(c.saved)
	c.mu.Unlock()

	logger.Info("editor.load.succeeded", "rows", loaded)
	c.notify(Notification{Level: LevelInfo, Operation: "load", Message: fmt.Sprintf("Loaded %d translations", loaded), Succeeded: loaded})
	return nil
}

// fanOut copies the shared fields (and the page slug of page-keyed kinds)
// of source onto every draft. Callers hold c.mu.
func (c *Controller) fanOut(source Record) {
	for _, draft := range c.drafts {
		if c.kind.IsShared(records.SharedIcon) {
			draft.Icon = source.Icon
			draft.Category = source.Category
			draft.ShowOnHomePage = source.ShowOnHomePage
		}
		if c.kind.PageKeyed() {
			draft.Page = source.Page
		}
	}
}

func (c *Controller) isShared(field Field) bool {
	if field == FieldPage {
		return c.kind.PageKeyed()
	}
	return c.kind.IsShared(string(field))
}

// SetField writes value to locale's draft. Shared fields are written to every
// draft whichever locale the write comes from.
func (c *Controller) SetField(locale string, field Field, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft, ok := c.drafts[locale]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}

	targets := []*Draft{draft}
	if c.isShared(field) {
		targets = targets[:0]
		for _, code := range c.locales {
			targets = append(targets, c.drafts[code])
		}
	}

	switch field {
	case FieldFeatures:
		items, ok := value.([]string)
		if !ok {
			return fmt.Errorf("%w: %s expects []string", ErrInvalidValue, field)
		}
		for _, target := range targets {
			target.Features = slices.Clone(items)
		}
	case FieldShowOnHomePage:
		flag, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects bool", ErrInvalidValue, field)
		}
		for _, target := range targets {
			target.ShowOnHomePage = flag
		}
	case FieldPage, FieldTitle, FieldDescription, FieldKeywords, FieldIcon, FieldCategory:
		text, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects string", ErrInvalidValue, field)
		}
		for _, target := range targets {
			setText(&target.Record, field, text)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	c.dirty[locale] = true
	return nil
}

func setText(record *Record, field Field, value string) {
	switch field {
	case FieldPage:
		record.Page = value
	case FieldTitle:
		record.Title = value
	case FieldDescription:
		record.Description = value
	case FieldKeywords:
		record.Keywords = value
	case FieldIcon:
		record.Icon = value
	case FieldCategory:
		record.Category = value
	}
}

// SetPendingFeature stores the text of the add-feature input.
func (c *Controller) SetPendingFeature(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = text
}

// AddFeature appends the pending feature text to locale's feature list and
// clears it. Blank text is ignored.
func (c *Controller) AddFeature(locale string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	draft, ok := c.drafts[locale]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}
	text := strings.TrimSpace(c.pending)
	if text == "" {
		return false, nil
	}
	draft.Features = append(draft.Features, text)
	c.pending = ""
	c.dirty[locale] = true
	return true, nil
}

// RemoveFeature drops the feature at index from locale's list.
func (c *Controller) RemoveFeature(locale string, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	draft, ok := c.drafts[locale]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}
	if index < 0 || index >= len(draft.Features) {
		return fmt.Errorf("%w: %d", ErrFeatureIndex, index)
	}
	draft.Features = slices.Delete(draft.Features, index, index+1)
	c.dirty[locale] = true
	return nil
}

// Save persists locale's draft. Required fields are checked first and a
// failed check never reaches the backend. The first save of a new record
// creates it; later saves update the (record, locale) row.
func (c *Controller) Save(ctx context.Context, locale string) error {
	c.mu.Lock()
	draft, ok := c.drafts[locale]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}
	outgoing := draft.Record.clone()
	outgoing.Locale = locale
	if pending := strings.TrimSpace(c.pending); pending != "" {
		outgoing.Features = append(outgoing.Features, pending)
	}
	if base := c.drafts[c.defaultLocale]; base != nil {
		if c.kind.IsShared(records.SharedCategory) {
			outgoing.Category = base.Category
		}
		if c.kind.PageKeyed() && strings.TrimSpace(base.Page) != "" {
			outgoing.Page = base.Page
		}
	}
	recordID := c.recordID
	c.mu.Unlock()

	if missing := c.missingFields(outgoing); len(missing) > 0 {
		err := missingFieldsError(missing)
		c.notify(Notification{Level: LevelError, Operation: "save", Message: "Missing required fields: " + strings.Join(missing, ", ")})
		return err
	}

	done := c.begin(func(s *Status, on bool) { s.Saving = on })
	defer done()

	logger := logging.WithRecordContext(c.logger.WithContext(ctx), string(c.kind), recordID, locale)
	var (
		result Record
		err    error
	)
	if recordID == "" {
		result, err = c.backend.Create(ctx, c.kind, outgoing)
	} else {
		result, err = c.backend.Update(ctx, c.kind, recordID, outgoing)
	}
	if err != nil {
		message, wrapped := networkError(err, genericSaveMessage)
		logger.Error("editor.save.failed", "error", err)
		c.notify(Notification{Level: LevelError, Operation: "save", Message: message})
		return wrapped
	}

	if recordID == "" {
		recordID = result.ID
	}
	outgoing.ID = recordID

	c.mu.Lock()
	c.recordID = recordID
	c.drafts[locale] = &Draft{Record: outgoing.clone(), Exists: true}
	c.saved[locale] = true
	c.dirty[locale] = false
	c.pending = ""
	c.mu.Unlock()

	logger.Info("editor.save.succeeded", "record_id", recordID)
	c.notify(Notification{Level: LevelSuccess, Operation: "save", Message: fmt.Sprintf("Saved %s translation", locale), Succeeded: 1})
	if c.onSaved != nil {
		c.onSaved(locale, outgoing.clone())
	}
	return nil
}

func (c *Controller) missingFields(record Record) []string {
	var missing []string
	for _, field := range c.kind.RequiredFields() {
		var value string
		switch field {
		case records.FieldPage:
			value = record.Page
		case records.FieldTitle:
			value = record.Title
		case records.FieldDescription:
			value = record.Description
		case records.FieldIcon:
			value = record.Icon
		case records.FieldCategory:
			value = record.Category
		}
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Delete removes every locale row of the record and resets the form.
func (c *Controller) Delete(ctx context.Context) error {
	recordID := c.RecordID()
	if recordID == "" {
		c.notify(Notification{Level: LevelError, Operation: "delete", Message: "Nothing to delete: the record has not been saved yet"})
		return ErrNoRecord
	}

	done := c.begin(func(s *Status, on bool) { s.Saving = on })
	defer done()

	logger := logging.WithRecordContext(c.logger.WithContext(ctx), string(c.kind), recordID, "")
	if err := c.backend.Delete(ctx, c.kind, recordID, ""); err != nil {
		message, wrapped := networkError(err, genericDeleteMessage)
		logger.Error("editor.delete.failed", "error", err)
		c.notify(Notification{Level: LevelError, Operation: "delete", Message: message})
		return wrapped
	}

	c.mu.Lock()
	c.reset()
	c.mu.Unlock()

	logger.Info("editor.delete.succeeded")
	c.notify(Notification{Level: LevelSuccess, Operation: "delete", Message: "Record deleted"})
	return nil
}

// Tabs describes the locale tabs in order.
func (c *Controller) Tabs() []Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	tabs := make([]Tab, 0, len(c.locales))
	for _, locale := range c.locales {
		state := TabEmpty
		switch {
		case c.dirty[locale]:
			state = TabDrafting
		case c.saved[locale]:
			state = TabSaved
		}
		tabs = append(tabs, Tab{
			Locale:           locale,
			State:            state,
			Saved:            c.saved[locale],
			Current:          locale == c.active,
			CategoryReadOnly: locale != c.defaultLocale,
			AutoTranslate:    locale != c.defaultLocale,
		})
	}
	return tabs
}

// begin raises a status flag and returns the func that clears it.
func (c *Controller) begin(set func(*Status, bool)) func() {
	c.mu.Lock()
	set(&c.status, true)
	status := c.status
	c.mu.Unlock()
	c.emitStatus(status)

	return func() {
		c.mu.Lock()
		set(&c.status, false)
		status := c.status
		c.mu.Unlock()
		c.emitStatus(status)
	}
}

func (c *Controller) emitStatus(status Status) {
	if c.onStatus != nil {
		c.onStatus(status)
	}
}

func (c *Controller) notify(n Notification) {
	c.notifier.Notify(n)
}

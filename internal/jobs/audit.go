package jobs

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

// Audit actions recorded for localized record mutations.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionSynced  = "synced"
	ActionSeeded  = "seeded"
)

// AuditEvent captures a change applied to a localized record.
type AuditEvent struct {
	EntityType string
	EntityID   string
	Locale     string
	Action     string
	OccurredAt time.Time
	Metadata   map[string]any
}

// AuditRecorder persists audit events.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent) error
	List(ctx context.Context) ([]AuditEvent, error)
	Clear(ctx context.Context) error
}

// InMemoryAuditRecorder accumulates audit events in memory. When a capacity is
// set the oldest events are discarded first.
type InMemoryAuditRecorder struct {
	mu       sync.Mutex
	events   []AuditEvent
	capacity int
	err      error
}

// NewInMemoryAuditRecorder constructs an empty recorder. capacity <= 0 keeps every event.
func NewInMemoryAuditRecorder(capacity ...int) *InMemoryAuditRecorder {
	r := &InMemoryAuditRecorder{}
	if len(capacity) > 0 && capacity[0] > 0 {
		r.capacity = capacity[0]
	}
	return r
}

// Record stores the supplied event.
func (r *InMemoryAuditRecorder) Record(_ context.Context, event AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	event.Metadata = maps.Clone(event.Metadata)
	r.events = append(r.events, event)
	if r.capacity > 0 && len(r.events) > r.capacity {
		r.events = append([]AuditEvent(nil), r.events[len(r.events)-r.capacity:]...)
	}
	return nil
}

// Events returns a snapshot of recorded audit entries.
func (r *InMemoryAuditRecorder) Events() []AuditEvent {
	events, _ := r.List(context.Background())
	return events
}

// Fail configures the recorder to return the supplied error on subsequent Record calls.
func (r *InMemoryAuditRecorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// List returns the audit events recorded so far, oldest first.
func (r *InMemoryAuditRecorder) List(context.Context) ([]AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]AuditEvent, len(r.events))
	copy(out, r.events)
	return out, nil
}

// Clear removes all recorded events.
func (r *InMemoryAuditRecorder) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	return nil
}

// LoggingAuditRecorder writes every event to a logger before delegating.
type LoggingAuditRecorder struct {
	next   AuditRecorder
	logger interfaces.Logger
}

// NewLoggingAuditRecorder wraps next. A nil next records nothing beyond the log line.
func NewLoggingAuditRecorder(next AuditRecorder, logger interfaces.Logger) *LoggingAuditRecorder {
	return &LoggingAuditRecorder{next: next, logger: logger}
}

func (r *LoggingAuditRecorder) Record(ctx context.Context, event AuditEvent) error {
	if r.logger != nil {
		r.logger.WithContext(ctx).Info("audit.record",
			"entity_type", event.EntityType,
			"entity_id", event.EntityID,
			"locale", event.Locale,
			"action", event.Action,
		)
	}
	if r.next == nil {
		return nil
	}
	return r.next.Record(ctx, event)
}

func (r *LoggingAuditRecorder) List(ctx context.Context) ([]AuditEvent, error) {
	if r.next == nil {
		return nil, nil
	}
	return r.next.List(ctx)
}

func (r *LoggingAuditRecorder) Clear(ctx context.Context) error {
	if r.next == nil {
		return nil
	}
	return r.next.Clear(ctx)
}

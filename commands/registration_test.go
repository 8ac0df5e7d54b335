package commands

import (
	"context"
	"errors"
	"testing"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	auditcmd "github.com/sumeshkk123/cloud-sub008/internal/commands/audit"
	recordscmd "github.com/sumeshkk123/cloud-sub008/internal/commands/records"
	"github.com/sumeshkk123/cloud-sub008/internal/jobs"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
	"github.com/sumeshkk123/cloud-sub008/internal/runtimeconfig"
	"github.com/sumeshkk123/cloud-sub008/internal/seed"
)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

type recordingSubscription struct {
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() { s.unsubscribed = true }

type recordingDispatcher struct {
	subscriptions []*recordingSubscription
}

func (d *recordingDispatcher) RegisterCommand(any) (CommandSubscription, error) {
	sub := &recordingSubscription{}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type cronRegistration struct {
	config  command.HandlerConfig
	handler any
}

func newServices(t *testing.T) (Services, records.Service, *jobs.InMemoryAuditRecorder) {
	t.Helper()
	audit := jobs.NewInMemoryAuditRecorder()
	svc := records.NewService(records.NewMemoryRepository(), records.WithAuditRecorder(audit))
	importer, err := seed.NewImporter(svc)
	if err != nil {
		t.Fatalf("importer: %v", err)
	}
	return Services{Records: svc, Seeder: importer, Audit: audit}, svc, audit
}

func TestRegisterCommandsBuildsHandlers(t *testing.T) {
	services, _, _ := newServices(t)
	registry := &recordingRegistry{}
	disp := &recordingDispatcher{}
	var crons []cronRegistration

	result, err := RegisterCommands(services, RegistrationOptions{
		Config:     runtimeconfig.DefaultConfig(),
		Registry:   registry,
		Dispatcher: disp,
		CronRegistrar: func(cfg command.HandlerConfig, handler any) error {
			crons = append(crons, cronRegistration{config: cfg, handler: handler})
			return nil
		},
		CleanupAuditCron: "@weekly",
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) != 5 {
		t.Fatalf("expected 5 handlers, got %d", len(result.Handlers))
	}
	if len(registry.handlers) != len(result.Handlers) || len(disp.subscriptions) != len(result.Handlers) {
		t.Fatalf("expected every handler to be registered and subscribed")
	}
	if len(crons) != 1 || crons[0].config.Expression != "@weekly" {
		t.Fatalf("expected one cleanup cron registration, got %+v", crons)
	}

	result.Unsubscribe()
	for _, sub := range disp.subscriptions {
		if !sub.unsubscribed {
			t.Fatal("expected every subscription to be torn down")
		}
	}
}

func TestRegisterCommandsSkipsAuditWhenDisabled(t *testing.T) {
	services, _, _ := newServices(t)
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Audit = false

	result, err := RegisterCommands(services, RegistrationOptions{Config: cfg})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	for _, handler := range result.Handlers {
		switch handler.(type) {
		case *auditcmd.ExportAuditHandler, *auditcmd.CleanupAuditHandler:
			t.Fatalf("unexpected audit handler %T", handler)
		}
	}
}

func TestRegisterCommandsWithoutServices(t *testing.T) {
	_, err := RegisterCommands(Services{}, RegistrationOptions{Config: runtimeconfig.DefaultConfig()})
	if !errors.Is(err, ErrNoHandlers) {
		t.Fatalf("expected ErrNoHandlers, got %v", err)
	}
}

func TestGlobalDispatcherRoutesRecordCommands(t *testing.T) {
	services, svc, audit := newServices(t)
	ctx := context.Background()

	result, err := RegisterCommands(Services{Records: services.Records}, RegistrationOptions{
		Config:     runtimeconfig.DefaultConfig(),
		Dispatcher: GlobalDispatcher{},
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	t.Cleanup(result.Unsubscribe)

	row, err := svc.Create(ctx, records.Input{Kind: records.KindPageTitles, Locale: "en", Page: "faq", Title: "FAQ"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := dispatcher.Dispatch(ctx, recordscmd.DeleteRecordCommand{Kind: records.KindPageTitles, RecordID: row.RecordID}); err != nil {
		t.Fatalf("dispatch delete: %v", err)
	}
	if _, err := svc.Translations(ctx, records.KindPageTitles, row.RecordID); !errors.Is(err, records.ErrRecordNotFound) {
		t.Fatalf("expected record to be deleted, got %v", err)
	}
	events := audit.Events()
	if events[len(events)-1].Action != jobs.ActionDeleted {
		t.Fatalf("expected delete audit event, got %+v", events)
	}

	if _, err := (GlobalDispatcher{}).RegisterCommand(struct{}{}); err == nil {
		t.Fatal("expected unsupported handler error")
	}
}

package commands

import (
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/sumeshkk123/cloud-sub008/internal/commands"
	auditcmd "github.com/sumeshkk123/cloud-sub008/internal/commands/audit"
	recordscmd "github.com/sumeshkk123/cloud-sub008/internal/commands/records"
	seedcmd "github.com/sumeshkk123/cloud-sub008/internal/commands/seed"
	"github.com/sumeshkk123/cloud-sub008/internal/jobs"
	"github.com/sumeshkk123/cloud-sub008/internal/markdown"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
	"github.com/sumeshkk123/cloud-sub008/internal/runtimeconfig"
	"github.com/sumeshkk123/cloud-sub008/internal/seed"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

// ErrNoHandlers is returned when no service was supplied to build handlers from.
var ErrNoHandlers = errors.New("commands: no command handlers registered")

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// Services are the domain services command handlers delegate to. Nil
// services skip their handlers.
type Services struct {
	Records records.Service
	Seeder  *seed.Importer
	Audit   jobs.AuditRecorder
}

// RegistrationOptions configures how handlers are registered.
type RegistrationOptions struct {
	Config         runtimeconfig.Config
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// CleanupAuditCron overrides the audit cleanup schedule ("@daily").
	CleanupAuditCron string
}

// RegistrationResult captures the constructed handlers and dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Unsubscribe tears down every dispatcher subscription.
func (r *RegistrationResult) Unsubscribe() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		sub.Unsubscribe()
	}
	r.Subscriptions = nil
}

// RegisterCommands builds the command handlers for services and registers
// them with the optional registry, dispatcher and cron integrations.
func RegisterCommands(services Services, opts RegistrationOptions) (*RegistrationResult, error) {
	result := &RegistrationResult{}
	var errs error

	register := func(handler any) {
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}
		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	loggerFor := func(module string) interfaces.Logger {
		return commands.CommandLogger(opts.LoggerProvider, module)
	}
	cfg := opts.Config

	if services.Records != nil {
		recordsLogger := loggerFor("records")
		register(recordscmd.NewDeleteRecordHandler(services.Records, recordsLogger))
		register(recordscmd.NewSyncSharedFieldsHandler(services.Records, recordsLogger))
	}

	if services.Seeder != nil {
		register(seedcmd.NewImportSeedHandler(services.Seeder, loggerFor("seed"), seedcmd.Config{
			Enabled: func() bool { return cfg.Seed.Enabled },
			Loader: markdown.LoaderConfig{
				DefaultLocale: cfg.DefaultLocale,
				Locales:       cfg.Locales(),
				Pattern:       cfg.Seed.Pattern,
			},
		}))
	}

	if services.Audit != nil && cfg.Features.Audit {
		auditLogger := loggerFor("audit")
		register(auditcmd.NewExportAuditHandler(services.Audit, auditLogger))
		cleanupOpts := []auditcmd.CleanupHandlerOption{}
		if expr := strings.TrimSpace(opts.CleanupAuditCron); expr != "" {
			cleanupOpts = append(cleanupOpts, auditcmd.CleanupWithCronExpression(expr))
		}
		register(auditcmd.NewCleanupAuditHandler(services.Audit, auditLogger, cleanupOpts...))
	}

	if len(result.Handlers) == 0 {
		return result, errors.Join(ErrNoHandlers, errs)
	}
	return result, errs
}

// GlobalDispatcher subscribes handlers to the process-wide go-command
// dispatcher, so commands can be sent with dispatcher.Dispatch.
type GlobalDispatcher struct{}

// RegisterCommand satisfies CommandDispatcher.
func (GlobalDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case *recordscmd.DeleteRecordHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *recordscmd.SyncSharedFieldsHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *seedcmd.ImportSeedHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *auditcmd.ExportAuditHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *auditcmd.CleanupAuditHandler:
		return dispatcher.SubscribeCommand(h), nil
	default:
		return nil, fmt.Errorf("commands: unsupported handler %T", handler)
	}
}

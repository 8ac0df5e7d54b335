package auditcmd

import (
	"context"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/sumeshkk123/cloud-sub008/internal/commands"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

const cleanupAuditMessageType = "cms.audit.cleanup"

// AuditCleaner can drop every recorded event.
type AuditCleaner interface {
	AuditLog
	Clear(ctx context.Context) error
}

// CleanupAuditCommand removes recorded audit events. DryRun only reports the count.
type CleanupAuditCommand struct {
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (CleanupAuditCommand) Type() string { return cleanupAuditMessageType }

// Validate satisfies command.Message.
func (CleanupAuditCommand) Validate() error { return nil }

// CleanupHandlerOption customises the cleanup handler.
type CleanupHandlerOption func(*CleanupAuditHandler)

// CleanupWithCronExpression overrides the cron expression, "@daily" by default.
func CleanupWithCronExpression(expression string) CleanupHandlerOption {
	return func(h *CleanupAuditHandler) {
		if trimmed := strings.TrimSpace(expression); trimmed != "" {
			h.cron.Expression = trimmed
		}
	}
}

// CleanupWithHandlerOptions forwards options to the wrapped command handler.
func CleanupWithHandlerOptions(opts ...commands.HandlerOption[CleanupAuditCommand]) CleanupHandlerOption {
	return func(h *CleanupAuditHandler) {
		h.handlerOpts = append(h.handlerOpts, opts...)
	}
}

// CleanupAuditHandler clears the audit log, on demand or from cron.
type CleanupAuditHandler struct {
	inner       *commands.Handler[CleanupAuditCommand]
	cron        command.HandlerConfig
	handlerOpts []commands.HandlerOption[CleanupAuditCommand]
}

// NewCleanupAuditHandler constructs a handler clearing cleaner.
func NewCleanupAuditHandler(cleaner AuditCleaner, logger interfaces.Logger, opts ...CleanupHandlerOption) *CleanupAuditHandler {
	h := &CleanupAuditHandler{
		cron: command.HandlerConfig{Expression: "@daily"},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}

	base := logging.WithFields(commands.EnsureLogger(logger), map[string]any{"operation": "audit.cleanup"})
	exec := func(ctx context.Context, msg CleanupAuditCommand) error {
		events, err := cleaner.List(ctx)
		if err != nil {
			return err
		}
		if msg.DryRun {
			base.Info("audit.command.cleanup.dry_run", "existing_count", len(events))
			return nil
		}
		if err := cleaner.Clear(ctx); err != nil {
			return err
		}
		base.Info("audit.command.cleanup.removed", "removed", len(events))
		return nil
	}

	handlerOpts := []commands.HandlerOption[CleanupAuditCommand]{
		commands.WithLogger[CleanupAuditCommand](logger),
		commands.WithOperation[CleanupAuditCommand]("audit.cleanup"),
	}
	h.inner = commands.NewHandler(exec, append(handlerOpts, h.handlerOpts...)...)
	return h
}

// Execute satisfies command.Commander[CleanupAuditCommand].
func (h *CleanupAuditHandler) Execute(ctx context.Context, msg CleanupAuditCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CronHandler satisfies command.CronCommand.
func (h *CleanupAuditHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), CleanupAuditCommand{})
	}
}

// CronOptions satisfies command.CronCommand.
func (h *CleanupAuditHandler) CronOptions() command.HandlerConfig {
	return h.cron
}

// CLIHandler satisfies command.CLICommand.
func (h *CleanupAuditHandler) CLIHandler() any { return h }

// CLIOptions describes the CLI metadata for audit cleanup.
func (h *CleanupAuditHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"audit", "cleanup"},
		Group:       "audit",
		Description: "Remove recorded audit events; supports dry-run",
	}
}

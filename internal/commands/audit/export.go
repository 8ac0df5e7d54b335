package auditcmd

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/sumeshkk123/cloud-sub008/internal/commands"
	"github.com/sumeshkk123/cloud-sub008/internal/jobs"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

const exportAuditMessageType = "cms.audit.export"

// AuditLog exposes recorded record mutations.
type AuditLog interface {
	List(ctx context.Context) ([]jobs.AuditEvent, error)
}

// ExportAuditCommand writes recorded audit events to the logger, newest last.
type ExportAuditCommand struct {
	MaxRecords int    `json:"max_records,omitempty"`
	EntityType string `json:"entity_type,omitempty"`
}

// Type implements command.Message.
func (ExportAuditCommand) Type() string { return exportAuditMessageType }

// Validate ensures the limit is not negative.
func (m ExportAuditCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.MaxRecords, validation.Min(0).ErrorObject(
			validation.NewError("cms.audit.export.max_records_invalid", "max_records must be zero or positive"),
		)),
	)
}

// ExportAuditHandler logs audit events through the command logger.
type ExportAuditHandler struct {
	inner *commands.Handler[ExportAuditCommand]
}

// NewExportAuditHandler constructs a handler reading from log.
func NewExportAuditHandler(log AuditLog, logger interfaces.Logger, opts ...commands.HandlerOption[ExportAuditCommand]) *ExportAuditHandler {
	base := logging.WithFields(commands.EnsureLogger(logger), map[string]any{"operation": "audit.export"})
	exec := func(ctx context.Context, msg ExportAuditCommand) error {
		events, err := log.List(ctx)
		if err != nil {
			return err
		}

		exported := 0
		for _, event := range events {
			if msg.EntityType != "" && event.EntityType != msg.EntityType {
				continue
			}
			if msg.MaxRecords > 0 && exported >= msg.MaxRecords {
				break
			}
			logging.WithFields(base, map[string]any{
				"index":       exported,
				"entity_type": event.EntityType,
				"entity_id":   event.EntityID,
				"locale":      event.Locale,
				"action":      event.Action,
				"occurred_at": event.OccurredAt.Format(time.RFC3339),
			}).Info("audit.command.export.event", "metadata", event.Metadata)
			exported++
		}

		base.Info("audit.command.export.completed", "exported", exported, "total", len(events))
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportAuditCommand]{
		commands.WithLogger[ExportAuditCommand](logger),
		commands.WithOperation[ExportAuditCommand]("audit.export"),
	}
	return &ExportAuditHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ExportAuditCommand].
func (h *ExportAuditHandler) Execute(ctx context.Context, msg ExportAuditCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler satisfies command.CLICommand.
func (h *ExportAuditHandler) CLIHandler() any { return h }

// CLIOptions describes the CLI metadata for audit export.
func (h *ExportAuditHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"audit", "export"},
		Group:       "audit",
		Description: "Log recorded record mutations",
	}
}

package recordscmd

import (
	"context"

	command "github.com/goliatone/go-command"
	"github.com/sumeshkk123/cloud-sub008/internal/commands"
	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

var (
	_ command.Commander[DeleteRecordCommand]     = (*DeleteRecordHandler)(nil)
	_ command.Commander[SyncSharedFieldsCommand] = (*SyncSharedFieldsHandler)(nil)
)

// DeleteRecordHandler deletes localized rows through the records service.
type DeleteRecordHandler struct {
	inner *commands.Handler[DeleteRecordCommand]
}

// NewDeleteRecordHandler constructs a handler bound to service.
func NewDeleteRecordHandler(service records.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteRecordCommand]) *DeleteRecordHandler {
	exec := func(ctx context.Context, msg DeleteRecordCommand) error {
		return service.Delete(ctx, msg.Kind, msg.RecordID, msg.Locale)
	}

	handlerOpts := []commands.HandlerOption[DeleteRecordCommand]{
		commands.WithLogger[DeleteRecordCommand](logger),
		commands.WithOperation[DeleteRecordCommand]("records.delete"),
		commands.WithMessageFields(func(msg DeleteRecordCommand) map[string]any {
			fields := map[string]any{
				"record_kind": string(msg.Kind),
				"record_id":   msg.RecordID.String(),
			}
			if msg.Locale != "" {
				fields["locale"] = msg.Locale
			}
			return fields
		}),
	}
	return &DeleteRecordHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[DeleteRecordCommand].
func (h *DeleteRecordHandler) Execute(ctx context.Context, msg DeleteRecordCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler exposes the handler to CLI integrations.
func (h *DeleteRecordHandler) CLIHandler() any { return h }

// CLIOptions describes the CLI metadata for record deletion.
func (h *DeleteRecordHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"records", "delete"},
		Group:       "records",
		Description: "Delete a localized record or one of its locale rows",
	}
}

// SyncSharedFieldsHandler repairs shared-field drift across locale rows.
type SyncSharedFieldsHandler struct {
	inner *commands.Handler[SyncSharedFieldsCommand]
}

// NewSyncSharedFieldsHandler constructs a handler bound to service.
func NewSyncSharedFieldsHandler(service records.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SyncSharedFieldsCommand]) *SyncSharedFieldsHandler {
	base := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg SyncSharedFieldsCommand) error {
		synced, err := service.SyncShared(ctx, msg.Kind, msg.RecordID, msg.SourceLocale)
		if err != nil {
			return err
		}
		logging.WithRecordContext(base, string(msg.Kind), msg.RecordID.String(), msg.SourceLocale).
			Info("records.command.sync_shared.completed", "synced_rows", synced)
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncSharedFieldsCommand]{
		commands.WithLogger[SyncSharedFieldsCommand](base),
		commands.WithOperation[SyncSharedFieldsCommand]("records.sync_shared"),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncSharedFieldsCommand](nil)),
	}
	return &SyncSharedFieldsHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[SyncSharedFieldsCommand].
func (h *SyncSharedFieldsHandler) Execute(ctx context.Context, msg SyncSharedFieldsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler exposes the handler to CLI integrations.
func (h *SyncSharedFieldsHandler) CLIHandler() any { return h }

// CLIOptions describes the CLI metadata for shared-field sync.
func (h *SyncSharedFieldsHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"records", "sync-shared"},
		Group:       "records",
		Description: "Copy shared fields from one locale row to its siblings",
	}
}

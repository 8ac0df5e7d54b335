package recordscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/sumeshkk123/cloud-sub008/internal/records"
)

const (
	deleteRecordMessageType = "cms.records.delete"
	syncSharedMessageType   = "cms.records.sync_shared"
)

// DeleteRecordCommand removes one locale row, or every row of the record
// when Locale is blank.
type DeleteRecordCommand struct {
	Kind     records.Kind `json:"kind"`
	RecordID uuid.UUID    `json:"record_id"`
	Locale   string       `json:"locale,omitempty"`
}

// Type implements command.Message.
func (DeleteRecordCommand) Type() string { return deleteRecordMessageType }

// Validate ensures kind and record id are present.
func (m DeleteRecordCommand) Validate() error {
	return validateTarget(m.Kind, m.RecordID, "cms.records.delete")
}

// SyncSharedFieldsCommand copies the shared fields of SourceLocale (default
// locale when blank) onto every other row of the record.
type SyncSharedFieldsCommand struct {
	Kind         records.Kind `json:"kind"`
	RecordID     uuid.UUID    `json:"record_id"`
	SourceLocale string       `json:"source_locale,omitempty"`
}

// Type implements command.Message.
func (SyncSharedFieldsCommand) Type() string { return syncSharedMessageType }

// Validate ensures the target record carries shared fields.
func (m SyncSharedFieldsCommand) Validate() error {
	if err := validateTarget(m.Kind, m.RecordID, "cms.records.sync_shared"); err != nil {
		return err
	}
	if len(m.Kind.SharedFields()) == 0 {
		return validation.Errors{
			"kind": validation.NewError("cms.records.sync_shared.kind_unshared", "kind has no shared fields"),
		}
	}
	return nil
}

func validateTarget(kind records.Kind, recordID uuid.UUID, prefix string) error {
	errs := validation.Errors{}
	if strings.TrimSpace(string(kind)) == "" {
		errs["kind"] = validation.NewError(prefix+".kind_required", "kind is required")
	} else if !kind.Valid() {
		errs["kind"] = validation.NewError(prefix+".kind_unknown", "kind is not supported")
	}
	if recordID == uuid.Nil {
		errs["record_id"] = validation.NewError(prefix+".record_id_required", "record_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

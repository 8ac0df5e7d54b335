package validation

import (
	"errors"
	"strings"
	"testing"
)

const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "order": {"type": "integer"}
  },
  "additionalProperties": false
}`

func TestCompileRejectsInvalidSchema(t *testing.T) {
	_, err := Compile("broken.json", []byte(`{"type": 12}`))
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidateJSONCollectsIssues(t *testing.T) {
	schema := MustCompile("record.json", []byte(recordSchema))

	if err := schema.ValidateJSON([]byte(`{"title":"Home","order":2}`)); err != nil {
		t.Fatalf("expected valid document, got %v", err)
	}

	err := schema.ValidateJSON([]byte(`{"order":"first","extra":true}`))
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := Issues(err)
	if len(issues) < 2 {
		t.Fatalf("expected multiple issues, got %+v", issues)
	}
	if !strings.Contains(err.Error(), "#") {
		t.Fatalf("expected locations in message, got %q", err.Error())
	}
}

func TestValidateJSONRejectsMalformedInput(t *testing.T) {
	schema := MustCompile("record.json", []byte(recordSchema))
	err := schema.ValidateJSON([]byte(`{"title":`))
	var payloadErr *PayloadValidationError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected PayloadValidationError, got %T", err)
	}
	if payloadErr.Schema != "record.json" {
		t.Fatalf("expected schema name on error, got %q", payloadErr.Schema)
	}
}

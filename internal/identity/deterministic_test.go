package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsStable(t *testing.T) {
	first := UUID("cms:features:sync")
	second := UUID("  cms:features:sync ")
	if first == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected trimmed keys to derive the same uuid, got %s and %s", first, second)
	}
	if UUID("   ") != uuid.Nil {
		t.Fatalf("expected blank key to map to uuid.Nil")
	}
}

func TestPageRecordUUIDSeparatesKinds(t *testing.T) {
	titles := PageRecordUUID("page-titles", "pricing")
	meta := PageRecordUUID("meta-details", "pricing")
	if titles == meta {
		t.Fatalf("expected kinds to derive distinct ids")
	}
	if PageRecordUUID("Page-Titles", "Pricing") != titles {
		t.Fatalf("expected case-insensitive derivation")
	}
}

func TestRowUUIDPerLocale(t *testing.T) {
	record := PageRecordUUID("page-titles", "home")
	if RowUUID(record, "en") == RowUUID(record, "es") {
		t.Fatalf("expected locale rows to have distinct ids")
	}
	if RowUUID(record, "EN") != RowUUID(record, "en") {
		t.Fatalf("expected locale to be normalised")
	}
}

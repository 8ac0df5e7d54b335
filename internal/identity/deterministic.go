package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by record kind to prevent cross-kind collisions.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PageRecordUUID is the record id of a page-keyed record (page titles, meta details).
// The page is expected to be slug-normalised already.
func PageRecordUUID(kind, page string) uuid.UUID {
	return UUID("cms:" + strings.ToLower(strings.TrimSpace(kind)) + ":" + strings.ToLower(strings.TrimSpace(page)))
}

// RowUUID identifies one locale row of a record.
func RowUUID(recordID uuid.UUID, locale string) uuid.UUID {
	return UUID("cms:row:" + recordID.String() + ":" + strings.ToLower(strings.TrimSpace(locale)))
}

package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
)

var memoryDBSeq atomic.Int64

// NewSQLiteMemoryDB opens a private in-memory sqlite database. Each call gets
// its own database name so tables never leak between tests.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("file:cms_test_%d?mode=memory&cache=shared&_fk=1", memoryDBSeq.Add(1))
	return sql.Open("sqlite3", name)
}

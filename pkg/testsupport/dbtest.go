package testsupport

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// MemoryDSN returns a shared-cache in-memory sqlite DSN unique to name.
func MemoryDSN(name string) string {
	name = strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(name)
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

// NewSQLiteMemoryDB opens an in-memory sqlite database wrapped in bun. A
// single connection keeps the database alive for the lifetime of the handle.
func NewSQLiteMemoryDB(name string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", MemoryDSN(name))
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

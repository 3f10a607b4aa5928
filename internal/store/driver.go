package store

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
)

// driverName is the go-sqlite3 driver with the casefold() SQL function.
const driverName = "sqlite3_invoicebook"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("casefold", casefold, true)
		},
	})
}

// casefold folds s for caseless matching. SQLite's own lower() only
// handles ASCII, which would miss names such as "Ölund".
func casefold(s string) string {
	return cases.Fold().String(s)
}

// Package db holds small database/sql helpers shared by the library store.
package db

import (
	"database/sql"
)

// WithTx executes fn within a transaction.
// It handles Begin, Rollback on error, and Commit on success.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// NullInt64 builds a sql.NullInt64 that is NULL when n is 0, matching the
// record convention that 0 means "not collected".
func NullInt64(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}

// NullString builds a sql.NullString that is NULL for the empty string.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Int64Value returns the int64 value or 0 if NULL.
func Int64Value(n sql.NullInt64) int64 {
	if !n.Valid {
		return 0
	}
	return n.Int64
}

// StringValue returns the string value or "" if NULL.
func StringValue(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

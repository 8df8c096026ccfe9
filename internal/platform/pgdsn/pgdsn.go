// Package pgdsn reads and adjusts postgres connection strings in both the
// URL form (postgres://...) and the keyword form (host=... dbname=...).
package pgdsn

import (
	"net/url"
	"strings"
)

const binaryResultParam = "disable_prepared_binary_result"

// DisableBinaryResults sets disable_prepared_binary_result=yes unless the
// connection string already carries the parameter. Required behind
// pgbouncer in transaction pooling mode.
func DisableBinaryResults(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return dsn
	}

	if !isURL(dsn) {
		for _, field := range strings.Fields(dsn) {
			if strings.HasPrefix(field, binaryResultParam+"=") {
				return dsn
			}
		}
		return dsn + " " + binaryResultParam + "=yes"
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	q := u.Query()
	if q.Has(binaryResultParam) {
		return dsn
	}
	q.Set(binaryResultParam, "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// Database returns the database name, or "" when the string names none.
func Database(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if isURL(dsn) {
		if u, err := url.Parse(dsn); err == nil {
			return strings.TrimSpace(strings.TrimPrefix(u.Path, "/"))
		}
		return ""
	}

	for _, field := range strings.Fields(dsn) {
		if value, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

func isURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

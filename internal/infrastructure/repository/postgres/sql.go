package postgres

import (
	"database/sql"
	stderrors "errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

var errMissingReference = crerr.New("referenced row does not exist")

func isNotFound(err error) bool {
	return stderrors.Is(err, sql.ErrNoRows)
}

// translateWriteErr maps constraint violations to domain errors. Unique
// violations on uniqueConstraint become uniqueErr.
func translateWriteErr(err error, uniqueConstraint string, uniqueErr error) error {
	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case pgUniqueViolation:
		if uniqueErr != nil && pqErr.Constraint == uniqueConstraint {
			return crerr.WithSecondaryError(crerr.Wrapf(uniqueErr, "constraint %s", pqErr.Constraint), err)
		}
	case pgForeignKeyViolation:
		return crerr.WithSecondaryError(crerr.Wrapf(errMissingReference, "constraint %s", pqErr.Constraint), err)
	}
	return err
}

// translateRangeErr maps numeric overflow and CHECK violations to rangeErr
// and otherwise defers to translateWriteErr.
func translateRangeErr(err error, rangeErr error, uniqueConstraint string, uniqueErr error) error {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgNumericOutOfRange, pgCheckViolation:
			return crerr.WithSecondaryError(crerr.Wrapf(rangeErr, "code %s", pqErr.Code), err)
		}
	}
	return translateWriteErr(err, uniqueConstraint, uniqueErr)
}

func int64SliceToAny(items []int64) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

func prefixColumns(prefix string, cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		out = append(out, prefix+"."+col)
	}
	return out
}

package memory

import crerr "github.com/cockroachdb/errors"

func errRowNotFound(table string, id int64) error {
	return crerr.Newf("%s id=%d does not exist", table, id)
}

// Package querybuilder renders the small set of postgres statements the
// repositories need, numbering bind parameters as $1, $2, ...
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

var (
	errNoTable   = errors.New("table is required")
	errNoColumns = errors.New("columns are required")
	errNoWhere   = errors.New("where conditions are required")
)

// stmt accumulates SQL text and its bind arguments.
type stmt struct {
	sql  strings.Builder
	args []any
}

func (s *stmt) write(parts ...string) {
	for _, p := range parts {
		s.sql.WriteString(p)
	}
}

// bind appends v and writes its placeholder.
func (s *stmt) bind(v any) {
	s.args = append(s.args, v)
	s.sql.WriteString("$" + strconv.Itoa(len(s.args)))
}

func (s *stmt) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			s.write(" WHERE ")
		} else {
			s.write(" AND ")
		}
		c.render(s)
	}
}

func (s *stmt) list(keyword string, items []string) {
	if len(items) > 0 {
		s.write(" ", keyword, " ", strings.Join(items, ", "))
	}
}

func (s *stmt) suffix(raw string) {
	if raw = strings.TrimSpace(raw); raw != "" {
		s.write(" ", raw)
	}
}

func (s *stmt) done() (string, []any, error) {
	return s.sql.String(), s.args, nil
}

// Condition is one AND-ed predicate of a WHERE clause.
type Condition interface {
	render(s *stmt)
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition { return eq{column: column, value: value} }

func (c eq) render(s *stmt) {
	s.write(c.column, " = ")
	s.bind(c.value)
}

type in struct {
	column string
	values []any
}

// In matches any of values. An empty list matches nothing.
func In(column string, values []any) Condition { return in{column: column, values: values} }

func (c in) render(s *stmt) {
	if len(c.values) == 0 {
		s.write("FALSE")
		return
	}
	s.write(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			s.write(", ")
		}
		s.bind(v)
	}
	s.write(")")
}

type SelectBuilder struct {
	columns []string
	table   string
	conds   []Condition
	groupBy []string
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder { b.table = table; return b }

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.conds = append(b.conds, conds...)
	return b
}

func (b *SelectBuilder) GroupBy(exprs ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, exprs...)
	return b
}

func (b *SelectBuilder) OrderBy(exprs ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, exprs...)
	return b
}

// Limit of zero or less means no LIMIT clause.
func (b *SelectBuilder) Limit(n int) *SelectBuilder { b.limit = n; return b }

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	if len(b.columns) == 0 {
		return "", nil, errNoColumns
	}

	var s stmt
	s.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	s.where(b.conds)
	s.list("GROUP BY", b.groupBy)
	s.list("ORDER BY", b.orderBy)
	if b.limit > 0 {
		s.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	return s.done()
}

// InsertBuilder writes a single-row INSERT.
type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	suffix  string
}

func InsertInto(table string) *InsertBuilder { return &InsertBuilder{table: table} }

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder { b.columns = columns; return b }

func (b *InsertBuilder) Values(values ...any) *InsertBuilder { b.values = values; return b }

// Suffix is appended verbatim, typically a RETURNING clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder { b.suffix = sql; return b }

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	if len(b.columns) == 0 {
		return "", nil, errNoColumns
	}
	if len(b.values) != len(b.columns) {
		return "", nil, errors.New("insert needs one value per column, got " +
			strconv.Itoa(len(b.values)) + " for " + strconv.Itoa(len(b.columns)))
	}

	var s stmt
	s.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES (")
	for i, v := range b.values {
		if i > 0 {
			s.write(", ")
		}
		s.bind(v)
	}
	s.write(")")
	s.suffix(b.suffix)
	return s.done()
}

type assignment struct {
	column string
	value  any
	raw    string
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	conds  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder { return &UpdateBuilder{table: table} }

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetRaw assigns an SQL expression such as NOW() without binding it.
func (b *UpdateBuilder) SetRaw(column, expr string) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, raw: expr})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.conds = append(b.conds, conds...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder { b.suffix = sql; return b }

// ToSQL refuses an UPDATE without a WHERE clause.
func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	if len(b.sets) == 0 {
		return "", nil, errNoColumns
	}
	if len(b.conds) == 0 {
		return "", nil, errNoWhere
	}

	var s stmt
	s.write("UPDATE ", b.table, " SET ")
	for i, a := range b.sets {
		if i > 0 {
			s.write(", ")
		}
		s.write(a.column, " = ")
		if a.raw != "" {
			s.write(a.raw)
		} else {
			s.bind(a.value)
		}
	}
	s.where(b.conds)
	s.suffix(b.suffix)
	return s.done()
}

type DeleteBuilder struct {
	table  string
	conds  []Condition
	suffix string
}

func DeleteFrom(table string) *DeleteBuilder { return &DeleteBuilder{table: table} }

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.conds = append(b.conds, conds...)
	return b
}

func (b *DeleteBuilder) Suffix(sql string) *DeleteBuilder { b.suffix = sql; return b }

// ToSQL refuses a DELETE without a WHERE clause.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	if len(b.conds) == 0 {
		return "", nil, errNoWhere
	}

	var s stmt
	s.write("DELETE FROM ", b.table)
	s.where(b.conds)
	s.suffix(b.suffix)
	return s.done()
}

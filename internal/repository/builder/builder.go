package builder

import (
	"fmt"
	"strings"
)

// SQLBuilder helps construct PostgreSQL queries dynamically. Conditions
// use "?" placeholders which Build rewrites to $1, $2, ... in order.
type SQLBuilder struct {
	table    string
	columns  []string
	rows     [][]interface{}
	where    []string
	args     []interface{}
	orderBy  []string
	limit    int
	offset   int
	conflict *onConflict
	isInsert bool
	isDelete bool
	isSelect bool
}

type onConflict struct {
	key     string
	updates []string
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.isSelect = true
	b.columns = cols
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.isInsert = true
	b.table = table
	b.columns = cols
	return b
}

// Delete specifies the table to delete from.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.isDelete = true
	b.table = table
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Values adds one row for insertion. Call it once per row.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.rows = append(b.rows, vals)
	return b
}

// OnConflictUpdate turns an insert into an upsert keyed on key, overwriting
// cols with the incoming values.
func (b *SQLBuilder) OnConflictUpdate(key string, cols ...string) *SQLBuilder {
	b.conflict = &onConflict{key: key, updates: cols}
	return b
}

// Where adds a condition to the query. Conditions are joined with AND.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.args = append(b.args, args...)
	return b
}

// OrderBy adds an ORDER BY clause.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Limit adds a LIMIT clause.
func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

// Offset adds an OFFSET clause.
func (b *SQLBuilder) Offset(offset int) *SQLBuilder {
	b.offset = offset
	return b
}

// Build constructs the final SQL string and arguments.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}
	argIndex := 1

	switch {
	case b.isInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES ")
		tuples := make([]string, len(b.rows))
		for i, row := range b.rows {
			placeholders := make([]string, len(row))
			for j := range row {
				placeholders[j] = fmt.Sprintf("$%d", argIndex)
				argIndex++
			}
			tuples[i] = "(" + strings.Join(placeholders, ", ") + ")"
			args = append(args, row...)
		}
		sb.WriteString(strings.Join(tuples, ", "))
		if b.conflict != nil {
			sb.WriteString(" ON CONFLICT (")
			sb.WriteString(b.conflict.key)
			sb.WriteString(")")
			if len(b.conflict.updates) == 0 {
				sb.WriteString(" DO NOTHING")
			} else {
				sets := make([]string, len(b.conflict.updates))
				for i, col := range b.conflict.updates {
					sets[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
				}
				sb.WriteString(" DO UPDATE SET ")
				sb.WriteString(strings.Join(sets, ", "))
			}
		}
		return sb.String(), args
	case b.isSelect:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
	case b.isDelete:
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
	}

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		clause := strings.Join(b.where, " AND ")
		parts := strings.Split(clause, "?")
		for i, part := range parts {
			sb.WriteString(part)
			if i < len(parts)-1 {
				sb.WriteString(fmt.Sprintf("$%d", argIndex))
				argIndex++
			}
		}
		args = append(args, b.args...)
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", b.limit))
	}

	if b.offset > 0 {
		sb.WriteString(fmt.Sprintf(" OFFSET %d", b.offset))
	}

	return sb.String(), args
}

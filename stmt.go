package porm

import (
	"strconv"
	"strings"
)

// Statement text is built by plain substitution. Values are wrapped in
// single quotes without escaping; nulls are emitted bare. Engines with
// dynamic typing (sqlite and kin) coerce the quoted literals back to
// their column types.

func selectStmt(table, where string) string {
	if len(where) != 0 {
		return "select * from " + table + " where " + where
	}

	return "select * from " + table
}

func updateStmt(table string, fields, values []string, id int64) string {
	exprs := make([]string, len(fields))
	for i, f := range fields {
		exprs[i] = f + "=" + values[i]
	}

	return "update " + table + " set " + strings.Join(exprs, ",") +
		" where id=" + strconv.FormatInt(id, 10)
}

func insertStmt(table string, fields, values []string) string {
	return "insert into " + table + " (" + strings.Join(fields, ",") +
		") values (" + strings.Join(values, ",") + ")"
}

// literal renders a flattened field value as statement text.
func literal(v Value) string {
	if v.IsNull() {
		return "null"
	}

	return "'" + v.raw() + "'"
}

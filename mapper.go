package porm

import (
	"strings"

	"github.com/pkg/errors"
)

// MapRows converts the rows of an already-executed cursor into Records,
// one per row, preserving row order. Any column named <ref>_id triggers
// a lookup
//
//	select * from <ref> where id = <value>
//
// and the field is set to the first record that lookup returns, or to
// an explicit null when no row matches. A column named exactly id, or
// any name not ending in _id, passes through unchanged.
func (db *DB) MapRows(table string, cur Cursor, opts ...QueryOption) ([]*Record, error) {
	return db.mapRows(table, cur, db.queryConfig(opts), 0)
}

func (db *DB) mapRows(table string, cur Cursor, q *queryConfig, depth int) ([]*Record, error) {
	cols := cur.Columns()

	rows, err := cur.FetchAll()
	if err != nil {
		return nil, errors.Wrapf(err, "porm: fetch rows of table %s", table)
	}

	recs := make([]*Record, 0, len(rows))
	for _, row := range rows {
		if len(row) != len(cols) {
			return nil, errors.Wrapf(ErrRowWidthMismatch,
				"table %s: %d columns, %d values", table, len(cols), len(row))
		}

		rec := NewRecord()
		for i, name := range cols {
			val := row[i]

			if q.resolve && isForeignKey(name) {
				resolved, err := db.resolve(name, val, q, depth)
				if err != nil {
					return nil, err
				}

				val = resolved
			}

			rec.Set(name, val)
		}

		recs = append(recs, rec)
	}

	return recs, nil
}

func (db *DB) resolve(col string, raw Value, q *queryConfig, depth int) (Value, error) {
	ref := strings.TrimSuffix(col, "_id")

	if q.maxDepth > 0 && depth >= q.maxDepth {
		return Value{}, errors.Wrapf(ErrMaxDepthExceeded, "resolving %s at depth %d", col, depth+1)
	}

	matches, err := db.query(ref, "id = "+raw.raw(), q, depth+1)
	if err != nil {
		return Value{}, err
	}

	if len(matches) == 0 {
		return NullValue(), nil
	}

	return RecordValue(matches[0]), nil
}

// isForeignKey reports whether a column name follows the <table>_id
// convention. The name must be longer than the suffix itself, so a
// column literally named id, or _id, never counts.
func isForeignKey(name string) bool {
	return len(name) > 3 && strings.HasSuffix(name, "_id")
}

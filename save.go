package porm

import "github.com/pkg/errors"

// Save persists a record to the given table: an update when the record
// already exists, an insert otherwise.
//
// A record is new when its id is 0. A record carrying a nonzero id is
// probed for: when no row with that id exists, the record is inserted
// despite the caller-asserted id. Fields holding a resolved foreign key
// record are collapsed back to that record's id before the statement is
// built. Every save executes exactly one statement (plus the optional
// existence probe) and commits immediately.
func (db *DB) Save(table string, rec *Record) error {
	exists := false
	if id := rec.ID(); id != 0 {
		var err error
		if exists, err = db.exists(table, id); err != nil {
			return err
		}
	}

	fields := rec.Fields()
	values := make([]string, len(fields))
	for i, f := range fields {
		v, _ := rec.Get(f)

		// re-collapse resolved references to raw foreign keys
		if nested, ok := v.Record(); ok {
			v = IntValue(nested.ID())
		}

		values[i] = literal(v)
	}

	var stmt string
	if exists {
		stmt = updateStmt(table, fields, values, rec.ID())
	} else {
		stmt = insertStmt(table, fields, values)
	}

	db.lg.Debugf("exec %s", stmt)
	if _, err := db.ex.Exec(stmt); err != nil {
		db.lg.Errorf("save into %s: %v", table, err)
		return errors.Wrapf(err, "porm: save into table %s", table)
	}

	if err := db.ex.Commit(); err != nil {
		return errors.Wrapf(err, "porm: commit save into table %s", table)
	}

	return nil
}

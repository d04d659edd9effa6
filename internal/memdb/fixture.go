package memdb

import (
	"github.com/pauldmccarthy/porm"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var ErrBadFixture = errors.New("malformed fixture")

// LoadJSON seeds the database from a fixture document of the form
//
//	{"people": [{"id": 5, "name": "Ann", "department_id": 1}, ...], ...}
//
// Tables are created when missing, columns taken from the row objects
// in first-seen order. Rows without an id, or with id 0, get the next
// id assigned, like any other insert.
func (db *DB) LoadJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.Wrap(ErrBadFixture, "fixture is not valid json")
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return errors.Wrap(ErrBadFixture, "fixture root must be an object of tables")
	}

	var loadErr error

	doc.ForEach(func(name, rows gjson.Result) bool {
		if !rows.IsArray() {
			loadErr = errors.Wrapf(ErrBadFixture, "table %s must be an array of rows", name.String())
			return false
		}

		if loadErr = db.loadTable(name.String(), rows); loadErr != nil {
			return false
		}

		return true
	})

	return loadErr
}

func (db *DB) loadTable(name string, rows gjson.Result) error {
	t, ok := db.tables[name]
	if !ok {
		if err := db.CreateTable(name); err != nil {
			return err
		}

		t = db.tables[name]
	}

	var loadErr error

	rows.ForEach(func(_, obj gjson.Result) bool {
		if !obj.IsObject() {
			loadErr = errors.Wrapf(ErrBadFixture, "row of table %s must be an object", name)
			return false
		}

		cells := make(map[string]porm.Value)

		obj.ForEach(func(col, raw gjson.Result) bool {
			c := col.String()
			if !t.hasColumn(c) {
				t.cols = append(t.cols, c)
			}

			cells[c] = fixtureValue(raw)
			return true
		})

		loadErr = t.insert(cells)
		return loadErr == nil
	})

	return loadErr
}

func fixtureValue(r gjson.Result) porm.Value {
	switch r.Type {
	case gjson.Number:
		if isIntegerLiteral(r.Raw) {
			return porm.IntValue(r.Int())
		}
		return porm.FloatValue(r.Float())
	case gjson.String:
		return porm.TextValue(r.String())
	case gjson.True:
		return porm.IntValue(1)
	case gjson.False:
		return porm.IntValue(0)
	default:
		return porm.NullValue()
	}
}

func isIntegerLiteral(raw string) bool {
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '.', 'e', 'E':
			return false
		}
	}

	return true
}

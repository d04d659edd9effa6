// Package memdb is a small in-memory storage engine speaking the
// statement forms porm emits: select with an optional filter, insert,
// update-by-id. It follows the schema convention porm requires of its
// host: every table has an integer id primary key, assigned by the
// engine on insert and always > 0. Like sqlite, the engine is
// dynamically typed and coerces quoted numeric literals back to
// numbers on write.
package memdb

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/pauldmccarthy/porm"
	"github.com/pkg/errors"
	"github.com/tidwall/btree"
)

var ErrUnknownTable = errors.New("no such table")
var ErrUnknownColumn = errors.New("no such column")
var ErrTableExists = errors.New("table already exists")
var ErrDuplicateID = errors.New("id already taken")
var ErrCursorConsumed = errors.New("cursor already consumed")

type DB struct {
	tables  map[string]*table
	commits int
}

type table struct {
	name   string
	cols   []string
	rows   *btree.BTree
	nextID int64
}

type row struct {
	id    int64
	cells map[string]porm.Value
}

func byRowID(a, b interface{}) bool {
	return a.(*row).id < b.(*row).id
}

func New() *DB {
	return &DB{tables: make(map[string]*table)}
}

// CreateTable declares a table with the given columns. An id column is
// always present, first, whether listed or not.
func (db *DB) CreateTable(name string, cols ...string) error {
	if _, ok := db.tables[name]; ok {
		return errors.Wrapf(ErrTableExists, "table %s", name)
	}

	t := &table{
		name: name,
		cols: []string{"id"},
		rows: btree.NewNonConcurrent(byRowID),
	}

	for _, c := range cols {
		if c != "id" {
			t.cols = append(t.cols, c)
		}
	}

	db.tables[name] = t
	return nil
}

// Exec parses and runs one statement. It implements porm.Executor
// together with Commit.
func (db *DB) Exec(stmt string) (porm.Cursor, error) {
	s, err := parse(stmt)
	if err != nil {
		return nil, err
	}

	switch s := s.(type) {
	case *selectStmt:
		return db.execSelect(s)
	case *insertStmt:
		return db.execInsert(s)
	case *updateStmt:
		return db.execUpdate(s)
	default:
		return nil, errors.Wrapf(ErrBadStatement, "unsupported statement %q", stmt)
	}
}

func (db *DB) Commit() error {
	db.commits++
	return nil
}

// Commits reports how many times Commit has been called.
func (db *DB) Commits() int {
	return db.commits
}

func (db *DB) Count(name string) (int, error) {
	t, ok := db.tables[name]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownTable, "table %s", name)
	}

	return t.rows.Len(), nil
}

func (db *DB) execSelect(s *selectStmt) (porm.Cursor, error) {
	t, ok := db.tables[s.table]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTable, "table %s", s.table)
	}

	cur := &cursor{cols: t.cols}
	var evalErr error

	t.rows.Ascend(nil, func(i interface{}) bool {
		r := i.(*row)

		if s.filter != nil {
			ok, err := s.filter.match(r, t)
			if err != nil {
				evalErr = err
				return false
			}

			if !ok {
				return true
			}
		}

		cur.rows = append(cur.rows, r.project(t.cols))
		return true
	})

	if evalErr != nil {
		return nil, evalErr
	}

	return cur, nil
}

func (db *DB) execInsert(s *insertStmt) (porm.Cursor, error) {
	t, ok := db.tables[s.table]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTable, "table %s", s.table)
	}

	cells := make(map[string]porm.Value, len(s.fields))
	for i, f := range s.fields {
		if !t.hasColumn(f) {
			return nil, errors.Wrapf(ErrUnknownColumn, "table %s has no column %s", s.table, f)
		}

		cells[f] = s.values[i]
	}

	if err := t.insert(cells); err != nil {
		return nil, err
	}

	return &cursor{}, nil
}

func (db *DB) execUpdate(s *updateStmt) (porm.Cursor, error) {
	t, ok := db.tables[s.table]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTable, "table %s", s.table)
	}

	for _, f := range s.fields {
		if !t.hasColumn(f) {
			return nil, errors.Wrapf(ErrUnknownColumn, "table %s has no column %s", s.table, f)
		}
	}

	found := t.rows.Get(&row{id: s.id})
	if found == nil {
		// no row with that id; zero rows affected
		return &cursor{}, nil
	}

	r := found.(*row)
	newID := r.id
	for i, f := range s.fields {
		if f == "id" {
			if n, ok := s.values[i].Int(); ok {
				newID = n
			}
			continue
		}

		r.cells[f] = s.values[i]
	}

	if newID != r.id {
		if t.rows.Get(&row{id: newID}) != nil {
			return nil, errors.Wrapf(ErrDuplicateID, "table %s id %d", s.table, newID)
		}

		t.rows.Delete(r)
		r.id = newID
		r.cells["id"] = porm.IntValue(newID)
		t.rows.Set(r)
		if newID > t.nextID {
			t.nextID = newID
		}
	}

	return &cursor{}, nil
}

// insert stores one row, assigning the next id when the given cells
// carry no id, a null id, or an explicit 0.
func (t *table) insert(cells map[string]porm.Value) error {
	id, _ := cells["id"].Int()

	if id == 0 {
		t.nextID++
		id = t.nextID
	} else {
		if t.rows.Get(&row{id: id}) != nil {
			return errors.Wrapf(ErrDuplicateID, "table %s id %d", t.name, id)
		}

		if id > t.nextID {
			t.nextID = id
		}
	}

	cp := make(map[string]porm.Value, len(cells)+1)
	for k, v := range cells {
		cp[k] = v
	}
	cp["id"] = porm.IntValue(id)

	t.rows.Set(&row{id: id, cells: cp})
	return nil
}

func (t *table) hasColumn(name string) bool {
	for _, c := range t.cols {
		if c == name {
			return true
		}
	}

	return false
}

// project renders the row as one value per column, null where the row
// has no cell for a column.
func (r *row) project(cols []string) []porm.Value {
	vals := make([]porm.Value, len(cols))
	for i, c := range cols {
		v, ok := r.cells[c]
		if !ok {
			v = porm.NullValue()
		}

		vals[i] = v
	}

	return vals
}

type cursor struct {
	cols     []string
	rows     [][]porm.Value
	consumed bool
}

func (c *cursor) Columns() []string {
	return c.cols
}

// FetchAll hands over the full row set. Cursors are single use, like
// the short-lived cursors porm itself assumes.
func (c *cursor) FetchAll() ([][]porm.Value, error) {
	if c.consumed {
		return nil, ErrCursorConsumed
	}

	c.consumed = true
	return c.rows, nil
}

// dump serializes the whole database deterministically, for checksums.
func (db *DB) dump(buf *bytes.Buffer) {
	names := make([]string, 0, len(db.tables))
	for n := range db.tables {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		t := db.tables[n]
		buf.WriteString(n)
		buf.WriteByte('\n')

		t.rows.Ascend(nil, func(i interface{}) bool {
			r := i.(*row)
			buf.WriteString(strconv.FormatInt(r.id, 10))
			for _, c := range t.cols {
				buf.WriteByte('|')
				buf.WriteString(c)
				buf.WriteByte('=')
				buf.WriteString(renderValue(r.cells[c]))
			}
			buf.WriteByte('\n')
			return true
		})
	}
}

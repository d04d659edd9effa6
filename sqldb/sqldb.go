// Package sqldb adapts database/sql handles to the porm connection
// interfaces. porm itself never imports a driver; callers open their
// *sql.DB with whatever driver suits them and wrap it here.
package sqldb

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pauldmccarthy/porm"
	"github.com/pkg/errors"
)

// Conn adapts a *sql.DB. database/sql runs in autocommit mode, so
// Commit is a no-op; every statement is already durable when Exec
// returns. That matches porm's commit-per-save model.
type Conn struct {
	db *sql.DB
}

func Wrap(db *sql.DB) *Conn {
	return &Conn{db: db}
}

func (c *Conn) Exec(stmt string) (porm.Cursor, error) {
	if isQuery(stmt) {
		rows, err := c.db.Query(stmt)
		if err != nil {
			return nil, err
		}

		return readRows(rows)
	}

	if _, err := c.db.Exec(stmt); err != nil {
		return nil, err
	}

	return &cursor{}, nil
}

func (c *Conn) Commit() error {
	return nil
}

// TxConn adapts a *sql.Tx. Commit finalizes the transaction, and porm
// commits after every save, so a TxConn is good for exactly one save
// (or any number of queries).
type TxConn struct {
	tx *sql.Tx
}

func WrapTx(tx *sql.Tx) *TxConn {
	return &TxConn{tx: tx}
}

func (c *TxConn) Exec(stmt string) (porm.Cursor, error) {
	if isQuery(stmt) {
		rows, err := c.tx.Query(stmt)
		if err != nil {
			return nil, err
		}

		return readRows(rows)
	}

	if _, err := c.tx.Exec(stmt); err != nil {
		return nil, err
	}

	return &cursor{}, nil
}

func (c *TxConn) Commit() error {
	return c.tx.Commit()
}

func isQuery(stmt string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(stmt)), "select")
}

type cursor struct {
	cols []string
	rows [][]porm.Value
}

func (c *cursor) Columns() []string {
	return c.cols
}

func (c *cursor) FetchAll() ([][]porm.Value, error) {
	return c.rows, nil
}

// readRows drains a sql.Rows into a fully materialized cursor, the
// short-lived fetch-everything shape porm consumes.
func readRows(rows *sql.Rows) (porm.Cursor, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "sqldb: read column metadata")
	}

	cur := &cursor{cols: cols}

	for rows.Next() {
		raw := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(err, "sqldb: scan row")
		}

		vals := make([]porm.Value, len(cols))
		for i, v := range raw {
			vals[i] = toValue(v)
		}

		cur.rows = append(cur.rows, vals)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "sqldb: iterate rows")
	}

	return cur, nil
}

func toValue(v interface{}) porm.Value {
	switch v := v.(type) {
	case nil:
		return porm.NullValue()
	case int64:
		return porm.IntValue(v)
	case float64:
		return porm.FloatValue(v)
	case bool:
		if v {
			return porm.IntValue(1)
		}
		return porm.IntValue(0)
	case []byte:
		return porm.TextValue(string(v))
	case string:
		return porm.TextValue(v)
	case time.Time:
		return porm.TextValue(v.Format(time.RFC3339))
	default:
		return porm.TextValue(fmt.Sprint(v))
	}
}

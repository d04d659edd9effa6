package porm

import (
	"strconv"

	"github.com/pkg/errors"
)

// DB binds an Executor to a Config. It carries no state of its own
// beyond the handle and is as safe for concurrent use as the Executor
// behind it; porm adds no locking or transaction isolation of its own.
type DB struct {
	ex  Executor
	cfg Config
	lg  Logger
}

// New wraps an open connection. cfg may be nil for defaults.
func New(ex Executor, cfg *Config) *DB {
	if cfg == nil {
		cfg = &Config{}
	}

	return &DB{ex: ex, cfg: *cfg, lg: cfg.logger()}
}

type queryConfig struct {
	resolve  bool
	maxDepth int
}

// QueryOption adjusts a single Query or MapRows call.
type QueryOption func(*queryConfig)

// WithoutResolution disables foreign key lookup for this call; <ref>_id
// columns come back as their raw values.
func WithoutResolution() QueryOption {
	return func(q *queryConfig) {
		q.resolve = false
	}
}

// WithResolution re-enables foreign key lookup on a handle configured
// with DisableResolution.
func WithResolution() QueryOption {
	return func(q *queryConfig) {
		q.resolve = true
	}
}

// WithMaxDepth bounds nested resolution for this call. See Config.MaxDepth.
func WithMaxDepth(n int) QueryOption {
	return func(q *queryConfig) {
		q.maxDepth = n
	}
}

func (db *DB) queryConfig(opts []QueryOption) *queryConfig {
	q := &queryConfig{
		resolve:  !db.cfg.DisableResolution,
		maxDepth: db.cfg.MaxDepth,
	}

	for _, opt := range opts {
		opt(q)
	}

	return q
}

// Query executes select * from table, with the optional filter fragment
// inserted verbatim after where, and maps the result rows to Records.
// Foreign key columns are resolved to nested Records unless disabled.
//
// To run
//
//	select * from people where age > 27
//
// do
//
//	oldies, err := db.Query("people", "age > 27")
//
// The filter is not validated or escaped; a malformed fragment surfaces
// as whatever error the storage engine raises.
func (db *DB) Query(table, where string, opts ...QueryOption) ([]*Record, error) {
	return db.query(table, where, db.queryConfig(opts), 0)
}

func (db *DB) query(table, where string, q *queryConfig, depth int) ([]*Record, error) {
	stmt := selectStmt(table, where)

	db.lg.Debugf("exec %s", stmt)
	cur, err := db.ex.Exec(stmt)
	if err != nil {
		db.lg.Errorf("query %s: %v", table, err)
		return nil, errors.Wrapf(err, "porm: query table %s", table)
	}

	return db.mapRows(table, cur, q, depth)
}

// exists probes for a persisted row with the given id.
func (db *DB) exists(table string, id int64) (bool, error) {
	recs, err := db.query(table, "id = "+strconv.FormatInt(id, 10), &queryConfig{resolve: false}, 0)
	if err != nil {
		return false, err
	}

	return len(recs) != 0, nil
}

package porm

// Executor is the connection capability porm requires of its host:
// execute a statement, hand back a cursor over the results, commit
// pending changes. It mirrors the shape of sql.DB, sql.Tx and in-memory
// test engines alike; porm never depends on a concrete storage engine.
type Executor interface {
	Exec(stmt string) (Cursor, error)
	Commit() error
}

// Cursor exposes the result of one executed statement: the column name
// metadata and the full row set. Cursors are short lived and fully
// consumed within a single mapping call.
type Cursor interface {
	Columns() []string
	FetchAll() ([][]Value, error)
}

// Package porm converts rows of a relational table into generic Record
// values and back, resolving foreign keys by naming convention.
//
// The package makes the following assumptions about the host database:
//
//   - every table has an integer id column;
//   - id values are assigned by the storage engine on insert and are
//     always > 0 once assigned; an id of 0 marks a record that has not
//     been persisted yet;
//   - a foreign key column references the id column of the referenced
//     table and is named <table>_id;
//   - no table references itself and no circular foreign key
//     relationships exist. Violating this precondition causes unbounded
//     recursion during resolution unless a depth guard is requested via
//     WithMaxDepth.
//
// porm has no dependency on any particular storage engine. It only
// requires an Executor, an object that can execute a statement, hand
// back a Cursor over the results, and commit pending changes. The sqldb
// subpackage adapts a database/sql handle to these interfaces.
//
// Statements are built by textual substitution, without parameter
// binding, and field values are interpolated as quoted literals without
// escaping. A filter fragment or a field value containing a quote
// character corrupts the generated statement. Callers own the safety of
// everything they pass in.
package porm

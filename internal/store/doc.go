// Package store is the SQLite run ledger behind `jmlgen translate --ledger`
// and `jmlgen history`.
//
// Each successful translation appends one row: run ID, source name and
// text, input hash, view, rendered output, output hash and the
// unknown-symbol diagnostics. The ledger answers two questions: has this
// contract file changed since it was last generated, and does regenerating
// a past run still give the same output (replay).
//
// # Ordering
//
// All listing queries order by seq, the autoincrement insertion counter.
// Wall-clock timestamps are not stored.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//
// The translation core never touches the ledger; it is a CLI-side concern.
package store

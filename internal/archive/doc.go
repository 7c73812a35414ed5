// Package archive stores parsed exchange files in SQLite so records and
// references can be queried across files without reparsing.
//
// Each file is stored once per content digest. A file is kept as its
// preamble plus one row per data line, so ReadFile returns the exact
// text that was written. Reference rows come from the reference tables
// of package model; opaque records contribute the identifiers found in
// their text with an empty field name.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Deleting a file removes its records and references
package archive

// Package store provides durable worksheet storage on SQLite.
//
// The calculation engine itself holds no persistent state; this
// package is how outer layers (the CLI in particular) keep named
// worksheets across sessions. A worksheet owns its variables, its
// custom units, and an append-only calculation history.
//
// DESIGN:
//
// Single Writer:
// SQLite supports one writer at a time, so the pool is capped at one
// connection. WAL mode keeps concurrent readers cheap.
//
// Idempotent Writes:
// Variable and custom-unit saves are upserts keyed by (worksheet,
// name); replaying a save converges to the same row. Calculation
// history is append-only and never rewritten.
//
// Values are serialized as small JSON documents tagged with their
// kind (number, complex, matrix), so a restored variable round-trips
// with its exact shape.
package store

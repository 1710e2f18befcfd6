// Package store persists completed deliveries in SQLite.
//
// The schema is versioned with golang-migrate; migrations are embedded in the
// binary. Only finished tracking runs are written, one row per run, through a
// Recorder attached to the tracking engine's arrival notifications. Live
// positions are never stored.
package store

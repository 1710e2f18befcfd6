// Package tracking simulates live truck positions and serves them to the rest of
// the console.
//
// This package handles:
// - Fabricating a route for each tracked truck and walking it on a fixed cadence
// - Keeping one Record per truck (position, speed, heading, distance covered/remaining)
// - Publishing a Sample per tick to global and per-truck subscribers
// - Firing a one-shot arrival notification when a truck reaches the end of its route
//
// An Engine is an explicit service object: construct it at startup with NewEngine,
// pass it to whoever needs it, and dispose of it with Close. Each tracked truck
// owns exactly one scheduled task; restarting or stopping a truck cancels that task
// and waits for it to exit before its record is replaced or removed, so a late tick
// can never write into a discarded record.
//
// Callbacks run synchronously on the tick that produced them, outside the engine's
// lock. They may call the read accessors but must not start or stop tracking
// synchronously.
package tracking

// Package engine owns a live compute graph and every way it can change.
//
// All mutation goes through the Engine: creating and deleting nodes,
// connecting and disconnecting slots, and editing stored slot values. Each
// successful mutation is recorded in the undo history and reported to the
// host through the message callback, so an editor UI, a document writer and
// a remote mirror all observe the same stream. Structural mutations also
// mark the graph dirty; the host decides when to run an execution pass.
//
// Execution walks the graph in topological order, runs every node's
// operator, and pushes produced outputs into downstream incoming buffers.
// A node failure is reported and skipped; the pass continues so the rest of
// the graph stays live.
//
// The Engine is not safe for concurrent use. Hosts that receive input from
// multiple goroutines (a socket mirror, a file watcher) must serialize
// calls themselves.
package engine

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// starting and stopping multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker on its own goroutine and returns immediately.
// Stop blocks until the goroutine has exited. Both are safe to call in any
// order and more than once.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Refresher is what a RefreshWorker keeps up to date.
// viewmodel.NotesList implements it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

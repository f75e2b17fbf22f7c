// Package viewmodel holds the state behind the notes screens.
//
// [NotesList] backs the notes list and [NoteDetail] backs a single note with
// its edit mode and version history. Both are safe for concurrent use: the TUI
// runs their operations on background goroutines and reads snapshots from the
// render loop.
//
// No view-model mutates notes locally. Every successful mutation is followed
// by a full re-fetch from the server, so the local state always converges to
// the backend state. A fetch that is overtaken by a newer one is cancelled and
// its result is discarded with [ErrSuperseded].
//
// Failed server calls are logged, handed to an [ErrorHandler] (which logs the
// user out on Unauthorized) and returned. The state from before the call is
// kept.
package viewmodel

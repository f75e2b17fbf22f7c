package viewmodel

import "errors"

var (
	ErrSuperseded       = errors.New("superseded by a newer request")
	ErrNothingToConfirm = errors.New("no action awaiting confirmation")
	ErrNoteNotFound     = errors.New("note not found")
	ErrVersionNotFound  = errors.New("version not found")
	ErrNoNoteLoaded     = errors.New("no note loaded")
	ErrNotEditing       = errors.New("note is not in edit mode")
)

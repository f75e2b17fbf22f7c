// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks what the user typed into the TUI forms before
// anything is sent to the notes API.
//
// NoteForm, LoginForm and RegisterForm declare their rules in `validate`
// struct tags; [FormValidator] runs them with go-playground/validator.
// Passing field names to Validate restricts the check to those fields.
//
// Failures are the sentinel errors of errors.go joined with [errors.Join], so
// callers can test each with [errors.Is].
package validators

import "context"

// Validator checks a form value. With field names it validates only those
// fields.
type Validator interface {
	Validate(ctx context.Context, form any, fields ...string) error
}

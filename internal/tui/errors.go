// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/viewmodel"
)

const serverUnavailableMessage = "Network unavailable or server unreachable"

// humanizeError turns an error into a line for the status area. Superseded
// fetches produce an empty string and should not be shown.
func humanizeError(err error) string {
	if err == nil || errors.Is(err, viewmodel.ErrSuperseded) {
		return ""
	}

	if adapter.KindOf(err) == adapter.KindNetworkError || isServerUnavailable(err) {
		return serverUnavailableMessage
	}

	switch {
	case errors.Is(err, viewmodel.ErrNoteNotFound):
		return "Note not found"
	case errors.Is(err, viewmodel.ErrVersionNotFound):
		return "Version not found"
	}

	if adapter.KindOf(err) != 0 {
		return adapter.MessageOf(err)
	}

	// joined validation errors are one per line
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}

func isServerUnavailable(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded")
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNote_Matches(t *testing.T) {
	note := Note{ID: "1", Title: "Groceries", Content: "xyz abc"}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "empty query", query: "", want: true},
		{name: "blank query", query: "   ", want: true},
		{name: "title match ignores case", query: "GROC", want: true},
		{name: "content match ignores case", query: "ABC", want: true},
		{name: "query is trimmed", query: "  abc ", want: true},
		{name: "no match", query: "milk", want: false},
		{name: "no match across fields", query: "ries xyz", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, note.Matches(tt.query))
		})
	}
}

func TestSession_Valid(t *testing.T) {
	assert.True(t, Session{Token: "T1", User: User{Email: "a@x.com"}}.Valid())
	assert.False(t, Session{Token: "T1"}.Valid())
	assert.False(t, Session{User: User{Email: "a@x.com"}}.Valid())
	assert.True(t, Session{}.IsZero())
}

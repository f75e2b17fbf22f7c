package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	sessionTable       = "session_entries"
	sessionKeyColumn   = "entry_key"
	sessionValueColumn = "entry_value"
	sessionTimeColumn  = "updated_at"
)

// psql is the statement builder for SQLite placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildGetSessionEntry(key string) (string, []any, error) {
	return psql.
		Select(sessionValueColumn).
		From(sessionTable).
		Where(sq.Eq{sessionKeyColumn: key}).
		ToSql()
}

func buildUpsertSessionEntry(key, value string, now time.Time) (string, []any, error) {
	return psql.
		Insert(sessionTable).
		Columns(sessionKeyColumn, sessionValueColumn, sessionTimeColumn).
		Values(key, value, now.UTC()).
		Suffix("ON CONFLICT(" + sessionKeyColumn + ") DO UPDATE SET " +
			sessionValueColumn + " = excluded." + sessionValueColumn + ", " +
			sessionTimeColumn + " = excluded." + sessionTimeColumn).
		ToSql()
}

func buildDeleteSessionEntries(keys []string) (string, []any, error) {
	return psql.
		Delete(sessionTable).
		Where(sq.Eq{sessionKeyColumn: keys}).
		ToSql()
}

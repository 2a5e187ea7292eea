// Package repository implements the database access layer for taxifleet.
// Repositories issue parameterized SQL against the shared pgx pool; list
// queries are built with squirrel so the search filter is pushed down to
// the database instead of being applied client-side.
package repository

import (
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a lookup, update, or delete targets an id
// that does not exist.
var ErrNotFound = errors.New("record not found")

// psql builds queries with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// likeEscaper escapes the LIKE metacharacters. Backslash must be replaced
// first so escapes introduced for % and _ are not double-escaped.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a raw search term into a case-insensitive substring
// LIKE pattern. Wildcard characters in the term (%, _, \) are escaped so
// they match literally: searching "mu_t" must not match "Mustang".
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
// Used to turn duplicate usernames or license numbers into field errors.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation reports whether err is a foreign-key violation.
// Deleting a manufacturer that still has cars trips the RESTRICT constraint
// and lands here.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

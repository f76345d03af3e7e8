package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/seasurvey/transect-backend-go/internal/database"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// rebind rewrites ? placeholders into the dialect's bind style.
// Queries in this package never contain literal question marks.
func rebind(dialect database.Dialect, query string) string {
	if dialect != database.Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// upsertStatement builds an insert-or-update keyed on columns[0]. Every other
// column is overwritten on conflict.
func upsertStatement(dialect database.Dialect, table string, columns []string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)

	updates := make([]string, 0, len(columns)-1)
	for _, c := range columns[1:] {
		if dialect == database.MySQL {
			updates = append(updates, fmt.Sprintf("%s = VALUES(%s)", c, c))
		} else {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", c, c))
		}
	}

	if dialect == database.MySQL {
		stmt += " ON DUPLICATE KEY UPDATE " + strings.Join(updates, ", ")
	} else {
		stmt += fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s", columns[0], strings.Join(updates, ", "))
	}
	return rebind(dialect, stmt)
}

// qualify prefixes each column with a table alias
func qualify(alias string, columns []string) string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return strings.Join(out, ", ")
}

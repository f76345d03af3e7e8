package database

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Statements returns the DDL statements for a dialect, in execution order
func Statements(dialect Dialect) ([]string, error) {
	content, err := schemaFS.ReadFile("schema/" + string(dialect) + ".sql")
	if err != nil {
		return nil, fmt.Errorf("%w: no schema for %q", ErrUnsupportedDialect, dialect)
	}

	var statements []string
	for _, stmt := range strings.Split(string(content), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements, nil
}

// EnsureSchema creates any missing tables and indexes. It never alters or
// drops existing objects.
func (d *DB) EnsureSchema(ctx context.Context) error {
	statements, err := Statements(d.dialect)
	if err != nil {
		return err
	}

	for i, stmt := range statements {
		if _, err := d.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement %d: %w", i+1, err)
		}
	}

	d.log.Info("schema ensured", zap.Int("statements", len(statements)))
	return nil
}

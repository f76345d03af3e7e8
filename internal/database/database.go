package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ErrUnsupportedDialect is returned for a driver name this package cannot open
var ErrUnsupportedDialect = errors.New("unsupported database dialect")

// Dialect identifies the SQL flavour behind a DB
type Dialect string

// Supported dialects
const (
	SQLite   Dialect = "sqlite"
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// ParseDialect maps a configured driver name to a Dialect
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(name); d {
	case SQLite, MySQL, Postgres:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, name)
	}
}

// Config holds database configuration
type Config struct {
	Driver       string
	Path         string // sqlite file
	User         string
	Password     string
	Host         string
	Port         int
	Name         string
	MaxOpenConns int
	MaxIdleConns int
}

// DB is the shared storage handle. It is created once at startup and is safe
// for concurrent use.
type DB struct {
	conn    *sql.DB
	dialect Dialect
	log     *zap.Logger
}

// Open opens and pings the configured database
func Open(ctx context.Context, cfg Config, log *zap.Logger) (*DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	driverName, dsn, err := dataSource(dialect, cfg)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 5
	}
	conn.SetMaxOpenConns(maxOpen)
	conn.SetMaxIdleConns(maxIdle)
	conn.SetConnMaxLifetime(time.Hour)

	// Test connection
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database initialized",
		zap.String("dialect", string(dialect)),
		zap.String("target", describe(dialect, cfg)))

	return &DB{conn: conn, dialect: dialect, log: log}, nil
}

func dataSource(dialect Dialect, cfg Config) (string, string, error) {
	switch dialect {
	case SQLite:
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", "", fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		// pragmas apply to every pooled connection
		return "sqlite", "file:" + cfg.Path +
			"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", nil

	case MySQL:
		port := cfg.Port
		if port == 0 {
			port = 3306
		}
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
		mc.DBName = cfg.Name
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.Params = map[string]string{"charset": "utf8mb4", "time_zone": "'+00:00'"}
		return "mysql", mc.FormatDSN(), nil

	case Postgres:
		port := cfg.Port
		if port == 0 {
			port = 5432
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
			Path:     "/" + cfg.Name,
			RawQuery: "sslmode=disable&timezone=UTC",
		}
		return "pgx", u.String(), nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
}

func describe(dialect Dialect, cfg Config) string {
	if dialect == SQLite {
		return cfg.Path
	}
	return fmt.Sprintf("%s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.Name)
}

// Conn returns the underlying connection pool
func (d *DB) Conn() *sql.DB {
	return d.conn
}

// Dialect returns the SQL flavour of the connection
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Close closes the database connection
func (d *DB) Close() error {
	if d == nil || d.conn == nil {
		return nil
	}
	return d.conn.Close()
}

// Transaction executes fn within a database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
func (d *DB) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			d.log.Error("transaction rollback failed", zap.Error(rbErr))
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ConnectionError means the database link is unusable.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return "database connection: " + e.Err.Error() }
func (e *ConnectionError) Unwrap() error { return e.Err }

// StatementError means the database rejected a statement.
type StatementError struct {
	Code string // SQLSTATE when the driver reports one
	Err  error
}

func (e *StatementError) Error() string { return "database statement: " + e.Err.Error() }
func (e *StatementError) Unwrap() error { return e.Err }

// Rows is a materialized result set. NULL values are rendered as "".
type Rows struct {
	Columns []string
	Records [][]string
}

func (r *Rows) Len() int { return len(r.Records) }

// Gateway owns the single database connection of the process.
type Gateway struct {
	db        *gorm.DB
	closeOnce sync.Once
	closeErr  error
}

// Open connects with the given dialector and verifies the link. The pool
// is capped at one connection: the console issues one statement at a time.
func Open(ctx context.Context, dialector gorm.Dialector, cfg *gorm.Config) (*Gateway, error) {
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, &ConnectionError{Err: fmt.Errorf("unable to ping database: %w", err)}
	}
	return &Gateway{db: db}, nil
}

// DB returns a context-scoped ORM handle for typed repositories.
func (g *Gateway) DB(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx)
}

// Exec runs a bound statement and returns the number of affected rows.
func (g *Gateway) Exec(ctx context.Context, statement string, args ...any) (int64, error) {
	res := g.db.WithContext(ctx).Exec(statement, args...)
	if res.Error != nil {
		return 0, Classify(res.Error)
	}
	return res.RowsAffected, nil
}

// Query runs a bound query and returns every row as strings.
func (g *Gateway) Query(ctx context.Context, query string, args ...any) (*Rows, error) {
	rows, err := g.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, Classify(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, Classify(err)
	}

	result := &Rows{Columns: cols}
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, Classify(err)
		}

		record := make([]string, len(cols))
		for i, v := range values {
			if v.Valid {
				record[i] = strings.TrimRight(v.String, " ")
			}
		}
		result.Records = append(result.Records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, Classify(err)
	}
	return result, nil
}

// ScalarCount runs a query returning a single integer, typically COUNT(*).
func (g *Gateway) ScalarCount(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := g.db.WithContext(ctx).Raw(query, args...).Scan(&n).Error; err != nil {
		return 0, Classify(err)
	}
	return n, nil
}

// Close releases the connection. It is safe to call more than once.
func (g *Gateway) Close() error {
	g.closeOnce.Do(func() {
		sqlDB, err := g.db.DB()
		if err != nil {
			g.closeErr = err
			return
		}
		g.closeErr = sqlDB.Close()
	})
	return g.closeErr
}

// Classify wraps a driver or ORM error as a ConnectionError or StatementError.
// gorm.ErrRecordNotFound passes through untouched so callers can map it.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	var connErr *ConnectionError
	var stmtErr *StatementError
	if errors.As(err, &connErr) || errors.As(err, &stmtErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE class 08: connection exception
		if strings.HasPrefix(pgErr.Code, "08") {
			return &ConnectionError{Err: err}
		}
		return &StatementError{Code: pgErr.Code, Err: err}
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) ||
		strings.Contains(err.Error(), "sql: database is closed") {
		return &ConnectionError{Err: err}
	}
	return &StatementError{Err: err}
}

// IsUniqueViolation reports whether err came from a duplicate key.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint failure from
// Postgres (pgx or lib/pq) or SQLite. When constraintName is provided the
// constraint must match as well.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolation && matchesConstraint(pgxErr.ConstraintName, constraintName)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation && matchesConstraint(pqErr.Constraint, constraintName)
	}

	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") && !strings.Contains(msg, "duplicate key value") {
		return false
	}
	return constraintName == "" || strings.Contains(msg, constraintName)
}

func matchesConstraint(actual, want string) bool {
	return want == "" || actual == want
}

// IsUnavailable reports whether err means the database could not be reached,
// as opposed to a statement that failed.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return strings.HasPrefix(pgxErr.Code, "08") || strings.HasPrefix(pgxErr.Code, "57P")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		class := string(pqErr.Code.Class())
		return class == "08" || class == "57"
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Wrap classifies a repository failure: DEPENDENCY when the database is
// unreachable, INTERNAL otherwise. Errors that already carry a code pass through.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var coded *pkgerrors.Error
	if errors.As(err, &coded) {
		return err
	}
	code := pkgerrors.CodeInternal
	if IsUnavailable(err) {
		code = pkgerrors.CodeDependency
	}
	return pkgerrors.Wrap(code, err, message)
}

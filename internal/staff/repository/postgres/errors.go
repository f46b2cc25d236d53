package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// uniqueFields maps constraint names from schema.sql to request field names.
var uniqueFields = map[string]string{
	"employees_email_key":       "email",
	"departments_dept_code_key": "dept_code",
	"projects_project_code_key": "project_code",
}

// translate maps driver errors onto domain errors. Errors it does not
// recognise are returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	code, constraint := sqlState(err)
	switch code {
	case codeUniqueViolation:
		return &domain.UniqueViolationError{
			Field:      uniqueFields[constraint],
			Constraint: constraint,
			Err:        err,
		}
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrForeignKeyNotFound, constraint)
	}
	return err
}

// sqlState extracts the SQLSTATE and constraint name from either driver.
func sqlState(err error) (code, constraint string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// Package service implements the staff directory rules: field validation,
// code generation, partial updates and the employee-project association.
// Every write runs in exactly one repository transaction.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/events"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/logging"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/codegen"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/repository"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/validate"
)

// codeRetries bounds how many times a create with a server generated code
// is retried after losing a race on the code column.
const codeRetries = 3

const (
	msgMissingBody      = "Request body must be JSON"
	msgNoData           = "No data provided"
	msgDepartmentNF     = "Department not found"
	msgEmployeeNF       = "Employee not found"
	msgProjectNF        = "Project not found"
	msgInvalidPair      = "Invalid employee or project"
	msgNoValidEmployees = "No valid employees found"
	msgEmailTaken       = "Email already exists"
	msgDeptCodeTaken    = "dept_code must be unique"
	msgProjectCodeTaken = "project_code must be unique"
)

// Service handles staff business logic
type Service struct {
	store     repository.Store
	publisher events.Publisher
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for the join date check.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPublisher sets where change events go. The default discards them.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// New creates a new Service
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		publisher: events.Nop{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() domain.Date {
	return domain.DateOf(s.now())
}

// publish sends e after a commit. The write already happened, so failures
// are logged and swallowed.
func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("publish event failed",
			zap.String("type", e.Type),
			zap.String("resource", e.Resource),
			zap.Int64("resource_id", e.ResourceID),
			zap.Error(err),
		)
	}
}

// withCodeRetry runs fn in a transaction. When the code was generated by the
// server and the commit lost a race on that code's column, the whole
// transaction is retried so a fresh code is drawn.
func (s *Service) withCodeRetry(ctx context.Context, generated bool, field string, fn func(tx repository.Tx) error) error {
	attempts := 1
	if generated {
		attempts = codeRetries
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = s.store.WithTx(ctx, fn)
		if f, ok := domain.UniqueField(err); ok && generated && f == field {
			continue
		}
		return err
	}
	return err
}

// generateCode draws a code that is not yet used according to exists.
func generateCode(ctx context.Context, exists codegen.ExistsFunc, length int) (string, error) {
	code, err := codegen.Generate(ctx, exists, length)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return code, nil
}

// writeError turns storage failures into user-facing errors. nfMessage is the
// message for a vanished primary record and fkMessage for a vanished
// referenced one. Errors that are already *domain.Error pass through.
func writeError(err error, nfMessage, fkMessage string) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if field, ok := domain.UniqueField(err); ok {
		switch field {
		case "email":
			return domain.Errorf(domain.ErrUniqueViolation, msgEmailTaken)
		case "dept_code":
			return domain.Errorf(domain.ErrUniqueViolation, msgDeptCodeTaken)
		case "project_code":
			return domain.Errorf(domain.ErrUniqueViolation, msgProjectCodeTaken)
		default:
			return domain.Errorf(domain.ErrUniqueViolation, "Record already exists")
		}
	}
	if errors.Is(err, domain.ErrForeignKeyNotFound) {
		return domain.Errorf(domain.ErrForeignKeyNotFound, fkMessage)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Errorf(domain.ErrNotFound, nfMessage)
	}
	return err
}

// notFound maps domain.ErrNotFound from a lookup to a user-facing error.
func notFound(err error, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Errorf(domain.ErrNotFound, message)
	}
	return err
}

// dateError converts a validate.ValidationError into a domain error.
func dateError(err error) error {
	var ve *validate.ValidationError
	if errors.As(err, &ve) {
		if ve.Missing {
			return domain.Errorf(domain.ErrMissingField, "%s", ve.Message)
		}
		return domain.Errorf(domain.ErrInvalidFormat, "%s", ve.Message)
	}
	return err
}

// requireDepartment checks that a referenced department exists.
func requireDepartment(ctx context.Context, tx repository.Tx, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := tx.Departments().GetByID(ctx, *id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Errorf(domain.ErrForeignKeyNotFound, msgDepartmentNF)
		}
		return err
	}
	return nil
}

// suppliedCode returns the trimmed client code, or "" when none was given.
func suppliedCode(code *string) string {
	if code == nil {
		return ""
	}
	return trim(*code)
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

// Package validate holds the field checks shared by every staff write path.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
)

var (
	nameRe        = regexp.MustCompile(`^[A-Za-z ]+$`)
	emailRe       = regexp.MustCompile(`^[\w.\-]+@[\w.\-]+$`)
	deptCodeRe    = regexp.MustCompile(`^[A-Za-z0-9]{4}$`)
	projectCodeRe = regexp.MustCompile(`^[A-Za-z0-9]{5}$`)
)

// dateLayouts are tried in order. The two-digit year form pivots at 69 the
// same way Go's "06" verb does: 69-99 become 19xx, 00-68 become 20xx.
var dateLayouts = []string{domain.DateLayout, "06-01-02"}

// ValidationError is a field-level parse failure with a client-facing message.
// Missing is set when the value was absent rather than malformed.
type ValidationError struct {
	Field   string
	Message string
	Missing bool
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidName reports whether s is non-empty and made only of letters and spaces.
func IsValidName(s string) bool {
	return nameRe.MatchString(s)
}

// IsValidEmail reports whether s looks like local@domain and ends with ".com".
// The check is case sensitive.
func IsValidEmail(s string) bool {
	return strings.HasSuffix(s, ".com") && emailRe.MatchString(s)
}

// IsValidDeptCode reports whether s is exactly four ASCII letters or digits.
func IsValidDeptCode(s string) bool {
	return deptCodeRe.MatchString(s)
}

// IsValidProjectCode reports whether s is exactly five ASCII letters or digits.
func IsValidProjectCode(s string) bool {
	return projectCodeRe.MatchString(s)
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ParseDate parses a YYYY-MM-DD (or YY-MM-DD) date for the named field.
func ParseDate(s, field string) (domain.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Date{}, &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is required", field),
			Missing: true,
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateOf(t), nil
		}
	}
	return domain.Date{}, &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Invalid %s format. Use yyyy-mm-dd", field),
	}
}

// NotFuture reports whether d is on or before today. Join dates must pass
// this check; today itself is accepted.
func NotFuture(d, today domain.Date) bool {
	return !d.After(today)
}

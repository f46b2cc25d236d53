package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/go-staff-backend/internal/staff/domain"
)

func TestIsValidName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Ada Lovelace", true},
		{"ada", true},
		{"", false},
		{"R2D2", false},
		{"O'Brien", false},
		{"Jean-Luc", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidName(tt.in), "name %q", tt.in)
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ada@example.com", true},
		{"first.last@mail.co.com", true},
		{"ada@example.org", false},
		{"ada@example.COM", false},
		{"ada example@x.com", false},
		{"@example.com", false},
		{"ada.com", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.in), "email %q", tt.in)
	}
}

func TestCodeFormats(t *testing.T) {
	assert.True(t, IsValidDeptCode("AB12"))
	assert.True(t, IsValidDeptCode("ab12"))
	assert.False(t, IsValidDeptCode("AB1"))
	assert.False(t, IsValidDeptCode("AB12$"))
	assert.False(t, IsValidDeptCode("AB123"))

	assert.True(t, IsValidProjectCode("PRJ01"))
	assert.False(t, IsValidProjectCode("PRJ1"))
	assert.False(t, IsValidProjectCode("PRJ-1"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29", "start_date")
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2024, time.February, 29), d)

	d, err = ParseDate("99-12-31", "start_date")
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(1999, time.December, 31), d)

	d, err = ParseDate("24-01-05", "start_date")
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2024, time.January, 5), d)
}

func TestParseDate_Errors(t *testing.T) {
	_, err := ParseDate("  ", "join_date")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Missing)
	assert.Equal(t, "join_date", ve.Field)
	assert.Equal(t, "join_date is required", ve.Message)

	for _, in := range []string{"2024/01/05", "05-01-2024", "2024-13-01", "yesterday"} {
		_, err := ParseDate(in, "end_date")
		require.True(t, errors.As(err, &ve), in)
		assert.False(t, ve.Missing)
		assert.Equal(t, "Invalid end_date format. Use yyyy-mm-dd", ve.Message)
	}
}

func TestNotFuture(t *testing.T) {
	today := domain.NewDate(2025, time.June, 10)
	assert.True(t, NotFuture(today, today))
	assert.True(t, NotFuture(today.AddDays(-1), today))
	assert.False(t, NotFuture(today.AddDays(1), today))
}

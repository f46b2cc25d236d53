// Package codegen draws short random codes that are unique within a table.
package codegen

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	// Alphabet is the character set codes are drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	DeptCodeLength    = 4
	ProjectCodeLength = 5

	// MaxAttempts bounds the draw loop. At 36^4 and 36^5 candidates a table
	// has to be nearly full before this is reached.
	MaxAttempts = 64
)

// ErrExhausted is returned when MaxAttempts candidates all collided.
var ErrExhausted = errors.New("codegen: no unused code found")

// ExistsFunc reports whether a candidate code is already taken.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generate draws uniform random codes of the given length until exists
// reports one as free.
func Generate(ctx context.Context, exists ExistsFunc, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("codegen: invalid length %d", length)
	}
	for i := 0; i < MaxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		code, err := Random(length)
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("codegen: check %q: %w", code, err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrExhausted
}

// Random returns a code of the given length without any uniqueness check.
func Random(length int) (string, error) {
	max := big.NewInt(int64(len(Alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("codegen: random: %w", err)
		}
		b[i] = Alphabet[n.Int64()]
	}
	return string(b), nil
}

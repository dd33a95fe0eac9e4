// Package shortcode generates the random identifiers assigned to shortened URLs.
package shortcode

import (
	"context"
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the set of symbols short codes are drawn from: upper and lower
// case ASCII letters plus digits, 62 symbols in total.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	// DefaultLength is the default number of symbols in a short code. With a
	// 62-symbol alphabet this gives a space of 62^6, about 5.6e10 codes.
	DefaultLength = 6
	// DefaultMaxAttempts bounds how many candidate codes GenerateUnique tries
	// before giving up.
	DefaultMaxAttempts = 10
)

// ErrGenerationExhausted is returned when GenerateUnique fails to find an
// unused short code within its attempt budget.
var ErrGenerationExhausted = errors.New("exhausted attempts to generate a unique short code")

// ExistenceChecker is the subset of the storage layer the generator needs to
// probe candidate codes for collisions.
type ExistenceChecker interface {
	Exists(ctx context.Context, shortCode string) bool
}

// Generate returns a random short code of the given length drawn uniformly
// from Alphabet. Codes are identifiers, not secrets, so uniqueness is the
// goal rather than unguessability.
func Generate(length int) (string, error) {
	const op = "shortcode.Generate"

	code, err := gonanoid.Generate(Alphabet, length)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return code, nil
}

// GenerateUnique generates candidate codes until one is not present in the
// store, trying at most maxAttempts times before returning
// ErrGenerationExhausted. The existence probe is an optimization only: the
// store's Create re-checks uniqueness atomically at commit time, closing the
// race window between probe and insert.
func GenerateUnique(ctx context.Context, store ExistenceChecker, length, maxAttempts int) (string, error) {
	const op = "shortcode.GenerateUnique"

	for i := 0; i < maxAttempts; i++ {
		code, err := Generate(length)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}

		if !store.Exists(ctx, code) {
			return code, nil
		}
	}

	return "", fmt.Errorf("%s: %w", op, ErrGenerationExhausted)
}

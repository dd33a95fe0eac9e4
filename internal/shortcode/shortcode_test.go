package shortcode

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkerFunc adapts a function to the ExistenceChecker interface.
type checkerFunc func(shortCode string) bool

func (f checkerFunc) Exists(_ context.Context, shortCode string) bool {
	return f(shortCode)
}

func TestGenerate(t *testing.T) {
	t.Run("fixed length from the alphanumeric alphabet", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			code, err := Generate(DefaultLength)

			require.NoError(t, err)
			require.Len(t, code, DefaultLength)
			for _, r := range code {
				assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected symbol %q in code %q", r, code)
			}
		}
	})

	t.Run("codes are distinct", func(t *testing.T) {
		seen := make(map[string]struct{})

		for i := 0; i < 5; i++ {
			code, err := Generate(DefaultLength)
			require.NoError(t, err)

			_, dup := seen[code]
			require.False(t, dup, "generated duplicate code %q", code)
			seen[code] = struct{}{}
		}
	})
}

func TestGenerateUnique(t *testing.T) {
	ctx := context.Background()

	t.Run("returns first free candidate", func(t *testing.T) {
		var probes int
		store := checkerFunc(func(string) bool {
			probes++
			return false
		})

		code, err := GenerateUnique(ctx, store, DefaultLength, DefaultMaxAttempts)

		require.NoError(t, err)
		assert.Len(t, code, DefaultLength)
		assert.Equal(t, 1, probes)
	})

	t.Run("skips colliding candidates", func(t *testing.T) {
		var probes int
		store := checkerFunc(func(string) bool {
			probes++
			return probes <= 3
		})

		code, err := GenerateUnique(ctx, store, DefaultLength, DefaultMaxAttempts)

		require.NoError(t, err)
		assert.Len(t, code, DefaultLength)
		assert.Equal(t, 4, probes)
	})

	t.Run("exhausts the attempt budget", func(t *testing.T) {
		var probes int
		store := checkerFunc(func(string) bool {
			probes++
			return true
		})

		code, err := GenerateUnique(ctx, store, DefaultLength, DefaultMaxAttempts)

		assert.ErrorIs(t, err, ErrGenerationExhausted)
		assert.Empty(t, code)
		assert.Equal(t, DefaultMaxAttempts, probes)
	})
}

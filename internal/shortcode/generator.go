package shortcode

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"shortly/internal/logger"
)

// DefaultAlphabet is upper and lower case letters plus digits.
const DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	// AttemptsPerTier is the number of random draws at one length.
	AttemptsPerTier = 5
	// Tiers is the number of lengths tried, starting at the requested one.
	Tiers = 3
)

// ErrGenerationExhausted means every draw in every tier collided.
var ErrGenerationExhausted = errors.New("failed to generate a unique short code")

// TakenFunc reports whether code is already in use.
type TakenFunc func(ctx context.Context, code string) (bool, error)

// Generator draws random short codes.
type Generator struct {
	alphabet []rune
	max      *big.Int
}

// NewGenerator returns a generator over alphabet, or DefaultAlphabet when empty.
func NewGenerator(alphabet string) *Generator {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	runes := []rune(alphabet)
	return &Generator{alphabet: runes, max: big.NewInt(int64(len(runes)))}
}

// Random returns one uniformly drawn code of length n.
func (g *Generator) Random(n int) (string, error) {
	out := make([]rune, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, g.max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		out[i] = g.alphabet[idx.Int64()]
	}
	return string(out), nil
}

// Generate draws codes starting at length until taken reports a free one.
// Each tier makes AttemptsPerTier draws, then the length grows by one.
// After Tiers lengths it gives up with ErrGenerationExhausted.
func (g *Generator) Generate(ctx context.Context, length int, taken TakenFunc) (string, error) {
	for tier := 0; tier < Tiers; tier++ {
		n := length + tier
		for attempt := 0; attempt < AttemptsPerTier; attempt++ {
			code, err := g.Random(n)
			if err != nil {
				return "", err
			}

			inUse, err := taken(ctx, code)
			if err != nil {
				return "", fmt.Errorf("failed to check short code availability: %w", err)
			}
			if !inUse {
				return code, nil
			}
		}
		logger.Warn().
			Int("length", n).
			Int("attempts", AttemptsPerTier).
			Msg("short code collisions at this length, increasing length")
	}
	return "", fmt.Errorf("%w after %d lengths starting at %d", ErrGenerationExhausted, Tiers, length)
}

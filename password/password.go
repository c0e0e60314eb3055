// Package password generates fixed-length password suggestions and hashes
// them with bcrypt.
//
// Passwords are drawn from a pseudo-random Source. The generator is NOT
// suitable for security-sensitive secrets: use crypto/rand directly for those.
//
// Example usage:
//
//	package main
//
//	import (
//		"fmt"
//		"math/rand/v2"
//
//		"github.com/paccolamano/lazyalgo/password"
//	)
//
//	func main() {
//		// Default source
//		fmt.Println(password.Generate())
//
//		// Deterministic source, useful in tests
//		g := password.New(password.WithSource(rand.New(rand.NewPCG(1, 2))))
//		p, err := g.Generate()
//		if err != nil {
//			panic(err)
//		}
//		fmt.Println(p)
//	}
package password

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	// Alphabet is the ordered set of characters a password is drawn from:
	// 26 upper-case letters, 26 lower-case letters, 10 digits and 12 symbols.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()_+"

	// Length is the number of characters of every generated password.
	Length = 16
)

// ErrInvalidDraw is returned when a Source yields a value outside [0, 1).
var ErrInvalidDraw = errors.New("random draw out of range [0, 1)")

// Source is a uniform random source. Float64 must return a value in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// config holds configuration options for Generator.
type config struct {
	source Source
}

// Option defines a functional option used to configure a Generator.
type Option func(*config)

// WithSource sets the random source the Generator draws from.
// By default a PCG source seeded from the runtime is used.
func WithSource(s Source) Option {
	return func(c *config) {
		c.source = s
	}
}

// Generator produces passwords of Length characters taken from Alphabet.
// A Generator is as safe for concurrent use as its Source; the default
// source is not.
type Generator struct {
	source Source
}

// New creates a Generator configured via functional options.
func New(opts ...Option) *Generator {
	c := &config{
		source: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	for _, opt := range opts {
		opt(c)
	}

	return &Generator{source: c.source}
}

// Generate returns a password of Length characters. Each character is
// sampled independently, with replacement, from Alphabet.
//
// It fails only when the Source breaks its contract and returns a draw
// outside [0, 1).
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, Length)
	for i := range buf {
		idx, err := index(g.source.Float64(), len(Alphabet))
		if err != nil {
			return "", fmt.Errorf("failed to pick character %d: %w", i, err)
		}
		buf[i] = Alphabet[idx]
	}

	return string(buf), nil
}

// Generate returns a password using a fresh Generator with the default source.
func Generate() string {
	p, err := New().Generate()
	if err != nil {
		// the default source only yields draws in [0, 1)
		panic(err)
	}

	return p
}

// index maps a draw in [0, 1) onto [0, n) by truncation, so every index is
// equally likely and n itself is never produced.
func index(draw float64, n int) (int, error) {
	if math.IsNaN(draw) || draw < 0 || draw >= 1 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidDraw, draw)
	}

	idx := int(math.Floor(draw * float64(n)))
	if idx >= n {
		// float rounding on draws just below 1
		idx = n - 1
	}

	return idx, nil
}

// Package random provides seedable pseudo-random generators for sampling
// decisions. Every generator is an explicit instance; nothing here touches
// process-wide random state.
package random

import (
	"math/rand/v2"

	"github.com/ajitpratap0/dataprep/pkg/errors"
)

// Generator yields uniformly distributed values in [0, 1).
type Generator interface {
	Float64() float64
}

// Kind names a generator algorithm.
type Kind string

const (
	// MT19937 is the 32-bit Mersenne Twister with 53-bit float output.
	// Draws match the legacy numpy RandomState for the same integer seed.
	MT19937 Kind = "mt19937"
	// PCG is the permuted congruential generator from math/rand/v2.
	PCG Kind = "pcg"
)

// DefaultKind is used when no generator is configured.
const DefaultKind = MT19937

// MaxMT19937Seed is the largest seed accepted by the Mersenne Twister.
const MaxMT19937Seed = 1<<32 - 1

// Kinds lists the supported generator kinds.
func Kinds() []Kind {
	return []Kind{MT19937, PCG}
}

// ParseKind validates a generator name. An empty name selects DefaultKind.
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case "":
		return DefaultKind, nil
	case MT19937, PCG:
		return Kind(name), nil
	default:
		return "", errors.Newf(errors.ErrorTypeConfig, "unknown generator %q (want mt19937 or pcg)", name)
	}
}

// New constructs a generator of the given kind seeded with seed.
func New(kind Kind, seed uint64) (Generator, error) {
	switch kind {
	case MT19937, "":
		if seed > MaxMT19937Seed {
			return nil, errors.Newf(errors.ErrorTypeConfig, "seed %d out of range for mt19937 (max %d)", seed, uint64(MaxMT19937Seed))
		}
		return NewMT19937(uint32(seed)), nil
	case PCG:
		return NewPCG(seed), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unknown generator %q", kind)
	}
}

// NewPCG returns a PCG generator. The second PCG word is derived from seed
// so that a single integer fully determines the stream.
func NewPCG(seed uint64) Generator {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

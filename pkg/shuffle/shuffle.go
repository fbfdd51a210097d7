// Package shuffle provides the strategies used to order decks and seats.
// A match takes its shufflers at construction so tests can fix the outcome.
package shuffle

import (
	"truco-server/internal/rng"
)

// Shuffler reorders items in place
type Shuffler[T any] interface {
	Shuffle(items []T)
}

// FisherYates is a uniform random shuffle
type FisherYates[T any] struct {
	rng rng.Generator
}

// NewFisherYates returns a shuffler that draws from the generator
func NewFisherYates[T any](g rng.Generator) *FisherYates[T] {
	return &FisherYates[T]{rng: g}
}

// Shuffle implements Shuffler
func (f *FisherYates[T]) Shuffle(items []T) {
	for j := len(items) - 1; j > 0; j-- {
		i := f.rng.Intn(j + 1)

		items[i], items[j] = items[j], items[i]
	}
}

// Fixed puts the listed items first, in the listed order.
// Items that aren't listed keep their relative order after them, so the result is always
// a permutation of the input. Only meant for tests.
type Fixed[T comparable] []T

// Shuffle implements Shuffler
func (f Fixed[T]) Shuffle(items []T) {
	ordered := make([]T, 0, len(items))
	remaining := append([]T{}, items...)
	for _, want := range f {
		for i, item := range remaining {
			if item == want {
				ordered = append(ordered, item)
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}

	copy(items, append(ordered, remaining...))
}

// None leaves the items untouched
type None[T any] struct{}

// Shuffle implements Shuffler
func (None[T]) Shuffle([]T) {}

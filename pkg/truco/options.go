package truco

import (
	"truco-server/internal/rng"
	"truco-server/pkg/deck"
	"truco-server/pkg/shuffle"

	"github.com/sirupsen/logrus"
)

// Options are options for creating a new match
type Options struct {
	// CardShuffler orders a fresh deck before every deal
	CardShuffler shuffle.Shuffler[deck.Card]

	// SeatShuffler orders the four players once the match is full
	SeatShuffler shuffle.Shuffler[int64]

	Logger logrus.FieldLogger
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		CardShuffler: shuffle.NewFisherYates[deck.Card](rng.Crypto{}),
		SeatShuffler: shuffle.NewFisherYates[int64](rng.Crypto{}),
		Logger:       logrus.StandardLogger(),
	}
}

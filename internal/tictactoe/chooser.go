package tictactoe

import "math/rand"

// Chooser picks an index in [0, n). *rand.Rand satisfies it.
type Chooser interface {
	Intn(n int) int
}

type globalChooser struct{}

// DefaultChooser draws from the process-wide generator.
func DefaultChooser() Chooser {
	return globalChooser{}
}

func (globalChooser) Intn(n int) int {
	return rand.Intn(n) //nolint: gosec // it's ok
}

package pkg

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateGameID returns a random identifier used to correlate a game's log lines.
func GenerateGameID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}

	return id.String(), nil
}

// IDGenerator hands out game ids through GenerateGameID.
type IDGenerator struct{}

func (IDGenerator) GenerateGameID() (string, error) {
	return GenerateGameID()
}

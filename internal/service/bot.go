package service

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// BotService plays the human side of a game with uniformly random moves.
type BotService interface {
	MakeTurn(game *tictactoe.Game) (int, error)
}

type botService struct {
	chooser tictactoe.Chooser
}

func NewBotService(chooser tictactoe.Chooser) BotService {
	return &botService{
		chooser: chooser,
	}
}

func (that *botService) MakeTurn(game *tictactoe.Game) (int, error) {
	availableCells := game.Opens()
	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	chosenCell := availableCells[that.chooser.Intn(len(availableCells))]

	if err := game.TryHumanMove(chosenCell); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return chosenCell, nil
}

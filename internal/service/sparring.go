package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrInvalidGameCount = errors.New("number of games must not be negative")

// Stats tallies finished sparring games from the computer's point of view.
type Stats struct {
	Games        int `json:"games"`
	ComputerWins int `json:"computer_wins"`
	HumanWins    int `json:"human_wins"`
	Draws        int `json:"draws"`
}

func (that *Stats) record(outcome tictactoe.Outcome) {
	that.Games++

	switch outcome {
	case tictactoe.ComputerWin:
		that.ComputerWins++
	case tictactoe.HumanWin:
		that.HumanWins++
	case tictactoe.Draw:
		that.Draws++
	}
}

func (that Stats) String() string {
	return fmt.Sprintf("games: %d, computer wins: %d, bot wins: %d, draws: %d",
		that.Games, that.ComputerWins, that.HumanWins, that.Draws)
}

// SparringService pits the computer against the random bot.
type SparringService interface {
	Run(ctx context.Context, games int) (Stats, error)
}

type sparringService struct {
	logger  *slog.Logger
	bot     BotService
	chooser tictactoe.Chooser
}

func NewSparringService(logger *slog.Logger, bot BotService, chooser tictactoe.Chooser) SparringService {
	return &sparringService{
		logger:  logger.With("component", "sparring"),
		bot:     bot,
		chooser: chooser,
	}
}

// Run plays games one after another. On cancellation it returns the tally so far.
func (that *sparringService) Run(ctx context.Context, games int) (Stats, error) {
	log := that.logger.With("method", "Run")

	var stats Stats
	if games < 0 {
		return stats, fmt.Errorf("%w: %d", ErrInvalidGameCount, games)
	}

	for n := 0; n < games; n++ {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("sparring stopped after %d games: %w", stats.Games, err)
		}

		game, err := that.playGame()
		if err != nil {
			return stats, fmt.Errorf("failed to play game %d: %w", stats.Games+1, err)
		}

		log.DebugContext(ctx, "game finished", "result", game.Status(), "moves", game.Moves(), "board", game.Board().String())
		stats.record(game.Outcome())
	}

	log.InfoContext(ctx, "sparring finished",
		"games", stats.Games,
		"computerWins", stats.ComputerWins,
		"botWins", stats.HumanWins,
		"draws", stats.Draws,
	)

	return stats, nil
}

func (that *sparringService) playGame() (*tictactoe.Game, error) {
	game := tictactoe.New(tictactoe.WithChooser(that.chooser))

	for game.CheckOutcome() {
		if game.Turn() == tictactoe.AwaitingComputer {
			game.ComputerMove()
			continue
		}

		if _, err := that.bot.MakeTurn(game); err != nil {
			return nil, err
		}
	}

	return game, nil
}

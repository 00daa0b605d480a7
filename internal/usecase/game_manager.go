package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type gameIDGenerator interface {
	GenerateGameID() (string, error)
}

// GameManager runs one game at a time between a human and the computer. A new
// game replaces the previous one.
type GameManager struct {
	logger  *slog.Logger
	ids     gameIDGenerator
	options []tictactoe.Option

	gameID   string
	game     *tictactoe.Game
	lastMove int
}

func NewGameManager(logger *slog.Logger, ids gameIDGenerator, opts ...tictactoe.Option) *GameManager {
	return &GameManager{
		logger:  logger.With("component", "game_manager"),
		ids:     ids,
		options: opts,
	}
}

// NewGame starts a fresh game. When the computer moves first its move is
// already on the returned board.
func (that *GameManager) NewGame(ctx context.Context) (*entity.Game, error) {
	gameID, err := that.ids.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate game id: %w", err)
	}

	that.gameID = gameID
	that.game = tictactoe.New(that.options...)
	that.lastMove = 0

	that.logger.InfoContext(ctx, "game started", "gameID", gameID, "first", that.game.Turn().String())

	if that.game.Turn() == tictactoe.AwaitingComputer {
		that.computerTurn(ctx)
	}

	return that.snapshot(), nil
}

// MakeTurn plays the human's cell and, if the game goes on, the computer's reply.
// LastMove of the result is 0 when the computer did not reply. A rejected cell
// leaves the game as it was and the error says why.
func (that *GameManager) MakeTurn(ctx context.Context, cell int) (*entity.Game, error) {
	if that.game == nil {
		return nil, apperror.ErrNoActiveGame
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	log := that.logger.With("method", "MakeTurn", "gameID", that.gameID)

	if err := that.game.TryHumanMove(cell); err != nil {
		log.DebugContext(ctx, "move rejected", "cell", cell, "error", err)
		return that.snapshot(), fmt.Errorf("failed make turn: %w", err)
	}

	log.DebugContext(ctx, "human moved", "cell", cell)
	that.lastMove = 0

	if that.game.CheckOutcome() {
		that.computerTurn(ctx)
	} else {
		that.logFinished(ctx)
	}

	return that.snapshot(), nil
}

// Game returns the current game.
func (that *GameManager) Game() (*entity.Game, error) {
	if that.game == nil {
		return nil, apperror.ErrNoActiveGame
	}

	return that.snapshot(), nil
}

func (that *GameManager) computerTurn(ctx context.Context) {
	that.lastMove = that.game.ComputerMove()

	that.logger.DebugContext(ctx, "computer moved", "gameID", that.gameID, "cell", that.lastMove)

	if !that.game.CheckOutcome() {
		that.logFinished(ctx)
	}
}

func (that *GameManager) logFinished(ctx context.Context) {
	that.logger.InfoContext(ctx, "game finished",
		"gameID", that.gameID,
		"result", that.game.Status(),
		"moves", that.game.Moves(),
	)
}

func (that *GameManager) snapshot() *entity.Game {
	view := &entity.Game{
		ID:       that.gameID,
		Moves:    that.game.Moves(),
		LastMove: that.lastMove,
	}

	board := that.game.Board()
	for cell := 1; cell <= tictactoe.BoardSize; cell++ {
		switch board[cell] {
		case tictactoe.Human:
			view.Board[cell-1] = entity.HumanMark
		case tictactoe.Computer:
			view.Board[cell-1] = entity.ComputerMark
		default:
			view.Board[cell-1] = entity.EmptyCell
		}
	}

	switch that.game.Outcome() {
	case tictactoe.Live:
		view.Status = entity.StatusOngoing
		view.Turn = entity.ComputerMark
		if that.game.Turn() == tictactoe.AwaitingHuman {
			view.Turn = entity.HumanMark
		}

		return view
	case tictactoe.ComputerWin:
		view.Winner = entity.ComputerMark
	case tictactoe.HumanWin:
		view.Winner = entity.HumanMark
	case tictactoe.Draw:
		view.Winner = entity.PlayerTie
	}

	view.Status = entity.StatusFinished
	view.Result = that.game.Status()

	if line, ok := that.game.WinningLine(); ok {
		view.WinningLine = line[:]
		slices.Sort(view.WinningLine)
	}

	return view
}

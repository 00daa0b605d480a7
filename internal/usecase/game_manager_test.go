package usecase

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
)

var errIDSource = errors.New("id source exhausted")

type mockIDGenerator struct {
	mock.Mock
}

func (that *mockIDGenerator) GenerateGameID() (string, error) {
	args := that.Called()
	return args.String(0), args.Error(1)
}

func newIDs(t *testing.T, ids ...string) *mockIDGenerator {
	t.Helper()

	generator := &mockIDGenerator{}
	for _, id := range ids {
		generator.On("GenerateGameID").Return(id, nil).Once()
	}

	t.Cleanup(func() {
		generator.AssertExpectations(t)
	})

	return generator
}

func countMarks(game *entity.Game, mark string) int {
	var count int
	for _, cell := range game.Board {
		if cell == mark {
			count++
		}
	}

	return count
}

func TestGameManager_NewGame(t *testing.T) {
	t.Run("Human moves first", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a manager where the human always starts
		manager := NewGameManager(st.Logger, newIDs(t, "game-1"), tictactoe.WithFirstTurn(tictactoe.AwaitingHuman))

		// When: a new game is started
		game, err := manager.NewGame(ctx)
		require.NoError(t, err)

		// Then: the board is empty and waits for the human
		expectedGame := &entity.Game{
			ID:     "game-1",
			Status: entity.StatusOngoing,
			Turn:   entity.HumanMark,
		}

		require.Equal(t, expectedGame, game)
		assert.True(t, game.IsHumanTurn())
	})

	t.Run("Computer moves first", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a manager where the computer always starts
		manager := NewGameManager(st.Logger, newIDs(t, "game-2"), tictactoe.WithFirstTurn(tictactoe.AwaitingComputer))

		// When: a new game is started
		game, err := manager.NewGame(ctx)
		require.NoError(t, err)

		// Then: the computer's opening is already on the board
		assert.Equal(t, 1, game.Moves)
		assert.Equal(t, 1, countMarks(game, entity.ComputerMark))
		assert.Contains(t, []int{1, 3, 5, 7, 9}, game.LastMove)
		assert.Equal(t, entity.ComputerMark, game.Mark(game.LastMove))
		assert.Equal(t, entity.HumanMark, game.Turn)
	})

	t.Run("Id generation fails", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: an id source that fails
		ids := &mockIDGenerator{}
		ids.On("GenerateGameID").Return("", errIDSource).Once()
		manager := NewGameManager(st.Logger, ids)

		// When: a new game is started
		game, err := manager.NewGame(ctx)

		// Then: the error is returned and no game exists
		require.ErrorIs(t, err, errIDSource)
		assert.Nil(t, game)

		_, err = manager.Game()
		require.ErrorIs(t, err, apperror.ErrNoActiveGame)
		ids.AssertExpectations(t)
	})

	t.Run("New game replaces the previous one", func(t *testing.T) {
		ctx, st := suite.New(t)

		manager := NewGameManager(st.Logger, newIDs(t, "first", "second"), tictactoe.WithFirstTurn(tictactoe.AwaitingHuman))

		_, err := manager.NewGame(ctx)
		require.NoError(t, err)
		_, err = manager.MakeTurn(ctx, 5)
		require.NoError(t, err)

		game, err := manager.NewGame(ctx)
		require.NoError(t, err)

		assert.Equal(t, "second", game.ID)
		assert.Equal(t, 0, game.Moves)
		assert.Equal(t, [9]string{}, game.Board)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	t.Run("No active game", func(t *testing.T) {
		ctx, st := suite.New(t)

		manager := NewGameManager(st.Logger, newIDs(t))

		_, err := manager.MakeTurn(ctx, 5)

		require.ErrorIs(t, err, apperror.ErrNoActiveGame)
	})

	t.Run("Computer replies", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a new game where the human starts
		manager := NewGameManager(st.Logger, newIDs(t, "game-1"), tictactoe.WithFirstTurn(tictactoe.AwaitingHuman))
		_, err := manager.NewGame(ctx)
		require.NoError(t, err)

		// When: the human takes the center
		game, err := manager.MakeTurn(ctx, 5)
		require.NoError(t, err)

		// Then: the computer has answered and it is the human's turn again
		assert.Equal(t, entity.HumanMark, game.Mark(5))
		assert.Equal(t, 2, game.Moves)
		assert.Equal(t, 1, countMarks(game, entity.ComputerMark))
		assert.Equal(t, entity.ComputerMark, game.Mark(game.LastMove))
		assert.True(t, game.IsHumanTurn())
	})

	t.Run("Rejected cells leave the game unchanged", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a game after one exchange
		manager := NewGameManager(st.Logger, newIDs(t, "game-1"), tictactoe.WithFirstTurn(tictactoe.AwaitingHuman))
		_, err := manager.NewGame(ctx)
		require.NoError(t, err)
		before, err := manager.MakeTurn(ctx, 5)
		require.NoError(t, err)

		// When: the human picks an occupied or invalid cell
		after, err := manager.MakeTurn(ctx, 5)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, after)

		after, err = manager.MakeTurn(ctx, 0)
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.Equal(t, before, after)

		after, err = manager.MakeTurn(ctx, before.LastMove)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)

		// Then: the game is exactly as it was
		assert.Equal(t, before, after)
	})

	t.Run("Canceled context", func(t *testing.T) {
		ctx, st := suite.New(t)

		manager := NewGameManager(st.Logger, newIDs(t, "game-1"), tictactoe.WithFirstTurn(tictactoe.AwaitingHuman))
		_, err := manager.NewGame(ctx)
		require.NoError(t, err)

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, err = manager.MakeTurn(canceled, 5)
		require.ErrorIs(t, err, context.Canceled)

		game, err := manager.Game()
		require.NoError(t, err)
		assert.Equal(t, 0, game.Moves)
	})

	t.Run("Play to the end", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a seeded game
		rnd := rand.New(rand.NewSource(3)) //nolint: gosec // it's ok
		manager := NewGameManager(st.Logger, newIDs(t, "game-1"), tictactoe.WithChooser(rnd))
		game, err := manager.NewGame(ctx)
		require.NoError(t, err)

		// When: the human plays the lowest open cell until the game ends
		for game.IsOngoing() {
			cell := 0
			for i, mark := range game.Board {
				if mark == entity.EmptyCell {
					cell = i + 1
					break
				}
			}

			game, err = manager.MakeTurn(ctx, cell)
			require.NoError(t, err)
		}

		// Then: the game reports its result and rejects further turns
		require.True(t, game.IsFinished())
		assert.Empty(t, game.Turn)
		assert.Contains(t, []string{entity.PlayerX, entity.PlayerO, entity.PlayerTie}, game.Winner)
		assert.Contains(t, []string{"computer wins", "human wins", "draw"}, game.Result)

		if game.Winner == entity.PlayerTie {
			assert.Empty(t, game.WinningLine)
			assert.Equal(t, 9, game.Moves)
		} else {
			require.Len(t, game.WinningLine, 3)
			for _, cell := range game.WinningLine {
				assert.Equal(t, game.Winner, game.Mark(cell))
				assert.True(t, game.OnWinningLine(cell))
			}
		}

		_, err = manager.MakeTurn(ctx, 1)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var errNotANumber = errors.New("cell must be a number")

func (that *Server) handleNewGame(ctx context.Context, _ []string, out io.Writer) error {
	game, err := that.uGame.NewGame(ctx)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	if game.LastMove != 0 {
		write(out, "I go first and take cell %d.\n", game.LastMove)
	} else {
		write(out, "You go first. You are %s.\n", entity.HumanMark)
	}

	write(out, "%s", renderBoard(game))

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, args []string, out io.Writer) error {
	log := that.logger.With("method", "handleGameTurn")

	if len(args) == 0 {
		write(out, "Which cell? Type a number from 1 to 9.\n")
		return nil
	}

	cell, err := parseCell(args[0])
	if err != nil {
		write(out, "%q is not a cell. Type a number from 1 to 9.\n", args[0])
		return nil
	}

	game, err := that.uGame.MakeTurn(ctx, cell)
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		write(out, "Cell %d is already taken.\n", cell)
		return nil
	case errors.Is(err, apperror.ErrInvalidCell):
		write(out, "Cell %d is not on the board. Type a number from 1 to 9.\n", cell)
		return nil
	case errors.Is(err, apperror.ErrGameFinished):
		write(out, "Game over. Type %q to play again.\n", commandNew)
		return nil
	case errors.Is(err, apperror.ErrNoActiveGame):
		write(out, "No game in progress. Type %q to start one.\n", commandNew)
		return nil
	case err != nil:
		log.Error("failed to make turn", "cell", cell, "error", err)
		return fmt.Errorf("failed to make turn: %w", err)
	}

	if game.LastMove != 0 {
		write(out, "I take cell %d.\n", game.LastMove)
	}

	write(out, "%s", renderBoard(game))

	if game.IsFinished() {
		writeResult(out, game)
	}

	return nil
}

func (that *Server) handleBoard(_ context.Context, _ []string, out io.Writer) error {
	game, err := that.uGame.Game()
	if err != nil {
		write(out, "No game in progress. Type %q to start one.\n", commandNew)
		return nil //nolint: nilerr // reported to the player
	}

	write(out, "%s", renderBoard(game))

	if game.IsFinished() {
		writeResult(out, game)
	}

	return nil
}

func (that *Server) handleHelp(_ context.Context, _ []string, out io.Writer) error {
	write(out, "%s", strings.Join([]string{
		"Commands:",
		"  1-9 or move N  take cell N",
		"  board          show the board",
		"  new            start a new game",
		"  quit           leave",
		"",
	}, "\n"))

	return nil
}

func (that *Server) handleQuit(_ context.Context, _ []string, _ io.Writer) error {
	return errQuit
}

func parseCell(arg string) (int, error) {
	cell, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNotANumber, arg)
	}

	return cell, nil
}

func writeResult(out io.Writer, game *entity.Game) {
	switch game.Winner {
	case entity.ComputerMark:
		write(out, "I crush you! ")
	case entity.HumanMark:
		write(out, "You win! ")
	default:
		write(out, "Tie game. ")
	}

	write(out, "Result: %s.", game.Result)

	if len(game.WinningLine) > 0 {
		cells := make([]string, 0, len(game.WinningLine))
		for _, cell := range game.WinningLine {
			cells = append(cells, strconv.Itoa(cell))
		}

		write(out, " Winning line: %s.", strings.Join(cells, " "))
	}

	write(out, " Type %q to play again.\n", commandNew)
}

// renderBoard draws the board with free cells shown by their number.
func renderBoard(game *entity.Game) string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		for col := 1; col <= 3; col++ {
			cell := row*3 + col

			mark := game.Mark(cell)
			if mark == entity.EmptyCell {
				mark = strconv.Itoa(cell)
			}

			if col > 1 {
				sb.WriteByte('|')
			}
			sb.WriteString(" " + mark + " ")
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

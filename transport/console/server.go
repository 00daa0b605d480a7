package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	commandNew   = "new"
	commandMove  = "move"
	commandBoard = "board"
	commandHelp  = "help"
	commandQuit  = "quit"
	commandExit  = "exit"
)

var errQuit = errors.New("quit requested")

type uGame interface {
	NewGame(ctx context.Context) (*entity.Game, error)
	MakeTurn(ctx context.Context, cell int) (*entity.Game, error)
	Game() (*entity.Game, error)
}

// Server plays games over a line-oriented text stream, one command per line.
type Server struct {
	logger *slog.Logger
	uGame  uGame

	handlers map[string]func(ctx context.Context, args []string, out io.Writer) error
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "console"),
		uGame:  uGame,

		handlers: make(map[string]func(context.Context, []string, io.Writer) error),
	}

	server.handlers[commandNew] = server.handleNewGame
	server.handlers[commandMove] = server.handleGameTurn
	server.handlers[commandBoard] = server.handleBoard
	server.handlers[commandHelp] = server.handleHelp
	server.handlers[commandQuit] = server.handleQuit
	server.handlers[commandExit] = server.handleQuit

	return server
}

// Start opens a game and serves commands from in until it is exhausted, the
// player quits or ctx is canceled.
func (that *Server) Start(ctx context.Context, in io.Reader, out io.Writer) error {
	log := that.logger.With("method", "Start")

	if ctx.Err() != nil {
		return nil
	}

	write(out, "TicTacToe. Cells are numbered 1-9 from the top left; type %q for commands.\n", commandHelp)

	if err := that.handleNewGame(ctx, nil, out); err != nil {
		return err
	}

	lines, readErr := readLines(ctx, in)
	for {
		that.prompt(out)

		var line string
		select {
		case <-ctx.Done():
			log.Info("Context canceled, leaving console")
			return nil
		case next, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				return nil
			}

			line = next
		}

		err := that.handleLine(ctx, line, out)
		if errors.Is(err, errQuit) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// readLines scans in on its own goroutine so a blocked read does not hold up
// cancellation. lines is closed when in is exhausted, readErr then carries the
// scanner error.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		readErr <- scanner.Err()
	}()

	return lines, readErr
}

func (that *Server) handleLine(ctx context.Context, line string, out io.Writer) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	// a bare number is a move
	if _, err := parseCell(fields[0]); err == nil {
		return that.handleGameTurn(ctx, fields, out)
	}

	handler, ok := that.handlers[fields[0]]
	if !ok {
		write(out, "Unknown command %q. Type %q for commands.\n", fields[0], commandHelp)
		return nil
	}

	return handler(ctx, fields[1:], out)
}

func (that *Server) prompt(out io.Writer) {
	game, err := that.uGame.Game()
	if err == nil && game.IsHumanTurn() {
		write(out, "your move? ")
		return
	}

	write(out, "> ")
}

func write(out io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(out, format, args...)
}

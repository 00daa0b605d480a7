package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Turn marks the player expected to move next. The zero value means the game
// has not been started.
type Turn int

const (
	AwaitingHuman Turn = iota + 1
	AwaitingComputer
)

func (that Turn) String() string {
	switch that {
	case AwaitingHuman:
		return "human"
	case AwaitingComputer:
		return "computer"
	default:
		return "not started"
	}
}

type Outcome int

const (
	Live Outcome = iota
	ComputerWin
	HumanWin
	Draw
)

// String returns the status text shown to players; empty while the game is live.
func (that Outcome) String() string {
	switch that {
	case ComputerWin:
		return "computer wins"
	case HumanWin:
		return "human wins"
	case Draw:
		return "draw"
	default:
		return ""
	}
}

const noMove = -1

var (
	// openingCells doubles the center so it is picked twice as often as a corner.
	openingCells = [...]int{1, 3, 5, 7, 9, 5}

	// strategy is the order in which line sums are targeted: win, block, build, contest.
	strategy = [...]int{computerThreat, humanThreat, computerSingle, humanSingle}

	// fallbackCells is center, corners, then edges.
	fallbackCells = [...]int{5, 1, 3, 9, 7, 2, 4, 6, 8}
)

// Game is the state of a single game against the computer.
type Game struct {
	board   Board
	moves   int
	turn    Turn
	outcome Outcome
	threats Threats

	chooser Chooser
}

type Option func(*Game)

// WithChooser replaces the random source used for every choice the game makes.
func WithChooser(chooser Chooser) Option {
	return func(game *Game) {
		game.chooser = chooser
	}
}

// WithFirstTurn decides who moves first instead of drawing it at random.
func WithFirstTurn(turn Turn) Option {
	return func(game *Game) {
		game.turn = turn
	}
}

// New starts a game on an empty board. Unless WithFirstTurn is given, each player
// is equally likely to move first.
func New(opts ...Option) *Game {
	game := &Game{
		chooser: DefaultChooser(),
	}

	for _, opt := range opts {
		opt(game)
	}

	if game.turn != AwaitingHuman && game.turn != AwaitingComputer {
		game.turn = AwaitingHuman
		if game.chooser.Intn(2) == 1 {
			game.turn = AwaitingComputer
		}
	}

	game.CheckOutcome()

	return game
}

// CheckOutcome re-evaluates the threat vector and records the outcome.
// It returns true while the game continues.
func (that *Game) CheckOutcome() bool {
	that.threats = Evaluate(that.board)

	switch {
	case that.threats.Contains(computerWon):
		that.outcome = ComputerWin
	case that.threats.Contains(humanWon):
		that.outcome = HumanWin
	case that.moves >= BoardSize:
		that.outcome = Draw
	default:
		that.outcome = Live
	}

	return that.outcome == Live
}

// ComputerMove picks and plays the computer's move and returns its cell.
// Calling it on a finished game or out of turn is a programming error and panics.
func (that *Game) ComputerMove() int {
	if that.outcome != Live {
		panic(fmt.Errorf("computer move: %w: %s", apperror.ErrGameFinished, that.outcome))
	}

	if that.turn != AwaitingComputer {
		panic(fmt.Errorf("computer move: %w: awaiting %s", apperror.ErrNotYourTurn, that.turn))
	}

	cell := that.selectMove()
	if cell == noMove {
		panic(fmt.Errorf("computer move: %w on a live board after %d moves", apperror.ErrNoMoveAvailable, that.moves))
	}

	that.place(cell, Computer, AwaitingHuman)

	return cell
}

// HumanMove plays cell for the human. It returns false and leaves the game
// untouched when the cell is out of range or occupied, the game is over, or it
// is not the human's turn.
func (that *Game) HumanMove(cell int) bool {
	return that.TryHumanMove(cell) == nil
}

// TryHumanMove is HumanMove reporting why a move was rejected.
func (that *Game) TryHumanMove(cell int) error {
	if err := that.validateHumanMove(cell); err != nil {
		return err
	}

	that.place(cell, Human, AwaitingComputer)

	return nil
}

func (that *Game) validateHumanMove(cell int) error {
	switch {
	case that.outcome != Live:
		return apperror.ErrGameFinished
	case that.turn == 0:
		return apperror.ErrGameIsNotStarted
	case that.turn != AwaitingHuman:
		return apperror.ErrNotYourTurn
	case !IsValidCell(cell):
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	case that.board[cell] != Empty:
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	default:
		return nil
	}
}

// place updates board, counter and turn together, then refreshes the outcome.
func (that *Game) place(cell int, owner Cell, next Turn) {
	that.board[cell] = owner
	that.moves++
	that.turn = next
	that.CheckOutcome()
}

func (that *Game) selectMove() int {
	if that.moves == 0 {
		return openingCells[that.chooser.Intn(len(openingCells))]
	}

	threats := Evaluate(that.board)
	for _, target := range strategy {
		lines := make([]int, 0, len(threats))
		for i, sum := range threats {
			if sum == target {
				lines = append(lines, i)
			}
		}

		if len(lines) == 0 {
			continue
		}

		line := WinLines[lines[that.chooser.Intn(len(lines))]]

		cells := make([]int, 0, len(line))
		for _, cell := range line {
			if that.board[cell] == Empty {
				cells = append(cells, cell)
			}
		}

		// a fully occupied line can still sum to ±1
		if len(cells) > 0 {
			return cells[that.chooser.Intn(len(cells))]
		}
	}

	for _, cell := range fallbackCells {
		if that.board[cell] == Empty {
			return cell
		}
	}

	return noMove
}

func (that *Game) Board() Board {
	return that.board
}

func (that *Game) Opens() []int {
	return that.board.Opens()
}

func (that *Game) Moves() int {
	return that.moves
}

func (that *Game) Turn() Turn {
	return that.turn
}

func (that *Game) Outcome() Outcome {
	return that.outcome
}

// Status is the outcome text, empty while the game is live.
func (that *Game) Status() string {
	return that.outcome.String()
}

func (that *Game) IsFinished() bool {
	return that.outcome != Live
}

// Threats returns the threat vector as of the last move.
func (that *Game) Threats() Threats {
	return that.threats
}

// WinningLine returns the completed line of a won game.
func (that *Game) WinningLine() (Line, bool) {
	var sum int
	switch that.outcome {
	case ComputerWin:
		sum = computerWon
	case HumanWin:
		sum = humanWon
	default:
		return Line{}, false
	}

	i := that.threats.Index(sum)
	if i < 0 {
		return Line{}, false
	}

	return WinLines[i], true
}

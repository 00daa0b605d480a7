package tictactoe

import "strings"

// Cell is the owner of a board position. Values are chosen so that a line can be
// evaluated by summing its cells.
type Cell int8

const (
	Empty    Cell = 0
	Computer Cell = 1
	Human    Cell = -1
)

const (
	BoardSize = 9

	computerWon    = 3
	humanWon       = -3
	computerThreat = 2
	humanThreat    = -2
	computerSingle = 1
	humanSingle    = -1
)

// Board holds cells 1..9 in row-major order. Index 0 is unused so cell numbers
// match the ones shown to players.
type Board [BoardSize + 1]Cell

// Line is a row, column or diagonal of three cells.
type Line [3]int

// WinLines lists every winning line. Lines through the center come first; the
// order biases the heuristic and must not change.
var WinLines = [8]Line{
	{5, 1, 9},
	{5, 3, 7},
	{5, 2, 8},
	{5, 4, 6},
	{1, 3, 2},
	{7, 9, 8},
	{1, 7, 4},
	{3, 9, 6},
}

// Threats holds one line sum per entry of WinLines.
type Threats [len(WinLines)]int

// Evaluate sums every win line of the board.
func Evaluate(board Board) Threats {
	var threats Threats
	for i, line := range WinLines {
		threats[i] = int(board[line[0]]) + int(board[line[1]]) + int(board[line[2]])
	}

	return threats
}

// IsValidCell reports whether cell addresses a board position.
func IsValidCell(cell int) bool {
	return cell >= 1 && cell <= BoardSize
}

// Opens returns the empty cells in ascending order.
func (that Board) Opens() []int {
	opens := make([]int, 0, BoardSize)
	for cell := 1; cell <= BoardSize; cell++ {
		if that[cell] == Empty {
			opens = append(opens, cell)
		}
	}

	return opens
}

// Contains reports whether value appears in the threat vector.
func (that Threats) Contains(value int) bool {
	return that.Index(value) >= 0
}

// Index returns the first line whose sum equals value, or -1.
func (that Threats) Index(value int) int {
	for i, sum := range that {
		if sum == value {
			return i
		}
	}

	return -1
}

// String renders the board as three rows: X for the human, O for the computer.
func (that Board) String() string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		for col := 1; col <= 3; col++ {
			if col > 1 {
				sb.WriteByte(' ')
			}
			sb.WriteString(that[row*3+col].Mark())
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Mark is the single-character symbol of the cell owner.
func (that Cell) Mark() string {
	switch that {
	case Human:
		return "X"
	case Computer:
		return "O"
	default:
		return "_"
	}
}

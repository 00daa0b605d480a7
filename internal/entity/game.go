package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""

	// HumanMark and ComputerMark are the marks each side plays with.
	HumanMark    = PlayerX
	ComputerMark = PlayerO
)

// Game is what a presentation layer needs to render one game against the computer.
// Board holds cells 1..9 at indexes 0..8.
type Game struct {
	ID          string    `json:"id"`
	Board       [9]string `json:"board"`
	Winner      string    `json:"winner"`
	Status      string    `json:"status"`
	Result      string    `json:"result,omitempty"`
	Turn        string    `json:"player_turn"`
	Moves       int       `json:"moves"`
	LastMove    int       `json:"last_move,omitempty"`
	WinningLine []int     `json:"winning_line,omitempty"`
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// IsHumanTurn reports whether the game waits for the human.
func (that *Game) IsHumanTurn() bool {
	return that.IsOngoing() && that.Turn == HumanMark
}

// Mark returns the mark at a 1-based cell, or EmptyCell when out of range.
func (that *Game) Mark(cell int) string {
	if cell < 1 || cell > len(that.Board) {
		return EmptyCell
	}

	return that.Board[cell-1]
}

// OnWinningLine reports whether cell belongs to the completed line.
func (that *Game) OnWinningLine(cell int) bool {
	for _, c := range that.WinningLine {
		if c == cell {
			return true
		}
	}

	return false
}

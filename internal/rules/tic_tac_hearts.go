package rules

import (
	"encoding/json"

	"github.com/rocketscienceinc/celebration-backend/internal/entity"
)

const boardSize = 3

// WinCombos lists the 8 winning lines as flat cell indexes (row*3 + col).
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type cellTarget struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

func newTicTacHeartsState() *entity.TicTacHeartsState {
	return &entity.TicTacHeartsState{
		CurrentPlayer: 0,
		Moves:         []entity.TicTacHeartsMove{},
	}
}

func applyTicTacHeartsMove(state *entity.TicTacHeartsState, move entity.Move, seat int) Outcome {
	noop := Outcome{State: state, Status: entity.StatusActive}

	row, col, ok := validateMove(state, move.MoveData, seat)
	if !ok {
		return noop
	}

	next := state.Clone()
	mark := entity.Marks[next.CurrentPlayer]

	next.Board[row][col] = mark
	next.Moves = append(next.Moves, entity.TicTacHeartsMove{
		PlayerID: move.PlayerID,
		Row:      row,
		Col:      col,
		Mark:     mark,
	})

	switch checkGameStatus(next.Board) {
	case mark:
		return Outcome{State: next, Status: entity.StatusCompleted, Winner: move.PlayerID}
	case entity.WinnerDraw:
		return Outcome{State: next, Status: entity.StatusCompleted, Winner: entity.WinnerDraw}
	default:
		next.CurrentPlayer = toggleSeat(next.CurrentPlayer)
		return Outcome{State: next, Status: entity.StatusActive}
	}
}

// validateMove - checks the payload shape, the mover's turn and the target cell.
func validateMove(state *entity.TicTacHeartsState, payload json.RawMessage, seat int) (int, int, bool) {
	var target cellTarget
	if err := json.Unmarshal(payload, &target); err != nil {
		return 0, 0, false
	}

	if target.Row == nil || target.Col == nil {
		return 0, 0, false
	}

	row, col := *target.Row, *target.Col
	if row < 0 || row >= boardSize || col < 0 || col >= boardSize {
		return 0, 0, false
	}

	if state.CurrentPlayer < 0 || state.CurrentPlayer >= len(entity.Marks) || seat != state.CurrentPlayer {
		return 0, 0, false
	}

	if state.Board[row][col] != entity.EmptyMark {
		return 0, 0, false
	}

	return row, col, true
}

func toggleSeat(seat int) int {
	return 1 - seat
}

// checkGameStatus returns the winning mark, entity.WinnerDraw for a full board, or "".
func checkGameStatus(board [boardSize][boardSize]string) string {
	cell := func(index int) string {
		return board[index/boardSize][index%boardSize]
	}

	for _, combo := range WinCombos {
		a, b, c := cell(combo[0]), cell(combo[1]), cell(combo[2])
		if a != entity.EmptyMark && a == b && b == c {
			return a
		}
	}

	for index := 0; index < boardSize*boardSize; index++ {
		if cell(index) == entity.EmptyMark {
			return ""
		}
	}

	return entity.WinnerDraw
}

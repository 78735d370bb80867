package domain

import (
	"errors"
	"reflect"
	"testing"
)

// tieSequence fills a 6x7 board with alternating moves and never lets
// either player line up four.
var tieSequence = []int{
	0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 4, 2,
	2, 2, 2, 2, 2, 3, 3, 3, 3, 3, 3, 4, 4, 4,
	4, 4, 5, 5, 5, 5, 5, 6, 6, 6, 6, 6, 6, 5,
}

func startedGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame(DefaultRows, DefaultColumns)
	if err := g.Start("red", "yellow"); err != nil {
		t.Fatalf("start: %v", err)
	}
	return g
}

func mustDrop(t *testing.T, g *Game, column int) MoveResult {
	t.Helper()
	res, err := g.DropPiece(column)
	if err != nil {
		t.Fatalf("drop in column %d: %v", column, err)
	}
	return res
}

func TestNewGameIsNotStarted(t *testing.T) {
	g := NewGame(6, 7)
	if g.State() != StateNotStarted {
		t.Fatalf("expected not started, got %s", g.State())
	}
	if g.IsGameOver() {
		t.Fatalf("fresh game reported over")
	}
	if g.CurrentPlayerID() != Empty {
		t.Fatalf("expected no current player, got %d", g.CurrentPlayerID())
	}
	if _, err := g.DropPiece(0); !errors.Is(err, ErrGameNotStarted) {
		t.Fatalf("expected ErrGameNotStarted, got %v", err)
	}
}

func TestStartInitializesPlayers(t *testing.T) {
	g := startedGame(t)

	if g.State() != StateInProgress {
		t.Fatalf("expected in progress, got %s", g.State())
	}
	if g.CurrentPlayerID() != Player1 {
		t.Fatalf("player 1 moves first, got %d", g.CurrentPlayerID())
	}
	want := []Player{{ID: Player1, Color: "red"}, {ID: Player2, Color: "yellow"}}
	if !reflect.DeepEqual(g.Players(), want) {
		t.Fatalf("players = %+v, want %+v", g.Players(), want)
	}
}

func TestStartMissingColor(t *testing.T) {
	cases := []struct{ c1, c2 string }{
		{"", "blue"},
		{"red", ""},
		{"", ""},
		{"   ", "blue"},
	}
	for _, tc := range cases {
		g := NewGame(6, 7)
		if err := g.Start(tc.c1, tc.c2); !errors.Is(err, ErrMissingColor) {
			t.Errorf("Start(%q, %q): expected ErrMissingColor, got %v", tc.c1, tc.c2, err)
		}
		if g.State() != StateNotStarted {
			t.Errorf("Start(%q, %q): state = %s, want not started", tc.c1, tc.c2, g.State())
		}
		if g.Players() != nil {
			t.Errorf("Start(%q, %q): players created on failure", tc.c1, tc.c2)
		}
	}
}

func TestStartMissingColorKeepsRunningGame(t *testing.T) {
	g := startedGame(t)
	mustDrop(t, g, 2)

	if err := g.Start("", "blue"); !errors.Is(err, ErrMissingColor) {
		t.Fatalf("expected ErrMissingColor, got %v", err)
	}
	if g.CellAt(5, 2) != Player1 || g.MoveCount() != 1 {
		t.Fatalf("failed restart mutated the running game")
	}
}

func TestDropPieceInvalidColumn(t *testing.T) {
	g := startedGame(t)
	before := g.Board()

	for _, col := range []int{-1, 7} {
		if _, err := g.DropPiece(col); !errors.Is(err, ErrInvalidColumn) {
			t.Errorf("column %d: expected ErrInvalidColumn, got %v", col, err)
		}
	}
	if !reflect.DeepEqual(before, g.Board()) {
		t.Fatalf("invalid drop mutated the board")
	}
	if g.CurrentPlayerID() != Player1 {
		t.Fatalf("invalid drop passed the turn")
	}
}

func TestTurnsAlternate(t *testing.T) {
	g := startedGame(t)

	moves := []int{3, 3, 4, 4, 2}
	for _, col := range moves {
		mover := g.CurrentPlayerID()
		res := mustDrop(t, g, col)
		if res.Player != mover {
			t.Fatalf("result player %d, want %d", res.Player, mover)
		}
		if res.Status != MoveContinuing {
			t.Fatalf("unexpected status %s", res.Status)
		}
		if g.CurrentPlayerID() != mover.Other() || res.NextPlayer != mover.Other() {
			t.Fatalf("turn did not pass from %d", mover)
		}
	}
	if g.MoveCount() != len(moves) {
		t.Fatalf("move count = %d, want %d", g.MoveCount(), len(moves))
	}
}

func TestDropPieceReportsLandingRow(t *testing.T) {
	g := startedGame(t)

	first := mustDrop(t, g, 3)
	second := mustDrop(t, g, 3)
	if first.Row != 5 || first.Column != 3 {
		t.Fatalf("first piece at (%d,%d), want (5,3)", first.Row, first.Column)
	}
	if second.Row != 4 {
		t.Fatalf("second piece at row %d, want 4", second.Row)
	}
	if g.CellAt(5, 3) != Player1 || g.CellAt(4, 3) != Player2 {
		t.Fatalf("cells not occupied by the right players")
	}
}

func TestColumnFullIsNoOp(t *testing.T) {
	g := startedGame(t)
	// alternating pieces in one column never line up four
	for i := 0; i < DefaultRows; i++ {
		mustDrop(t, g, 0)
	}

	before := g.Board()
	turn := g.CurrentPlayerID()
	moves := g.MoveCount()

	if _, err := g.DropPiece(0); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
	if !reflect.DeepEqual(before, g.Board()) {
		t.Fatalf("full column drop mutated the board")
	}
	if g.CurrentPlayerID() != turn || g.MoveCount() != moves {
		t.Fatalf("full column drop changed turn state")
	}
}

func TestVerticalWinInColumnZero(t *testing.T) {
	g := startedGame(t)

	var res MoveResult
	for i := 0; i < 4; i++ {
		res = mustDrop(t, g, 0)
		if i == 3 {
			break
		}
		if res.Status != MoveContinuing {
			t.Fatalf("game ended early on move %d", i)
		}
		mustDrop(t, g, 1)
	}

	if res.Status != MoveWon || res.Winner != Player1 {
		t.Fatalf("expected player 1 win, got %+v", res)
	}
	if !g.IsGameOver() {
		t.Fatalf("game not over after win")
	}
	outcome, winner := g.Outcome()
	if outcome != OutcomeWin || winner != Player1 {
		t.Fatalf("outcome = %s/%d", outcome, winner)
	}
}

func TestFullBoardTie(t *testing.T) {
	g := startedGame(t)

	var res MoveResult
	for i, col := range tieSequence {
		res = mustDrop(t, g, col)
		if i < len(tieSequence)-1 && res.Status != MoveContinuing {
			t.Fatalf("move %d ended the game with %s", i, res.Status)
		}
	}

	if res.Status != MoveTied {
		t.Fatalf("expected tie, got %s", res.Status)
	}
	outcome, winner := g.Outcome()
	if outcome != OutcomeTie || winner != Empty {
		t.Fatalf("outcome = %s/%d", outcome, winner)
	}
	if g.MoveCount() != DefaultRows*DefaultColumns {
		t.Fatalf("move count = %d", g.MoveCount())
	}
}

func TestWinOnLastCellBeatsTie(t *testing.T) {
	g := NewGame(4, 4)
	if err := g.Start("red", "yellow"); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Fill the board so that player 2's last piece, in the final empty cell
	// (0,3), completes the anti-diagonal (0,3) (1,2) (2,1) (3,0).
	//   2 1 1 .
	//   1 2 2 1
	//   2 2 1 1
	//   2 1 1 2
	b := g.board
	layout := [][]PlayerID{
		{Player2, Player1, Player1, Empty},
		{Player1, Player2, Player2, Player1},
		{Player2, Player2, Player1, Player1},
		{Player2, Player1, Player1, Player2},
	}
	for y, row := range layout {
		for x, cell := range row {
			if cell != Empty {
				b.cells[y][x] = cell
			}
		}
	}
	if HasFourInARow(b, Player1) || HasFourInARow(b, Player2) {
		t.Fatalf("layout already contains a win")
	}
	g.currentPlayer = Player2

	res := mustDrop(t, g, 3)
	if res.Row != 0 {
		t.Fatalf("expected landing on row 0, got %d", res.Row)
	}
	if !g.board.IsFull() {
		t.Fatalf("board should be full")
	}
	if res.Status != MoveWon || res.Winner != Player2 {
		t.Fatalf("expected player 2 win, got %+v", res)
	}
}

func TestFinishedGameRejectsMoves(t *testing.T) {
	g := startedGame(t)
	for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
		mustDrop(t, g, col)
	}
	before := g.Board()

	for _, col := range []int{2, 0, -1} {
		if _, err := g.DropPiece(col); !errors.Is(err, ErrGameAlreadyOver) {
			t.Errorf("column %d: expected ErrGameAlreadyOver, got %v", col, err)
		}
	}
	if !reflect.DeepEqual(before, g.Board()) {
		t.Fatalf("finished game board changed")
	}
	if len(g.ValidColumns()) != 0 {
		t.Fatalf("finished game still offers columns")
	}
}

func TestRestartAfterFinish(t *testing.T) {
	g := startedGame(t)
	for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
		mustDrop(t, g, col)
	}

	if err := g.Start("green", "purple"); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if g.State() != StateInProgress || g.CurrentPlayerID() != Player1 {
		t.Fatalf("restart did not reset state")
	}
	if outcome, _ := g.Outcome(); outcome != OutcomeNone {
		t.Fatalf("restart kept outcome %s", outcome)
	}
	if g.MoveCount() != 0 || g.CellAt(5, 0) != Empty {
		t.Fatalf("restart kept the old board")
	}
	if p, _ := g.Player(Player2); p.Color != "purple" {
		t.Fatalf("player 2 color = %q", p.Color)
	}
}

func TestCustomBoardSize(t *testing.T) {
	g := NewGame(5, 9)
	if err := g.Start("a", "b"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := g.DropPiece(8); err != nil {
		t.Fatalf("drop in last column: %v", err)
	}
	if _, err := g.DropPiece(9); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if len(g.Board()) != 5 || len(g.Board()[0]) != 9 {
		t.Fatalf("unexpected board shape")
	}
}

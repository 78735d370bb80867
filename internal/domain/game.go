package domain

import "strings"

type Player struct {
	ID    PlayerID `json:"id"`
	Color string   `json:"color"`
}

// MoveResult is what a successful DropPiece reports back to the caller.
type MoveResult struct {
	Row        int        `json:"row"`
	Column     int        `json:"column"`
	Player     PlayerID   `json:"playerId"`
	Status     MoveStatus `json:"status"`
	NextPlayer PlayerID   `json:"nextPlayerId,omitempty"` // set when Status is MoveContinuing
	Winner     PlayerID   `json:"winner,omitempty"`       // set when Status is MoveWon
}

// Game is a single Connect Four session. It is not safe for concurrent use;
// callers serialize access.
type Game struct {
	rows          int
	columns       int
	board         *Board
	players       [2]Player
	currentPlayer PlayerID
	state         State
	outcome       Outcome
	winner        PlayerID
	moveCount     int
}

// NewGame returns a game that has not started yet. The grid size is fixed
// for the lifetime of the game, including restarts.
func NewGame(rows, columns int) *Game {
	board := NewBoard(rows, columns)
	return &Game{
		rows:    board.Rows(),
		columns: board.Columns(),
		board:   board,
		state:   StateNotStarted,
	}
}

// Start (re)initializes the game with two player colors. On error the game
// is left untouched.
func (g *Game) Start(player1Color, player2Color string) error {
	player1Color = strings.TrimSpace(player1Color)
	player2Color = strings.TrimSpace(player2Color)
	if player1Color == "" || player2Color == "" {
		return ErrMissingColor
	}

	g.players = [2]Player{
		{ID: Player1, Color: player1Color},
		{ID: Player2, Color: player2Color},
	}
	g.board = NewBoard(g.rows, g.columns)
	g.currentPlayer = Player1
	g.state = StateInProgress
	g.outcome = OutcomeNone
	g.winner = Empty
	g.moveCount = 0
	return nil
}

// DropPiece plays the current player's piece into column.
func (g *Game) DropPiece(column int) (MoveResult, error) {
	switch g.state {
	case StateNotStarted:
		return MoveResult{}, ErrGameNotStarted
	case StateFinished:
		return MoveResult{}, ErrGameAlreadyOver
	}

	row, ok, err := g.board.LandingRow(column)
	if err != nil {
		return MoveResult{}, err
	}
	if !ok {
		return MoveResult{}, ErrColumnFull
	}

	player := g.currentPlayer
	if err := g.board.Place(row, column, player); err != nil {
		return MoveResult{}, err
	}
	g.moveCount++

	result := MoveResult{Row: row, Column: column, Player: player}

	// a move that wins and fills the board at once is a win
	if HasFourInARow(g.board, player) {
		g.finish(OutcomeWin, player)
		result.Status = MoveWon
		result.Winner = player
		return result, nil
	}

	if g.board.IsFull() {
		g.finish(OutcomeTie, Empty)
		result.Status = MoveTied
		return result, nil
	}

	g.currentPlayer = player.Other()
	result.Status = MoveContinuing
	result.NextPlayer = g.currentPlayer
	return result, nil
}

func (g *Game) finish(outcome Outcome, winner PlayerID) {
	g.state = StateFinished
	g.outcome = outcome
	g.winner = winner
}

// CurrentPlayerID is Empty before the first Start. After the game ends it is
// the player who made the final move.
func (g *Game) CurrentPlayerID() PlayerID {
	return g.currentPlayer
}

func (g *Game) CellAt(row, column int) PlayerID {
	return g.board.CellAt(row, column)
}

func (g *Game) IsGameOver() bool {
	return g.state == StateFinished
}

func (g *Game) State() State {
	return g.state
}

// Outcome returns the result and, for a win, the winner.
func (g *Game) Outcome() (Outcome, PlayerID) {
	return g.outcome, g.winner
}

// Players is empty until the game has been started.
func (g *Game) Players() []Player {
	if g.state == StateNotStarted {
		return nil
	}
	return []Player{g.players[0], g.players[1]}
}

func (g *Game) Player(id PlayerID) (Player, bool) {
	if g.state == StateNotStarted || !id.Valid() {
		return Player{}, false
	}
	return g.players[id-1], true
}

func (g *Game) MoveCount() int {
	return g.moveCount
}

func (g *Game) Rows() int    { return g.rows }
func (g *Game) Columns() int { return g.columns }

// Board returns a deep copy of the grid.
func (g *Game) Board() [][]int {
	return g.board.Snapshot()
}

// ValidColumns is empty once the game is over.
func (g *Game) ValidColumns() []int {
	if g.state != StateInProgress {
		return []int{}
	}
	return g.board.ValidColumns()
}

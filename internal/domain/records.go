package domain

import "time"

// GameRecord is the archived summary of a finished game.
type GameRecord struct {
	GameID          string    `json:"gameId"`
	Player1Color    string    `json:"player1Color"`
	Player2Color    string    `json:"player2Color"`
	Outcome         Outcome   `json:"outcome"`
	Winner          PlayerID  `json:"winner,omitempty"`
	TotalMoves      int       `json:"totalMoves"`
	DurationSeconds int       `json:"durationSeconds"`
	Rows            int       `json:"rows"`
	Columns         int       `json:"columns"`
	Board           [][]int   `json:"board"`
	CreatedAt       time.Time `json:"createdAt"`
	FinishedAt      time.Time `json:"finishedAt"`
}

type EventType string

const (
	EventGameStarted EventType = "game_started"
	EventMoveMade    EventType = "move_made"
	EventGameOver    EventType = "game_over"
	EventGameRemoved EventType = "game_removed"
)

// GameEvent is emitted after every change to a hosted game.
type GameEvent struct {
	Type          EventType   `json:"type"`
	GameID        string      `json:"gameId"`
	Move          *MoveResult `json:"move,omitempty"`
	State         State       `json:"state"`
	CurrentPlayer PlayerID    `json:"currentPlayer,omitempty"`
	Outcome       Outcome     `json:"outcome,omitempty"`
	Winner        PlayerID    `json:"winner,omitempty"`
	Board         [][]int     `json:"board,omitempty"`
	At            time.Time   `json:"at"`
}

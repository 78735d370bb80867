package websocket

import (
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

// client → server
const (
	MsgStart     = "start"
	MsgDropPiece = "drop_piece"
	MsgSync      = "sync"
)

// server → client, besides the domain.EventType names
const (
	MsgGameState = "game_state"
	MsgError     = "error"
)

type ClientMessage struct {
	Type         string `json:"type"`
	Column       *int   `json:"column,omitempty"`
	Player1Color string `json:"player1Color,omitempty"`
	Player2Color string `json:"player2Color,omitempty"`
}

type ServerMessage struct {
	Type          string             `json:"type"`
	GameID        string             `json:"gameId,omitempty"`
	Message       string             `json:"message,omitempty"`
	Code          string             `json:"code,omitempty"`
	Game          *game.Snapshot     `json:"game,omitempty"`
	Move          *domain.MoveResult `json:"move,omitempty"`
	State         domain.State       `json:"state,omitempty"`
	CurrentPlayer domain.PlayerID    `json:"currentPlayer,omitempty"`
	Outcome       domain.Outcome     `json:"outcome,omitempty"`
	Winner        domain.PlayerID    `json:"winner,omitempty"`
	Board         [][]int            `json:"board,omitempty"`
}

func eventMessage(ev domain.GameEvent) ServerMessage {
	return ServerMessage{
		Type:          string(ev.Type),
		GameID:        ev.GameID,
		Move:          ev.Move,
		State:         ev.State,
		CurrentPlayer: ev.CurrentPlayer,
		Outcome:       ev.Outcome,
		Winner:        ev.Winner,
		Board:         ev.Board,
	}
}

func stateMessage(snap game.Snapshot) ServerMessage {
	return ServerMessage{Type: MsgGameState, GameID: snap.GameID, Game: &snap}
}

func errorMessage(gameID, message, code string) ServerMessage {
	return ServerMessage{Type: MsgError, GameID: gameID, Message: message, Code: code}
}

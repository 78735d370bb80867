package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
)

// GameSession is one hosted game. Every access to Game goes through mu so
// a placement and its win check never interleave with another call.
type GameSession struct {
	GameID       string
	Game         *domain.Game
	CreatedAt    time.Time
	StartedAt    time.Time
	FinishedAt   time.Time
	LastActivity time.Time
	Round        int // 1 for the first game, bumped by every restart
	mu           sync.Mutex
}

// Snapshot is a read-only copy of a session, safe to hand to adapters.
type Snapshot struct {
	GameID        string          `json:"gameId"`
	State         domain.State    `json:"state"`
	Rows          int             `json:"rows"`
	Columns       int             `json:"columns"`
	Board         [][]int         `json:"board"`
	Players       []domain.Player `json:"players"`
	CurrentPlayer domain.PlayerID `json:"currentPlayer,omitempty"`
	ValidColumns  []int           `json:"validColumns"`
	Outcome       domain.Outcome  `json:"outcome,omitempty"`
	Winner        domain.PlayerID `json:"winner,omitempty"`
	MoveCount     int             `json:"moveCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	StartedAt     time.Time       `json:"startedAt"`
	FinishedAt    *time.Time      `json:"finishedAt,omitempty"`
}

// Summary is the short form used when listing live games.
type Summary struct {
	GameID       string          `json:"gameId"`
	State        domain.State    `json:"state"`
	Players      []domain.Player `json:"players"`
	MoveCount    int             `json:"moveCount"`
	StartedAt    time.Time       `json:"startedAt"`
	LastActivity time.Time       `json:"lastActivity"`
}

func newGameSession(gameID string, rows, columns int, now time.Time) *GameSession {
	return &GameSession{
		GameID:       gameID,
		Game:         domain.NewGame(rows, columns),
		CreatedAt:    now,
		LastActivity: now,
		Round:        1,
	}
}

// recordID keeps rematches in the same session from overwriting each
// other in the archive.
func (gs *GameSession) recordID() string {
	if gs.Round <= 1 {
		return gs.GameID
	}
	return fmt.Sprintf("%s-r%d", gs.GameID, gs.Round)
}

// snapshotLocked copies the session state; caller must hold gs.mu.
func (gs *GameSession) snapshotLocked() Snapshot {
	outcome, winner := gs.Game.Outcome()
	s := Snapshot{
		GameID:        gs.GameID,
		State:         gs.Game.State(),
		Rows:          gs.Game.Rows(),
		Columns:       gs.Game.Columns(),
		Board:         gs.Game.Board(),
		Players:       gs.Game.Players(),
		CurrentPlayer: gs.Game.CurrentPlayerID(),
		ValidColumns:  gs.Game.ValidColumns(),
		Outcome:       outcome,
		Winner:        winner,
		MoveCount:     gs.Game.MoveCount(),
		CreatedAt:     gs.CreatedAt,
		StartedAt:     gs.StartedAt,
	}
	if s.State == domain.StateFinished {
		finished := gs.FinishedAt
		s.FinishedAt = &finished
		s.CurrentPlayer = domain.Empty
	}
	return s
}

func (gs *GameSession) Snapshot() Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.snapshotLocked()
}

func (gs *GameSession) summary() Summary {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return Summary{
		GameID:       gs.GameID,
		State:        gs.Game.State(),
		Players:      gs.Game.Players(),
		MoveCount:    gs.Game.MoveCount(),
		StartedAt:    gs.StartedAt,
		LastActivity: gs.LastActivity,
	}
}

// recordLocked builds the archive entry for a finished game; caller must
// hold gs.mu.
func (gs *GameSession) recordLocked() domain.GameRecord {
	outcome, winner := gs.Game.Outcome()
	rec := domain.GameRecord{
		GameID:          gs.recordID(),
		Outcome:         outcome,
		Winner:          winner,
		TotalMoves:      gs.Game.MoveCount(),
		DurationSeconds: int(gs.FinishedAt.Sub(gs.StartedAt).Seconds()),
		Rows:            gs.Game.Rows(),
		Columns:         gs.Game.Columns(),
		Board:           gs.Game.Board(),
		CreatedAt:       gs.StartedAt,
		FinishedAt:      gs.FinishedAt,
	}
	if p, ok := gs.Game.Player(domain.Player1); ok {
		rec.Player1Color = p.Color
	}
	if p, ok := gs.Game.Player(domain.Player2); ok {
		rec.Player2Color = p.Color
	}
	return rec
}

func (gs *GameSession) event(t domain.EventType, move *domain.MoveResult, at time.Time) domain.GameEvent {
	outcome, winner := gs.Game.Outcome()
	ev := domain.GameEvent{
		Type:    t,
		GameID:  gs.GameID,
		Move:    move,
		State:   gs.Game.State(),
		Outcome: outcome,
		Winner:  winner,
		Board:   gs.Game.Board(),
		At:      at,
	}
	if !gs.Game.IsGameOver() {
		ev.CurrentPlayer = gs.Game.CurrentPlayerID()
	}
	return ev
}

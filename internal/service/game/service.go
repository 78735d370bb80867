package game

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/pkg/uid"
)

var ErrSessionNotFound = errors.New("game not found")

// GameArchive stores finished games. It is never read back into a session.
type GameArchive interface {
	SaveGame(ctx context.Context, record domain.GameRecord) error
}

// EventPublisher receives every change made to a hosted game.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.GameEvent) error
}

type Option func(*SessionManager)

func WithArchive(archive GameArchive) Option {
	return func(sm *SessionManager) { sm.archive = archive }
}

// WithPublisher may be given more than once; publishers are called in order.
func WithPublisher(p EventPublisher) Option {
	return func(sm *SessionManager) {
		if p != nil {
			sm.publishers = append(sm.publishers, p)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(sm *SessionManager) { sm.now = now }
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session    map[string]*GameSession // gameID → GameSession
	mu         sync.RWMutex
	rows       int
	columns    int
	archive    GameArchive
	publishers []EventPublisher
	now        func() time.Time
	saves      sync.WaitGroup
}

func NewSessionManager(rows, columns int, opts ...Option) *SessionManager {
	sm := &SessionManager{
		Session: make(map[string]*GameSession),
		rows:    rows,
		columns: columns,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

// CreateSession starts a new game with the given colors. Nothing is
// registered when the colors are rejected.
func (sm *SessionManager) CreateSession(ctx context.Context, player1Color, player2Color string) (Snapshot, error) {
	now := sm.now()
	gs := newGameSession(uid.GenerateGameID(), sm.rows, sm.columns, now)

	// not yet visible to other goroutines
	if err := gs.Game.Start(player1Color, player2Color); err != nil {
		return Snapshot{}, err
	}
	gs.StartedAt = now

	sm.mu.Lock()
	sm.Session[gs.GameID] = gs
	sm.mu.Unlock()

	gs.mu.Lock()
	defer gs.mu.Unlock()

	log.Printf("[SESSION] Created session %s: %s vs %s (%dx%d)",
		gs.GameID, player1Color, player2Color, gs.Game.Rows(), gs.Game.Columns())

	sm.publish(ctx, gs.event(domain.EventGameStarted, nil, now))
	return gs.snapshotLocked(), nil
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) GetSnapshot(gameID string) (Snapshot, error) {
	gs, ok := sm.GetSessionByGameID(gameID)
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	return gs.Snapshot(), nil
}

// RestartSession replaces the board and players of an existing session.
// On error the session keeps its current state.
func (sm *SessionManager) RestartSession(ctx context.Context, gameID, player1Color, player2Color string) (Snapshot, error) {
	gs, ok := sm.GetSessionByGameID(gameID)
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := gs.Game.Start(player1Color, player2Color); err != nil {
		return Snapshot{}, err
	}
	now := sm.now()
	gs.Round++
	gs.StartedAt = now
	gs.FinishedAt = time.Time{}
	gs.LastActivity = now

	log.Printf("[SESSION] Restarted session %s: %s vs %s", gameID, player1Color, player2Color)

	sm.publish(ctx, gs.event(domain.EventGameStarted, nil, now))
	return gs.snapshotLocked(), nil
}

// DropPiece plays the current player's piece in column of the given game.
func (sm *SessionManager) DropPiece(ctx context.Context, gameID string, column int) (domain.MoveResult, Snapshot, error) {
	gs, ok := sm.GetSessionByGameID(gameID)
	if !ok {
		return domain.MoveResult{}, Snapshot{}, ErrSessionNotFound
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	result, err := gs.Game.DropPiece(column)
	if err != nil {
		return domain.MoveResult{}, gs.snapshotLocked(), err
	}

	now := sm.now()
	gs.LastActivity = now

	sm.publish(ctx, gs.event(domain.EventMoveMade, &result, now))

	if gs.Game.IsGameOver() {
		gs.FinishedAt = now
		if result.Status == domain.MoveWon {
			log.Printf("[GAME] Game %s won by player %d after %d moves", gameID, result.Winner, gs.Game.MoveCount())
		} else {
			log.Printf("[GAME] Game %s ended in a tie", gameID)
		}

		sm.publish(ctx, gs.event(domain.EventGameOver, nil, now))
		sm.saveGameAsync(gs.recordLocked())
	}

	return result, gs.snapshotLocked(), nil
}

func (sm *SessionManager) RemoveSession(ctx context.Context, gameID string) error {
	sm.mu.Lock()
	gs, exists := sm.Session[gameID]
	if !exists {
		sm.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(sm.Session, gameID)
	sm.mu.Unlock()

	log.Printf("[SESSION] Removing session %s", gameID)

	gs.mu.Lock()
	ev := gs.event(domain.EventGameRemoved, nil, sm.now())
	gs.mu.Unlock()
	sm.publish(ctx, ev)
	return nil
}

// ActiveGames lists hosted sessions, most recently active first.
func (sm *SessionManager) ActiveGames() []Summary {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.Session))
	for _, gs := range sm.Session {
		sessions = append(sessions, gs)
	}
	sm.mu.RUnlock()

	out := make([]Summary, 0, len(sessions))
	for _, gs := range sessions {
		out = append(out, gs.summary())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastActivity.After(out[j].LastActivity)
	})
	return out
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// CleanupOldSessions drops finished sessions older than finishedTTL and any
// session with no activity for idleTimeout. It returns how many were removed.
// Sessions busy with a move are skipped; they are not idle.
func (sm *SessionManager) CleanupOldSessions(idleTimeout, finishedTTL time.Duration) int {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.Session))
	for _, gs := range sm.Session {
		sessions = append(sessions, gs)
	}
	sm.mu.RUnlock()

	now := sm.now()
	stale := make(map[*GameSession]domain.GameEvent)
	for _, gs := range sessions {
		if !gs.mu.TryLock() {
			continue
		}
		finished := gs.Game.IsGameOver()
		if (finished && now.Sub(gs.FinishedAt) > finishedTTL) || now.Sub(gs.LastActivity) > idleTimeout {
			stale[gs] = gs.event(domain.EventGameRemoved, nil, now)
		}
		gs.mu.Unlock()
	}
	if len(stale) == 0 {
		return 0
	}

	removed := make([]domain.GameEvent, 0, len(stale))
	sm.mu.Lock()
	for gs, ev := range stale {
		// the ID may have been removed or reused since the check
		if current, ok := sm.Session[gs.GameID]; ok && current == gs {
			delete(sm.Session, gs.GameID)
			removed = append(removed, ev)
		}
	}
	sm.mu.Unlock()

	for _, ev := range removed {
		sm.publish(context.Background(), ev)
	}

	if len(removed) > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale game sessions", len(removed))
	}
	return len(removed)
}

// Wait blocks until pending archive writes are done.
func (sm *SessionManager) Wait() {
	sm.saves.Wait()
}

func (sm *SessionManager) publish(ctx context.Context, ev domain.GameEvent) {
	for _, p := range sm.publishers {
		if err := p.Publish(ctx, ev); err != nil {
			log.Printf("[GAME] Error publishing %s for game %s: %v", ev.Type, ev.GameID, err)
		}
	}
}

// Saves game data in background to avoid blocking game_over messages
func (sm *SessionManager) saveGameAsync(rec domain.GameRecord) {
	if sm.archive == nil {
		return
	}

	sm.saves.Add(1)
	go func() {
		defer sm.saves.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := sm.archive.SaveGame(ctx, rec); err != nil {
			log.Printf("[GAME] Error saving game %s: %v", rec.GameID, err)
		} else {
			log.Printf("[GAME] Game %s saved successfully", rec.GameID)
		}
	}()
}

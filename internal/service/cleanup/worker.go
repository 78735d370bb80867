package cleanup

import (
	"context"
	"log"
	"time"
)

// SessionSweeper is implemented by game.SessionManager.
type SessionSweeper interface {
	CleanupOldSessions(idleTimeout, finishedTTL time.Duration) int
}

type Worker struct {
	Sessions    SessionSweeper
	Interval    time.Duration
	IdleTimeout time.Duration
	FinishedTTL time.Duration
}

func NewWorker(sessions SessionSweeper, interval, idleTimeout, finishedTTL time.Duration) *Worker {
	return &Worker{
		Sessions:    sessions,
		Interval:    interval,
		IdleTimeout: idleTimeout,
		FinishedTTL: finishedTTL,
	}
}

// Start runs one sweep immediately, then one per Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")
	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() {
	removed := w.Sessions.CleanupOldSessions(w.IdleTimeout, w.FinishedTTL)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d stale game sessions", removed)
	}
}

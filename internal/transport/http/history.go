package http

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// GameHistory is the read side of the game archive.
type GameHistory interface {
	GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error)
	ListRecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error)
}

// HistoryHandler answers 503 when no archive is configured.
type HistoryHandler struct {
	History GameHistory
}

func NewHistoryHandler(history GameHistory) *HistoryHandler {
	return &HistoryHandler{History: history}
}

func (h *HistoryHandler) available(c *gin.Context) bool {
	if h.History == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "Game history is not enabled", Code: "history_disabled"})
		return false
	}
	return true
}

func (h *HistoryHandler) GetHistory(c *gin.Context) {
	if !h.available(c) {
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	games, err := h.History.ListRecentGames(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[HISTORY] Failed to fetch history: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to fetch history", Code: "internal"})
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	if !h.available(c) {
		return
	}

	rec, err := h.History.GetGameByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("[HISTORY] Failed to fetch game %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to fetch game", Code: "internal"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Game not found", Code: "game_not_found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

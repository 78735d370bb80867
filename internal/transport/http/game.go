package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/pkg/uid"
)

type GameHandler struct {
	SessionManager *game.SessionManager
}

func NewGameHandler(sm *game.SessionManager) *GameHandler {
	return &GameHandler{SessionManager: sm}
}

type startRequest struct {
	Player1Color string `json:"player1Color"`
	Player2Color string `json:"player2Color"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type moveResponse struct {
	Move domain.MoveResult `json:"move"`
	Game game.Snapshot     `json:"game"`
}

// CreateGame starts a new hosted game. Blank colors are reported as
// missing_color rather than a binding error so the UI can prompt for them.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	snap, err := h.SessionManager.CreateSession(c.Request.Context(), req.Player1Color, req.Player2Color)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// gameID answers 404 for ids no session could have been created with.
func gameID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !uid.IsGameID(id) {
		writeError(c, game.ErrSessionNotFound)
		return "", false
	}
	return id, true
}

func (h *GameHandler) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.SessionManager.ActiveGames())
}

func (h *GameHandler) GetGame(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	snap, err := h.SessionManager.GetSnapshot(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *GameHandler) RestartGame(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	snap, err := h.SessionManager.RestartSession(c.Request.Context(), id, req.Player1Color, req.Player2Color)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *GameHandler) DropPiece(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "column is required")
		return
	}

	move, snap, err := h.SessionManager.DropPiece(c.Request.Context(), id, *req.Column)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, moveResponse{Move: move, Game: snap})
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}

	if err := h.SessionManager.RemoveSession(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

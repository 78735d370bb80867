package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// StatusFor maps service and domain errors onto HTTP statuses.
func StatusFor(err error) (int, string) {
	var domainErr domain.Error
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound, "game_not_found"
	case errors.As(err, &domainErr):
		switch domainErr {
		case domain.ErrMissingColor, domain.ErrInvalidColumn:
			return http.StatusBadRequest, domainErr.Code()
		case domain.ErrColumnFull, domain.ErrGameAlreadyOver, domain.ErrGameNotStarted:
			return http.StatusConflict, domainErr.Code()
		}
		return http.StatusUnprocessableEntity, domainErr.Code()
	}
	return http.StatusInternalServerError, "internal"
}

func writeError(c *gin.Context, err error) {
	status, code := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, errorResponse{Error: msg, Code: code})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg, Code: "bad_request"})
}

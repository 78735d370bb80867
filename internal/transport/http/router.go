package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
)

type RouterConfig struct {
	Games         *GameHandler
	History       *HistoryHandler
	WebSocket     http.Handler // optional
	OriginAllowed func(origin string) bool
	StaticDir     string // optional; served as a single page app when present
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.OriginAllowed))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/games", cfg.Games.CreateGame)
		api.GET("/games", cfg.Games.ListGames)
		api.GET("/games/:id", cfg.Games.GetGame)
		api.POST("/games/:id/start", cfg.Games.RestartGame)
		api.POST("/games/:id/moves", cfg.Games.DropPiece)
		api.DELETE("/games/:id", cfg.Games.DeleteGame)

		history := cfg.History
		if history == nil {
			history = NewHistoryHandler(nil)
		}
		api.GET("/history", history.GetHistory)
		api.GET("/history/:id", history.GetGameDetails)
	}

	if cfg.WebSocket != nil {
		router.GET("/ws", gin.WrapH(cfg.WebSocket))
	}

	if cfg.StaticDir != "" {
		serveStatic(router, cfg.StaticDir)
	}
	return router
}

// serveStatic serves the browser client with an index.html fallback.
func serveStatic(router *gin.Engine, dir string) {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return
	}

	router.GET("/", func(c *gin.Context) {
		c.File(index)
	})

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, errorResponse{Error: "Not found", Code: "not_found"})
			return
		}

		path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}

		if strings.HasSuffix(c.Request.URL.Path, ".css") || strings.HasSuffix(c.Request.URL.Path, ".js") {
			c.Status(http.StatusNotFound)
			return
		}

		c.File(index)
	})
}

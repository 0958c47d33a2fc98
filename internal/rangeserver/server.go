// Package rangeserver exposes the range store over HTTP: save, load, list
// and delete operations keyed by player, category, position and name.
package rangeserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/cardstream/pokertracker/internal/persistence"
)

// Server wires the HTTP routes to a RangeStore.
type Server struct {
	store  persistence.RangeStore
	logger *log.Logger
	engine *gin.Engine
}

func New(store persistence.RangeStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	s := &Server{store: store, logger: logger, engine: gin.New()}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	ranges := s.engine.Group("/ranges")
	{
		ranges.POST("/save", s.handleSave)
		ranges.GET("/load", s.handleLoad)
		ranges.GET("/list", s.handleList)
		ranges.DELETE("/delete", s.handleDelete)
	}
}

// Handler returns the underlying http.Handler, used by tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("range server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type saveRequest struct {
	Player   string          `json:"player" binding:"required"`
	Category string          `json:"category" binding:"required"`
	Position string          `json:"position" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Range    json.RawMessage `json:"range" binding:"required"`
}

func (s *Server) handleSave(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	rec := persistence.RangeRecord{
		Key: persistence.RangeKey{
			Player:   req.Player,
			Category: req.Category,
			Position: req.Position,
			Name:     req.Name,
		},
		Payload: req.Range,
	}
	if err := s.store.Save(c.Request.Context(), rec); err != nil {
		s.logger.Error("save range failed", "error", err)
		fail(c, http.StatusInternalServerError, "could not save range")
		return
	}
	ok(c, gin.H{"saved": rec.Key})
}

func (s *Server) handleLoad(c *gin.Context) {
	key, valid := keyFromQuery(c)
	if !valid {
		return
	}
	rec, err := s.store.Load(c.Request.Context(), key)
	if err != nil {
		s.logger.Error("load range failed", "error", err)
		fail(c, http.StatusInternalServerError, "could not load range")
		return
	}
	if rec == nil {
		fail(c, http.StatusNotFound, "range not found")
		return
	}
	ok(c, gin.H{"key": rec.Key, "range": rec.Payload, "updated_at": rec.UpdatedAt})
}

func (s *Server) handleList(c *gin.Context) {
	player := c.Query("player")
	if player == "" {
		fail(c, http.StatusBadRequest, "player is required")
		return
	}
	recs, err := s.store.List(c.Request.Context(), player, c.Query("position"))
	if err != nil {
		s.logger.Error("list ranges failed", "error", err)
		fail(c, http.StatusInternalServerError, "could not list ranges")
		return
	}
	keys := make([]persistence.RangeKey, 0, len(recs))
	for _, rec := range recs {
		keys = append(keys, rec.Key)
	}
	ok(c, gin.H{"ranges": keys})
}

func (s *Server) handleDelete(c *gin.Context) {
	key, valid := keyFromQuery(c)
	if !valid {
		return
	}
	deleted, err := s.store.Delete(c.Request.Context(), key)
	if err != nil {
		s.logger.Error("delete range failed", "error", err)
		fail(c, http.StatusInternalServerError, "could not delete range")
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, "range not found")
		return
	}
	ok(c, gin.H{"deleted": key})
}

func keyFromQuery(c *gin.Context) (persistence.RangeKey, bool) {
	key := persistence.RangeKey{
		Player:   c.Query("player"),
		Category: c.Query("category"),
		Position: c.Query("position"),
		Name:     c.Query("name"),
	}
	if key.Player == "" || key.Category == "" || key.Position == "" || key.Name == "" {
		fail(c, http.StatusBadRequest, "player, category, position and name are required")
		return persistence.RangeKey{}, false
	}
	return key, true
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": data})
}

func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"status": "error", "message": msg})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jotpad/jotpad/internal/note"
	"github.com/jotpad/jotpad/internal/note/service"
	"github.com/jotpad/jotpad/pkg/logger"
	"github.com/jotpad/jotpad/pkg/metrics"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // same-origin policy is enforced upstream when deployed
	},
}

// RegisterNoteRoutes wires the note API onto the engine. Any writeGuards are
// applied to the write route only; reads and the watch stream stay open.
func RegisterNoteRoutes(r *gin.Engine, svc service.Service, writeGuards ...gin.HandlerFunc) {
	r.GET("/api/notes", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "note store unavailable"})
			return
		}
		c.JSON(http.StatusOK, list)
	})

	create := func(c *gin.Context) {
		var req struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		n, err := svc.Create(c.Request.Context(), req.Title, req.Content)
		if err != nil {
			var verr *note.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
				return
			}
			logger.Errorf("create note: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "note was not saved"})
			return
		}
		c.JSON(http.StatusCreated, n)
	}
	handlers := append(append([]gin.HandlerFunc{}, writeGuards...), create)
	r.POST("/api/notes", handlers...)

	r.GET("/api/notes/watch", watchNotes(svc))
}

// watchNotes upgrades to a websocket and streams the full note list: once on
// connect, then again after every accepted insert, until either side closes.
func watchNotes(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warnf("watch upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		metrics.WatchSubscribers.Inc()
		defer metrics.WatchSubscribers.Dec()

		sub, cancel := svc.Subscribe()
		defer cancel()

		list, err := svc.List(c.Request.Context())
		if err != nil {
			logger.Errorf("watch initial list: %v", err)
			return
		}
		if err := conn.WriteJSON(list); err != nil {
			return
		}

		// read pump exists only to notice the peer going away
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case list, ok := <-sub:
				if !ok {
					return
				}
				if err := conn.WriteJSON(list); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}
}

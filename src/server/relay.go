package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"k-stock-insight/src/interfaces"
	"k-stock-insight/src/logger"
	"k-stock-insight/src/models"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// -----------------------------------------------------------------------------
// RelayServer
// -----------------------------------------------------------------------------

// RelayServer exposes the store over HTTP and pushes every state change to
// WebSocket clients.
type RelayServer struct {
	Config     *models.MConfig
	Logger     *logger.Logger
	source     interfaces.IStateSource
	archive    interfaces.IDatabase
	engine     *gin.Engine
	httpServer *http.Server

	// WebSocket clients, owned by the hub goroutine
	clients     map[*Client]struct{}
	connections atomic.Int32
	broadcast   chan *models.MStateMessage
	register    chan *Client
	unregister  chan *Client
	resend      chan *Client
	done        chan struct{}
	stopOnce    sync.Once
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

// NewRelayServer builds the server and starts its hub. archive may be nil
// when storage is disabled.
func NewRelayServer(cfg *models.MConfig, source interfaces.IStateSource, archive interfaces.IDatabase, log *logger.Logger) *RelayServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &RelayServer{
		Config:  cfg,
		Logger:  log,
		source:  source,
		archive: archive,
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered so store listeners never wait on the hub
		broadcast:  make(chan *models.MStateMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		resend:     make(chan *Client),
		done:       make(chan struct{}),
	}

	s.engine.Use(corsMiddleware)
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: s.engine,
	}

	go s.handleWebsockets()
	return s
}

// -----------------------------------------------------------------------------

func corsMiddleware(c *gin.Context) {
	origin := c.Request.Header.Get("Origin")
	if allowedOrigin(origin) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
	}
	c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	c.Next()
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *RelayServer) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.getHealth)
	api.GET("/state", s.getState)
	api.POST("/refresh", s.postRefresh)
	api.DELETE("/errors", s.deleteErrors)
	api.DELETE("/errors/:category", s.deleteError)
	api.GET("/archive/:category", s.getArchive)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *RelayServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start serves until Stop is called.
func (s *RelayServer) Start() error {
	s.Logger.Info("Starting relay server on %s", s.httpServer.Addr)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// -----------------------------------------------------------------------------

// Stop closes every WebSocket client and shuts the HTTP server down.
func (s *RelayServer) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.done)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	})
	return err
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *RelayServer) getHealth(c *gin.Context) {
	state := s.source.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"connected":    state.IsConnected,
		"last_updated": state.LastUpdated,
		"connections":  s.connections.Load(),
	})
}

// -----------------------------------------------------------------------------

func (s *RelayServer) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.source.Snapshot())
}

// -----------------------------------------------------------------------------

func (s *RelayServer) postRefresh(c *gin.Context) {
	ok := s.source.RefreshAll(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success": ok,
		"state":   s.source.Snapshot(),
	})
}

// -----------------------------------------------------------------------------

func (s *RelayServer) deleteErrors(c *gin.Context) {
	s.source.ClearError()
	c.JSON(http.StatusOK, gin.H{"errors": s.source.Snapshot().Errors})
}

// -----------------------------------------------------------------------------

func (s *RelayServer) deleteError(c *gin.Context) {
	cat, ok := categoryParam(c)
	if !ok {
		return
	}

	s.source.ClearError(cat)
	c.JSON(http.StatusOK, gin.H{"errors": s.source.Snapshot().Errors})
}

// -----------------------------------------------------------------------------

// getArchive returns the newest archived payload of a category verbatim.
// The optional "key" query names the ticker of per-stock categories.
func (s *RelayServer) getArchive(c *gin.Context) {
	if s.archive == nil {
		abortDetail(c, http.StatusNotFound, "archive is disabled")
		return
	}

	cat, ok := categoryParam(c)
	if !ok {
		return
	}

	snap, found, err := s.archive.LatestSnapshot(cat, c.Query("key"))
	if err != nil {
		s.Logger.Error("Archive lookup %s failed: %v", cat, err)
		abortDetail(c, http.StatusInternalServerError, "archive lookup failed")
		return
	}
	if !found {
		abortDetail(c, http.StatusNotFound, "no archived "+string(cat)+" data")
		return
	}

	c.Header("X-Fetched-At", snap.FetchedAt.Format(time.RFC3339))
	c.Data(http.StatusOK, "application/json; charset=utf-8", snap.Payload)
}

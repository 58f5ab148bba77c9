// Package logview serves the current run's capture log as a local web page
// with live updates.
package logview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"autoshot/internal/logging"
)

const writeWait = 5 * time.Second

type Server struct {
	addr     string
	hub      *Hub
	logger   *slog.Logger
	router   *gin.Engine
	upgrader websocket.Upgrader

	httpServer *http.Server
	url        string
}

func NewServer(addr string, hub *Hub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}

	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		addr:   addr,
		hub:    hub,
		logger: logger,
		router: r,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.indexHandler)
	s.router.GET("/api/log", s.logHandler)
	s.router.GET("/ws", s.wsHandler)
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.url = "http://" + ln.Addr().String()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("log view listening", "url", s.url)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("log view server failed", "error", err)
		}
	}()
	return nil
}

// URL is the page address once Start has succeeded.
func (s *Server) URL() string {
	return s.url
}

func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.hub.closeClients()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.httpServer.Close()
		return err
	}
	return nil
}

func (s *Server) indexHandler(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

func (s *Server) logHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.hub.Snapshot())
}

func (s *Server) wsHandler(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ch, snapshot := s.hub.subscribe()
	defer s.hub.unsubscribe(ch)

	if err := s.write(conn, Message{Type: "snapshot", RunID: snapshot.RunID, Snapshot: &snapshot, At: time.Now().UTC()}); err != nil {
		return
	}

	// The page never sends anything; reading only detects a closed tab.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case msg, ok := <-ch:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
					time.Now().Add(writeWait))
				return
			}
			if err := s.write(conn, msg); err != nil {
				return
			}
		}
	}
}

func (s *Server) write(conn *websocket.Conn, msg Message) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

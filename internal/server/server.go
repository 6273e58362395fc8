// Package server exposes lesson generation, history, knowledge and the
// feed over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lumen/internal/config"
	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/history"
	"github.com/abhisek/lumen/internal/knowledge"
	"github.com/abhisek/lumen/internal/logger"
	"github.com/abhisek/lumen/internal/metrics"
	"github.com/abhisek/lumen/internal/queue"
	"github.com/abhisek/lumen/internal/store"
	"github.com/abhisek/lumen/internal/tutor"
)

// Deps are the services behind the routes. Metrics and Log may be nil.
type Deps struct {
	Tutor      *tutor.Service
	History    *history.History
	Knowledge  *knowledge.Tracker
	Queue      *queue.Queue
	Store      store.Store
	Metrics    *metrics.Metrics
	Log        *logger.Logger
	Difficulty content.Difficulty
}

type Server struct {
	deps   Deps
	engine *gin.Engine
	srv    *http.Server
}

func New(cfg config.ServerConfig, deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{deps: deps}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(deps.Log), observe(deps.Metrics))

	r.GET("/healthz", s.health)
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.POST("/lessons", s.createLesson)
	api.POST("/related", s.relatedTopics)
	api.GET("/history", s.listHistory)
	api.DELETE("/history", s.clearHistory)
	api.GET("/knowledge", s.knowledgeMap)
	api.GET("/feed", s.feed)
	api.GET("/queue", s.listQueue)
	api.POST("/queue", s.addToQueue)

	s.engine = r
	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.deps.Log.Info("http server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.deps.Log.Info("http server shutting down")
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		kv := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.String())
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("http request", kv...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("http request", kv...)
		default:
			log.Info("http request", kv...)
		}
	}
}

func observe(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}

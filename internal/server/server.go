// Package server exposes learning paths, progress and generation over a
// JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/config"
	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/generation"
	"github.com/abhisek/edupath/internal/progress"
	"github.com/abhisek/edupath/internal/session"
)

const shutdownTimeout = 5 * time.Second

// PathStore reads saved learning paths.
type PathStore interface {
	GetPath(ctx context.Context, id string) (curriculum.LearningPath, error)
	ListPaths(ctx context.Context, limit int) ([]curriculum.LearningPath, error)
}

// ProgressStore persists daily progress and aggregates completion.
type ProgressStore interface {
	progress.Persistence
	CompletionByPath(ctx context.Context, totalDays map[string]int) (map[string]int, error)
}

// Generator creates new learning paths.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// Deps are the services behind the API. Generator and Logger may be nil;
// without a generator POST /api/paths answers 503.
type Deps struct {
	Paths     PathStore
	Progress  ProgressStore
	Generator Generator
	Logger    *zap.Logger
}

// Server is the HTTP API.
type Server struct {
	cfg    config.ServerConfig
	deps   Deps
	logger *zap.Logger
	engine *gin.Engine

	mu      sync.Mutex
	records map[string]*progress.RecordStore
}

// New builds the router. cfg.Mode selects the gin mode.
func New(cfg config.ServerConfig, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{
		cfg:     cfg,
		deps:    deps,
		logger:  logger,
		records: make(map[string]*progress.RecordStore),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger))
	r.Use(corsMiddleware(s.cfg.CORSOrigins))

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.GET("/paths", s.listPaths)
		api.POST("/paths", rateLimiter(s.cfg.GenerateRate, s.cfg.GenerateBurst), s.createPath)
		api.GET("/paths/:id", s.getPath)
		api.GET("/paths/:id/progress", s.getProgress)
		api.PUT("/paths/:id/progress/:day", s.setProgress)
		api.GET("/paths/:id/session", s.openSession)
		api.GET("/paths/:id/export", s.exportPath)

		api.GET("/search", s.search)
		api.GET("/stats", s.stats)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// recordStore returns the cached record store of a path, refreshed from
// persistence. Sharing one store per path serializes writes to the same
// day across requests.
func (s *Server) recordStore(ctx context.Context, path curriculum.LearningPath) (*progress.RecordStore, error) {
	s.mu.Lock()
	rs, ok := s.records[path.ID]
	if !ok {
		rs = progress.NewRecordStore(s.deps.Progress, path.ID, path.DurationDays, s.logger)
		s.records[path.ID] = rs
	}
	s.mu.Unlock()

	if _, err := rs.Load(ctx); err != nil {
		return nil, err
	}
	return rs, nil
}

func (s *Server) sessionDeps() session.Deps {
	return session.Deps{
		Paths:    s.deps.Paths,
		Progress: s.deps.Progress,
		Logger:   s.logger,
	}
}

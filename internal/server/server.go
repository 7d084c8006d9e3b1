package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nileplate/backend/config"
	"github.com/nileplate/backend/internal/api"
	"github.com/nileplate/backend/internal/middleware"
	"github.com/nileplate/backend/internal/service"
)

// Server owns the HTTP listener and the background housekeeping loop.
type Server struct {
	router   *gin.Engine
	http     *http.Server
	cleanup  *service.CleanupService
	interval time.Duration
	logger   *zap.Logger

	stop chan struct{}
	done chan struct{}
}

// New assembles the gin engine: recovery, request ids, CORS, then the full
// handler surface.
func New(cfg *config.Config, handlers api.Handlers, cleanup *service.CleanupService, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(requestid.New())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.Register(router)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		cleanup:  cleanup,
		interval: cfg.Cleanup.Interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the housekeeping ticker and serves until the listener
// stops. It blocks; run Shutdown from another goroutine to stop it.
func (s *Server) Start() error {
	go s.runHousekeeping()

	s.logger.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the housekeeping loop and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.stop)
	err := s.http.Shutdown(ctx)

	select {
	case <-s.done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}

func (s *Server) runHousekeeping() {
	defer close(s.done)
	if s.cleanup == nil || s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			s.cleanup.Run(ctx)
			cancel()
		}
	}
}

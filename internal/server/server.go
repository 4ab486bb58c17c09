// Package server exposes the processing pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kapu/ayovirals-go/internal/domain"
	"github.com/kapu/ayovirals-go/internal/service/pipeline"
	"github.com/kapu/ayovirals-go/internal/service/result"
	"go.uber.org/zap"
)

// Processor runs the content pipeline.
type Processor interface {
	Process(ctx context.Context, req domain.ProcessingRequest) *domain.ProcessingResult
	ProcessWithObserver(ctx context.Context, req domain.ProcessingRequest, observe pipeline.Observer) *domain.ProcessingResult
	ProcessBatch(ctx context.Context, reqs []domain.ProcessingRequest) []*domain.ProcessingResult
}

// Deps wires a Server. Store may be nil when persistence is disabled.
type Deps struct {
	Processor Processor
	Personas  *domain.PersonaCatalog
	Patterns  *domain.ViralPatternCatalog
	Store     result.Store
	Checks    []HealthCheck
}

// Server is the HTTP front end.
type Server struct {
	addr     string
	deps     Deps
	engine   *gin.Engine
	server   *http.Server
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func New(addr string, deps Deps, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		addr:   addr,
		deps:   deps,
		engine: gin.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(s.loggingMiddleware())
	s.engine.Use(corsMiddleware())
	s.routes()

	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleRoot)

	api := s.engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/process-video", s.handleProcessVideo)
	api.POST("/process-videos", s.handleProcessVideos)
	api.GET("/personas", s.handlePersonas)
	api.GET("/viral-patterns", s.handleViralPatterns)
	api.GET("/videos/:id", s.handleGetVideo)
	api.GET("/ws/process", s.handleProcessStream)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server stops. http.ErrServerClosed is not an error.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      0, // media acquisition can take minutes
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("HTTP server listening", zap.String("addr", s.addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Warn("HTTP request", fields...)
			return
		}
		s.logger.Debug("HTTP request", fields...)
	}
}

// corsMiddleware allows any origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")
		if origin != "*" {
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

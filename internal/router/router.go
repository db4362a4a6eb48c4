package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-admin/internal/middleware"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// Router serves the operational endpoints next to the console.
type Router struct {
	engine   *gin.Engine
	logger   *logger.Logger
	handlers []Handler
}

func NewRouter(log *logger.Logger, handlers ...Handler) *Router {
	gin.SetMode(gin.ReleaseMode)

	if log == nil {
		log = logger.Nop()
	}

	engine := gin.New()

	r := &Router{
		engine:   engine,
		logger:   log,
		handlers: handlers,
	}

	engine.Use(
		middleware.RequestID(log),
		middleware.Recovery(log),
		r.requestLogger(),
	)

	return r
}

func (r *Router) Setup() {
	root := r.engine.Group("")
	for _, h := range r.handlers {
		h.RegisterRoutes(root)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Serve blocks until ctx is cancelled or the listener fails.
func (r *Router) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ops server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (r *Router) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		r.logger.Debug("ops request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"request_id", c.GetString(middleware.ContextRequestID),
		)
	}
}

package kinopoiskmock

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/kinoswap/searchqa/internal/model"
)

const (
	APIPrefix  = "/v1.4"
	SitePrefix = "/"
)

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// Server imitates api.kinopoisk.dev and the kinopoisk.ru advanced search
// page over a fixed catalogue.
type Server struct {
	engine *gin.Engine
	server *http.Server

	logger *slog.Logger
}

type ServerOption func(*serverOptions)

type serverOptions struct {
	catalogue []model.Movie
	logger    *slog.Logger
}

func WithCatalogue(movies []model.Movie) ServerOption {
	return func(o *serverOptions) {
		o.catalogue = movies
	}
}

func WithLogger(logger *slog.Logger) ServerOption {
	return func(o *serverOptions) {
		o.logger = logger
	}
}

func New(token string, opts ...ServerOption) *Server {
	o := &serverOptions{
		catalogue: Catalogue(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(o.logger))
	engine.SetHTMLTemplate(templates)

	s := &Server{
		engine: engine,
		server: &http.Server{Handler: engine},
		logger: o.logger,
	}
	s.add(APIPrefix, newAPIController(token, o.catalogue))
	s.add(SitePrefix, newSiteController(o.catalogue))

	return s
}

func (s *Server) add(prefix string, c Controller) {
	c.RegisterRoutes(s.engine.Group(prefix))
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves on addr until Stop is called. After Stop it returns nil
// without serving.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info("kinopoisk mock starting", slog.String("addr", ln.Addr().String()))
	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		logger.Debug("mock request",
			slog.String("method", ctx.Request.Method),
			slog.String("path", ctx.Request.URL.Path),
			slog.String("query", ctx.Request.URL.RawQuery),
			slog.Int("status", ctx.Writer.Status()))
	}
}

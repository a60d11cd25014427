package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopfloor/schedboard/internal/auth"
	"github.com/shopfloor/schedboard/internal/config"
	"github.com/shopfloor/schedboard/internal/handlers"
	"github.com/shopfloor/schedboard/internal/service"
	"github.com/shopfloor/schedboard/internal/store"
	"github.com/shopfloor/schedboard/pkg/metrics"
	"github.com/shopfloor/schedboard/pkg/middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
	policy   auth.Policy
}

// New returns a new instance of the schedule board API server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
	policy auth.Policy,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
		policy:   policy,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.AllowedOrigins,
			AllowedMethods:   []string{"GET", "PUT", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	h := handlers.New(
		service.NewJobService(s.store, s.policy),
		service.NewPriorityService(s.store, s.policy),
		s.cfg.Service.Environment,
	)

	router.Get("/health", h.Health)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(s.cfg.Service.RateLimit, s.cfg.Service.RateWindow))
		h.Routes(r)
	})

	if s.cfg.Service.StaticDir != "" {
		router.Handle("/*", http.FileServer(http.Dir(s.cfg.Service.StaticDir)))
	}

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}

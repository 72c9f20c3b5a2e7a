package http

import (
	"context"
	"net/http"
	"time"

	applog "finance/internal/log"
	"finance/internal/middleware/security"
	"finance/internal/middleware/trace"
	"finance/internal/ports"
	"finance/internal/services"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// maxBodyBytes caps request bodies accepted by the API.
	maxBodyBytes = 1 << 20

	readyTimeout = 5 * time.Second
)

// Server serves the transactions API.
type Server struct {
	http.Server
	svc     *services.TransactionService
	health  ports.HealthChecker
	logger  *applog.Logger
	events  *applog.StructuredLogger
	metrics *metrics
	router  *mux.Router
}

// NewServer builds the API server. health may be nil, in which case
// /readyz always reports ready.
func NewServer(addr string, svc *services.TransactionService, health ports.HealthChecker, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.NewDefault()
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	s := &Server{
		svc:     svc,
		health:  health,
		logger:  logger,
		events:  applog.NewStructuredLogger(logger),
		metrics: newMetrics(),
		router:  mux.NewRouter(),
	}
	s.routes()

	clientIP := security.NewClientIPResolver()
	tracer := trace.NewMiddleware(logger, clientIP.ClientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	var handler http.Handler = s.router
	handler = applog.RequestIDMiddleware(trace.RequestIDFromRequest)(handler)
	handler = headers.Middleware(handler)
	handler = tracer.Middleware(handler)
	handler = applog.Middleware(logger)(handler)
	handler = otelhttp.NewHandler(handler, "finance-api")

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.metrics.middleware)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)

	// API routes stay on the root router so a wrong method on a known path
	// reaches MethodNotAllowedHandler. summary must precede the list route.
	r.HandleFunc("/api/transactions/summary/{user_id}", s.handleSummary).Methods(http.MethodGet)
	r.HandleFunc("/api/transactions/{user_id}", s.handleListTransactions).Methods(http.MethodGet)
	r.HandleFunc("/api/transactions", s.handleCreateTransaction).Methods(http.MethodPost)
	r.HandleFunc("/api/transactions/{id}", s.handleDeleteTransaction).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("Not found.").Write(w)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed.").Write(w)
	})
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", applog.FieldOperation, applog.OpShutdown)
	return s.Server.Shutdown(ctx)
}

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/BrandishEvents_Go/internal/handler"
	"github.com/osse101/BrandishEvents_Go/internal/logger"
	"github.com/osse101/BrandishEvents_Go/internal/metrics"
)

// Options carries everything the command surface serves
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string

	Events   handler.EventService
	Economy  handler.EconomyService
	Accounts handler.AccountLinker
	// Ready is pinged by /readyz; nil means always ready
	Ready       handler.Pinger
	LoadCatalog handler.CatalogLoader
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the middleware stack and routes
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	guard := NewGuard(opts.APIKey, opts.TrustedProxies, DefaultRateLimit, DefaultRateWindow)

	r.Use(securityHeaders)
	r.Use(guard.Authenticate)
	r.Use(guard.Throttle)
	r.Use(limitBody(MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.Ready))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	events := handler.NewEventHandlers(opts.Events)
	economy := handler.NewEconomyHandlers(opts.Economy)
	admin := handler.NewAdminHandlers(opts.Events, opts.Economy, opts.LoadCatalog)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", events.HandleListEvents())
			r.Post("/join", events.HandleJoin())
			r.Post("/leave", events.HandleLeave())
			r.Post("/{name}/kills", events.HandleReportKill())
		})

		r.Get("/points", economy.HandleCheckPoints())
		r.Get("/leaderboard", economy.HandleLeaderboard())
		r.Post("/transfer", economy.HandleTransfer())
		r.Post("/claim", economy.HandleClaim())
		r.Post("/rewards/buy", economy.HandleBuyReward())

		r.Post("/link", handler.HandleLink(opts.Accounts))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/points", admin.HandleModifyPoints())
			r.Post("/events/{name}/start", admin.HandleStartEvent())
			r.Post("/events/{name}/stop", admin.HandleStopEvent())
			r.Post("/reload", admin.HandleReload())
		})
	})

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.status == 0 {
		sr.status = code
		sr.ResponseWriter.WriteHeader(code)
	}
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.WriteHeader(http.StatusOK)
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func quiet(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// requestID keeps a game host's own id so its logs and ours line up
func requestID(r *http.Request) string {
	if id := r.Header.Get(HeaderRequestID); id != "" && len(id) <= MaxRequestIDLength {
		return id
	}
	return logger.GenerateRequestID()
}

func redactedHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			v = []string{RedactedValue}
		}
		out[k] = v
	}
	return out
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if quiet(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		id := requestID(r)
		ctx := logger.WithRequestID(r.Context(), id)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactedHeaders(r.Header))

		w.Header().Set(HeaderRequestID, id)
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if rc := chi.RouteContext(ctx); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", rec.bytes,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

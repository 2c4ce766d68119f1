package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"modelguard/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Preflight() types.PreflightResponse
}

const shutdownTimeout = 5 * time.Second

// NewMux builds the router: /healthz, /preflight, /metrics and /swagger/*.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)
	r.Use(requestLogger)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", handleHealthz)
	r.Get("/preflight", func(w http.ResponseWriter, r *http.Request) {
		handlePreflight(svc, w, r)
	})
	r.Handle("/metrics", promhttp.Handler())
	MountSwagger(r)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// handleHealthz godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /healthz [get]
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ok"})
}

// handlePreflight godoc
// @Summary      Check the configured model path
// @Description  Runs the model path checks. 503 when a required check fails.
// @Tags         preflight
// @Produce      json
// @Success      200  {object}  types.PreflightResponse
// @Failure      503  {object}  types.PreflightResponse
// @Router       /preflight [get]
func handlePreflight(svc Service, w http.ResponseWriter, r *http.Request) {
	resp := svc.Preflight()
	observePreflight(resp.OK)
	status := http.StatusOK
	if !resp.OK {
		status = http.StatusServiceUnavailable
		if zlog != nil {
			zlog.Warn().Str("model_path", resp.ModelPath).Msg("preflight failed")
		}
	}
	writeJSON(w, status, resp)
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
// ready, if non-nil, receives the bound address once listening.
func Serve(ctx context.Context, addr string, h http.Handler, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	if ready != nil {
		ready(ln.Addr())
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	return nil
}

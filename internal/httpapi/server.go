package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"glinerd/pkg/types"
)

// Fixed payloads of the static endpoints.
const (
	Version        = "0.1.0"
	welcomeMessage = "Welcome to Gliner RS API"
	healthMessage  = "API is running"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Detect(ctx context.Context, text string) types.Envelope[types.ExtractionResult]
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(RequestLogger)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(corsOptions()))
	}

	notFound := func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not found")
	}
	r.NotFound(notFound)
	// Wrong method on a known path is indistinguishable from an unknown path.
	r.MethodNotAllowed(notFound)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ok", Message: healthMessage})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.Success(welcomeMessage))
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.Success(Version))
	})

	r.Post("/api/pii/detect", func(w http.ResponseWriter, r *http.Request) {
		// Content-Type check
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			IncrementTransportError("unsupported_media_type")
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		// Limit body size (configurable, default 1MiB)
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.DetectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// Oversized bodies also land here; still 400 to avoid size leak details
			IncrementTransportError("invalid_body")
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		// Shutdown aborts requests still waiting for the inference slot.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		start := time.Now()
		env := svc.Detect(ctx, req.Text)
		if lvl := requestLogLevel(r); lvl >= LevelInfo || (lvl >= LevelError && !env.Success) {
			var z *zerolog.Event
			if env.Success {
				z = logger().Info().Int("entities", env.Data.TotalEntities)
			} else {
				z = logger().Warn().Str("reason", *env.Message)
			}
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Bool("success", env.Success).Dur("dur", time.Since(start)).Msg("detect")
		}
		writeJSON(w, http.StatusOK, env)
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

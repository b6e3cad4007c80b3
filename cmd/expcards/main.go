package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/finlit-labs/expcards/internal/config"
	"github.com/finlit-labs/expcards/internal/kv"
	kvRedis "github.com/finlit-labs/expcards/internal/kv/redis"
	logpkg "github.com/finlit-labs/expcards/internal/logger"
	"github.com/finlit-labs/expcards/internal/match"
	"github.com/finlit-labs/expcards/internal/metrics"
	cardrepo "github.com/finlit-labs/expcards/internal/repository/card"
	"github.com/finlit-labs/expcards/internal/repository/veccache"
	"github.com/finlit-labs/expcards/internal/safety"
	"github.com/finlit-labs/expcards/internal/seed"
	"github.com/finlit-labs/expcards/internal/transport/chihttp"
	adminuc "github.com/finlit-labs/expcards/internal/usecase/admin"
	askuc "github.com/finlit-labs/expcards/internal/usecase/ask"
	healthuc "github.com/finlit-labs/expcards/internal/usecase/health"
	"github.com/finlit-labs/expcards/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting expcards API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("live_db", cfg.Database.LivePath),
		zap.String("demo_db", cfg.Database.DemoPath),
	)

	ctx := context.Background()

	// Open the card stores. The live store keeps admin-submitted cards and
	// is seeded only when empty; the demo store is reseeded on every start.
	live, err := cardrepo.Open(ctx, cfg.Database.LivePath, "live")
	if err != nil {
		logger.Fatal("Failed to open live card store", zap.Error(err))
	}
	defer func() { _ = live.Close() }()

	demo, err := cardrepo.Open(ctx, cfg.Database.DemoPath, "demo")
	if err != nil {
		logger.Fatal("Failed to open demo card store", zap.Error(err))
	}
	defer func() { _ = demo.Close() }()

	now := time.Now().UTC()
	if n, err := seed.IfEmpty(ctx, live, now); err != nil {
		logger.Fatal("Failed to seed live store", zap.Error(err))
	} else if n > 0 {
		logger.Info("Seeded live store", zap.Int("cards", n))
	}
	if n, err := seed.Reseed(ctx, demo, now); err != nil {
		logger.Fatal("Failed to reseed demo store", zap.Error(err))
	} else {
		logger.Info("Reseeded demo store", zap.Int("cards", n))
	}

	// Register matching metrics explicitly (no init())
	metrics.RegisterMatchingMetrics()

	// Build the vector source chain — composition root
	var kvStore kv.Store
	vectors := buildVectorSource(cfg.Cache, &kvStore, logger)
	if kvStore != nil {
		defer kvStore.Close()
	}

	// Safety policy — config lists override the built-in defaults
	banned := cfg.Safety.BannedKeywords
	if len(banned) == 0 {
		banned = safety.DefaultBannedKeywords()
	}
	allowed := cfg.Safety.AllowedDomains
	if len(allowed) == 0 {
		allowed = safety.DefaultAllowedDomains()
	}
	policy := safety.NewPolicy(banned, allowed, cfg.Safety.MinStructureScore)

	// Scorer and ranker from tuned constants
	scorer := match.NewScorer(match.Weights{
		TagBonus:      cfg.Matching.TagBonus,
		TagBonusCap:   cfg.Matching.TagBonusCap,
		CategoryBonus: cfg.Matching.CategoryBonus,
		MaxWhyTags:    match.DefaultWeights().MaxWhyTags,
	})
	ranker := match.NewRanker(scorer,
		match.RankOptions{
			MinScore:    cfg.Matching.MinScore,
			ResultLimit: cfg.Matching.ResultLimit,
			TopVisible:  cfg.Matching.TopVisible,
		},
		match.Cutoffs{
			High:   cfg.Matching.HighConfidence,
			Medium: cfg.Matching.MediumConfidence,
		},
	)

	// Create use case services
	askSvc := askuc.New(live, demo, policy, vectors, ranker, logger).
		WithMinQuestionLen(cfg.Matching.MinQuestionLen)
	adminSvc := adminuc.New(live, policy, vectors, logger)

	healthComponents := map[string]healthuc.Pinger{
		"live_db": live,
		"demo_db": demo,
	}
	if kvStore != nil {
		healthComponents["cache"] = kvStore
	}
	healthSvc := healthuc.New(healthComponents)

	// Create chi server
	server := chihttp.NewServer(askSvc, adminSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.Mount("/", server.Routes())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildVectorSource assembles the vector chain: Compute, wrapped in the
// Redis-backed cache when one is configured. A cache connection failure
// falls back to plain compute rather than refusing to start.
func buildVectorSource(cfg config.CacheConfig, out *kv.Store, logger *zap.Logger) veccache.Source {
	base := veccache.Compute{}
	if !cfg.Enabled() {
		return base
	}

	store, err := kvRedis.NewStore(kvRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		logger.Warn("Vector cache unavailable, computing vectors per query", zap.Error(err))
		return base
	}
	*out = store

	logger.Info("Vector cache enabled",
		zap.Strings("addrs", cfg.Addrs),
		zap.Int("ttl_sec", cfg.TTLSec),
	)
	ttl := time.Duration(cfg.TTLSec) * time.Second
	return veccache.New(base, store, ttl, metrics.VectorCacheTotal, logger)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

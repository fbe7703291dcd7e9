package di

import (
	"context"
	"fmt"

	"MarketMCP/internal/domain/repository"
	domsvc "MarketMCP/internal/domain/service"
	"MarketMCP/internal/handler/api"
	"MarketMCP/internal/service/cache"
	"MarketMCP/internal/service/gemini"
	svcmetrics "MarketMCP/internal/service/metrics"
	"MarketMCP/internal/service/ratelimit"
	"MarketMCP/internal/services/analytics"
	"MarketMCP/internal/usecase"
	"MarketMCP/pkg/config"
	xhttp "MarketMCP/pkg/http"
	applogger "MarketMCP/pkg/logger"
	"MarketMCP/pkg/metrics"
	"MarketMCP/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// ProvideLogger creates the structured logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideRegistry creates a dedicated Prometheus registry with runtime collectors.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideEndpointMetrics creates per-endpoint latency and error metrics.
func ProvideEndpointMetrics(reg *prometheus.Registry) *svcmetrics.Endpoint {
	return svcmetrics.NewEndpoint(reg)
}

func ProvideForecaster() domsvc.Forecaster { return analytics.NewForecaster() }

func ProvideRiskAnalyzer() domsvc.RiskAnalyzer { return analytics.NewRiskAnalyzer() }

func ProvideQuoteEngine() domsvc.QuoteEngine { return analytics.NewQuoteEngine() }

// ProvideLanguageModel creates the Gemini client, or a disabled stand-in
// when no API key is configured.
func ProvideLanguageModel(cfg *config.Config, logger *applogger.Logger) (domsvc.LanguageModel, error) {
	lm, err := gemini.New(context.Background(), cfg.Gemini, logger)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if !cfg.Gemini.Enabled() {
		logger.Warn("GEMINI_API_KEY is not set, narrative endpoints will return 503")
	}
	return lm, nil
}

// ProvideRedisClient connects to Redis when enabled. A nil client means the
// in-memory cache is used.
func ProvideRedisClient(cfg *config.Config, logger *applogger.Logger) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	rdb, err := cache.NewRedisClient(context.Background(), cache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("redis client: %w", err)
	}
	logger.Info("redis: connected", applogger.String("addr", cfg.Cache.Redis.Addr))
	cleanup := func() {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close error", applogger.Error(err))
		}
	}
	return rdb, cleanup, nil
}

// ProvideModelCache picks Redis when a client is available, memory otherwise.
func ProvideModelCache(cfg *config.Config, rdb *redis.Client) cache.BytesCache {
	if rdb != nil {
		return cache.NewRedisCache(rdb, cfg.Cache.Redis.Prefix)
	}
	return cache.NewTTLCache()
}

// ProvideRateLimiter returns nil when rate limiting is disabled.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

// ProvideAnalytics creates the analytics use case.
func ProvideAnalytics(f domsvc.Forecaster, r domsvc.RiskAnalyzer, q domsvc.QuoteEngine, m repository.Metrics) *usecase.Analytics {
	return usecase.NewAnalytics(f, r, q, m)
}

// ProvideNarrative creates the language-model use case.
func ProvideNarrative(cfg *config.Config, lm domsvc.LanguageModel, c cache.BytesCache, logger *applogger.Logger) *usecase.Narrative {
	return usecase.NewNarrative(lm, c, cfg.Cache.ModelsTTL, logger)
}

// ProvideHandlers collects every HTTP handler.
func ProvideHandlers(
	logger *applogger.Logger,
	an *usecase.Analytics,
	nr *usecase.Narrative,
	em *svcmetrics.Endpoint,
	rl *ratelimit.Limiter,
) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewHealthHandler(),
		api.NewAnalyticsEchoHandler(logger, an, em),
		api.NewNarrativeEchoHandler(logger, nr, em, rl),
	}
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, logger *applogger.Logger, reg *prometheus.Registry, handlers []xhttp.Handler) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS.Enabled, cfg.Server.CORS.AllowOrigins, cfg.Server.CORS.MaxAge),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(reg, cfg.Metrics.Path, cfg.Metrics.SlowThreshold))
	}
	return xhttp.NewServer(logger, handlers, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, logger *applogger.Logger, srv *xhttp.Server) *server.App {
	return server.New(cfg, logger, srv)
}

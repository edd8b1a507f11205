package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/multierr"

	"github.com/MrSnakeDoc/ytdown/internal/assistant"
	"github.com/MrSnakeDoc/ytdown/internal/config"
	"github.com/MrSnakeDoc/ytdown/internal/download"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/render"
	"github.com/MrSnakeDoc/ytdown/internal/i18n"
	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/redis"
	"github.com/MrSnakeDoc/ytdown/internal/scheduler"
	"github.com/MrSnakeDoc/ytdown/internal/session"
	"github.com/MrSnakeDoc/ytdown/internal/sources/extractor"
	"github.com/MrSnakeDoc/ytdown/internal/store"
	"github.com/MrSnakeDoc/ytdown/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/ytdown/internal/store/redis"
	"github.com/MrSnakeDoc/ytdown/internal/utils"
	"github.com/MrSnakeDoc/ytdown/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client // nil with the in-memory store
	collector   *scheduler.SessionCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	kv, redisClient, sweeper, counter := openStore(cfg, loggerClient)

	// Catalogs are embedded: a failure here is a build problem.
	defaultLang, ok := i18n.ParseLang(cfg.DefaultLang)
	if !ok {
		defaultLang = i18n.ID
	}
	locales, err := i18n.Load(defaultLang)
	if err != nil {
		loggerClient.Errorf("Failed to load locale catalogs: %v", err)
		os.Exit(1)
	}

	views, err := render.New()
	if err != nil {
		loggerClient.Errorf("Failed to parse templates: %v", err)
		os.Exit(1)
	}

	// Upstream clients carry no overall timeout: lookups are bounded by the
	// request context, downloads must be allowed to run long.
	upstream := utils.NewHTTPClient(10 * time.Second)

	fetcher := extractor.NewClient(cfg.ExtractorURL, upstream, loggerClient)
	completer := assistant.NewOpenAICompleter(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, cfg.AITemperature, upstream)
	if cfg.AIAPIKey == "" {
		loggerClient.Warn("no AI API key configured, chat replies will be \"Service error.\"")
	}

	sessions := session.NewManager(kv, fetcher, completer, locales, loggerClient.Named("session"))

	collector := scheduler.NewSessionCollector(
		sessions,
		sweeper,
		counter,
		loggerClient,
		cfg.GCInterval,
		cfg.SessionIdle,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		Store:          kv,
		SessionCounter: counter,
		Sessions:       sessions,
		Locales:        locales,
		Prefs:          i18n.NewPreferences(kv, defaultLang, loggerClient),
		Views:          views,
		Downloader:     download.New(upstream, loggerClient),
		DownloadMode:   cfg.DownloadMode,
		CookieSecure:   cfg.CookieSecure,
		SessionTTL:     cfg.SessionTTL,
		RateBurst:      cfg.RateBurst,
		RateRefillMin:  cfg.RateRefillMin,
		RequestTimeout: cfg.RequestTimeout,
		ChatEnabled:    cfg.AIAPIKey != "",
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		collector:   collector,
	}
}

// openStore connects Redis when an address is configured, and falls back to
// the in-memory store otherwise. Redis is fail-fast: unreachable after the
// retry window aborts startup.
func openStore(cfg *config.Config, loggerClient logger.Logger) (store.KV, *goredis.Client, scheduler.KeySweeper, scheduler.SessionCounter) {
	if !cfg.UsesRedis() {
		loggerClient.Info("no Redis address configured, using in-memory session store",
			logger.Duration("ttl", cfg.SessionTTL))
		mem := memory.NewStore(cfg.SessionTTL)
		return mem, nil, mem, nil
	}

	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(context.Background(), redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	rs := redisstore.NewStore(redisClient, cfg.SessionTTL)
	return rs, redisClient, nil, rs
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting %s %s on %s", version.AppName, version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start session collector
	if err := a.collector.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session collector: %w", err)
	}
	a.logger.Info("session collector started",
		logger.Duration("interval", a.cfg.GCInterval),
		logger.Duration("idle", a.cfg.SessionIdle))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.collector.Stop()
		return multierr.Append(err, a.closeStore())
	}

	a.collector.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	var err error
	if stopErr := a.server.Stop(shutdownCtx); stopErr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to stop server: %w", stopErr))
	}
	err = multierr.Append(err, a.closeStore())
	if err != nil {
		return err
	}

	if syncErr := a.logger.Sync(); syncErr != nil {
		// stdout/stderr sync fails on some platforms; not worth failing shutdown.
		a.logger.Debug("logger sync failed", logger.Error(syncErr))
	}
	a.logger.Info("✅ ytdown stopped cleanly")
	return nil
}

func (a *App) closeStore() error {
	if a.redisClient == nil {
		return nil
	}
	if err := a.redisClient.Close(); err != nil {
		return fmt.Errorf("failed to close redis: %w", err)
	}
	a.logger.Info("✅ Redis closed cleanly")
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/daodash/internal/adapter/http"
	"github.com/iho/daodash/internal/adapter/http/handler"
	"github.com/iho/daodash/internal/adapter/http/middleware"
	"github.com/iho/daodash/internal/adapter/idgen"
	redisRepo "github.com/iho/daodash/internal/adapter/repository/redis"
	"github.com/iho/daodash/internal/infrastructure/config"
	"github.com/iho/daodash/internal/infrastructure/eventpublisher"
	"github.com/iho/daodash/internal/infrastructure/logger"
	"github.com/iho/daodash/internal/infrastructure/metrics"
	"github.com/iho/daodash/internal/infrastructure/redis"
	"github.com/iho/daodash/internal/usecase"
)

const limiterCleanupInterval = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cfg, log.Logger, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

// app is the wired service.
type app struct {
	cfg         *config.Config
	logger      zerolog.Logger
	server      *http.Server
	relay       *eventpublisher.EventPublisher
	rateLimiter *middleware.RateLimiter
	queue       *usecase.ToastQueue
	redisClient *goredis.Client
}

func newApp(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*app, error) {
	m := metrics.NewWithRegisterer(reg)

	// Connect to Redis when configured
	var redisClient *goredis.Client
	if cfg.RedisEnabled() {
		opts := redis.DefaultConnectOptions()
		opts.Logger = appLogger
		client, err := redis.NewClientWithOptions(ctx, cfg.RedisURL, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisClient = client
		appLogger.Info().Msg("connected to redis")
	} else {
		appLogger.Warn().Msg("REDIS_URL not set, idempotency disabled and toast events logged only")
	}

	// Toast queue
	queue := usecase.NewToastQueue(usecase.ToastQueueConfig{
		Limit:       cfg.ToastLimit,
		RemoveDelay: cfg.ToastRemoveDelay,
		IDGen:       idgen.NewULIDGenerator(),
		Scheduler:   usecase.TimerScheduler{},
		Metrics:     m,
		Logger:      appLogger.With().Str("component", "toast_queue").Logger(),
	})

	// Event relay
	var publisher eventpublisher.Publisher = eventpublisher.NewLogPublisher(appLogger.With().Str("component", "toast_events").Logger())
	var idempotencyStore usecase.IdempotencyStore
	if redisClient != nil {
		publisher = redisRepo.NewToastPublisher(redisClient, cfg.ToastChannel, m)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient, m)
	}

	relay := eventpublisher.NewEventPublisher(eventpublisher.Config{
		Source:    queue,
		Publisher: publisher,
		Recorder:  m,
		Logger:    appLogger.With().Str("component", "event_publisher").Logger(),
	})

	// Initialize use cases
	tokenUC := usecase.NewTokenUseCase(m)
	scheduleUC := usecase.NewScheduleUseCase(usecase.SystemClock{}, cfg.ProposalMinDuration, m)
	memberUC := usecase.NewMemberUseCase()

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithRecorder(m)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TokenHandler:     handler.NewTokenHandler(tokenUC),
		ScheduleHandler:  handler.NewScheduleHandler(scheduleUC),
		MemberHandler:    handler.NewMemberHandler(memberUC),
		ToastHandler:     handler.NewToastHandler(queue),
		HealthHandler:    handler.NewHealthHandler(redisClient),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
		Logger:           &appLogger,
		MetricsHandler:   promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &app{
		cfg:         cfg,
		logger:      appLogger,
		server:      server,
		relay:       relay,
		rateLimiter: rateLimiter,
		queue:       queue,
		redisClient: redisClient,
	}, nil
}

// Run serves HTTP and relays toast events until ctx is cancelled.
func (a *app) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().Str("port", a.cfg.HTTPPort).Msg("starting server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := a.relay.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if a.rateLimiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(limiterCleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					a.rateLimiter.CleanupLimiters(time.Hour)
				}
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPShutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close releases external connections.
func (a *app) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
}

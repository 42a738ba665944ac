// Package app builds the occupation pipeline from configuration and owns the
// long-lived clients it opens.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/JakeFAU/occupation-risk/internal/api"
	"github.com/JakeFAU/occupation-risk/internal/bls"
	"github.com/JakeFAU/occupation-risk/internal/cache"
	"github.com/JakeFAU/occupation-risk/internal/clock/system"
	"github.com/JakeFAU/occupation-risk/internal/config"
	"github.com/JakeFAU/occupation-risk/internal/hash/sha256"
	"github.com/JakeFAU/occupation-risk/internal/id/uuid"
	"github.com/JakeFAU/occupation-risk/internal/logging"
	"github.com/JakeFAU/occupation-risk/internal/metrics"
	"github.com/JakeFAU/occupation-risk/internal/pipeline"
	"github.com/JakeFAU/occupation-risk/internal/policy/ratelimit"
	gcppublisher "github.com/JakeFAU/occupation-risk/internal/publisher/pubsub"
	"github.com/JakeFAU/occupation-risk/internal/resolver"
	"github.com/JakeFAU/occupation-risk/internal/risk"
	"github.com/JakeFAU/occupation-risk/internal/search"
	"github.com/JakeFAU/occupation-risk/internal/search/keyword"
	"github.com/JakeFAU/occupation-risk/internal/search/onet"
	gcsstorage "github.com/JakeFAU/occupation-risk/internal/storage/gcs"
	localstorage "github.com/JakeFAU/occupation-risk/internal/storage/local"
	memorystorage "github.com/JakeFAU/occupation-risk/internal/storage/memory"
	pgstore "github.com/JakeFAU/occupation-risk/internal/storage/postgres"
)

// Migrator creates the datastore schema.
type Migrator interface {
	EnsureSchema(ctx context.Context) error
}

type closer struct {
	name  string
	close func() error
}

// App contains the application's dependencies.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	clock    pipeline.Clock
	pool     *pgxpool.Pool
	migrator Migrator
	cache    *cache.Cache
	bls      *bls.Client
	service  *pipeline.Service
	server   *api.Server
	closers  []closer
}

// Option customizes Build.
type Option func(*App)

// WithLogger replaces the logger Build would construct from configuration.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithClock replaces the system clock.
func WithClock(clock pipeline.Clock) Option {
	return func(a *App) { a.clock = clock }
}

// Build creates the application's dependencies. On error every client opened
// so far is closed.
func Build(ctx context.Context, cfg config.Config, opts ...Option) (app *App, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger, err = logging.New(cfg.Logging.Development)
		if err != nil {
			return nil, fmt.Errorf("logger init failed: %w", err)
		}
	}
	if a.clock == nil {
		a.clock = system.New()
	}
	defer func() {
		if err != nil {
			_ = a.closeAll()
		}
	}()

	metrics.Init()
	a.logger.Info("building application dependencies",
		zap.String("db_driver", cfg.DB.Driver),
		zap.String("archive", cfg.Storage.Backend),
		zap.Bool("bls_key_configured", cfg.BLS.APIKey != ""),
	)

	repo, err := a.setupRepository(ctx)
	if err != nil {
		return nil, err
	}
	a.cache, err = cache.New(repo, a.clock, cfg.FreshnessWindow(), a.logger)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}

	archive, err := a.setupArchive(ctx)
	if err != nil {
		return nil, err
	}
	publisher, err := a.setupPublisher(ctx)
	if err != nil {
		return nil, err
	}

	a.bls = bls.New(bls.Config{
		APIKey:              cfg.BLS.APIKey,
		BaseURL:             cfg.BLS.BaseURL,
		SeriesLimit:         cfg.BLS.SeriesLimit,
		MaxRetries:          cfg.BLS.MaxRetries,
		BackoffBase:         config.Millis(cfg.BLS.BackoffBaseMs),
		RateLimitMultiplier: cfg.BLS.RateLimitMultiplier,
		ChunkDelay:          config.Millis(cfg.BLS.ChunkDelayMs),
		Timeout:             time.Duration(cfg.BLS.TimeoutSeconds) * time.Second,
		ProjectionHorizon:   cfg.BLS.ProjectionHorizon,
	},
		bls.WithLimiter(ratelimit.New(ratelimit.Config{RequestsPerSecond: cfg.BLS.RequestsPerSecond, Burst: cfg.BLS.Burst})),
		bls.WithClock(a.clock),
		bls.WithLogger(a.logger),
	)

	seed := cfg.Risk.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	svc, err := pipeline.New(pipeline.Deps{
		Resolver:  resolver.New(a.cache, a.searcher(), a.logger),
		Cache:     a.cache,
		Fetcher:   a.bls,
		Scorer:    risk.NewScorer(seed),
		Clock:     a.clock,
		IDs:       uuid.New(),
		Hasher:    sha256.New(),
		Archive:   archive,
		Publisher: publisher,
		Logger:    a.logger,
	}, pipeline.Config{
		FetchDelay:      config.Millis(cfg.Pipeline.FetchDelayMs),
		ComparisonDelay: config.Millis(cfg.Pipeline.ComparisonDelayMs),
		ArchivePrefix:   cfg.Storage.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline init failed: %w", err)
	}
	a.service = svc

	a.server = api.NewServer(svc, a.bls, a.cache, uuid.New(), api.Options{
		RequestTimeout:   cfg.RequestTimeout(),
		MaxCompareTitles: cfg.Server.MaxCompareTitles,
		AuthEnabled:      cfg.Auth.Enabled,
		APIKey:           cfg.Auth.APIKey,
	}, a.logger)

	return a, nil
}

func (a *App) setupRepository(ctx context.Context) (cache.Repository, error) {
	if a.cfg.DB.Driver == config.DriverMemory {
		a.logger.Warn("using in-memory occupation store, rows are lost on exit")
		return memorystorage.NewOccupationStore(), nil
	}
	pool, err := pgstore.NewPool(ctx, pgstore.PoolConfig{
		DSN:      a.cfg.DB.DSN,
		MaxConns: a.cfg.DB.MaxConns,
		MinConns: a.cfg.DB.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres pool init failed: %w", err)
	}
	a.pool = pool
	a.closers = append(a.closers, closer{name: "postgres pool", close: func() error {
		pool.Close()
		return nil
	}})
	store, err := pgstore.NewOccupationStore(pool, a.cfg.DB.Table)
	if err != nil {
		return nil, fmt.Errorf("occupation store init failed: %w", err)
	}
	a.migrator = store
	a.logger.Info("postgres occupation store initialized", zap.String("table", a.cfg.DB.Table))
	return store, nil
}

func (a *App) setupArchive(ctx context.Context) (pipeline.BlobStore, error) {
	switch a.cfg.Storage.Backend {
	case config.ArchiveGCS:
		store, err := gcsstorage.Connect(ctx, gcsstorage.Config{Bucket: a.cfg.Storage.GCSBucket})
		if err != nil {
			return nil, fmt.Errorf("gcs blob store init failed: %w", err)
		}
		a.closers = append(a.closers, closer{name: "gcs client", close: store.Close})
		a.logger.Info("using GCS payload archive", zap.String("bucket", a.cfg.Storage.GCSBucket))
		return store, nil
	case config.ArchiveLocal:
		store, err := localstorage.New(localstorage.Config{BaseDir: a.cfg.Storage.LocalDir})
		if err != nil {
			return nil, fmt.Errorf("local blob store init failed: %w", err)
		}
		a.logger.Info("using local payload archive", zap.String("path", a.cfg.Storage.LocalDir))
		return store, nil
	case config.ArchiveMemory:
		a.logger.Info("using in-memory payload archive")
		return memorystorage.NewBlobStore(), nil
	default:
		a.logger.Debug("payload archive disabled")
		return nil, nil
	}
}

func (a *App) setupPublisher(ctx context.Context) (pipeline.Publisher, error) {
	if a.cfg.PubSub.TopicName == "" {
		a.logger.Debug("no Pub/Sub topic configured, refresh events disabled")
		return nil, nil
	}
	pub, err := gcppublisher.Connect(ctx, a.cfg.PubSub.ProjectID, a.cfg.PubSub.TopicName)
	if err != nil {
		return nil, fmt.Errorf("pubsub publisher init failed: %w", err)
	}
	a.closers = append(a.closers, closer{name: "pubsub publisher", close: pub.Close})
	a.logger.Info("Pub/Sub publisher initialized",
		zap.String("project", a.cfg.PubSub.ProjectID),
		zap.String("topic", a.cfg.PubSub.TopicName),
	)
	return pub, nil
}

func (a *App) searcher() search.Searcher {
	chain := search.Chain{keyword.New(a.cfg.Search.KeywordMinScore)}
	if a.cfg.Search.ONetEnabled {
		chain = append(chain, onet.New(onet.Config{
			BaseURL:   a.cfg.Search.ONetBaseURL,
			UserAgent: a.cfg.Search.UserAgent,
			Timeout:   time.Duration(a.cfg.Search.TimeoutSeconds) * time.Second,
		}, ratelimit.New(ratelimit.Config{RequestsPerSecond: a.cfg.Search.RequestsPerSecond}), a.logger))
	}
	return chain
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger { return a.logger }

// Service returns the pipeline orchestrator.
func (a *App) Service() *pipeline.Service { return a.service }

// Cache returns the occupation cache.
func (a *App) Cache() *cache.Cache { return a.cache }

// BLS returns the statistics API client.
func (a *App) BLS() *bls.Client { return a.bls }

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler { return a.server.Handler() }

// Migrate creates the occupation table and its index. It is a no-op for the memory driver.
func (a *App) Migrate(ctx context.Context) error {
	if a.migrator == nil {
		a.logger.Info("no schema to migrate", zap.String("db_driver", a.cfg.DB.Driver))
		return nil
	}
	if err := a.migrator.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	a.logger.Info("schema ready", zap.String("table", a.cfg.DB.Table))
	return nil
}

// Run serves HTTP until ctx is canceled or SIGINT/SIGTERM arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.cfg.DB.AutoMigrate {
		if err := a.Migrate(ctx); err != nil {
			return err
		}
	}

	addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server started", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown initiated")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases every client the App opened, in reverse order.
func (a *App) Close() error {
	err := a.closeAll()
	if syncErr := a.logger.Sync(); syncErr != nil {
		a.logger.Debug("logger sync failed", zap.Error(syncErr))
	}
	return err
}

func (a *App) closeAll() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.close(); err != nil {
			a.logger.Warn("close failed", zap.String("component", c.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("close %s: %w", c.name, err))
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

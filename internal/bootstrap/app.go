package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/employee_directory/internal/config"
	"github.com/locvowork/employee_directory/internal/database"
	"github.com/locvowork/employee_directory/internal/directory"
	"github.com/locvowork/employee_directory/internal/domain"
	"github.com/locvowork/employee_directory/internal/handler"
	"github.com/locvowork/employee_directory/internal/logger"
	"github.com/locvowork/employee_directory/internal/repository"
	"github.com/locvowork/employee_directory/internal/seed"
	"github.com/locvowork/employee_directory/internal/service"
)

type App struct {
	Echo    *echo.Echo
	Config  *config.EnvConfig
	Service *service.DirectoryService

	closers []func() error
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{
		Echo: e,
	}
}

// Setup loads configuration and logging. It is shared by every command.
func Setup(ctx context.Context) (*config.EnvConfig, error) {
	if err := config.LoadEnvConfig(); err != nil {
		return nil, fmt.Errorf("failed to load env config: %w", err)
	}

	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")
	return config.DefaultEnvConfig, nil
}

// LoadController builds a directory controller from the configured seed
// source. The returned function releases any backend connection it opened.
func LoadController(ctx context.Context, cfg *config.EnvConfig) (*directory.Controller, func() error, error) {
	src, closeSrc, err := NewEmployeeSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var opts []directory.Option
	if mode, err := domain.ParseViewMode(cfg.DEFAULT_VIEW_MODE); err == nil {
		opts = append(opts, directory.WithViewMode(mode))
	} else {
		logger.WarnLog(ctx, "Ignoring DEFAULT_VIEW_MODE: %v", err)
	}

	ctrl, err := directory.Load(ctx, src, opts...)
	if err != nil {
		Release(ctx, closeSrc)
		return nil, nil, fmt.Errorf("failed to load directory from %s: %w", cfg.SEED_SOURCE, err)
	}
	logger.InfoLog(ctx, "Directory loaded from %s with %d employees", cfg.SEED_SOURCE, ctrl.Store().Len())
	return ctrl, closeSrc, nil
}

// LoadService wraps LoadController for concurrent callers.
func LoadService(ctx context.Context, cfg *config.EnvConfig) (*service.DirectoryService, func() error, error) {
	ctrl, closeSrc, err := LoadController(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return service.NewDirectoryService(ctrl, cfg.CURRENCY), closeSrc, nil
}

func (a *App) Initialize(ctx context.Context) error {
	cfg, err := Setup(ctx)
	if err != nil {
		return err
	}
	return a.InitializeWith(ctx, cfg)
}

// InitializeWith wires the app from an explicit configuration.
func (a *App) InitializeWith(ctx context.Context, cfg *config.EnvConfig) error {
	a.Config = cfg

	svc, closeSrc, err := LoadService(ctx, cfg)
	if err != nil {
		return err
	}
	a.Service = svc
	a.closers = append(a.closers, closeSrc)

	dirHandler := handler.NewDirectoryHandler(svc)

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(dirHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(dirHandler *handler.DirectoryHandler) {
	a.Echo.GET("/healthz", handler.HealthHandler)

	g := a.Echo.Group("/directory")
	g.GET("", dirHandler.SnapshotHandler)
	g.GET("/statistics", dirHandler.StatisticsHandler)
	g.GET("/departments", dirHandler.DepartmentsHandler)
	g.GET("/employees", dirHandler.EmployeesHandler)
	g.GET("/export", dirHandler.ExportHandler)
	g.PUT("/search", dirHandler.SearchHandler)
	g.PUT("/department", dirHandler.DepartmentHandler)
	g.PUT("/view-mode", dirHandler.ViewModeHandler)
	g.POST("/sort/:column", dirHandler.SortHandler)
}

func (a *App) Run() error {
	defer a.Close()
	logger.InfoLog(context.Background(), "Starting HTTP server on port %s", a.Config.APP_PORT)
	err := a.Echo.Start(":" + a.Config.APP_PORT)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close releases backend connections opened during initialization.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Release runs a close function returned by this package and logs its error.
func Release(ctx context.Context, closeFn func() error) {
	if closeFn == nil {
		return
	}
	if err := closeFn(); err != nil {
		logger.ErrorLog(ctx, "Failed to close backend connection: %v", err)
	}
}

// NewEmployeeSource picks the seed source named by SEED_SOURCE.
func NewEmployeeSource(ctx context.Context, cfg *config.EnvConfig) (domain.EmployeeSource, func() error, error) {
	noop := func() error { return nil }

	switch cfg.SEED_SOURCE {
	case config.SeedEmbedded, "":
		return seed.Embedded(), noop, nil
	case config.SeedFile:
		if cfg.SEED_FILE == "" {
			return nil, nil, fmt.Errorf("SEED_SOURCE=file requires SEED_FILE")
		}
		return seed.FileSource{Path: cfg.SEED_FILE}, noop, nil
	case config.SeedPostgres:
		db, err := OpenPostgres(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewEmployeeRepository(db, cfg.DB_TABLE), db.Close, nil
	case config.SeedElastic:
		es, err := database.NewElasticSearchClient(cfg.ELASTIC_URL, cfg.ELASTIC_INDEX)
		if err != nil {
			return nil, nil, err
		}
		return es, noop, nil
	case config.SeedDatastore:
		dc, err := database.NewDatastoreClient(ctx, cfg.DATASTORE_PROJECT, cfg.DATASTORE_KIND)
		if err != nil {
			return nil, nil, err
		}
		return dc, dc.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown SEED_SOURCE %q", cfg.SEED_SOURCE)
	}
}

// OpenPostgres connects with the DB_* settings.
func OpenPostgres(ctx context.Context, cfg *config.EnvConfig) (*sql.DB, error) {
	dbConfig := database.Config{
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	}

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.InfoLog(ctx, "Database connection established successfully")
	return db, nil
}

// NewSeeder opens only the client needed for target.
func NewSeeder(ctx context.Context, cfg *config.EnvConfig, target database.SeedTarget) (*database.DataSeeder, func() error, error) {
	switch target {
	case database.TargetPostgres:
		db, err := OpenPostgres(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return database.NewDataSeeder(repository.NewEmployeeRepository(db, cfg.DB_TABLE), nil, nil), db.Close, nil
	case database.TargetElastic:
		es, err := database.NewElasticSearchClient(cfg.ELASTIC_URL, cfg.ELASTIC_INDEX)
		if err != nil {
			return nil, nil, err
		}
		return database.NewDataSeeder(nil, es, nil), func() error { return nil }, nil
	case database.TargetDatastore:
		dc, err := database.NewDatastoreClient(ctx, cfg.DATASTORE_PROJECT, cfg.DATASTORE_KIND)
		if err != nil {
			return nil, nil, err
		}
		return database.NewDataSeeder(nil, nil, dc), dc.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown seed target %q", target)
	}
}

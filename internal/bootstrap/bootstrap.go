package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "studyplanner/internal/app/controllers"
	appRoutes "studyplanner/internal/app/routes"
	appServices "studyplanner/internal/app/services"
	"studyplanner/internal/catalog"
	"studyplanner/internal/config"
	"studyplanner/internal/db"
	appMiddleware "studyplanner/internal/middleware"
	"studyplanner/internal/metrics"
	"studyplanner/internal/pkg/logger"
	"studyplanner/internal/pkg/websocket"
	"studyplanner/internal/planner"
	"studyplanner/internal/seed"
	"studyplanner/internal/storage"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Catalog           *catalog.Catalog
	Store             *planner.Store
	Metrics           *metrics.Metrics
	Hub               *websocket.Hub
	CatalogService    *appServices.CatalogService
	PlannerService    *appServices.PlannerService
	ExportService     *appServices.ExportService
	CatalogController *appControllers.CatalogController
	PlannerController *appControllers.PlannerController
	ExportController  *appControllers.ExportController
	WSHandler         *websocket.Handler
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupCatalog loads the immutable catalog from the configured source. A
// load failure is fatal for startup; there is no retry.
func SetupCatalog(cfg *config.Config, lgr zerolog.Logger) (*catalog.Catalog, *db.PostgresDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch strings.ToLower(cfg.Catalog.Driver) {
	case "postgres":
		lgr.Info().Msg("Loading catalog from database...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}

		cat, err := catalog.NewPostgresSource(database.Pool).Load(ctx)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to load catalog from database")
			database.Close()
			return nil, nil, err
		}
		return cat, database, nil

	default:
		lgr.Info().Str("dataDir", cfg.Catalog.DataDir).Msg("Loading catalog from data directory...")

		if err := seed.EnsureSampleCatalog(cfg.Catalog.DataDir, lgr); err != nil {
			// A failed seed only matters when the load below fails too
			lgr.Warn().Err(err).Msg("Could not provision sample catalog")
		}

		cat, err := catalog.NewFileSource(cfg.Catalog.DataDir).Load(ctx)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to load catalog")
			return nil, nil, err
		}
		return cat, nil, nil
	}
}

// BuildDependencies initializes storage, the planning engine, services and controllers.
func BuildDependencies(cfg *config.Config, cat *catalog.Catalog, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Catalog: cat, Logger: lgr}

	adapter, err := storage.NewFileAdapter(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize plan storage: %w", err)
	}

	deps.Store = planner.NewStore(cat, adapter)
	deps.Metrics = metrics.New()

	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)

	deps.CatalogService = appServices.NewCatalogService(cat)
	deps.PlannerService = appServices.NewPlannerService(deps.Store, deps.Metrics, deps.Hub, lgr)
	deps.ExportService = appServices.NewExportService(cat, deps.Metrics)

	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.PlannerController = appControllers.NewPlannerController(deps.PlannerService)
	deps.ExportController = appControllers.NewExportController(deps.ExportService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.CatalogController,
		deps.PlannerController,
		deps.ExportController,
		deps.WSHandler,
		deps.Metrics,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

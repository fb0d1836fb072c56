package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"xpose-backend/internal/config"
	infraCache "xpose-backend/internal/infrastructure/cache"
	"xpose-backend/internal/infrastructure/database"
	"xpose-backend/internal/infrastructure/queue"
	"xpose-backend/internal/infrastructure/storage"
	"xpose-backend/pkg/cache"

	addressHandler "xpose-backend/internal/domains/address/handler"
	addressRepo "xpose-backend/internal/domains/address/repository"
	addressService "xpose-backend/internal/domains/address/service"

	contactHandler "xpose-backend/internal/domains/contact/handler"
	contactRepo "xpose-backend/internal/domains/contact/repository"
	contactService "xpose-backend/internal/domains/contact/service"

	artistHandler "xpose-backend/internal/domains/artist/handler"
	artistRepo "xpose-backend/internal/domains/artist/repository"
	artistService "xpose-backend/internal/domains/artist/service"

	serieHandler "xpose-backend/internal/domains/serie/handler"
	serieRepo "xpose-backend/internal/domains/serie/repository"
	serieService "xpose-backend/internal/domains/serie/service"

	assetHandler "xpose-backend/internal/domains/asset/handler"
	assetRepo "xpose-backend/internal/domains/asset/repository"
	assetService "xpose-backend/internal/domains/asset/service"

	userHandler "xpose-backend/internal/domains/user/handler"
	userRepo "xpose-backend/internal/domains/user/repository"
	userService "xpose-backend/internal/domains/user/service"

	settingsHandler "xpose-backend/internal/domains/settings/handler"
	settingsRepo "xpose-backend/internal/domains/settings/repository"
	settingsService "xpose-backend/internal/domains/settings/service"

	dashboardHandler "xpose-backend/internal/domains/dashboard/handler"
	dashboardService "xpose-backend/internal/domains/dashboard/service"
)

// Container holds every dependency of the API and the worker.
// Build order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config       *config.Config
	DB           *database.PostgresDB
	Redis        *infraCache.RedisClient
	Cache        cache.Cache
	AssetStorage *storage.MinIOStorage
	LogoStorage  *storage.MinIOStorage
	Images       *storage.ImageProcessor
	Queue        *queue.Client

	// Repositories
	AddressRepo  addressRepo.RepositoryInterface
	ContactRepo  contactRepo.RepositoryInterface
	ArtistRepo   artistRepo.RepositoryInterface
	SerieRepo    serieRepo.RepositoryInterface
	AssetRepo    assetRepo.RepositoryInterface
	UserRepo     userRepo.RepositoryInterface
	SettingsRepo settingsRepo.RepositoryInterface

	// Services
	AddressService   addressService.ServiceInterface
	ContactService   contactService.ServiceInterface
	ArtistService    artistService.ServiceInterface
	SerieService     serieService.ServiceInterface
	AssetService     assetService.ServiceInterface
	UserService      userService.ServiceInterface
	SettingsService  settingsService.ServiceInterface
	DashboardService dashboardService.ServiceInterface

	// Handlers
	AddressHandler   *addressHandler.AddressHandler
	ContactHandler   *contactHandler.ContactHandler
	ArtistHandler    *artistHandler.ArtistHandler
	SerieHandler     *serieHandler.SerieHandler
	AssetHandler     *assetHandler.AssetHandler
	UserHandler      *userHandler.UserHandler
	SettingsHandler  *settingsHandler.SettingsHandler
	DashboardHandler *dashboardHandler.DashboardHandler
}

// NewContainer builds the whole dependency graph. PostgreSQL and MinIO are
// required; a Redis outage only disables caching.
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container...")
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(c.Config.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := c.DB.EnsureSchema(ctx); err != nil {
		return err
	}

	c.Redis = infraCache.NewRedisClient(c.Config.Redis)
	if err := c.Redis.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, caching degrades to direct reads")
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client)

	minioClient, err := storage.NewMinIOClient(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}
	c.AssetStorage = storage.NewMinIOStorage(minioClient, c.Config.MinIO.Bucket, c.Config.MinIO.AssetURL)
	c.LogoStorage = storage.NewMinIOStorage(minioClient, c.Config.MinIO.LogoBucket, c.Config.MinIO.LogoURL)
	c.Images = storage.NewImageProcessor()

	c.Queue = queue.NewClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AddressRepo = addressRepo.NewPostgresRepository(pool)
	c.ContactRepo = contactRepo.NewPostgresRepository(pool)
	c.ArtistRepo = artistRepo.NewPostgresRepository(pool)
	c.SerieRepo = serieRepo.NewPostgresRepository(pool)
	c.AssetRepo = assetRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.SettingsRepo = settingsRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.AddressService = addressService.NewAddressService(c.AddressRepo)
	c.ContactService = contactService.NewContactService(c.ContactRepo)
	c.ArtistService = artistService.NewArtistService(c.ArtistRepo)
	c.SerieService = serieService.NewSerieService(c.SerieRepo)
	c.AssetService = assetService.NewAssetService(
		c.AssetRepo,
		c.SerieService,
		c.AssetStorage,
		c.Images,
		c.Queue,
		c.Config.Thumbnail.Size,
	)
	c.UserService = userService.NewUserService(c.UserRepo)
	c.SettingsService = settingsService.NewSettingsService(c.SettingsRepo, c.LogoStorage, c.Cache)
	c.DashboardService = dashboardService.NewDashboardService(
		c.UserRepo,
		c.ArtistRepo,
		c.SerieRepo,
		c.AssetRepo,
		c.Cache,
	)
}

func (c *Container) initHandlers() {
	c.AddressHandler = addressHandler.NewAddressHandler(c.AddressService)
	c.ContactHandler = contactHandler.NewContactHandler(c.ContactService)
	c.ArtistHandler = artistHandler.NewArtistHandler(c.ArtistService)
	c.SerieHandler = serieHandler.NewSerieHandler(c.SerieService)
	c.AssetHandler = assetHandler.NewAssetHandler(c.AssetService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.SettingsHandler = settingsHandler.NewSettingsHandler(c.SettingsService)
	c.DashboardHandler = dashboardHandler.NewDashboardHandler(c.DashboardService)
}

// Cleanup releases connections. Called on shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close queue client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("Container cleanup completed")
}

package app

import (
	"context"
	"errors"
	"fmt"

	"passcheq/internal/catalog"
	"passcheq/internal/config"
	"passcheq/internal/database"
	"passcheq/internal/logger"
	"passcheq/internal/password/client"
	"passcheq/internal/password/service"
	"passcheq/internal/repository"
	"passcheq/internal/storage"
	"passcheq/models"

	"github.com/redis/go-redis/v9"
)

type App struct {
	Config          *config.Config
	Logger          *logger.Logger
	Store           storage.Store
	History         *catalog.Catalog[models.HistoryEntry]
	Checks          *catalog.Catalog[models.CheckHistoryEntry]
	PasswordService service.PasswordService

	closers []func() error
}

// NewApp 加载配置并初始化应用程序
func NewApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.InitLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	return New(cfg, log)
}

// New wires an App from an already loaded configuration.
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	log = logger.OrNop(log)

	store, closeStore, err := OpenStore(cfg)
	if err != nil {
		log.Errorf("failed to open %s storage: %v", cfg.Storage.Type, err)
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	opts := catalog.Options{
		DateLayout: cfg.History.DateLayout,
		Locale:     cfg.History.Locale,
	}
	history := catalog.New[models.HistoryEntry](store, cfg.Storage.GenerationKey, opts, log)
	checks := catalog.New[models.CheckHistoryEntry](store, cfg.Storage.CheckKey, opts, log)

	api := client.New(cfg.Service, nil, log)
	passwordService := service.NewPasswordService(api, history, checks, log)

	log.Debugw("app initialized", "storage", cfg.Storage.Type, "environment", cfg.Environment)

	a := &App{
		Config:          cfg,
		Logger:          log,
		Store:           store,
		History:         history,
		Checks:          checks,
		PasswordService: passwordService,
	}
	if closeStore != nil {
		a.closers = append(a.closers, closeStore)
	}
	return a, nil
}

// OpenStore builds the storage backend named by cfg.Storage.Type. The
// returned close function may be nil.
func OpenStore(cfg *config.Config) (storage.Store, func() error, error) {
	switch cfg.Storage.Type {
	case config.StorageFile, "":
		return storage.NewFileStore(cfg.Storage.Path), nil, nil
	case config.StorageMemory:
		return storage.NewMemoryStore(), nil, nil
	case config.StorageSQLite, config.StoragePostgres:
		dbCfg := cfg.Database
		dbCfg.Type = cfg.Storage.Type
		db, err := database.Connect(dbCfg)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewRecordRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			_ = database.CloseDB(db)
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return repo, func() error { return database.CloseDB(db) }, nil
	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
		}
		return storage.NewRedisStore(rdb, cfg.Redis.Prefix), rdb.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	a.Logger.SyncLogger()
	return errors.Join(errs...)
}

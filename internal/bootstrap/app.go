package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"docmanager-backend/internal/auth"
	"docmanager-backend/internal/documents"
	"docmanager-backend/internal/queries"
	"docmanager-backend/internal/shared/config"
	"docmanager-backend/internal/shared/server"
	"docmanager-backend/internal/shared/storage/db"
	"docmanager-backend/internal/shared/storage/object"
	localstore "docmanager-backend/internal/shared/storage/object/local"
	miniostore "docmanager-backend/internal/shared/storage/object/minio"
	s3store "docmanager-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies wired from config.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	AuthRepo      auth.Repo
	DocumentsRepo documents.DocumentsRepo

	AuthService      *auth.Service
	DocumentsService *documents.Service

	AuthHandler      *auth.Handler
	DocumentsHandler *documents.Handler
	QueryHandler     *queries.Handler
}

// Build prepares dependencies and the router from configuration.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AuthHandler:     app.AuthHandler,
		DocumentHandler: app.DocumentsHandler,
		QueryHandler:    app.QueryHandler,
	})

	return app, nil
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "minio":
		return miniostore.New(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.AuthRepo = &auth.PGRepo{DB: app.DB}
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
	} else {
		app.AuthRepo = auth.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
	}

	app.AuthService = auth.NewService(app.AuthRepo)
	app.DocumentsService = &documents.Service{
		Store:         app.Store,
		Repo:          app.DocumentsRepo,
		StagingDir:    app.Config.StagingDir,
		UploadTimeout: app.Config.UploadTimeout,
		PresignExpiry: app.Config.PresignExpiry,
	}

	app.AuthHandler = auth.NewHandler(app.AuthService)
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.QueryHandler = queries.NewHandler()
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

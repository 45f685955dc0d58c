package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	grpcctx "github.com/dtroode/gradebook-server/internal/api/grpc/context"
	grpcrouter "github.com/dtroode/gradebook-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/gradebook-server/internal/api/grpc/server"
	restctx "github.com/dtroode/gradebook-server/internal/api/rest/context"
	restrouter "github.com/dtroode/gradebook-server/internal/api/rest/router"
	restserver "github.com/dtroode/gradebook-server/internal/api/rest/server"
	"github.com/dtroode/gradebook-server/internal/config"
	"github.com/dtroode/gradebook-server/internal/logger"
	"github.com/dtroode/gradebook-server/internal/model"
	"github.com/dtroode/gradebook-server/internal/password"
	"github.com/dtroode/gradebook-server/internal/repository"
	"github.com/dtroode/gradebook-server/internal/repository/bolt"
	"github.com/dtroode/gradebook-server/internal/repository/file"
	"github.com/dtroode/gradebook-server/internal/repository/memory"
	"github.com/dtroode/gradebook-server/internal/repository/object"
	"github.com/dtroode/gradebook-server/internal/repository/postgres"
	"github.com/dtroode/gradebook-server/internal/server"
	"github.com/dtroode/gradebook-server/internal/service"
	storage "github.com/dtroode/gradebook-server/internal/storage/minio"
	"github.com/dtroode/gradebook-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Storage.Driver, "error", err)
	}
	defer func() {
		if err := closeBackend(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()
	logger.Info("storage initialized", "driver", cfg.Storage.Driver)

	store := repository.NewStore(backend, logger.With("driver", cfg.Storage.Driver))
	tokenManager := token.NewJWT(cfg.JWT.Secret, token.WithTTL(cfg.JWT.TTL))
	hasher := password.NewBcrypt(cfg.Bcrypt.Cost)

	authService := service.NewAuth(store, hasher, tokenManager, logger)
	studentService := service.NewStudent(store, logger)

	servers := []model.Server{
		restserver.NewHTTPServer(
			restrouter.New(authService, studentService, authService, store, restctx.NewManager(), logger).Register(),
			fmt.Sprintf(":%s", cfg.HTTP.Port),
		),
	}

	var grpcRouter *grpcrouter.Router
	if cfg.GRPC.Enabled {
		grpcRouter = grpcrouter.New(authService, studentService, authService, grpcctx.NewManager(), logger)
		servers = append(servers, grpcserver.NewGRPCServer(grpcRouter.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port)))
	}

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	if grpcRouter != nil {
		grpcRouter.Health().Shutdown()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// openBackend builds the dataset backend named by the storage driver and
// returns a function that releases it.
func openBackend(ctx context.Context, cfg *config.Config) (model.DatasetStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.NewStore(), noop, nil
	case config.DriverFile:
		s, err := file.NewStore(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case config.DriverBolt:
		s, err := bolt.Open(cfg.Storage.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverPostgres:
		db, err := postgres.NewConection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewDatasetRepository(db.DB), db.Close, nil
	case config.DriverMinio:
		minioClient, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		client, err := storage.NewClient(ctx, minioClient, cfg.Minio.Bucket)
		if err != nil {
			return nil, nil, err
		}
		s, err := object.NewStore(client, cfg.Minio.Object)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

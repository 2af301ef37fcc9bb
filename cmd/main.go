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

	"github.com/robfig/cron/v3"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/ecorewards-server/internal/api/grpc/context"
	"github.com/dtroode/ecorewards-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/ecorewards-server/internal/api/grpc/server"
	"github.com/dtroode/ecorewards-server/internal/config"
	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
	"github.com/dtroode/ecorewards-server/internal/notification"
	"github.com/dtroode/ecorewards-server/internal/repository/memory"
	"github.com/dtroode/ecorewards-server/internal/repository/postgres"
	"github.com/dtroode/ecorewards-server/internal/server"
	"github.com/dtroode/ecorewards-server/internal/service"
	"github.com/dtroode/ecorewards-server/internal/storage/minio"
	"github.com/dtroode/ecorewards-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

// stores groups the persistence drivers selected by DATABASE_DRIVER.
type stores struct {
	accounts    model.AccountStore
	rewards     model.RewardStore
	redemptions model.RedemptionStore
	pickups     model.PickupStore
	challenges  model.ChallengeStore
	close       func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	logAppVersion()

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
	}
	defer st.close()
	logger.Info("storage initialized", "driver", cfg.Database.Driver)

	var avatars model.Storage
	if cfg.Storage.Enabled {
		client, err := minio.New(ctx, minio.Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Fatal("failed to initialize object storage", "error", err)
		}
		avatars = client
	}

	dispatcher := notification.NewDispatcher(newMailer(cfg.Mail, logger), cfg.Mail.QueueSize, cfg.Mail.Workers, logger)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL)

	catalog := service.NewCatalog(st.rewards, logger)
	if n, err := catalog.Seed(ctx, service.DefaultCatalog()); err != nil {
		logger.Fatal("failed to seed reward catalog", "error", err)
	} else if n > 0 {
		logger.Info("reward catalog seeded", "rewards", n)
	}

	accountService := service.NewAccount(st.accounts, avatars, dispatcher, cfg.Ledger.SignupBonus, logger)
	otpService := service.NewOTP(st.challenges, cfg.OTP.TTL, cfg.OTP.MaxAttempts, logger)
	services := router.Services{
		Auth:        service.NewAuth(accountService, otpService, tokenManager, dispatcher, logger),
		Accounts:    accountService,
		Redemptions: service.NewRedemption(st.accounts, st.rewards, st.redemptions, dispatcher, logger),
		Pickups: service.NewPickup(st.accounts, st.pickups, dispatcher, service.PickupConfig{
			Fee:             cfg.Ledger.PickupFee,
			PointsPerPickup: cfg.Ledger.PointsPerPickup,
		}, logger),
	}

	scheduler := cron.New()
	if _, err := service.NewCleanup(st.challenges, logger).Register(scheduler, cfg.OTP.CleanupSchedule); err != nil {
		logger.Fatal("failed to schedule cleanup", "error", err)
	}
	scheduler.Start()

	r := router.New(services, tokenManager, grpcctx.NewManager(), logger)
	s := r.Register()
	reflection.Register(s)
	srv := grpcServer.NewGRPCServer(s, fmt.Sprintf(":%s", cfg.GRPC.Port))

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("starting server", "address", s.Address(), "tls", cfg.GRPC.EnableHTTPS)
		if err := s.Start(server.NewSecurityLayer(cfg.GRPC)); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	r.Shutdown()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}
	wg.Wait()

	<-scheduler.Stop().Done()

	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("notification queue not drained", "error", err)
	}

	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		db := memory.New()
		return &stores{
			accounts:    memory.NewAccountRepository(db),
			rewards:     memory.NewRewardRepository(db),
			redemptions: memory.NewRedemptionRepository(db),
			pickups:     memory.NewPickupRepository(db),
			challenges:  memory.NewChallengeRepository(db),
			close:       func() {},
		}, nil
	default:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Ledger.LockTimeout)
		if err != nil {
			return nil, err
		}
		return &stores{
			accounts:    postgres.NewAccountRepository(db),
			rewards:     postgres.NewRewardRepository(db),
			redemptions: postgres.NewRedemptionRepository(db),
			pickups:     postgres.NewPickupRepository(db),
			challenges:  postgres.NewChallengeRepository(db),
			close:       func() { _ = db.Close() },
		}, nil
	}
}

func newMailer(cfg config.Mail, logger *logger.Logger) notification.Mailer {
	if cfg.SendGridAPIKey == "" {
		logger.Warn("no mail provider configured, notifications are logged only")
		return notification.NewLogMailer(logger)
	}
	return notification.NewSendGridMailer(notification.SendGridConfig{
		APIKey:      cfg.SendGridAPIKey,
		FromEmail:   cfg.FromEmail,
		FromName:    cfg.FromName,
		SandboxMode: cfg.SandboxMode,
	})
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

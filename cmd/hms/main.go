package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-admin/internal/config"
	"github.com/jwalitptl/hospital-admin/internal/console"
	"github.com/jwalitptl/hospital-admin/internal/email"
	"github.com/jwalitptl/hospital-admin/internal/handler/health"
	promHandler "github.com/jwalitptl/hospital-admin/internal/handler/prometheus"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/internal/repository/memory"
	"github.com/jwalitptl/hospital-admin/internal/repository/postgres"
	"github.com/jwalitptl/hospital-admin/internal/router"
	appointmentService "github.com/jwalitptl/hospital-admin/internal/service/appointment"
	"github.com/jwalitptl/hospital-admin/internal/service/audit"
	authService "github.com/jwalitptl/hospital-admin/internal/service/auth"
	doctorService "github.com/jwalitptl/hospital-admin/internal/service/doctor"
	equipmentService "github.com/jwalitptl/hospital-admin/internal/service/equipment"
	eventService "github.com/jwalitptl/hospital-admin/internal/service/event"
	medicalService "github.com/jwalitptl/hospital-admin/internal/service/medical"
	"github.com/jwalitptl/hospital-admin/internal/service/notification"
	patientService "github.com/jwalitptl/hospital-admin/internal/service/patient"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
	"github.com/jwalitptl/hospital-admin/pkg/messaging"
	"github.com/jwalitptl/hospital-admin/pkg/messaging/redis"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
	"github.com/jwalitptl/hospital-admin/pkg/security"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: config.yaml in ., ./config or /etc/hms)")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger, logFile, err := logger.NewFileLogger(cfg.Log.File, cfg.Log.Level, cfg.Log.Console)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open log file")
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appMetrics := metrics.NewMetrics("hms")

	// Initialize repositories
	repos, closeStore := openStore(ctx, cfg, appLogger, appMetrics)
	defer closeStore()

	auditor := audit.NewNop()
	if cfg.Audit.Enabled {
		auditor, err = audit.NewService(cfg.Audit.Path)
		if err != nil {
			appLogger.Fatal(err, "failed to open audit trail", "path", cfg.Audit.Path)
		}
	}
	defer auditor.Close()

	var broker messaging.Broker = messaging.NewNopBroker()
	healthChecks := map[string]health.Checker{"database": repos.Health}
	if cfg.Redis.Enabled {
		redisBroker, err := redis.NewRedisBroker(ctx, redis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   1,
			RetryBackoff: 100 * time.Millisecond,
			DialTimeout:  2 * time.Second,
		}, appLogger.Zerolog())
		if err != nil {
			appLogger.Fatal(err, "failed to connect to Redis")
		}
		broker = redisBroker
		healthChecks["redis"] = redisBroker
	}
	defer broker.Close()

	emailSvc := email.NewNopService()
	if cfg.SMTP.Enabled {
		emailSvc = email.NewSMTPService(cfg.SMTP)
	}

	// Initialize services
	v := validator.New(validator.Rules{RequireSpecialChar: cfg.Validation.RequireSpecialChar})
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	events := eventService.NewService(broker, cfg.Redis.Channel, appLogger, appMetrics)
	recorder := eventService.NewRecorder(auditor, events, appMetrics)
	notifier := notification.NewService(emailSvc, appLogger)

	admins := make([]authService.Account, 0, len(cfg.Auth.Admins))
	for _, a := range cfg.Auth.Admins {
		admins = append(admins, authService.Account{Username: a.Username, Password: a.Password})
	}

	services := console.Services{
		Auth: authService.NewService(authService.Options{
			MaxAttempts: cfg.Auth.MaxAttempts,
			Lockout:     cfg.Auth.Lockout,
			Rate:        cfg.Auth.Rate,
			Burst:       cfg.Auth.Burst,
		}, auditor, appLogger, appMetrics,
			authService.NewAdminProvider(admins, hasher),
			authService.NewDoctorProvider(repos.Doctors, hasher),
		),
		Doctors:      doctorService.NewService(repos.Doctors, repos.Appointments, v, hasher, recorder, appLogger),
		Patients:     patientService.NewService(repos.Patients, repos.Appointments, v, recorder, appLogger),
		Appointments: appointmentService.NewService(repos.Appointments, repos.Patients, repos.Doctors, v, notifier, recorder, appLogger),
		Equipment:    equipmentService.NewService(repos.Equipment, v, recorder, appLogger),
		Medical:      medicalService.NewService(repos.MedicalRecords, repos.Patients, v, recorder, appLogger),
	}

	if cfg.Ops.Enabled {
		r := router.NewRouter(appLogger.WithFields(map[string]interface{}{"component": "ops"}),
			health.NewHandler(healthChecks),
			promHandler.New(appMetrics.Registry),
		)
		r.Setup()
		go func() {
			if err := r.Serve(ctx, cfg.Ops.Addr); err != nil {
				appLogger.Error(err, "ops server stopped")
			}
		}()
		appLogger.Info("ops server listening", "addr", cfg.Ops.Addr)
	}

	appLogger.Info("application started", "driver", cfg.Database.Driver)

	con := console.New(os.Stdin, os.Stdout, services, v, appLogger).WithTerminal(int(os.Stdin.Fd()))
	if err := con.Run(ctx); err != nil {
		appLogger.Error(err, "console stopped")
	}

	appLogger.Info("application stopped")
}

func openStore(ctx context.Context, cfg *config.Config, appLogger *logger.Logger, m *metrics.Metrics) (repository.Repositories, func()) {
	if cfg.Database.Driver == "memory" {
		return memory.NewStore().Repositories(), func() {}
	}

	// Initialize database
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		appLogger.Fatal(err, "failed to connect to database", "host", cfg.Database.Host, "name", cfg.Database.Name)
	}

	repos := postgres.NewRepositories(db, postgres.Options{
		QueryTimeout: cfg.Database.QueryTimeout,
		Metrics:      m,
	})
	return repos, func() { db.Close() }
}

package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TutorBooking/internal/api"
	"github.com/m04kA/SMC-TutorBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TutorBooking/internal/calendar"
	"github.com/m04kA/SMC-TutorBooking/internal/config"
	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/internal/infra/locker"
	availabilityRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TutorBooking/internal/infra/storage/migrations"
	availabilityService "github.com/m04kA/SMC-TutorBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-TutorBooking/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-TutorBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TutorBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TutorBooking/pkg/metrics"
)

// App собранные зависимости сервиса
type App struct {
	Config      *config.Config
	SlotsConfig domain.SlotsConfig
	Clock       Clock

	Bookings     BookingStore
	Availability AvailabilityStore
	Locker       SlotLocker
	Metrics      *metrics.Metrics

	GetAvailableSlots   *getAvailableSlotsUC.UseCase
	CreateBooking       *createBookingUC.UseCase
	BookingService      *bookingsService.Service
	AvailabilityService *availabilityService.Service

	db     *sql.DB
	redis  *redis.Client
	logger Logger
}

// Option настройка сборки
type Option func(*App)

// WithClock подменяет источник времени (тесты, CLI)
func WithClock(clock Clock) Option {
	return func(a *App) { a.Clock = clock }
}

// zonedClock текущее время в часовом поясе каталога
type zonedClock struct {
	loc *time.Location
}

func (c zonedClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// New собирает сервис по конфигурации.
// database.enabled выбирает Postgres вместо памяти, redis.enabled выбирает Redis блокировки.
func New(ctx context.Context, cfg *config.Config, logger Logger, opts ...Option) (*App, error) {
	slotsConfig, err := cfg.Slots.Domain()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Slots.Location()
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:      cfg,
		SlotsConfig: slotsConfig,
		Clock:       zonedClock{loc: loc},
		logger:      logger,
	}
	for _, opt := range opts {
		opt(a)
	}

	// Инициализируем метрики (если включены)
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New(cfg.Metrics.ServiceName)
		logger.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	if err := a.initStorage(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.initLocker(ctx); err != nil {
		a.Close()
		return nil, err
	}

	// Инициализируем use cases
	a.GetAvailableSlots = getAvailableSlotsUC.NewUseCase(
		a.Bookings,
		a.Availability,
		slotsConfig,
		a.Metrics,
		logger,
	).WithTimeProvider(a.Clock)

	a.CreateBooking = createBookingUC.NewUseCase(
		a.Bookings,
		a.GetAvailableSlots,
		a.Locker,
		slotsConfig,
		a.Metrics,
		logger,
	).WithTimeProvider(a.Clock)

	// Инициализируем сервисы
	a.BookingService = bookingsService.NewService(a.Bookings, a.Locker, logger)
	a.AvailabilityService = availabilityService.NewService(a.Availability, slotsConfig, logger)

	return a, nil
}

func (a *App) initStorage(ctx context.Context) error {
	dbCfg := a.Config.Database
	if !dbCfg.Enabled {
		a.Bookings = bookingRepo.NewMemoryRepository()
		a.Availability = availabilityRepo.NewMemoryRepository()
		a.logger.Warn("Database disabled: using in-memory storage, data is lost on restart")
		return nil
	}

	db, err := OpenDB(ctx, dbCfg)
	if err != nil {
		return err
	}
	a.db = db
	a.logger.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		dbCfg.Host, dbCfg.Port, dbCfg.DBName)

	if dbCfg.AutoMigrate {
		migrator, err := migrations.NewMigrator(db, a.logger)
		if err != nil {
			return err
		}
		if err := migrator.Up(ctx); err != nil {
			return err
		}
	}

	a.Bookings = bookingRepo.NewRepository(db)
	a.Availability = availabilityRepo.NewRepository(db)
	return nil
}

func (a *App) initLocker(ctx context.Context) error {
	redisCfg := a.Config.Redis
	if !redisCfg.Enabled {
		a.Locker = locker.NewLocalLocker()
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("ping redis %s: %w", redisCfg.Addr, err)
	}
	a.redis = client
	a.Locker = locker.NewRedisLocker(client, redisCfg.LockTTLDuration(), redisCfg.KeyPrefix)
	a.logger.Info("Redis slot locker enabled (addr=%s, ttl=%ds)", redisCfg.Addr, redisCfg.LockTTL)
	return nil
}

// OpenDB открывает пул соединений PostgreSQL и проверяет соединение
func OpenDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Handler HTTP роутер сервиса
func (a *App) Handler() http.Handler {
	deps := api.Dependencies{
		GetAvailableSlots: a.GetAvailableSlots,
		CreateBooking:     a.CreateBooking,
		Bookings:          a.BookingService,
		Availability:      a.AvailabilityService,
		Auth:              middleware.NewAuthenticator(a.Config.Auth.JWTSecret, a.logger),
		Logger:            a.logger,
	}
	// Интерфейс должен остаться nil, если метрики выключены
	if a.Metrics != nil {
		deps.Metrics = a.Metrics
	}

	return api.NewRouter(deps, api.Options{
		MetricsPath:    a.Config.Metrics.Path,
		AllowedOrigins: a.Config.Server.AllowedOrigins,
	})
}

// Calendar контроллер выбора слота для репетитора
func (a *App) Calendar(tutorID int64) *calendar.Controller {
	return calendar.NewController(tutorID, a.GetAvailableSlots, a.CreateBooking).WithClock(a.Clock)
}

// Close освобождает соединения
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Failed to close redis: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Failed to close database: %v", err)
		}
	}
}

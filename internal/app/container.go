package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hnvivek/game-management-sub006/internal/api"
	"github.com/hnvivek/game-management-sub006/internal/auth"
	"github.com/hnvivek/game-management-sub006/internal/availability"
	"github.com/hnvivek/game-management-sub006/internal/booking"
	"github.com/hnvivek/game-management-sub006/internal/conflict"
	"github.com/hnvivek/game-management-sub006/internal/court"
	"github.com/hnvivek/game-management-sub006/internal/photo"
	"github.com/hnvivek/game-management-sub006/internal/pkg/cache"
	"github.com/hnvivek/game-management-sub006/internal/pkg/metrics"
	"github.com/hnvivek/game-management-sub006/internal/pkg/storage"
	"github.com/hnvivek/game-management-sub006/internal/schedule"
	"github.com/hnvivek/game-management-sub006/internal/user"
	"github.com/hnvivek/game-management-sub006/internal/vendors"
	"github.com/hnvivek/game-management-sub006/internal/venue"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Cache        cache.Cache
	Logger       *zap.Logger
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	SlotWidth    time.Duration
	GridCacheTTL time.Duration
	PhotoDir     string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Metrics    *metrics.Registry
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	// Init components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	recorder := metrics.NewRegistry()

	photoStore, err := storage.NewLocalStorage(cfg.PhotoDir)
	if err != nil {
		return nil, fmt.Errorf("init photo storage: %w", err)
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Vendor module
	vendorRepo := vendor.NewPgxRepository(cfg.DBPool)
	vendorService := vendor.NewService(vendorRepo)

	// Venue module
	venueRepo := venue.NewPgxRepository(cfg.DBPool)
	venueService := venue.NewService(venueRepo, vendorService)

	// Court module
	courtRepo := court.NewPgxRepository(cfg.DBPool)
	courtService := court.NewService(courtRepo, venueService)

	// Schedule module
	scheduleRepo := schedule.NewPgxRepository(cfg.DBPool)
	scheduleService := schedule.NewService(scheduleRepo, courtService)

	// Booking and conflict repositories come first: the availability service
	// reads them through the BlockerSource interfaces, while their services
	// write back through InvalidateGrid. Wiring repo-level blocker adapters
	// into availability and handing the availability service to the write
	// paths keeps the dependency graph acyclic.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	conflictRepo := conflict.NewPgxRepository(cfg.DBPool)

	availabilityService := availability.NewService(availability.Config{
		Courts:    courtService,
		Windows:   scheduleService,
		Bookings:  bookingBlockerSource{repo: bookingRepo},
		Conflicts: conflictBlockerSource{repo: conflictRepo},
		Cache:     cfg.Cache,
		Recorder:  recorder,
		Logger:    cfg.Logger,
		SlotWidth: cfg.SlotWidth,
		CacheTTL:  cfg.GridCacheTTL,
	})

	bookingService := booking.NewService(
		bookingRepo, courtService, scheduleService, availabilityService, recorder, cfg.Logger)
	conflictService := conflict.NewService(
		conflictRepo, courtService, availabilityService, recorder, cfg.Logger)

	// Photo module
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(
		photoRepo, venueService, photoStore, storage.NewImageProcessor(), cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		VendorService:       vendorService,
		VenueService:        venueService,
		CourtService:        courtService,
		ScheduleService:     scheduleService,
		AvailabilityService: availabilityService,
		BookingService:      bookingService,
		ConflictService:     conflictService,
		PhotoService:        photoService,
		JWTManager:          jwtManager,
		Metrics:             recorder,
		Logger:              cfg.Logger,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Metrics:    recorder,
	}, nil
}

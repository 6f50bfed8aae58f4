package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hnvivek/game-management-sub006/internal/auth"
	"github.com/hnvivek/game-management-sub006/internal/availability"
	availabilityHttp "github.com/hnvivek/game-management-sub006/internal/availability/http"
	"github.com/hnvivek/game-management-sub006/internal/booking"
	bookingHttp "github.com/hnvivek/game-management-sub006/internal/booking/http"
	"github.com/hnvivek/game-management-sub006/internal/conflict"
	conflictHttp "github.com/hnvivek/game-management-sub006/internal/conflict/http"
	"github.com/hnvivek/game-management-sub006/internal/court"
	courtHttp "github.com/hnvivek/game-management-sub006/internal/court/http"
	"github.com/hnvivek/game-management-sub006/internal/photo"
	photoHttp "github.com/hnvivek/game-management-sub006/internal/photo/http"
	"github.com/hnvivek/game-management-sub006/internal/pkg/metrics"
	"github.com/hnvivek/game-management-sub006/internal/schedule"
	scheduleHttp "github.com/hnvivek/game-management-sub006/internal/schedule/http"
	"github.com/hnvivek/game-management-sub006/internal/user"
	userHttp "github.com/hnvivek/game-management-sub006/internal/user/http"
	"github.com/hnvivek/game-management-sub006/internal/vendors"
	vendorHttp "github.com/hnvivek/game-management-sub006/internal/vendors/http"
	"github.com/hnvivek/game-management-sub006/internal/venue"
	venueHttp "github.com/hnvivek/game-management-sub006/internal/venue/http"
)

// Config holds everything the router needs to assemble middleware and routes.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	VendorService       vendor.Service
	VenueService        venue.Service
	CourtService        court.Service
	ScheduleService     schedule.Service
	AvailabilityService availability.Service
	BookingService      booking.Service
	ConflictService     conflict.Service
	PhotoService        photo.Service

	JWTManager *auth.JWTManager
	Metrics    *metrics.Registry
	Logger     *zap.Logger
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (logging, recovery, CORS, auth) and registers
// routes for every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	sysAdminMiddleware := RequireSystemAdmin(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	vendorHandler := vendorHttp.NewHandler(cfg.VendorService, cfg.UserService)
	venueHandler := venueHttp.NewHandler(cfg.VenueService, cfg.UserService)
	courtHandler := courtHttp.NewHandler(cfg.CourtService, cfg.UserService)
	scheduleHandler := scheduleHttp.NewHandler(cfg.ScheduleService, cfg.UserService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService)
	conflictHandler := conflictHttp.NewHandler(cfg.ConflictService, cfg.UserService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService, cfg.UserService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, sysAdminMiddleware)
		vendorHttp.RegisterRoutes(v1, vendorHandler, authMiddleware, sysAdminMiddleware)
		venueHttp.RegisterRoutes(v1, venueHandler, authMiddleware)
		courtHttp.RegisterRoutes(v1, courtHandler, authMiddleware)
		scheduleHttp.RegisterRoutes(v1, scheduleHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		conflictHttp.RegisterRoutes(v1, conflictHandler, authMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware)

		if cfg.Metrics != nil {
			v1.GET("/metrics", authMiddleware, sysAdminMiddleware, func(c *gin.Context) {
				c.JSON(http.StatusOK, cfg.Metrics.Snapshot())
			})
		}
	}

	return r
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

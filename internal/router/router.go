package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/pradyumyelame/EasyToStay/internal/auth"
	"github.com/pradyumyelame/EasyToStay/internal/config"
	"github.com/pradyumyelame/EasyToStay/internal/handler"
	"github.com/pradyumyelame/EasyToStay/internal/logger"
	"github.com/pradyumyelame/EasyToStay/internal/metrics"
	"github.com/pradyumyelame/EasyToStay/internal/storage"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth    *handler.AuthHandler
	Place   *handler.PlaceHandler
	Booking *handler.BookingHandler
	Upload  *handler.UploadHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	tokens *auth.TokenService,
	m *metrics.Metrics,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware(log))
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	if cfg.Server.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}
	if m != nil {
		e.Use(m.Middleware())
	}

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/test", func(c echo.Context) error {
		return c.JSON(http.StatusOK, "Hello, from the backend!")
	})
	if m != nil && cfg.Metrics.Enabled {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.Storage.Backend == config.BackendDisk {
		prefix := cfg.Storage.PublicPrefix
		if prefix == "" {
			prefix = storage.DefaultPublicPrefix
		}
		e.Static(prefix, cfg.Storage.Dir)
	}

	// Public routes
	e.POST("/register", h.Auth.Register)
	e.POST("/login", h.Auth.Login)
	e.POST("/logout", h.Auth.Logout)
	e.GET("/places", h.Place.ListAll)
	e.GET("/places/:id", h.Place.Get)
	e.GET("/place/:id", h.Place.GetWithOwner)

	// Session routes (require the token cookie)
	var onReject auth.SessionOption
	if m != nil {
		onReject = auth.OnReject(m.SessionRejected)
	} else {
		onReject = auth.OnReject(func(string) {})
	}
	secured := e.Group("", auth.Session(tokens, onReject))

	secured.GET("/profile", h.Auth.Profile)
	secured.PUT("/profile", h.Auth.UpdateProfile)

	secured.POST("/upload", h.Upload.Upload)
	secured.POST("/upload-by-link", h.Upload.UploadByLink)

	secured.POST("/places", h.Place.Create)
	secured.GET("/user-places", h.Place.ListMine)
	secured.PUT("/places/:id", h.Place.Update)
	secured.DELETE("/places/:id", h.Place.Delete)

	secured.POST("/bookings", h.Booking.Create)
	secured.GET("/bookings", h.Booking.List)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

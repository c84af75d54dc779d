package server

import (
	"net/http"
	"time"

	"bookit/internal/middleware"
	"bookit/internal/modules/booking"
	"bookit/internal/modules/catalog"
	"bookit/internal/modules/promo"
	"bookit/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Catalog *catalog.Handler
	Booking *booking.Handler
	Promo   *promo.Handler
}

type Options struct {
	AllowedOrigins []string
	// BookingLimiter throttles POST /api/bookings when set.
	BookingLimiter *middleware.RateLimiter
}

func NewRouter(h Handlers, opts Options, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
	)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}, "Server is running")
	})

	api := r.Group("/api")
	{
		h.Catalog.RegisterRoutes(api)
		h.Promo.RegisterRoutes(api)

		var createMiddleware []gin.HandlerFunc
		if opts.BookingLimiter != nil {
			createMiddleware = append(createMiddleware, opts.BookingLimiter.Middleware())
		}
		h.Booking.RegisterRoutes(api, createMiddleware...)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found")
	})
	return r
}

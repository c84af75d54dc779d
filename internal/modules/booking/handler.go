package booking

import (
	"errors"
	"net/http"

	"bookit/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the booking endpoints. Extra handlers, such as a rate limiter,
// run before CreateBooking only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, createMiddleware ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, createMiddleware...), h.CreateBooking)
	rg.POST("/bookings", handlers...)
	rg.GET("/bookings/:reference", h.GetBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toBookingResponse(res), "Booking created successfully")
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toBookingDetails(b), "Booking fetched successfully")
}

func writeError(c *gin.Context, err error) {
	var internal *InternalError
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrSlotUnavailable):
		response.Error(c, http.StatusBadRequest, "Slot not available or insufficient spots")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Booking not found")
	case errors.As(err, &internal) && internal.Retryable():
		c.Header("Retry-After", "1")
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	default:
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}

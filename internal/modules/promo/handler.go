package promo

import (
	"errors"
	"net/http"

	"bookit/internal/pkg/response"
	"bookit/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/promo/validate", h.ValidatePromoCode)
}

// ValidatePromoCode handles POST /api/promo/validate.
// An unusable code is a normal answer (200, success=false), not an HTTP error.
func (h *Handler) ValidatePromoCode(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.Error(c, http.StatusBadRequest, validator.Message(errs))
		return
	}

	v, err := h.service.ValidatePromoCode(c.Request.Context(), req.Code, *req.TotalAmount)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrPromoInvalid), errors.Is(err, ErrBelowMinimum):
			response.Error(c, http.StatusOK, Reason(err))
		default:
			h.log.WithError(err).WithField("code", req.Code).Error("promo validation failed")
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	response.Success(c, http.StatusOK, toValidationResponse(v), "Promo code applied successfully")
}

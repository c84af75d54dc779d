package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"bookit/internal/pkg/response"

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
	rg.GET("/experiences", h.ListExperiences)
	rg.GET("/experiences/:id", h.GetExperience)
}

// ListExperiences handles GET /api/experiences
func (h *Handler) ListExperiences(c *gin.Context) {
	list, err := h.service.ListExperiences(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toExperienceList(list), "Experiences fetched successfully")
}

// GetExperience handles GET /api/experiences/:id
func (h *Handler) GetExperience(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid experience id")
		return
	}

	exp, err := h.service.GetExperience(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Experience not found")
			return
		}
		h.internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toExperienceDetail(exp), "Experience fetched successfully")
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.log.WithError(err).WithField("path", c.FullPath()).Error("catalog request failed")
	response.Error(c, http.StatusInternalServerError, "Internal server error")
}

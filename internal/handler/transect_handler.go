package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/seasurvey/transect-backend-go/internal/models"
	"github.com/seasurvey/transect-backend-go/internal/service"
	"github.com/seasurvey/transect-backend-go/pkg/response"
)

// TransectHandler handles HTTP requests for transects
type TransectHandler struct {
	service *service.TransectService
}

// NewTransectHandler creates a new transect handler
func NewTransectHandler(service *service.TransectService) *TransectHandler {
	return &TransectHandler{service: service}
}

// GetAllTransects handles GET /transect/
func (h *TransectHandler) GetAllTransects(c *gin.Context) {
	transects, err := h.service.GetAllTransects(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to get transects", err)
		return
	}

	response.Success(c, transects)
}

// GetTransectByID handles GET /transect/:id
func (h *TransectHandler) GetTransectByID(c *gin.Context) {
	transect, err := h.service.GetTransectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get transect", err)
		return
	}

	if transect == nil {
		response.NotFound(c, "Transect not found")
		return
	}

	response.Success(c, transect)
}

// UpsertTransect handles POST /transect/
func (h *TransectHandler) UpsertTransect(c *gin.Context) {
	var transect models.Transect
	if err := c.ShouldBindJSON(&transect); err != nil {
		response.BadRequest(c, "Invalid transect body", err)
		return
	}

	if err := h.service.UpsertTransect(c.Request.Context(), &transect); err != nil {
		if errors.Is(err, service.ErrInvalidTransect) {
			response.BadRequest(c, "Invalid transect", err)
			return
		}
		response.InternalError(c, "Failed to save transect", err)
		return
	}

	response.Success(c, gin.H{
		"message": fmt.Sprintf("Saving transect data for %s", transect.ID),
		"id":      transect.ID,
	})
}

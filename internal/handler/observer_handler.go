package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/seasurvey/transect-backend-go/internal/service"
	"github.com/seasurvey/transect-backend-go/pkg/response"
)

// ObserverHandler serves observer reference data
type ObserverHandler struct {
	service *service.ObserverService
}

// NewObserverHandler creates a new observer handler
func NewObserverHandler(service *service.ObserverService) *ObserverHandler {
	return &ObserverHandler{service: service}
}

// GetAllObservers handles GET /observer/
func (h *ObserverHandler) GetAllObservers(c *gin.Context) {
	observers, err := h.service.GetAllObservers(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to get observers", err)
		return
	}
	response.Success(c, observers)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/seasurvey/transect-backend-go/internal/service"
	"github.com/seasurvey/transect-backend-go/pkg/response"
)

// VesselHandler serves vessel summaries
type VesselHandler struct {
	service *service.VesselService
}

// NewVesselHandler creates a new vessel handler
func NewVesselHandler(service *service.VesselService) *VesselHandler {
	return &VesselHandler{service: service}
}

// GetAllVessels handles GET /vessel/
func (h *VesselHandler) GetAllVessels(c *gin.Context) {
	vessels, err := h.service.GetAllVessels(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to get vessels", err)
		return
	}
	response.Success(c, vessels)
}

// GetVesselByID handles GET /vessel/:id
func (h *VesselHandler) GetVesselByID(c *gin.Context) {
	vessel, err := h.service.GetVesselByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get vessel", err)
		return
	}
	if vessel == nil {
		response.NotFound(c, "Vessel not found")
		return
	}
	response.Success(c, vessel)
}

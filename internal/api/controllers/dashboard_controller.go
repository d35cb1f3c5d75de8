package controllers

import (
	"github.com/gin-gonic/gin"

	"viajaia/internal/services"
	"viajaia/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
}

func NewDashboardController(dashboardService services.DashboardServiceInterface) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard godoc
// @Summary Traveler dashboard
// @Description KPIs, activity mix and top destinations for the authenticated user
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response_models.DashboardReport
// @Security BearerAuth
// @Router /dashboard [get]
func (d *DashboardController) GetDashboard(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	report, err := d.dashboardService.BuildDashboard(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard fetched successfully")
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"famfinance/internal/services"
)

// DashboardHandler serves the chart aggregates.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardQuery selects the month to summarize. Zero values mean the current month.
type DashboardQuery struct {
	Year  int `form:"ano" binding:"omitempty,min=1900,max=9999"`
	Month int `form:"mes" binding:"omitempty,min=1,max=12"`
}

// GetSummary returns the month's totals and the year's monthly series
// @Summary     Dashboard summary
// @Tags        dashboard
// @Produce     json
// @Param       X-Usuario-ID header int true  "Owner ID"
// @Param       ano          query  int false "Year (default current)"
// @Param       mes          query  int false "Month 1-12 (default current)"
// @Success     200 {object} services.DashboardSummary
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	now := time.Now()
	if q.Year == 0 {
		q.Year = now.Year()
	}
	if q.Month == 0 {
		q.Month = int(now.Month())
	}

	summary, err := h.dashboardService.GetSummary(userID, q.Year, q.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{"dados": summary})
}

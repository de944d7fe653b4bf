package admin

import (
	"strconv"

	"github.com/gearmart-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboard 获取后台概览统计
func (h *Handler) GetDashboard(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	stats, err := h.DashboardService.GetStats(c.Request.Context(), days)
	if err != nil {
		respondError(c, response.CodeInternal, "dashboard fetch failed", err)
		return
	}
	response.Success(c, stats)
}

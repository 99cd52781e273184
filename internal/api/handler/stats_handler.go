package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/driveconnect/booking-api/internal/core/ports"
)

type StatsHandler struct {
	statsService ports.StatsService
}

func NewStatsHandler(statsService ports.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard returns the aggregate for the caller's role.
//
// @Summary      Dashboard statistics
// @Description  Clients get totalBookings, completedServices, totalSpent and upcomingBookings.
// @Description  Providers get totalBookings, completedServices, totalEarnings and averageRating.
// @Description  Admins get totalUsers, serviceProviders, totalBookings and platformRevenue.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]number
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/dashboard/stats [get]
func (h *StatsHandler) Dashboard(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.statsService.DashboardStats(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

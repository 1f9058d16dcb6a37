package dashboard

import (
	"keyless-stay/middleware"
	dashboardService "keyless-stay/services/dashboard"
	"keyless-stay/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Dashboard *dashboardService.Service
}

func NewDashboardController(dashboard *dashboardService.Service) *DashboardController {
	return &DashboardController{Dashboard: dashboard}
}

func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	stats, err := dc.Dashboard.Stats(c.UserContext(), middleware.GetIdentity(c).CallerID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load dashboard stats")
	}
	return utils.Respond(c, fiber.StatusOK, "Dashboard stats retrieved successfully", stats)
}

func (dc *DashboardController) TodayBookings(c *fiber.Ctx) error {
	bookings, err := dc.Dashboard.TodayBookings(c.UserContext(), middleware.GetIdentity(c).CallerID)
	if err != nil {
		return utils.RespondError(c, err, "Failed to load today's bookings")
	}
	return utils.Respond(c, fiber.StatusOK, "Today's bookings retrieved successfully", bookings)
}

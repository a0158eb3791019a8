package handlers

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/internal/services"
)

// @Summary      Run a maintenance cycle
// @Description  Re-scores recent content and refreshes recommendations for active users
// @Tags         internal
// @Produce      json
// @Success      200  {object}  services.CycleStats
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /internal/scheduler/run [post]
func RunScheduler(scheduler *services.Scheduler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := scheduler.RunOnce(c.Context())
		if err != nil {
			return httpError(err)
		}
		return c.JSON(stats)
	}
}

package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/config"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/database"
)

func GetDashboardStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

func GetMonthlyIncomeAPI(c *fiber.Ctx) error {
	incomes, err := database.GetMonthlyIncomeByClass(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch monthly income"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    incomes,
	})
}

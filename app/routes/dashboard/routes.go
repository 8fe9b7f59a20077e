package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)

	api.Get("/stats", GetDashboardStatsAPI)
	api.Get("/monthly-income", GetMonthlyIncomeAPI)
}

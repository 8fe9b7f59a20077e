package finance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/finance"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/routes/auth"
)

func SetupFinanceRoutes(app *fiber.App, svc *finance.Service) {
	a := NewAPI(svc)

	api := app.Group("/api/finance")
	api.Use(auth.AuthMiddleware)

	api.Post("/generate", a.GenerateMonthlyFeesAPI)
	api.Get("/summary", a.GetFinanceSummaryAPI)
	api.Get("/payments", a.GetPaymentsAPI)
	api.Put("/payments/:id/status", a.MarkPaymentStatusAPI)
	api.Get("/outstanding", a.GetOutstandingBalancesAPI)
}

package finance

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/finance"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

// API holds the finance service the handlers run against. The service is
// injected so tests can run the handlers on an isolated in-memory store.
type API struct {
	svc *finance.Service
}

func NewAPI(svc *finance.Service) *API {
	return &API{svc: svc}
}

// GenerateMonthlyFeesAPI triggers fee generation for one month.
func (a *API) GenerateMonthlyFeesAPI(c *fiber.Ctx) error {
	type GenerateRequest struct {
		Month string `json:"month"`
	}

	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	result, err := a.svc.GenerateMonthlyFees(c.Context(), req.Month)
	if err != nil {
		return financeError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// GetFinanceSummaryAPI returns per-class summaries, optionally for one month.
func (a *API) GetFinanceSummaryAPI(c *fiber.Ctx) error {
	summaries, err := a.svc.GetFinanceSummary(c.Context(), c.Query("month"))
	if err != nil {
		return financeError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    summaries,
		"count":   len(summaries),
	})
}

// GetPaymentsAPI returns denormalized payments, optionally for one month.
func (a *API) GetPaymentsAPI(c *fiber.Ctx) error {
	payments, err := a.svc.GetPayments(c.Context(), c.Query("month"))
	if err != nil {
		return financeError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    payments,
		"count":   len(payments),
	})
}

// MarkPaymentStatusAPI transitions one payment between paid and unpaid.
func (a *API) MarkPaymentStatusAPI(c *fiber.Ctx) error {
	type StatusRequest struct {
		Status string `json:"status"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	result, err := a.svc.MarkPaymentStatus(c.Context(), c.Params("id"), models.PaymentStatus(req.Status))
	if err != nil {
		return financeError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// GetOutstandingBalancesAPI returns per-student outstanding balances,
// optionally annotated against a reference month.
func (a *API) GetOutstandingBalancesAPI(c *fiber.Ctx) error {
	balances, err := a.svc.GetStudentOutstandingBalances(c.Context(), c.Query("current_month"))
	if err != nil {
		return financeError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    balances,
		"count":   len(balances),
	})
}

// financeError maps service errors onto HTTP responses.
func financeError(c *fiber.Ctx, err error) error {
	var verr *finance.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(400).JSON(fiber.Map{"error": verr.Error()})
	case errors.Is(err, finance.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
	default:
		log.Printf("Finance operation failed: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Finance operation failed"})
	}
}

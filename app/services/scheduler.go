package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/finance"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

// StartScheduler registers the background fee-generation job: on the 1st of
// every month at 06:00 server time, payments for the new month are generated.
// Generation is idempotent, so a restart on the same day cannot double-bill.
func StartScheduler(svc *finance.Service) *cron.Cron {
	c := cron.New()
	c.AddFunc("0 6 1 * *", func() {
		month := models.MonthOf(time.Now()).String()
		log.Printf("Running scheduled fee generation for %s...", month)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		result, err := svc.GenerateMonthlyFees(ctx, month)
		if err != nil {
			log.Printf("Scheduled fee generation failed: %v", err)
			return
		}
		log.Printf("Scheduled fee generation for %s done: %d payments created", month, result.PaymentsCreated)
	})
	c.Start()
	log.Println("Scheduler started...")
	return c
}

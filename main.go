package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/config"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/database"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/finance"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/routes/auth"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/routes/classes"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/routes/dashboard"
	financeroutes "github.com/Hassan-Macow/machad-darul-waxyi/app/routes/finance"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/routes/parents"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/routes/students"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/services"
)

// customErrorHandler keeps error responses uniform across all routes.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to initialize configuration:", err)
	}
	defer cfg.DB.Close()

	if err := database.RunMigrations(cfg.DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	financeService := finance.NewService(database.NewFinanceStore(cfg.DB))

	if cfg.AutoGenerateFees {
		scheduler := services.StartScheduler(financeService)
		defer scheduler.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      "Machad Darul Waxyi",
		ErrorHandler: customErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.SetupAuthRoutes(app)
	parents.SetupParentsRoutes(app)
	classes.SetupClassesRoutes(app)
	students.SetupStudentsRoutes(app)
	financeroutes.SetupFinanceRoutes(app, financeService)
	dashboard.SetupDashboardRoutes(app)

	log.Printf("Server listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped:", err)
	}
}

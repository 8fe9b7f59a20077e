package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/routes/auth"
)

func SetupClassesRoutes(app *fiber.App) {
	api := app.Group("/api/classes")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetClassesAPI)
	api.Post("/", CreateClassAPI)
	api.Put("/:id", UpdateClassAPI)
	api.Delete("/:id", DeleteClassAPI)
}

package parents

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/routes/auth"
)

func SetupParentsRoutes(app *fiber.App) {
	api := app.Group("/api/parents")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetParentsAPI)
	api.Post("/", CreateParentAPI)
	api.Put("/:id", UpdateParentAPI)
	api.Delete("/:id", DeleteParentAPI)
}

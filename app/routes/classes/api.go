package classes

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/config"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/database"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

var validate = validator.New()

type ClassRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func GetClassesAPI(c *fiber.Ctx) error {
	classes, err := database.GetClasses(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"classes": classes,
		"count":   len(classes),
	})
}

func CreateClassAPI(c *fiber.Ctx) error {
	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Class name is required"})
	}

	class := &models.Class{Name: req.Name}
	if req.Description != "" {
		class.Description = &req.Description
	}

	if err := database.CreateClass(config.GetDB(), class); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create class"})
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"class":   class,
	})
}

func UpdateClassAPI(c *fiber.Ctx) error {
	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Class name is required"})
	}

	class := &models.Class{ID: c.Params("id"), Name: req.Name}
	if req.Description != "" {
		class.Description = &req.Description
	}

	if err := database.UpdateClass(config.GetDB(), class); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update class"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"class":   class,
	})
}

func DeleteClassAPI(c *fiber.Ctx) error {
	err := database.DeleteClass(config.GetDB(), c.Params("id"))
	switch {
	case err == sql.ErrNoRows:
		return c.Status(404).JSON(fiber.Map{"error": "Class not found"})
	case err == database.ErrInUse:
		return c.Status(409).JSON(fiber.Map{"error": "Class still has students; move them first"})
	case err != nil:
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete class"})
	}
	return c.JSON(fiber.Map{"success": true})
}

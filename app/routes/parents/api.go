package parents

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/config"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/database"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

var validate = validator.New()

type ParentRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
}

func GetParentsAPI(c *fiber.Ctx) error {
	parents, err := database.GetParents(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch parents"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"parents": parents,
		"count":   len(parents),
	})
}

func CreateParentAPI(c *fiber.Ctx) error {
	var req ParentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Name and phone are required"})
	}

	parent := &models.Parent{Name: req.Name, Phone: req.Phone}
	if req.Address != "" {
		parent.Address = &req.Address
	}

	if err := database.CreateParent(config.GetDB(), parent); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create parent"})
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"parent":  parent,
	})
}

func UpdateParentAPI(c *fiber.Ctx) error {
	var req ParentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Name and phone are required"})
	}

	parent := &models.Parent{ID: c.Params("id"), Name: req.Name, Phone: req.Phone}
	if req.Address != "" {
		parent.Address = &req.Address
	}

	if err := database.UpdateParent(config.GetDB(), parent); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Parent not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update parent"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"parent":  parent,
	})
}

func DeleteParentAPI(c *fiber.Ctx) error {
	err := database.DeleteParent(config.GetDB(), c.Params("id"))
	switch {
	case err == sql.ErrNoRows:
		return c.Status(404).JSON(fiber.Map{"error": "Parent not found"})
	case err == database.ErrInUse:
		return c.Status(409).JSON(fiber.Map{"error": "Parent still has students; reassign them first"})
	case err != nil:
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete parent"})
	}
	return c.JSON(fiber.Map{"success": true})
}

package students

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/config"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/database"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

var validate = validator.New()

type StudentRequest struct {
	Name     string  `json:"name" validate:"required"`
	ParentID string  `json:"parent_id" validate:"required,uuid"`
	ClassID  string  `json:"class_id" validate:"required,uuid"`
	Fee      float64 `json:"fee" validate:"gte=0"`
	Discount float64 `json:"discount" validate:"gte=0"`
	Status   string  `json:"status" validate:"required,oneof=active inactive"`
}

func (r *StudentRequest) check() string {
	if err := validate.Struct(r); err != nil {
		return "Name, parent, class and a valid status are required; fee and discount must not be negative"
	}
	if r.Discount > r.Fee {
		return "Discount must not exceed the fee"
	}
	return ""
}

func GetStudentsAPI(c *fiber.Ctx) error {
	students, err := database.GetStudentsWithDetails(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"students": students,
		"count":    len(students),
	})
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if msg := req.check(); msg != "" {
		return c.Status(400).JSON(fiber.Map{"error": msg})
	}

	student := &models.Student{
		Name:     req.Name,
		ParentID: req.ParentID,
		ClassID:  req.ClassID,
		Fee:      req.Fee,
		Discount: req.Discount,
		Status:   models.StudentStatus(req.Status),
	}
	if err := database.CreateStudent(config.GetDB(), student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"student": student,
	})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if msg := req.check(); msg != "" {
		return c.Status(400).JSON(fiber.Map{"error": msg})
	}

	student := &models.Student{
		ID:       c.Params("id"),
		Name:     req.Name,
		ParentID: req.ParentID,
		ClassID:  req.ClassID,
		Fee:      req.Fee,
		Discount: req.Discount,
		Status:   models.StudentStatus(req.Status),
	}
	if err := database.UpdateStudent(config.GetDB(), student); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"student": student,
	})
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	err := database.DeleteStudent(config.GetDB(), c.Params("id"))
	switch {
	case err == sql.ErrNoRows:
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	case err == database.ErrInUse:
		return c.Status(409).JSON(fiber.Map{"error": "Student has payment history; mark them inactive instead"})
	case err != nil:
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}
	return c.JSON(fiber.Map{"success": true})
}

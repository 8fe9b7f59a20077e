package main

import (
	"flag"
	"log"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/config"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/database"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/routes/auth"
)

// Bootstraps a staff account so a fresh deployment can log in.
func main() {
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "", "admin display name")
	password := flag.String("password", "", "admin password")
	role := flag.String("role", "admin", "role: admin or super_admin")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		log.Fatal("email, name and password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to initialize configuration:", err)
	}
	defer cfg.DB.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := &models.Admin{
		Email:    *email,
		Name:     *name,
		Password: hashed,
		Role:     *role,
	}
	if err := database.CreateAdmin(cfg.DB, admin); err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Printf("Admin created successfully: %s (%s)", admin.Name, admin.Email)
}

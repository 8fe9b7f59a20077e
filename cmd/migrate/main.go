package main

import (
	"flag"
	"log"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/config"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/database"
)

func main() {
	down := flag.Bool("down", false, "revert all migrations instead of applying them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to initialize configuration:", err)
	}
	defer cfg.DB.Close()

	if *down {
		if err := database.RollbackMigrations(cfg.DB); err != nil {
			log.Fatal("Rollback failed:", err)
		}
		log.Println("Migrations reverted")
		return
	}

	if err := database.RunMigrations(cfg.DB); err != nil {
		log.Fatal("Migration failed:", err)
	}
}

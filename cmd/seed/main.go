package main

import (
	"log"

	"github.com/calltrack/dnc-registry/internal/config"
	"github.com/calltrack/dnc-registry/internal/database"
	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/utils"
	"github.com/google/uuid"
)

// defaultReasons are the block categories every fresh install starts with.
var defaultReasons = []string{"MOVISTAR", "MOROSO", "QUITAR"}

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Fatal("Missing environment variables: ADMIN_USERNAME, ADMIN_PASSWORD")
	}

	for _, name := range defaultReasons {
		var reason models.Reason
		if err := db.Where("name = ?", name).First(&reason).Error; err == nil {
			log.Println("Reason already exists:", name)
			continue
		}

		reason = models.Reason{ID: uuid.New(), Name: name}
		if err := db.Create(&reason).Error; err != nil {
			log.Fatalf("Failed to create reason %s: %v", name, err)
		}
		log.Println("Reason created:", name)
	}

	// Check if the admin already exists
	var admin models.User
	if err := db.Where("username = ?", cfg.AdminUsername).First(&admin).Error; err == nil {
		log.Println("Admin user already exists:", admin.Username)
		return
	}

	passwordHash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin = models.User{
		ID:           uuid.New(),
		Username:     cfg.AdminUsername,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Println("Admin user created successfully:", admin.Username)
}

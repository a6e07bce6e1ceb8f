package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"astracms/internal/infra"
	"astracms/internal/models/db_models"
	"astracms/internal/repositories"
	"astracms/pkg/utils"
)

// Seeds the bootstrap super_admin: active and pre-verified so the panel is
// usable immediately after provisioning. Running twice is a no-op.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
	}

	db := infra.InitPostgresql()
	defer infra.ClosePostgresql(db)

	if err := db.AutoMigrate(&db_models.Account{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := repositories.NewAccountRepository(db)

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		log.Fatalf("Lookup failed: %v", err)
	}
	if existing != nil {
		log.Printf("Admin user %s already exists, nothing to do", existing.Email)
		return
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("Hashing failed: %v", err)
	}

	account := &db_models.Account{
		Email:           email,
		PasswordHash:    passwordHash,
		Name:            "Super Admin",
		Role:            db_models.RoleSuperAdmin,
		Status:          db_models.StatusActive,
		Permissions:     db_models.SuperAdminPermissions(),
		IsEmailVerified: true,
	}

	if err := repo.Insert(ctx, account); err != nil {
		log.Fatalf("Insert failed: %v", err)
	}

	log.Printf("Created super admin %s (change the password after first login)", account.Email)
}

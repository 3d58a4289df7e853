package config

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/models"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/repositories"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	db  *mongo.Database
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *mongo.Database, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := repositories.EnsureUserIndexes(ctx, s.db); err != nil {
		log.Printf("⚠️ Failed to ensure user indexes: %v", err)
	}

	if err := s.seedAdminUser(ctx); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the bootstrap admin user when no admin exists.
// Credentials come from SEED_ADMIN_USERNAME / SEED_ADMIN_PASSWORD; the
// seeder is a no-op when they are unset.
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	if s.cfg.Seed.AdminUsername == "" || s.cfg.Seed.AdminPassword == "" {
		return nil
	}

	userRepo := repositories.NewUserRepository(s.db)

	count, err := userRepo.CountByRole(ctx, "ADMIN")
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash(s.cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:    s.cfg.Seed.AdminUsername,
		Password:    hashedPassword,
		FullName:    "System Administrator",
		Role:        "ADMIN",
		IsActive:    true,
		LoanNumbers: []string{},
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("✅ Bootstrap admin created: %s", admin.Username)
	return nil
}

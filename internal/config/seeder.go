package config

import (
	"context"
	"log"
	"time"

	"esavers-backend/internal/adapters/persistence/store"
	"esavers-backend/internal/core/domain"

	"github.com/google/uuid"
)

// AdminEmail is the well-known email of the bootstrap administrator
const AdminEmail = "admin@emotionalsavers.com"

// Seeder handles state seeding
type Seeder struct {
	store *store.Store
}

// NewSeeder creates a new seeder instance
func NewSeeder(st *store.Store) *Seeder {
	return &Seeder{store: st}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running state seeders...")

	if err := s.seedAdminUser(ctx); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ State seeding completed")
	return nil
}

// seedAdminUser synthesizes the bootstrap administrator when the user
// list is empty. Idempotent: any existing user, admin or not, means
// the group was already bootstrapped and nothing is seeded.
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	state := s.store.State()
	if len(state.Users) > 0 {
		return nil
	}

	admin := domain.User{
		ID:       uuid.NewString(),
		Name:     "System Admin",
		Email:    AdminEmail,
		Role:     domain.RoleAdmin,
		JoinedAt: time.Now(),
	}
	s.store.SetUsers(ctx, []domain.User{admin})

	log.Printf("✅ Bootstrap admin created: %s", admin.Email)
	return nil
}

package services

import (
	"context"
	"testing"
	"time"

	"esavers-backend/internal/adapters/persistence/store"
	"esavers-backend/internal/config"
	"esavers-backend/internal/core/domain"

	"github.com/stretchr/testify/require"
)

// newTestStore returns a store backed by a temp-dir file blob store
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store.New(context.Background(), fs)
}

// newTestConfig returns a config with the defaults used in tests
func newTestConfig() *config.Config {
	return &config.Config{
		AppMode:   "dev",
		JWT:       config.JWTConfig{Secret: "test_secret", AccessTokenMins: 15},
		Lifecycle: config.LifecycleConfig{Strict: true},
		Loan:      config.LoanConfig{MonthlyInterestRate: 5},
	}
}

// seedMember adds a member user and returns it
func seedMember(t *testing.T, st *store.Store, id, name, email string) domain.User {
	t.Helper()
	user := domain.User{
		ID:       id,
		Name:     name,
		Email:    email,
		Role:     domain.RoleMember,
		JoinedAt: time.Now(),
	}
	st.AddUser(context.Background(), user)
	return user
}

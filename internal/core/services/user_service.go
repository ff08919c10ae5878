package services

import (
	"context"
	"strings"
	"time"

	"esavers-backend/internal/adapters/persistence/store"
	"esavers-backend/internal/core/domain"
	"esavers-backend/internal/core/ledger"

	"github.com/google/uuid"
)

// UserService handles member management
type UserService struct {
	store *store.Store
}

// NewUserService creates a new user service
func NewUserService(st *store.Store) *UserService {
	return &UserService{store: st}
}

// AddMemberInput is the payload for adding a member
type AddMemberInput struct {
	Name  string
	Email string
}

// MemberInfo pairs a user with their ledger stats
type MemberInfo struct {
	User      domain.User `json:"user"`
	Savings   float64     `json:"savings"`
	Loans     float64     `json:"loans"`
	Repaid    float64     `json:"repaid"`
	Remaining float64     `json:"remaining"`
}

// AddMember creates a member account. Email must be unique since it is
// the login key. Users are never deleted.
func (s *UserService) AddMember(ctx context.Context, input *AddMemberInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}

	state := s.store.State()
	if state.FindUserByEmail(email) != nil {
		return nil, domain.ErrEmailTaken
	}

	member := domain.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Role:     domain.RoleMember,
		JoinedAt: time.Now(),
	}
	s.store.AddUser(ctx, member)

	return &member, nil
}

// List returns all users with their per-member ledger stats
func (s *UserService) List(_ context.Context) []MemberInfo {
	state := s.store.State()

	infos := make([]MemberInfo, 0, len(state.Users))
	for _, user := range state.Users {
		summary := ledger.SummarizeMember(user.ID, state)
		infos = append(infos, MemberInfo{
			User:      user,
			Savings:   summary.Savings,
			Loans:     summary.Loans,
			Repaid:    summary.Repaid,
			Remaining: summary.Remaining,
		})
	}
	return infos
}

// ToggleDarkMode flips the display preference and returns the new value
func (s *UserService) ToggleDarkMode(ctx context.Context) bool {
	return s.store.ToggleDarkMode(ctx)
}

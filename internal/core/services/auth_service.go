package services

import (
	"context"
	"strings"

	"esavers-backend/internal/adapters/persistence/store"
	"esavers-backend/internal/config"
	"esavers-backend/internal/core/domain"
	"esavers-backend/internal/pkg/jwt"
)

// AuthService handles session operations. Login resolves a user by
// exact email match against the member list; there is no credential
// check in this trust-the-client model.
type AuthService struct {
	store *store.Store
	cfg   *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(st *store.Store, cfg *config.Config) *AuthService {
	return &AuthService{store: st, cfg: cfg}
}

// LoginResult holds the issued token and resolved user
type LoginResult struct {
	AccessToken string
	User        domain.User
}

// Login resolves the user by email, sets the session user and issues
// an access token. Unknown emails leave the state untouched.
func (s *AuthService) Login(ctx context.Context, email string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}

	state := s.store.State()
	user := state.FindUserByEmail(email)
	if user == nil {
		return nil, domain.ErrAccountNotFound
	}

	token, err := jwt.GenerateAccessToken(user.ID, user.Email, string(user.Role), s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, err
	}

	s.store.SetCurrentUser(ctx, user)

	return &LoginResult{AccessToken: token, User: *user}, nil
}

// Logout clears the session user. There is no token to invalidate.
func (s *AuthService) Logout(ctx context.Context) {
	s.store.SetCurrentUser(ctx, nil)
}

// GetUserByID returns the user with the given id
func (s *AuthService) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	state := s.store.State()
	user := state.FindUser(id)
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

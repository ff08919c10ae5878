package services

import (
	"context"
	"strings"
	"time"

	"esavers-backend/internal/adapters/persistence/store"
	"esavers-backend/internal/config"
	"esavers-backend/internal/core/domain"

	"github.com/google/uuid"
)

// SavingsService handles savings request submission and review
type SavingsService struct {
	store *store.Store
	cfg   *config.Config
}

// NewSavingsService creates a new savings service
func NewSavingsService(st *store.Store, cfg *config.Config) *SavingsService {
	return &SavingsService{store: st, cfg: cfg}
}

// SubmitSavingsInput is the payload for a new savings request
type SubmitSavingsInput struct {
	Amount float64
	Notes  string
}

// Submit creates a savings request in pending status
func (s *SavingsService) Submit(ctx context.Context, userID string, input *SubmitSavingsInput) (*domain.SavingsRequest, error) {
	if s.store.State().FindUser(userID) == nil {
		return nil, domain.ErrUserNotFound
	}

	req := domain.SavingsRequest{
		ID:     uuid.NewString(),
		UserID: userID,
		Amount: input.Amount,
		Date:   time.Now(),
		Status: domain.StatusPending,
		Notes:  strings.TrimSpace(input.Notes),
	}
	s.store.AddSavingsRequest(ctx, req)

	return &req, nil
}

// Approve transitions a savings request to approved. In strict mode
// the request must still be pending.
func (s *SavingsService) Approve(ctx context.Context, id string) (*domain.SavingsRequest, error) {
	return s.decide(ctx, id, domain.StatusApproved)
}

// Reject transitions a savings request to rejected. In strict mode
// the request must still be pending.
func (s *SavingsService) Reject(ctx context.Context, id string) (*domain.SavingsRequest, error) {
	return s.decide(ctx, id, domain.StatusRejected)
}

// decide delegates to the store so the strict-mode precondition and
// the status flip share one critical section
func (s *SavingsService) decide(ctx context.Context, id string, status domain.RequestStatus) (*domain.SavingsRequest, error) {
	return s.store.DecideSavingsRequest(ctx, id, status, s.cfg.Lifecycle.Strict)
}

// ListForUser returns one member's savings requests in insertion order
func (s *SavingsService) ListForUser(_ context.Context, userID string) []domain.SavingsRequest {
	state := s.store.State()
	requests := []domain.SavingsRequest{}
	for _, req := range state.SavingsRequests {
		if req.UserID == userID {
			requests = append(requests, req)
		}
	}
	return requests
}

// ListPending returns all pending savings requests for admin review
func (s *SavingsService) ListPending(_ context.Context) []domain.SavingsRequest {
	state := s.store.State()
	requests := []domain.SavingsRequest{}
	for _, req := range state.SavingsRequests {
		if req.Status == domain.StatusPending {
			requests = append(requests, req)
		}
	}
	return requests
}

// ListAll returns every savings request in insertion order
func (s *SavingsService) ListAll(_ context.Context) []domain.SavingsRequest {
	return s.store.State().SavingsRequests
}

package store

import (
	"context"
	"errors"
	"log"
	"sync"

	"esavers-backend/internal/core/domain"
)

// Store holds the full application state and exposes the closed set of
// mutations the application may perform. Every mutation produces a new
// snapshot from the prior one and synchronously persists it to the
// blob store under StateKey. Mutations are serialized by a mutex; the
// calculator reads a deep copy and never touches live state.
type Store struct {
	mu    sync.RWMutex
	blob  BlobStore
	state *domain.AppState
}

// New loads the persisted snapshot from blob, falling back to the
// empty initial state when no snapshot exists or the stored blob is
// corrupt or shape-incompatible.
func New(ctx context.Context, blob BlobStore) *Store {
	s := &Store{blob: blob, state: domain.NewAppState()}

	data, err := blob.Get(ctx, StateKey)
	switch {
	case errors.Is(err, ErrBlobNotFound):
		// first run
	case err != nil:
		log.Printf("⚠️ Failed to read persisted state, starting empty: %v", err)
	default:
		state, derr := decodeState(data)
		if derr != nil {
			log.Printf("⚠️ Persisted state is corrupt, starting empty: %v", derr)
		} else {
			s.state = state
		}
	}

	return s
}

// State returns a deep copy of the current snapshot
func (s *Store) State() *domain.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Export returns the current snapshot in its persisted form
func (s *Store) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return encodeState(s.state)
}

// mutate applies fn to a copy of the state, swaps it in and persists.
// A failed persistence write is logged and lost; the in-memory state
// is still advanced.
func (s *Store) mutate(ctx context.Context, fn func(*domain.AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.state = next

	data, err := encodeState(next)
	if err != nil {
		log.Printf("⚠️ Failed to encode state for persistence: %v", err)
		return nil
	}
	if err := s.blob.Put(ctx, StateKey, data); err != nil {
		log.Printf("⚠️ Failed to persist state: %v", err)
	}
	return nil
}

// SetCurrentUser sets (or clears, with nil) the session user
func (s *Store) SetCurrentUser(ctx context.Context, user *domain.User) {
	_ = s.mutate(ctx, func(state *domain.AppState) error {
		if user == nil {
			state.CurrentUser = nil
			return nil
		}
		u := *user
		state.CurrentUser = &u
		return nil
	})
}

// SetUsers replaces the full user list
func (s *Store) SetUsers(ctx context.Context, users []domain.User) {
	_ = s.mutate(ctx, func(state *domain.AppState) error {
		state.Users = append([]domain.User{}, users...)
		return nil
	})
}

// AddUser appends a user to the list
func (s *Store) AddUser(ctx context.Context, user domain.User) {
	_ = s.mutate(ctx, func(state *domain.AppState) error {
		state.Users = append(state.Users, user)
		return nil
	})
}

// AddSavingsRequest appends a savings request
func (s *Store) AddSavingsRequest(ctx context.Context, req domain.SavingsRequest) {
	_ = s.mutate(ctx, func(state *domain.AppState) error {
		state.SavingsRequests = append(state.SavingsRequests, req)
		return nil
	})
}

// UpdateSavingsRequest replaces the savings request with the same id,
// keeping its position in the collection
func (s *Store) UpdateSavingsRequest(ctx context.Context, req domain.SavingsRequest) error {
	return s.mutate(ctx, func(state *domain.AppState) error {
		for i := range state.SavingsRequests {
			if state.SavingsRequests[i].ID == req.ID {
				state.SavingsRequests[i] = req
				return nil
			}
		}
		return domain.ErrSavingsNotFound
	})
}

// DecideSavingsRequest flips the status of a savings request. With
// strict set, a request that already carries a terminal status is left
// untouched and ErrRequestDecided is returned. Check and flip happen
// inside one critical section so concurrent decisions cannot both
// pass the precondition.
func (s *Store) DecideSavingsRequest(ctx context.Context, id string, status domain.RequestStatus, strict bool) (*domain.SavingsRequest, error) {
	var decided domain.SavingsRequest
	err := s.mutate(ctx, func(state *domain.AppState) error {
		req := state.FindSavings(id)
		if req == nil {
			return domain.ErrSavingsNotFound
		}
		if strict && req.Status.Decided() {
			return domain.ErrRequestDecided
		}
		req.Status = status
		decided = *req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &decided, nil
}

// AddLoanRequest appends a loan request
func (s *Store) AddLoanRequest(ctx context.Context, loan domain.LoanRequest) {
	_ = s.mutate(ctx, func(state *domain.AppState) error {
		state.LoanRequests = append(state.LoanRequests, loan)
		return nil
	})
}

// UpdateLoanRequest replaces the loan request with the same id,
// keeping its position in the collection
func (s *Store) UpdateLoanRequest(ctx context.Context, loan domain.LoanRequest) error {
	return s.mutate(ctx, func(state *domain.AppState) error {
		for i := range state.LoanRequests {
			if state.LoanRequests[i].ID == loan.ID {
				state.LoanRequests[i] = loan
				return nil
			}
		}
		return domain.ErrLoanNotFound
	})
}

// DecideLoanRequest flips the status of a loan request under the same
// rules as DecideSavingsRequest
func (s *Store) DecideLoanRequest(ctx context.Context, id string, status domain.RequestStatus, strict bool) (*domain.LoanRequest, error) {
	var decided domain.LoanRequest
	err := s.mutate(ctx, func(state *domain.AppState) error {
		loan := state.FindLoan(id)
		if loan == nil {
			return domain.ErrLoanNotFound
		}
		if strict && loan.Status.Decided() {
			return domain.ErrRequestDecided
		}
		loan.Status = status
		decided = *loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &decided, nil
}

// AddLoanRepayment appends a loan repayment
func (s *Store) AddLoanRepayment(ctx context.Context, rep domain.LoanRepayment) {
	_ = s.mutate(ctx, func(state *domain.AppState) error {
		state.LoanRepayments = append(state.LoanRepayments, rep)
		return nil
	})
}

// ToggleDarkMode flips the display preference and returns the new value
func (s *Store) ToggleDarkMode(ctx context.Context) bool {
	var dark bool
	_ = s.mutate(ctx, func(state *domain.AppState) error {
		state.DarkMode = !state.DarkMode
		dark = state.DarkMode
		return nil
	})
	return dark
}

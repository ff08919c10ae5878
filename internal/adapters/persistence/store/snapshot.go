package store

import (
	"encoding/json"
	"fmt"

	"esavers-backend/internal/core/domain"
)

// StateKey is the fixed blob key the live snapshot is persisted under
const StateKey = "appState"

// encodeState serializes the snapshot for persistence
func encodeState(state *domain.AppState) ([]byte, error) {
	return json.Marshal(state)
}

// decodeState deserializes and validates a persisted snapshot. An
// error here means the blob is corrupt or from an incompatible shape;
// callers fall back to the initial state rather than trusting it.
func decodeState(data []byte) (*domain.AppState, error) {
	var state domain.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if err := validateState(&state); err != nil {
		return nil, err
	}

	// json leaves absent collections nil
	if state.Users == nil {
		state.Users = []domain.User{}
	}
	if state.SavingsRequests == nil {
		state.SavingsRequests = []domain.SavingsRequest{}
	}
	if state.LoanRequests == nil {
		state.LoanRequests = []domain.LoanRequest{}
	}
	if state.LoanRepayments == nil {
		state.LoanRepayments = []domain.LoanRepayment{}
	}

	return &state, nil
}

// validateState rejects snapshots whose shape does not match current
// expectations: missing ids, unknown roles or statuses
func validateState(state *domain.AppState) error {
	for _, u := range state.Users {
		if u.ID == "" {
			return fmt.Errorf("user with empty id")
		}
		if u.Role != domain.RoleAdmin && u.Role != domain.RoleMember {
			return fmt.Errorf("user %s: unknown role %q", u.ID, u.Role)
		}
	}
	for _, req := range state.SavingsRequests {
		if req.ID == "" || req.UserID == "" {
			return fmt.Errorf("savings request with empty id")
		}
		if !req.Status.Valid() {
			return fmt.Errorf("savings request %s: unknown status %q", req.ID, req.Status)
		}
	}
	for _, loan := range state.LoanRequests {
		if loan.ID == "" || loan.UserID == "" {
			return fmt.Errorf("loan request with empty id")
		}
		if !loan.Status.Valid() {
			return fmt.Errorf("loan request %s: unknown status %q", loan.ID, loan.Status)
		}
	}
	for _, rep := range state.LoanRepayments {
		if rep.ID == "" || rep.LoanID == "" {
			return fmt.Errorf("loan repayment with empty id")
		}
	}
	return nil
}

package services

import (
	"context"
	"strings"
	"time"

	"esavers-backend/internal/adapters/persistence/store"
	"esavers-backend/internal/config"
	"esavers-backend/internal/core/domain"
	"esavers-backend/internal/core/ledger"

	"github.com/google/uuid"
)

// LoanService handles loan request submission, review and repayments
type LoanService struct {
	store *store.Store
	cfg   *config.Config
}

// NewLoanService creates a new loan service
func NewLoanService(st *store.Store, cfg *config.Config) *LoanService {
	return &LoanService{store: st, cfg: cfg}
}

// SubmitLoanInput is the payload for a new loan request. The interest
// rate is a configured group term, never a client input.
type SubmitLoanInput struct {
	Amount          float64
	Purpose         string
	RepaymentPeriod int
}

// Submit creates a loan request in pending status with the configured
// monthly interest rate
func (s *LoanService) Submit(ctx context.Context, userID string, input *SubmitLoanInput) (*domain.LoanRequest, error) {
	if s.store.State().FindUser(userID) == nil {
		return nil, domain.ErrUserNotFound
	}
	if input.RepaymentPeriod <= 0 {
		return nil, domain.ErrInvalidInput
	}

	loan := domain.LoanRequest{
		ID:              uuid.NewString(),
		UserID:          userID,
		Amount:          input.Amount,
		Purpose:         strings.TrimSpace(input.Purpose),
		Date:            time.Now(),
		Status:          domain.StatusPending,
		RepaymentPeriod: input.RepaymentPeriod,
		InterestRate:    s.cfg.Loan.MonthlyInterestRate,
	}
	s.store.AddLoanRequest(ctx, loan)

	return &loan, nil
}

// Approve transitions a loan request to approved. In strict mode the
// request must still be pending. Approval stores nothing beyond the
// status flip; interest and balances are always computed on demand.
func (s *LoanService) Approve(ctx context.Context, id string) (*domain.LoanRequest, error) {
	return s.decide(ctx, id, domain.StatusApproved)
}

// Reject transitions a loan request to rejected. In strict mode the
// request must still be pending.
func (s *LoanService) Reject(ctx context.Context, id string) (*domain.LoanRequest, error) {
	return s.decide(ctx, id, domain.StatusRejected)
}

// decide delegates to the store so the strict-mode precondition and
// the status flip share one critical section
func (s *LoanService) decide(ctx context.Context, id string, status domain.RequestStatus) (*domain.LoanRequest, error) {
	return s.store.DecideLoanRequest(ctx, id, status, s.cfg.Lifecycle.Strict)
}

// AddRepayment records a repayment against a loan. Only the borrowing
// member may repay. By convention repayments target approved loans but
// the loan status is not enforced here.
func (s *LoanService) AddRepayment(ctx context.Context, userID, loanID string, amount float64) (*domain.LoanRepayment, error) {
	loan := s.store.State().FindLoan(loanID)
	if loan == nil {
		return nil, domain.ErrLoanNotFound
	}
	if loan.UserID != userID {
		return nil, domain.ErrNotBorrower
	}

	rep := domain.LoanRepayment{
		ID:     uuid.NewString(),
		LoanID: loanID,
		Amount: amount,
		Date:   time.Now(),
	}
	s.store.AddLoanRepayment(ctx, rep)

	return &rep, nil
}

// Balance returns the repayment position of a loan
func (s *LoanService) Balance(_ context.Context, loanID string) (*ledger.Balance, error) {
	state := s.store.State()
	loan := state.FindLoan(loanID)
	if loan == nil {
		return nil, domain.ErrLoanNotFound
	}
	balance := ledger.LoanBalance(*loan, state.LoanRepayments)
	return &balance, nil
}

// ListForUser returns one member's loan requests in insertion order
func (s *LoanService) ListForUser(_ context.Context, userID string) []domain.LoanRequest {
	state := s.store.State()
	loans := []domain.LoanRequest{}
	for _, loan := range state.LoanRequests {
		if loan.UserID == userID {
			loans = append(loans, loan)
		}
	}
	return loans
}

// ListPending returns all pending loan requests for admin review
func (s *LoanService) ListPending(_ context.Context) []domain.LoanRequest {
	state := s.store.State()
	loans := []domain.LoanRequest{}
	for _, loan := range state.LoanRequests {
		if loan.Status == domain.StatusPending {
			loans = append(loans, loan)
		}
	}
	return loans
}

// ListAll returns every loan request in insertion order
func (s *LoanService) ListAll(_ context.Context) []domain.LoanRequest {
	return s.store.State().LoanRequests
}

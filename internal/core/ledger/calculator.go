// Package ledger computes balances, interest and reporting aggregates
// from the application state. Every function is pure: results are
// derived from the collections on each call and nothing is cached or
// stored, so all read paths show the same numbers.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"esavers-backend/internal/core/domain"
)

// TransactionType tags entries in the merged transaction feed
type TransactionType string

const (
	TxSavings       TransactionType = "Savings"
	TxLoanRequest   TransactionType = "Loan Request"
	TxLoanRepayment TransactionType = "Loan Repayment"
)

// Balance is the repayment position of a single loan.
// Remaining is signed: over-repayment yields a negative value.
type Balance struct {
	TotalDue    float64 `json:"total_due"`
	TotalRepaid float64 `json:"total_repaid"`
	Remaining   float64 `json:"remaining"`
}

// ActiveLoan pairs an approved loan with its balance
type ActiveLoan struct {
	Loan    domain.LoanRequest `json:"loan"`
	Balance Balance            `json:"balance"`
}

// MemberSummary aggregates one member's approved savings and loans
type MemberSummary struct {
	Savings     float64      `json:"savings"`
	Loans       float64      `json:"loans"`
	Repaid      float64      `json:"repaid"`
	Remaining   float64      `json:"remaining"`
	ActiveLoans []ActiveLoan `json:"active_loans"`
}

// PeriodSummary aggregates activity inside an inclusive date range
type PeriodSummary struct {
	PeriodSavings    float64 `json:"period_savings"`
	PeriodLoans      float64 `json:"period_loans"`
	PeriodRepayments float64 `json:"period_repayments"`
}

// Transaction is one entry of the merged chronological feed
type Transaction struct {
	Type     TransactionType `json:"type"`
	Date     time.Time       `json:"date"`
	Amount   float64         `json:"amount"`
	Status   string          `json:"status"`
	Notes    string          `json:"notes,omitempty"`
	UserID   string          `json:"user_id,omitempty"`
	UserName string          `json:"user_name,omitempty"`
}

// TotalApprovedSavings sums approved savings requests. An empty userID
// sums across all members.
func TotalApprovedSavings(requests []domain.SavingsRequest, userID string) float64 {
	var sum float64
	for _, req := range requests {
		if req.Status != domain.StatusApproved {
			continue
		}
		if userID != "" && req.UserID != userID {
			continue
		}
		sum += req.Amount
	}
	return sum
}

// TotalApprovedLoans sums approved loan principals. An empty userID
// sums across all members.
func TotalApprovedLoans(loans []domain.LoanRequest, userID string) float64 {
	var sum float64
	for _, loan := range loans {
		if loan.Status != domain.StatusApproved {
			continue
		}
		if userID != "" && loan.UserID != userID {
			continue
		}
		sum += loan.Amount
	}
	return sum
}

// TotalRepayments sums repayment amounts. With a userID the sum is
// restricted to repayments whose parent loan belongs to that member;
// repayments with a dangling loanId are treated as absent.
func TotalRepayments(repayments []domain.LoanRepayment, loans []domain.LoanRequest, userID string) float64 {
	var sum float64
	for _, rep := range repayments {
		if userID != "" {
			loan := findLoan(loans, rep.LoanID)
			if loan == nil || loan.UserID != userID {
				continue
			}
		}
		sum += rep.Amount
	}
	return sum
}

// LoanBalance computes the repayment position of one loan. TotalDue
// uses flat simple interest on the principal for the full repayment
// period: amount × (1 + rate/100 × months). Interest is never prorated
// for early repayment and never compounds. Non-approved loans carry
// zero due. Remaining is not clamped at zero.
func LoanBalance(loan domain.LoanRequest, repayments []domain.LoanRepayment) Balance {
	var totalDue float64
	if loan.Status == domain.StatusApproved {
		totalDue = loan.Amount + loan.Amount*loan.InterestRate*float64(loan.RepaymentPeriod)/100
	}

	var totalRepaid float64
	for _, rep := range repayments {
		if rep.LoanID == loan.ID {
			totalRepaid += rep.Amount
		}
	}

	return Balance{
		TotalDue:    totalDue,
		TotalRepaid: totalRepaid,
		Remaining:   totalDue - totalRepaid,
	}
}

// SummarizeMember aggregates one member's approved savings, approved
// loans and repayment status
func SummarizeMember(userID string, state *domain.AppState) MemberSummary {
	summary := MemberSummary{
		Savings:     TotalApprovedSavings(state.SavingsRequests, userID),
		ActiveLoans: []ActiveLoan{},
	}

	for _, loan := range state.LoanRequests {
		if loan.UserID != userID || loan.Status != domain.StatusApproved {
			continue
		}
		balance := LoanBalance(loan, state.LoanRepayments)
		summary.Loans += loan.Amount
		summary.Repaid += balance.TotalRepaid
		summary.Remaining += balance.Remaining
		summary.ActiveLoans = append(summary.ActiveLoans, ActiveLoan{Loan: loan, Balance: balance})
	}

	return summary
}

// SummarizePeriod aggregates activity whose date falls in [start, end],
// both endpoints inclusive. A zero start means the epoch; a zero end
// means now. Savings and loans count only when approved; repayments
// have no status and are always counted.
func SummarizePeriod(start, end time.Time, state *domain.AppState) PeriodSummary {
	if start.IsZero() {
		start = time.Unix(0, 0)
	}
	if end.IsZero() {
		end = time.Now()
	}

	var summary PeriodSummary

	for _, req := range state.SavingsRequests {
		if req.Status == domain.StatusApproved && inRange(req.Date, start, end) {
			summary.PeriodSavings += req.Amount
		}
	}
	for _, loan := range state.LoanRequests {
		if loan.Status == domain.StatusApproved && inRange(loan.Date, start, end) {
			summary.PeriodLoans += loan.Amount
		}
	}
	for _, rep := range state.LoanRepayments {
		if inRange(rep.Date, start, end) {
			summary.PeriodRepayments += rep.Amount
		}
	}

	return summary
}

// TransactionFeed merges savings requests, loan requests and loan
// repayments into a single date-descending sequence. With a userID the
// feed is restricted to that member's records; repayments are matched
// through their parent loan's userId. The sort is stable so records
// sharing a date keep insertion order.
func TransactionFeed(state *domain.AppState, userID string) []Transaction {
	feed := []Transaction{}

	for _, req := range state.SavingsRequests {
		if userID != "" && req.UserID != userID {
			continue
		}
		feed = append(feed, Transaction{
			Type:     TxSavings,
			Date:     req.Date,
			Amount:   req.Amount,
			Status:   string(req.Status),
			Notes:    req.Notes,
			UserID:   req.UserID,
			UserName: userName(state, req.UserID),
		})
	}

	for _, loan := range state.LoanRequests {
		if userID != "" && loan.UserID != userID {
			continue
		}
		feed = append(feed, Transaction{
			Type:     TxLoanRequest,
			Date:     loan.Date,
			Amount:   loan.Amount,
			Status:   string(loan.Status),
			Notes:    loan.Purpose,
			UserID:   loan.UserID,
			UserName: userName(state, loan.UserID),
		})
	}

	for _, rep := range state.LoanRepayments {
		loan := findLoan(state.LoanRequests, rep.LoanID)
		if userID != "" && (loan == nil || loan.UserID != userID) {
			continue
		}
		tx := Transaction{
			Type:   TxLoanRepayment,
			Date:   rep.Date,
			Amount: rep.Amount,
			Status: "completed",
		}
		if loan != nil {
			tx.Notes = fmt.Sprintf("Repayment for loan of %.0f UGX", loan.Amount)
			tx.UserID = loan.UserID
			tx.UserName = userName(state, loan.UserID)
		}
		feed = append(feed, tx)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})

	return feed
}

// inRange reports whether d falls inside [start, end] inclusive
func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func findLoan(loans []domain.LoanRequest, id string) *domain.LoanRequest {
	for i := range loans {
		if loans[i].ID == id {
			return &loans[i]
		}
	}
	return nil
}

func userName(state *domain.AppState, userID string) string {
	if u := state.FindUser(userID); u != nil {
		return u.Name
	}
	return ""
}

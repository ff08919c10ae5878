package services

import (
	"context"
	"sort"
	"time"

	"esavers-backend/internal/adapters/persistence/store"
	"esavers-backend/internal/core/domain"
	"esavers-backend/internal/core/ledger"
)

// ReportService derives dashboard and report views. All numbers come
// from the ledger calculator so every read path computes them the same
// way.
type ReportService struct {
	store *store.Store
}

// NewReportService creates a new report service
func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

// PersonalStats holds a member's own dashboard figures
type PersonalStats struct {
	Savings   float64 `json:"savings"`
	Loans     float64 `json:"loans"`
	Repaid    float64 `json:"repaid"`
	Remaining float64 `json:"remaining"`
}

// RecentEntry is one row of the dashboard recent-activity lists
type RecentEntry struct {
	ID       string    `json:"id"`
	UserName string    `json:"user_name"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}

// DashboardData holds group totals plus role-dependent extras
type DashboardData struct {
	TotalSavings    float64        `json:"total_savings"`
	TotalLoans      float64        `json:"total_loans"`
	TotalRepayments float64        `json:"total_repayments"`
	TotalMembers    int            `json:"total_members"`
	Personal        *PersonalStats `json:"personal,omitempty"`
	RecentSavings   []RecentEntry  `json:"recent_savings"`
	RecentLoans     []RecentEntry  `json:"recent_loans"`
}

// MemberReport pairs a member with their full summary
type MemberReport struct {
	Member  domain.User          `json:"member"`
	Summary ledger.MemberSummary `json:"summary"`
}

// Dashboard returns group totals, recent approved activity and, for
// members, their personal stats
func (s *ReportService) Dashboard(_ context.Context, userID string) *DashboardData {
	state := s.store.State()

	data := &DashboardData{
		TotalSavings:    ledger.TotalApprovedSavings(state.SavingsRequests, ""),
		TotalLoans:      ledger.TotalApprovedLoans(state.LoanRequests, ""),
		TotalRepayments: ledger.TotalRepayments(state.LoanRepayments, state.LoanRequests, ""),
		TotalMembers:    len(state.Users),
		RecentSavings:   []RecentEntry{},
		RecentLoans:     []RecentEntry{},
	}

	user := state.FindUser(userID)
	if user != nil && user.Role == domain.RoleMember {
		summary := ledger.SummarizeMember(userID, state)
		data.Personal = &PersonalStats{
			Savings:   summary.Savings,
			Loans:     summary.Loans,
			Repaid:    summary.Repaid,
			Remaining: summary.Remaining,
		}
	}

	for _, req := range state.SavingsRequests {
		if req.Status == domain.StatusApproved {
			data.RecentSavings = append(data.RecentSavings, RecentEntry{
				ID:       req.ID,
				UserName: name(state, req.UserID),
				Amount:   req.Amount,
				Date:     req.Date,
			})
		}
	}
	for _, loan := range state.LoanRequests {
		if loan.Status == domain.StatusApproved {
			data.RecentLoans = append(data.RecentLoans, RecentEntry{
				ID:       loan.ID,
				UserName: name(state, loan.UserID),
				Amount:   loan.Amount,
				Date:     loan.Date,
			})
		}
	}
	data.RecentSavings = latest(data.RecentSavings, 5)
	data.RecentLoans = latest(data.RecentLoans, 5)

	return data
}

// MemberSummary returns one member's full ledger summary
func (s *ReportService) MemberSummary(_ context.Context, userID string) (*ledger.MemberSummary, error) {
	state := s.store.State()
	if state.FindUser(userID) == nil {
		return nil, domain.ErrUserNotFound
	}
	summary := ledger.SummarizeMember(userID, state)
	return &summary, nil
}

// MemberReports returns summaries for every member, for the admin
// reports screen
func (s *ReportService) MemberReports(_ context.Context) []MemberReport {
	state := s.store.State()

	reports := []MemberReport{}
	for _, user := range state.Users {
		if user.Role != domain.RoleMember {
			continue
		}
		reports = append(reports, MemberReport{
			Member:  user,
			Summary: ledger.SummarizeMember(user.ID, state),
		})
	}
	return reports
}

// Period returns aggregates over [start, end] inclusive. Zero times
// default to the epoch and now respectively.
func (s *ReportService) Period(_ context.Context, start, end time.Time) ledger.PeriodSummary {
	return ledger.SummarizePeriod(start, end, s.store.State())
}

// Transactions returns the merged date-descending feed. An empty
// userID returns all records (admin view).
func (s *ReportService) Transactions(_ context.Context, userID string) []ledger.Transaction {
	return ledger.TransactionFeed(s.store.State(), userID)
}

// latest sorts entries date-descending and keeps at most n
func latest(entries []RecentEntry, n int) []RecentEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func name(state *domain.AppState, userID string) string {
	if u := state.FindUser(userID); u != nil {
		return u.Name
	}
	return ""
}

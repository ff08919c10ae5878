package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// RequestStatus represents the lifecycle state of a savings or loan request
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is one of the known statuses
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Decided reports whether s is a terminal status
func (s RequestStatus) Decided() bool {
	return s == StatusApproved || s == StatusRejected
}

// User represents a group member or administrator.
// Email is unique across users and is the login key.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// SavingsRequest represents a member's savings deposit request
type SavingsRequest struct {
	ID     string        `json:"id"`
	UserID string        `json:"userId"`
	Amount float64       `json:"amount"`
	Date   time.Time     `json:"date"`
	Status RequestStatus `json:"status"`
	Notes  string        `json:"notes,omitempty"`
}

// LoanRequest represents a member's loan request.
// InterestRate is a flat monthly percentage fixed at submission.
type LoanRequest struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	Amount          float64       `json:"amount"`
	Purpose         string        `json:"purpose"`
	Date            time.Time     `json:"date"`
	Status          RequestStatus `json:"status"`
	RepaymentPeriod int           `json:"repaymentPeriod"`
	InterestRate    float64       `json:"interestRate"`
}

// LoanRepayment represents a single repayment against a loan.
// Multiple repayments may target one loan; their sum is the cumulative
// repaid amount. Repayments are never mutated or deleted.
type LoanRepayment struct {
	ID     string    `json:"id"`
	LoanID string    `json:"loanId"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// AppState is the full application snapshot. It is persisted as a
// single JSON blob under a fixed key after every mutation.
type AppState struct {
	CurrentUser     *User            `json:"currentUser"`
	Users           []User           `json:"users"`
	SavingsRequests []SavingsRequest `json:"savingsRequests"`
	LoanRequests    []LoanRequest    `json:"loanRequests"`
	LoanRepayments  []LoanRepayment  `json:"loanRepayments"`
	DarkMode        bool             `json:"darkMode"`
}

// NewAppState returns the empty initial state
func NewAppState() *AppState {
	return &AppState{
		Users:           []User{},
		SavingsRequests: []SavingsRequest{},
		LoanRequests:    []LoanRequest{},
		LoanRepayments:  []LoanRepayment{},
	}
}

// Clone returns a deep copy of the state
func (s *AppState) Clone() *AppState {
	c := &AppState{
		Users:           make([]User, len(s.Users)),
		SavingsRequests: make([]SavingsRequest, len(s.SavingsRequests)),
		LoanRequests:    make([]LoanRequest, len(s.LoanRequests)),
		LoanRepayments:  make([]LoanRepayment, len(s.LoanRepayments)),
		DarkMode:        s.DarkMode,
	}
	copy(c.Users, s.Users)
	copy(c.SavingsRequests, s.SavingsRequests)
	copy(c.LoanRequests, s.LoanRequests)
	copy(c.LoanRepayments, s.LoanRepayments)
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		c.CurrentUser = &u
	}
	return c
}

// FindUser returns the user with the given id, or nil
func (s *AppState) FindUser(id string) *User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// FindUserByEmail returns the user with the given email, or nil
func (s *AppState) FindUserByEmail(email string) *User {
	for i := range s.Users {
		if s.Users[i].Email == email {
			return &s.Users[i]
		}
	}
	return nil
}

// FindSavings returns the savings request with the given id, or nil
func (s *AppState) FindSavings(id string) *SavingsRequest {
	for i := range s.SavingsRequests {
		if s.SavingsRequests[i].ID == id {
			return &s.SavingsRequests[i]
		}
	}
	return nil
}

// FindLoan returns the loan request with the given id, or nil
func (s *AppState) FindLoan(id string) *LoanRequest {
	for i := range s.LoanRequests {
		if s.LoanRequests[i].ID == id {
			return &s.LoanRequests[i]
		}
	}
	return nil
}

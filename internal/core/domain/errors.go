package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// User errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// Request lifecycle errors
var (
	ErrSavingsNotFound = errors.New("savings request not found")
	ErrLoanNotFound    = errors.New("loan request not found")
	ErrRequestDecided  = errors.New("request already decided")
	ErrNotBorrower     = errors.New("repayment allowed for the borrowing member only")
)

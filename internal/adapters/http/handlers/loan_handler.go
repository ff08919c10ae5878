package handlers

import (
	"context"
	"errors"

	"esavers-backend/internal/core/domain"
	"esavers-backend/internal/core/services"
	"esavers-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan request and repayment endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// SubmitLoanRequest represents the submit request body. The interest
// rate is never accepted from the client.
type SubmitLoanRequest struct {
	Amount          float64 `json:"amount"`
	Purpose         string  `json:"purpose"`
	RepaymentPeriod int     `json:"repaymentPeriod"`
}

// RepaymentRequest represents the repayment request body
type RepaymentRequest struct {
	Amount float64 `json:"amount"`
}

// List returns the caller's loan requests; admins see all
func (h *LoanHandler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	var loans []domain.LoanRequest
	if role == string(domain.RoleAdmin) {
		loans = h.loanService.ListAll(c.Context())
	} else {
		loans = h.loanService.ListForUser(c.Context(), userID)
	}

	return response.Success(c, "Loan requests retrieved successfully", fiber.Map{
		"loans": loans,
	})
}

// ListPending returns all pending loan requests for review
func (h *LoanHandler) ListPending(c *fiber.Ctx) error {
	loans := h.loanService.ListPending(c.Context())
	return response.Success(c, "Pending loan requests retrieved successfully", fiber.Map{
		"loans": loans,
	})
}

// Submit creates a new loan request for the caller
func (h *LoanHandler) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SubmitLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be positive")
	}
	if req.Purpose == "" {
		return response.BadRequest(c, "Purpose is required")
	}
	if req.RepaymentPeriod <= 0 {
		return response.BadRequest(c, "Repayment period must be a positive number of months")
	}

	loan, err := h.loanService.Submit(c.Context(), userID, &services.SubmitLoanInput{
		Amount:          req.Amount,
		Purpose:         req.Purpose,
		RepaymentPeriod: req.RepaymentPeriod,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid loan request")
		default:
			return response.InternalServerError(c, "Failed to submit loan request")
		}
	}

	return response.Created(c, "Loan request submitted successfully", fiber.Map{
		"loan": loan,
	})
}

// Approve approves a pending loan request
func (h *LoanHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, h.loanService.Approve, "Loan request approved")
}

// Reject rejects a pending loan request
func (h *LoanHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, h.loanService.Reject, "Loan request rejected")
}

func (h *LoanHandler) decide(c *fiber.Ctx, fn func(ctx context.Context, id string) (*domain.LoanRequest, error), message string) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Loan id is required")
	}

	updated, err := fn(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan request not found")
		case errors.Is(err, domain.ErrRequestDecided):
			return response.Conflict(c, "Loan request already decided")
		default:
			return response.InternalServerError(c, "Failed to update loan request")
		}
	}

	return response.Success(c, message, fiber.Map{
		"loan": updated,
	})
}

// Balance returns the repayment position of a loan
func (h *LoanHandler) Balance(c *fiber.Ctx) error {
	balance, err := h.loanService.Balance(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan request not found")
		}
		return response.InternalServerError(c, "Failed to compute loan balance")
	}

	return response.Success(c, "Loan balance retrieved successfully", fiber.Map{
		"balance": balance,
	})
}

// AddRepayment records a repayment by the borrowing member
func (h *LoanHandler) AddRepayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RepaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be positive")
	}

	rep, err := h.loanService.AddRepayment(c.Context(), userID, c.Params("id"), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan request not found")
		case errors.Is(err, domain.ErrNotBorrower):
			return response.Forbidden(c, "Only the borrowing member may record repayments")
		default:
			return response.InternalServerError(c, "Failed to record repayment")
		}
	}

	return response.Created(c, "Repayment recorded successfully", fiber.Map{
		"repayment": rep,
	})
}

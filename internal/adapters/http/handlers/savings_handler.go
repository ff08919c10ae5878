package handlers

import (
	"context"
	"errors"

	"esavers-backend/internal/core/domain"
	"esavers-backend/internal/core/services"
	"esavers-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SavingsHandler handles savings request endpoints
type SavingsHandler struct {
	savingsService *services.SavingsService
}

// NewSavingsHandler creates a new savings handler
func NewSavingsHandler(savingsService *services.SavingsService) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService}
}

// SubmitSavingsRequest represents the submit request body
type SubmitSavingsRequest struct {
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

// List returns the caller's savings requests; admins see all
func (h *SavingsHandler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	var requests []domain.SavingsRequest
	if role == string(domain.RoleAdmin) {
		requests = h.savingsService.ListAll(c.Context())
	} else {
		requests = h.savingsService.ListForUser(c.Context(), userID)
	}

	return response.Success(c, "Savings requests retrieved successfully", fiber.Map{
		"requests": requests,
	})
}

// ListPending returns all pending savings requests for review
func (h *SavingsHandler) ListPending(c *fiber.Ctx) error {
	requests := h.savingsService.ListPending(c.Context())
	return response.Success(c, "Pending savings requests retrieved successfully", fiber.Map{
		"requests": requests,
	})
}

// Submit creates a new savings request for the caller
func (h *SavingsHandler) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SubmitSavingsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Amount <= 0 {
		return response.BadRequest(c, "Amount must be positive")
	}

	created, err := h.savingsService.Submit(c.Context(), userID, &services.SubmitSavingsInput{
		Amount: req.Amount,
		Notes:  req.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to submit savings request")
	}

	return response.Created(c, "Savings request submitted successfully", fiber.Map{
		"request": created,
	})
}

// Approve approves a pending savings request
func (h *SavingsHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, h.savingsService.Approve, "Savings request approved")
}

// Reject rejects a pending savings request
func (h *SavingsHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, h.savingsService.Reject, "Savings request rejected")
}

func (h *SavingsHandler) decide(c *fiber.Ctx, fn func(ctx context.Context, id string) (*domain.SavingsRequest, error), message string) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Request id is required")
	}

	updated, err := fn(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSavingsNotFound):
			return response.NotFound(c, "Savings request not found")
		case errors.Is(err, domain.ErrRequestDecided):
			return response.Conflict(c, "Savings request already decided")
		default:
			return response.InternalServerError(c, "Failed to update savings request")
		}
	}

	return response.Success(c, message, fiber.Map{
		"request": updated,
	})
}

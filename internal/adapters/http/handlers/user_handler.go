package handlers

import (
	"errors"

	"esavers-backend/internal/core/domain"
	"esavers-backend/internal/core/services"
	"esavers-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles member management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// AddMemberRequest represents the add member request body
type AddMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsers returns all users with their ledger stats
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	members := h.userService.List(c.Context())
	return response.Success(c, "Members retrieved successfully", fiber.Map{
		"members": members,
	})
}

// AddMember creates a new member account
func (h *UserHandler) AddMember(c *fiber.Ctx) error {
	var req AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	member, err := h.userService.AddMember(c.Context(), &services.AddMemberInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Name and email are required")
		default:
			return response.InternalServerError(c, "Failed to add member")
		}
	}

	return response.Created(c, "Member added successfully", fiber.Map{
		"member": member,
	})
}

// ToggleDarkMode flips the display preference
func (h *UserHandler) ToggleDarkMode(c *fiber.Ctx) error {
	dark := h.userService.ToggleDarkMode(c.Context())
	return response.Success(c, "Preference updated", fiber.Map{
		"dark_mode": dark,
	})
}

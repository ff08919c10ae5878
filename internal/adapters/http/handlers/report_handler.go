package handlers

import (
	"time"

	"esavers-backend/internal/core/domain"
	"esavers-backend/internal/core/services"
	"esavers-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles dashboard and report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns group totals and role-dependent extras
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	data := h.reportService.Dashboard(c.Context(), userID)
	return response.Success(c, "Dashboard retrieved successfully", data)
}

// Period returns aggregates over an inclusive date range. The start
// and end query params are optional yyyy-mm-dd dates; absent values
// default to the epoch and now.
func (h *ReportHandler) Period(c *fiber.Ctx) error {
	var start, end time.Time
	var err error

	if raw := c.Query("start"); raw != "" {
		start, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "Invalid start date, expected yyyy-mm-dd")
		}
	}
	if raw := c.Query("end"); raw != "" {
		end, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "Invalid end date, expected yyyy-mm-dd")
		}
		// make the end date inclusive of the whole day
		end = end.Add(24*time.Hour - time.Nanosecond)
	}

	summary := h.reportService.Period(c.Context(), start, end)
	return response.Success(c, "Period report retrieved successfully", summary)
}

// Members returns every member's summary for the admin reports screen
func (h *ReportHandler) Members(c *fiber.Ctx) error {
	reports := h.reportService.MemberReports(c.Context())
	return response.Success(c, "Member reports retrieved successfully", fiber.Map{
		"members": reports,
	})
}

// Transactions returns the merged date-descending feed. Members see
// their own records; admins see everything.
func (h *ReportHandler) Transactions(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	filter := userID
	if role == string(domain.RoleAdmin) {
		filter = ""
	}

	feed := h.reportService.Transactions(c.Context(), filter)
	return response.Success(c, "Transactions retrieved successfully", fiber.Map{
		"transactions": feed,
	})
}

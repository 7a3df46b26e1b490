package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Ru28/complaint-management-system/internal/api/dto"
	"github.com/Ru28/complaint-management-system/internal/auth"
	"github.com/Ru28/complaint-management-system/internal/service"
	apperrors "github.com/Ru28/complaint-management-system/pkg/util"
)

// ComplaintsHandler manages end-user complaint endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// RaiseComplaint handles POST /complaint/raiseComplaint.
func (h *ComplaintsHandler) RaiseComplaint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.RaiseComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.service.Raise(c.Context(), principal.UserID, service.RaiseComplaintInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Detail:      req.ComplaintDetail,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// MyComplaints handles GET /complaint/myComplaint. An empty list is a
// normal 200 response.
func (h *ComplaintsHandler) MyComplaints(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	complaints, err := h.service.ListForUser(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		items = append(items, dto.NewComplaintResponse(&complaints[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

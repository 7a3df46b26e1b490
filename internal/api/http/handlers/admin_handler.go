package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ru28/complaint-management-system/internal/api/dto"
	"github.com/Ru28/complaint-management-system/internal/auth"
	"github.com/Ru28/complaint-management-system/internal/service"
	apperrors "github.com/Ru28/complaint-management-system/pkg/util"
)

// AdminHandler exposes admin-only complaint and user management endpoints.
type AdminHandler struct {
	complaints *service.ComplaintService
	accounts   *service.AccountService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(complaintService *service.ComplaintService, accountService *service.AccountService) *AdminHandler {
	return &AdminHandler{complaints: complaintService, accounts: accountService}
}

// AllComplaints handles GET /admin/all-complaints.
func (h *AdminHandler) AllComplaints(c *fiber.Ctx) error {
	items, err := h.complaints.ListAll(c.Context())
	if err != nil {
		return err
	}
	result := make([]dto.ComplaintWithResolutionResponse, 0, len(items))
	for _, item := range items {
		result = append(result, dto.NewComplaintWithResolutionResponse(item))
	}
	return c.JSON(fiber.Map{"data": result})
}

// ResolveComplaint handles POST /admin/resolve-complaint. The complaint
// id arrives as a query parameter, the response text in the body.
func (h *AdminHandler) ResolveComplaint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	complaintID := c.Query("complaintId")
	var req dto.ResolveComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, resolution, err := h.complaints.Resolve(c.Context(), principal.UserID, complaintID, req.Response)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"complaint":  dto.NewComplaintResponse(complaint),
			"resolution": dto.NewResolutionResponse(resolution),
		},
	})
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.accounts.ListUsers(c.Context())
	if err != nil {
		return err
	}
	result := make([]dto.ProfileResponse, 0, len(users))
	for i := range users {
		result = append(result, dto.NewProfileResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": result})
}

// UpdateUserRole handles PATCH /admin/users/:id/role.
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Role == "" {
		return apperrors.NewValidationError("role required", nil)
	}

	user, err := h.accounts.UpdateUserRole(c.Context(), principal.UserID, c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPublicUser(user)})
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ServicesHandler manages service endpoints, including the assignment and
// completion transitions.
type ServicesHandler struct {
	services   *service.ServiceService
	assignment *service.AssignmentService
}

// NewServicesHandler constructs handler.
func NewServicesHandler(serviceService *service.ServiceService, assignmentService *service.AssignmentService) *ServicesHandler {
	return &ServicesHandler{services: serviceService, assignment: assignmentService}
}

// Create POST /services.
func (h *ServicesHandler) Create(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	var req dto.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	created, err := h.services.Create(c.Context(), principalUser(principal), service.ServiceCreateInput{
		RequesterName: req.RequesterName,
		TicketID:      req.TicketID,
		ServiceArea:   req.ServiceArea,
		SupportID:     req.SupportID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": dto.NewServiceResponse(created)})
}

// Update PUT /services.
func (h *ServicesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.ID == "" {
		return apperrors.NewValidationError("Validation error", map[string]any{"id": "required"})
	}

	updated, err := h.services.Update(c.Context(), req.ID, service.ServiceCreateInput{
		RequesterName: req.RequesterName,
		TicketID:      req.TicketID,
		ServiceArea:   req.ServiceArea,
		SupportID:     req.SupportID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewServiceResponse(updated)})
}

// List GET /services, optionally filtered by support_id or ticket_id.
func (h *ServicesHandler) List(c *fiber.Ctx) error {
	if supportID := c.Query("support_id"); supportID != "" {
		services, err := h.services.FindBySupportID(c.Context(), supportID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": dto.NewServiceResponses(services)})
	}
	if ticketID := c.Query("ticket_id"); ticketID != "" {
		services, err := h.services.FindByTicketID(c.Context(), ticketID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": dto.NewServiceResponses(services)})
	}

	services, err := h.services.FindAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewServiceResponses(services)})
}

// Get GET /services/:id.
func (h *ServicesHandler) Get(c *fiber.Ctx) error {
	found, err := h.services.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewServiceResponse(found)})
}

// Delete DELETE /services/:id.
func (h *ServicesHandler) Delete(c *fiber.Ctx) error {
	if err := h.services.SoftDelete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Service deleted"})
}

// Restore POST /services/:id/restore.
func (h *ServicesHandler) Restore(c *fiber.Ctx) error {
	if err := h.services.Restore(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Service restored successfully"})
}

// Associate PUT /services/:id/associate.
func (h *ServicesHandler) Associate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	associated, err := h.assignment.Associate(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewServiceResponse(associated)})
}

// Complete PUT /services/:id/complete.
func (h *ServicesHandler) Complete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CompleteServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Status == nil {
		return apperrors.NewValidationError("Validation error", map[string]any{"status": "required"})
	}

	completed, err := h.assignment.Complete(c.Context(), principal.User, c.Params("id"), *req.Status, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewServiceResponse(completed)})
}

// ListAreas GET /services/areas. Empty projections report not found, matching
// the API contract for the listing endpoints.
func (h *ServicesHandler) ListAreas(c *fiber.Ctx) error {
	areas, err := h.services.ListAreas(c.Context())
	if err != nil {
		return err
	}
	if len(areas) == 0 {
		return apperrors.NewNotFound("services areas", nil)
	}
	return c.JSON(fiber.Map{"success": true, "data": areas})
}

// ListTypes GET /services/types.
func (h *ServicesHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.services.ListServiceTypes(c.Context())
	if err != nil {
		return err
	}
	if len(types) == 0 {
		return apperrors.NewNotFound("services types", nil)
	}
	return c.JSON(fiber.Map{"success": true, "data": types})
}

// ListUnassigned GET /services/unassigned.
func (h *ServicesHandler) ListUnassigned(c *fiber.Ctx) error {
	services, err := h.services.ListUnassigned(c.Context())
	if err != nil {
		return err
	}
	if len(services) == 0 {
		return apperrors.NewNotFound("services", nil)
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewServiceResponses(services)})
}

// ListIncomplete GET /services/incomplete.
func (h *ServicesHandler) ListIncomplete(c *fiber.Ctx) error {
	return h.listByStatus(c, false, "incomplete services")
}

// ListCompleted GET /services/completed.
func (h *ServicesHandler) ListCompleted(c *fiber.Ctx) error {
	return h.listByStatus(c, true, "completed services")
}

func (h *ServicesHandler) listByStatus(c *fiber.Ctx, complete bool, resource string) error {
	services, err := h.services.ListByStatus(c.Context(), complete)
	if err != nil {
		return err
	}
	if len(services) == 0 {
		return apperrors.NewNotFound(resource, nil)
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewServiceResponses(services)})
}

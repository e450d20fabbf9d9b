package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// SupportHandler exposes support analyst listings.
type SupportHandler struct {
	auth *service.AuthService
}

// NewSupportHandler constructs handler.
func NewSupportHandler(authService *service.AuthService) *SupportHandler {
	return &SupportHandler{auth: authService}
}

// List GET /support.
func (h *SupportHandler) List(c *fiber.Ctx) error {
	analysts, err := h.auth.FindAllSupport(c.Context())
	if err != nil {
		return err
	}
	if len(analysts) == 0 {
		return apperrors.NewNotFound("support users", nil)
	}
	return c.JSON(fiber.Map{"data": analystResponses(analysts)})
}

// ListAvailable GET /support/available.
func (h *SupportHandler) ListAvailable(c *fiber.Ctx) error {
	analysts, err := h.auth.FindAvailableSupport(c.Context())
	if err != nil {
		return err
	}
	if len(analysts) == 0 {
		return apperrors.NewNotFound("available support analysts", nil)
	}
	return c.JSON(fiber.Map{"data": analystResponses(analysts)})
}

func analystResponses(analysts []service.SupportAnalyst) []dto.SupportAnalystResponse {
	items := make([]dto.SupportAnalystResponse, 0, len(analysts))
	for _, analyst := range analysts {
		areas := make([]string, 0, len(analyst.Areas))
		for _, area := range analyst.Areas {
			areas = append(areas, area.ServiceArea)
		}
		items = append(items, dto.SupportAnalystResponse{
			ID:       analyst.User.ID,
			Name:     analyst.User.Name,
			Email:    analyst.User.Email,
			Areas:    areas,
			Services: dto.NewServiceResponses(analyst.Services),
		})
	}
	return items
}

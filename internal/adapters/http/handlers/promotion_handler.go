package handlers

import (
	"errors"

	"feinkost-backend/internal/adapters/http/middleware"
	"feinkost-backend/internal/core/services"
	"feinkost-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PromotionHandler handles wheel-of-fortune endpoints
type PromotionHandler struct {
	promotionService *services.PromotionService
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionService *services.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// Status returns the wheel view for the current customer
// @Summary Wheel status
// @Description Return the wheel segments and whether the caller may spin
// @Tags Promotion
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /wheel/status [get]
func (h *PromotionHandler) Status(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	status, err := h.promotionService.Status(c.Context(), sess.UserID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load wheel")
	}

	return response.Success(c, "Wheel status", status)
}

// Spin handles a spin attempt
// @Summary Spin the wheel
// @Description Draw a random wheel segment for the current customer
// @Tags Promotion
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /wheel/spin [post]
func (h *PromotionHandler) Spin(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.promotionService.Spin(c.Context(), sess.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotCustomer):
			return response.Forbidden(c, "Only customers can spin the wheel")
		case errors.Is(err, services.ErrPrizeOutstanding):
			return response.UnprocessableEntity(c, "Bitte lösen Sie zuerst Ihren Gewinn ein")
		case errors.Is(err, services.ErrPromotionDisabled),
			errors.Is(err, services.ErrSpinTooSoon),
			errors.Is(err, services.ErrTooFewSegments):
			return response.UnprocessableEntity(c, "Das Glücksrad ist gerade nicht verfügbar")
		default:
			return response.InternalServerError(c, "Failed to spin the wheel")
		}
	}

	return response.Success(c, "Spin result", result)
}

// GetConfig returns the wheel configuration (admin)
// @Summary Get wheel configuration
// @Tags Promotion
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/promotion [get]
func (h *PromotionHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.promotionService.GetConfig(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load promotion config")
	}
	return response.Success(c, "Promotion config", cfg)
}

// UpdateConfig replaces the wheel configuration (admin)
// @Summary Update wheel configuration
// @Tags Promotion
// @Accept json
// @Produce json
// @Param body body services.UpdateConfigInput true "Wheel configuration"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/promotion [put]
func (h *PromotionHandler) UpdateConfig(c *fiber.Ctx) error {
	var input services.UpdateConfigInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	cfg, err := h.promotionService.UpdateConfig(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSchedule):
			return response.BadRequest(c, "Schedule must be daily, weekly or monthly")
		case errors.Is(err, services.ErrTooFewSegments):
			return response.BadRequest(c, "Wheel needs at least two segments")
		case errors.Is(err, services.ErrInvalidSegment):
			return response.BadRequest(c, "Each segment needs a text and a win/lose type")
		default:
			return response.InternalServerError(c, "Failed to update promotion config")
		}
	}

	return response.Success(c, "Promotion config updated", cfg)
}

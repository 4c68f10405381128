package handlers

import (
	"errors"

	"feinkost-backend/internal/core/services"
	"feinkost-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MarketingHandler handles announcement HTTP requests
type MarketingHandler struct {
	marketingService *services.MarketingService
}

// NewMarketingHandler creates a new marketing handler
func NewMarketingHandler(marketingService *services.MarketingService) *MarketingHandler {
	return &MarketingHandler{marketingService: marketingService}
}

// ListVisible lists the announcements currently shown to customers
// @Summary Visible announcements
// @Tags Marketing
// @Produce json
// @Success 200 {object} response.Response
// @Router /announcements [get]
func (h *MarketingHandler) ListVisible(c *fiber.Ctx) error {
	announcements, err := h.marketingService.ListVisible(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load announcements")
	}
	return response.Success(c, "Announcements retrieved", fiber.Map{"announcements": announcements})
}

// ListAll lists all announcements for the admin
// @Summary List announcements
// @Tags Marketing
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/announcements [get]
func (h *MarketingHandler) ListAll(c *fiber.Ctx) error {
	announcements, err := h.marketingService.ListAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load announcements")
	}
	return response.Success(c, "Announcements retrieved", fiber.Map{"announcements": announcements})
}

// Create creates an announcement
// @Summary Create announcement
// @Tags Marketing
// @Accept json
// @Produce json
// @Param body body services.AnnouncementInput true "Announcement"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/announcements [post]
func (h *MarketingHandler) Create(c *fiber.Ctx) error {
	var input services.AnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	announcement, err := h.marketingService.Create(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrEmptyTitle) {
			return response.BadRequest(c, "Title is required")
		}
		return response.InternalServerError(c, "Failed to create announcement")
	}

	return response.Created(c, "Announcement created", fiber.Map{"announcement": announcement})
}

// Update updates an announcement
// @Summary Update announcement
// @Tags Marketing
// @Accept json
// @Produce json
// @Param id path int true "Announcement ID"
// @Param body body services.AnnouncementInput true "Announcement"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/announcements/{id} [put]
func (h *MarketingHandler) Update(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}

	var input services.AnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	announcement, err := h.marketingService.Update(c.Context(), id, &input)
	if err != nil {
		if errors.Is(err, services.ErrAnnouncementNotFound) {
			return response.NotFound(c, "Announcement not found")
		}
		return response.InternalServerError(c, "Failed to update announcement")
	}

	return response.Success(c, "Announcement updated", fiber.Map{"announcement": announcement})
}

// Delete deletes an announcement
// @Summary Delete announcement
// @Tags Marketing
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/announcements/{id} [delete]
func (h *MarketingHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}

	if err := h.marketingService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrAnnouncementNotFound) {
			return response.NotFound(c, "Announcement not found")
		}
		return response.InternalServerError(c, "Failed to delete announcement")
	}

	return response.Success(c, "Announcement deleted", nil)
}

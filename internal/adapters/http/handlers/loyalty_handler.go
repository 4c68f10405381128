package handlers

import (
	"errors"

	"feinkost-backend/internal/adapters/http/middleware"
	"feinkost-backend/internal/core/services"
	"feinkost-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoyaltyHandler handles loyalty card endpoints
type LoyaltyHandler struct {
	loyaltyService *services.LoyaltyService
}

// NewLoyaltyHandler creates a new loyalty handler
func NewLoyaltyHandler(loyaltyService *services.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyService: loyaltyService}
}

// ScanRequest represents a staff scan action on a customer card
type ScanRequest struct {
	QRCode string `json:"qr_code"`
	Count  int    `json:"count"`
}

// MyCard returns the current customer's loyalty card
// @Summary My loyalty card
// @Description Return QR code, stamp count, prize and recent history
// @Tags Loyalty
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /loyalty/card [get]
func (h *LoyaltyHandler) MyCard(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	card, err := h.loyaltyService.GetCard(c.Context(), sess.UserID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load loyalty card")
	}

	return response.Success(c, "Loyalty card", card)
}

// AwardStamps handles a staff stamp award
// @Summary Award stamps
// @Description Add stamps to a scanned customer card
// @Tags Loyalty
// @Accept json
// @Produce json
// @Param body body ScanRequest true "Scanned card and stamp count"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employee/stamps/award [post]
func (h *LoyaltyHandler) AwardStamps(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	req, ok := parseScanRequest(c)
	if !ok {
		return nil
	}

	user, err := h.loyaltyService.AwardStamps(c.Context(), sess.UserID, req.QRCode, req.Count)
	if err != nil {
		return h.scanError(c, err)
	}

	return response.Success(c, "Stamps awarded", fiber.Map{"user": user})
}

// RedeemStamps handles a staff stamp redemption
// @Summary Redeem stamps
// @Description Remove stamps from a scanned customer card
// @Tags Loyalty
// @Accept json
// @Produce json
// @Param body body ScanRequest true "Scanned card and stamp count"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /employee/stamps/redeem [post]
func (h *LoyaltyHandler) RedeemStamps(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	req, ok := parseScanRequest(c)
	if !ok {
		return nil
	}

	user, err := h.loyaltyService.RedeemStamps(c.Context(), sess.UserID, req.QRCode, req.Count)
	if err != nil {
		return h.scanError(c, err)
	}

	return response.Success(c, "Stamps redeemed", fiber.Map{"user": user})
}

// RedeemPrize clears a customer's outstanding wheel prize
// @Summary Redeem prize
// @Description Hand out and clear the active wheel prize of a scanned card
// @Tags Loyalty
// @Accept json
// @Produce json
// @Param body body ScanRequest true "Scanned card"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /employee/prize/redeem [post]
func (h *LoyaltyHandler) RedeemPrize(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.QRCode == "" {
		return response.BadRequest(c, "QR code is required")
	}

	user, err := h.loyaltyService.RedeemPrize(c.Context(), sess.UserID, req.QRCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCardNotFound), errors.Is(err, services.ErrNotACustomer):
			return response.NotFound(c, "Loyalty card not found")
		case errors.Is(err, services.ErrNoActivePrize):
			return response.UnprocessableEntity(c, "No active prize on this card")
		default:
			return response.InternalServerError(c, "Failed to redeem prize")
		}
	}

	return response.Success(c, "Prize redeemed", fiber.Map{"user": user})
}

// parseScanRequest parses and validates a scan body. Count defaults
// to one stamp. On failure the 400 response has already been written
// and ok is false.
func parseScanRequest(c *fiber.Ctx) (req ScanRequest, ok bool) {
	if err := c.BodyParser(&req); err != nil {
		_ = response.BadRequest(c, "Invalid request body")
		return req, false
	}
	if req.QRCode == "" {
		_ = response.BadRequest(c, "QR code is required")
		return req, false
	}
	if req.Count == 0 {
		req.Count = 1
	}
	return req, true
}

// scanError maps loyalty errors of the scan endpoints to responses
func (h *LoyaltyHandler) scanError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCardNotFound), errors.Is(err, services.ErrNotACustomer):
		return response.NotFound(c, "Loyalty card not found")
	case errors.Is(err, services.ErrInvalidStamps):
		return response.BadRequest(c, "Stamp count must be positive")
	case errors.Is(err, services.ErrNotEnoughStamps):
		return response.UnprocessableEntity(c, "Not enough stamps on this card")
	default:
		return response.InternalServerError(c, "Failed to update loyalty card")
	}
}

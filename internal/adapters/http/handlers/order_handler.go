package handlers

import (
	"errors"

	"feinkost-backend/internal/adapters/http/middleware"
	"feinkost-backend/internal/core/services"
	"feinkost-backend/internal/pkg/pagination"
	"feinkost-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreatePreorder places a preorder from the catalog
// @Summary Create preorder
// @Description Place a pickup preorder with catalog items
// @Tags Orders
// @Accept json
// @Produce json
// @Param body body services.PreorderInput true "Order items"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /orders/preorder [post]
func (h *OrderHandler) CreatePreorder(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.PreorderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	order, err := h.orderService.CreatePreorder(c.Context(), sess.UserID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder):
			return response.BadRequest(c, "Order has no items")
		case errors.Is(err, services.ErrInvalidQuantity):
			return response.BadRequest(c, "Item quantity must be positive")
		case errors.Is(err, services.ErrUnknownProduct):
			return response.UnprocessableEntity(c, "Order contains unavailable products")
		default:
			return response.InternalServerError(c, "Failed to create order")
		}
	}

	return response.Created(c, "Bestellung eingegangen", fiber.Map{"order": order})
}

// CreateConciergeOrder places a free-text shopping-list order
// @Summary Create concierge order
// @Description Place a free-text shopping list for the shop to assemble
// @Tags Orders
// @Accept json
// @Produce json
// @Param body body services.ConciergeInput true "Shopping list"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /orders/concierge [post]
func (h *OrderHandler) CreateConciergeOrder(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ConciergeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	order, err := h.orderService.CreateConciergeOrder(c.Context(), sess.UserID, &input)
	if err != nil {
		if errors.Is(err, services.ErrEmptyShoppingList) {
			return response.BadRequest(c, "Shopping list text is required")
		}
		return response.InternalServerError(c, "Failed to create order")
	}

	return response.Created(c, "Bestellung eingegangen", fiber.Map{"order": order})
}

// ListMyOrders lists the caller's own orders
// @Summary My orders
// @Tags Orders
// @Produce json
// @Success 200 {object} response.Response
// @Router /orders/my [get]
func (h *OrderHandler) ListMyOrders(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	orders, err := h.orderService.ListMyOrders(c.Context(), sess.UserID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load orders")
	}

	return response.Success(c, "Orders retrieved", fiber.Map{"orders": orders})
}

// ListOrders lists all orders for staff
// @Summary List orders
// @Description List orders for staff, optionally filtered by status
// @Tags Orders
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /employee/orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status")

	orders, total, err := h.orderService.ListOrders(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load orders")
	}

	return response.Success(c, "Orders retrieved", pagination.Response{
		Data: orders,
		Meta: pagination.GetMeta(params, total),
	})
}

// UpdateStatusRequest represents an order status change
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus advances an order along its status machine
// @Summary Update order status
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /employee/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	order, err := h.orderService.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return response.NotFound(c, "Order not found")
		case errors.Is(err, services.ErrInvalidStatusChange):
			return response.UnprocessableEntity(c, "Invalid status change")
		default:
			return response.InternalServerError(c, "Failed to update order")
		}
	}

	return response.Success(c, "Order updated", fiber.Map{"order": order})
}

package services

import (
	"context"
	"errors"
	"log"
	"time"

	"feinkost-backend/internal/adapters/persistence/models"
	"feinkost-backend/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Order errors
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyOrder          = errors.New("order has no items")
	ErrEmptyShoppingList   = errors.New("shopping list text is required")
	ErrUnknownProduct      = errors.New("order contains unknown or inactive products")
	ErrInvalidQuantity     = errors.New("item quantity must be positive")
	ErrInvalidStatusChange = errors.New("invalid order status change")
)

// statusTransitions holds the allowed order status machine
var statusTransitions = map[string][]string{
	models.OrderStatusNew:       {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusCompleted},
}

// CanTransition reports whether an order may move from one status to
// another
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// OrderService handles preorders and concierge orders
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// PreorderItemInput represents one requested order line
type PreorderItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// PreorderInput represents a preorder request
type PreorderInput struct {
	Items      []PreorderItemInput `json:"items"`
	Note       string              `json:"note"`
	PickupDate *time.Time          `json:"pickup_date"`
}

// CreatePreorder creates a preorder. Prices are resolved server-side
// from the catalog, never taken from the client.
func (s *OrderService) CreatePreorder(ctx context.Context, userID string, input *PreorderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	ids := make([]uint, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var total float64
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, ErrUnknownProduct
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}

	order := &models.Order{
		UserID:     userID,
		Type:       models.OrderTypePreorder,
		Status:     models.OrderStatusNew,
		Note:       input.Note,
		PickupDate: input.PickupDate,
		Total:      total,
		Items:      items,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("✅ Preorder #%d created by %s (%.2f)", order.ID, userID, total)
	return order, nil
}

// ConciergeInput represents a free-text shopping-list order
type ConciergeInput struct {
	Text       string     `json:"text"`
	PickupDate *time.Time `json:"pickup_date"`
}

// CreateConciergeOrder creates a free-text shopping-list order
func (s *OrderService) CreateConciergeOrder(ctx context.Context, userID string, input *ConciergeInput) (*models.Order, error) {
	if input.Text == "" {
		return nil, ErrEmptyShoppingList
	}

	order := &models.Order{
		UserID:     userID,
		Type:       models.OrderTypeConcierge,
		Status:     models.OrderStatusNew,
		Note:       input.Text,
		PickupDate: input.PickupDate,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Printf("✅ Concierge order #%d created by %s", order.ID, userID)
	return order, nil
}

// ListMyOrders lists the caller's orders, newest first
func (s *OrderService) ListMyOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// ListOrders lists all orders for staff, optionally filtered by status
func (s *OrderService) ListOrders(ctx context.Context, status string, offset, limit int) ([]*models.Order, int64, error) {
	return s.orderRepo.List(ctx, status, offset, limit)
}

// UpdateStatus advances an order along the status machine
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !CanTransition(order.Status, status) {
		return nil, ErrInvalidStatusChange
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order.Status = status

	log.Printf("✅ Order #%d: %s", order.ID, status)
	return order, nil
}

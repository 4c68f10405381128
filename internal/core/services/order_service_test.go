package services

import (
	"context"
	"testing"

	"feinkost-backend/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOrderRepo struct {
	orders map[uint]*models.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*models.Order), nextID: 1}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	order.ID = r.nextID
	r.nextID++
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uint) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]*models.Order, error) {
	var matched []*models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

func (r *fakeOrderRepo) List(_ context.Context, status string, offset, limit int) ([]*models.Order, int64, error) {
	var matched []*models.Order
	for _, order := range r.orders {
		if status == "" || order.Status == status {
			matched = append(matched, order)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	order, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

type fakeProductRepo struct {
	products map[uint]*models.Product
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uint]*models.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uint) (*models.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (r *fakeProductRepo) GetActiveByIDs(_ context.Context, ids []uint) ([]*models.Product, error) {
	var matched []*models.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok && product.IsActive {
			matched = append(matched, product)
		}
	}
	return matched, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *models.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, activeOnly bool) ([]*models.Product, error) {
	var matched []*models.Product
	for _, product := range r.products {
		if !activeOnly || product.IsActive {
			matched = append(matched, product)
		}
	}
	return matched, nil
}

func newTestOrderService(products ...*models.Product) (*OrderService, *fakeOrderRepo) {
	orderRepo := newFakeOrderRepo()
	return NewOrderService(orderRepo, newFakeProductRepo(products...)), orderRepo
}

func testProducts() []*models.Product {
	return []*models.Product{
		{ID: 1, CategoryID: 1, Name: "Bergkäse", Price: 6.90, IsActive: true},
		{ID: 2, CategoryID: 1, Name: "Olivenöl", Price: 12.50, IsActive: true},
		{ID: 3, CategoryID: 2, Name: "Altes Sortiment", Price: 3.00, IsActive: false},
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusNew, models.OrderStatusConfirmed, true},
		{models.OrderStatusNew, models.OrderStatusCancelled, true},
		{models.OrderStatusNew, models.OrderStatusReady, false},
		{models.OrderStatusNew, models.OrderStatusCompleted, false},
		{models.OrderStatusConfirmed, models.OrderStatusReady, true},
		{models.OrderStatusConfirmed, models.OrderStatusCancelled, true},
		{models.OrderStatusConfirmed, models.OrderStatusCompleted, false},
		{models.OrderStatusReady, models.OrderStatusCompleted, true},
		{models.OrderStatusReady, models.OrderStatusCancelled, false},
		{models.OrderStatusCompleted, models.OrderStatusNew, false},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCreatePreorderPricesServerSide(t *testing.T) {
	svc, _ := newTestOrderService(testProducts()...)

	order, err := svc.CreatePreorder(context.Background(), "c1", &PreorderInput{
		Items: []PreorderItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		Note: "Bitte dünn aufschneiden",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderTypePreorder, order.Type)
	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.InDelta(t, 26.30, order.Total, 0.001)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 6.90, order.Items[0].UnitPrice, 0.001)
}

func TestCreatePreorderRejectsEmptyAndInvalid(t *testing.T) {
	svc, orderRepo := newTestOrderService(testProducts()...)

	_, err := svc.CreatePreorder(context.Background(), "c1", &PreorderInput{})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.CreatePreorder(context.Background(), "c1", &PreorderInput{
		Items: []PreorderItemInput{{ProductID: 1, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	assert.Empty(t, orderRepo.orders)
}

func TestCreatePreorderRejectsInactiveProduct(t *testing.T) {
	svc, _ := newTestOrderService(testProducts()...)

	_, err := svc.CreatePreorder(context.Background(), "c1", &PreorderInput{
		Items: []PreorderItemInput{{ProductID: 3, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestCreateConciergeOrder(t *testing.T) {
	svc, _ := newTestOrderService()

	order, err := svc.CreateConciergeOrder(context.Background(), "c1", &ConciergeInput{
		Text: "200g Serrano, 1 Flasche Rioja, etwas Manchego",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderTypeConcierge, order.Type)
	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.Zero(t, order.Total)

	_, err = svc.CreateConciergeOrder(context.Background(), "c1", &ConciergeInput{})
	assert.ErrorIs(t, err, ErrEmptyShoppingList)
}

func TestUpdateStatusFollowsMachine(t *testing.T) {
	svc, _ := newTestOrderService(testProducts()...)

	order, err := svc.CreatePreorder(context.Background(), "c1", &PreorderInput{
		Items: []PreorderItemInput{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	for _, status := range []string{
		models.OrderStatusConfirmed,
		models.OrderStatusReady,
		models.OrderStatusCompleted,
	} {
		updated, err := svc.UpdateStatus(context.Background(), order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	// Completed is terminal
	_, err = svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _ := newTestOrderService()

	_, err := svc.UpdateStatus(context.Background(), 99, models.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

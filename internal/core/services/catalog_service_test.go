package services

import (
	"context"
	"sort"
	"testing"

	"feinkost-backend/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCategoryRepo struct {
	categories map[uint]*models.Category
	products   *fakeProductRepo
	nextID     uint
}

func newFakeCategoryRepo(products *fakeProductRepo, categories ...*models.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{
		categories: make(map[uint]*models.Category),
		products:   products,
		nextID:     100,
	}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	if category.ID == 0 {
		category.ID = r.nextID
		r.nextID++
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id uint) (*models.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *models.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uint) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context, activeOnly bool) ([]*models.Category, error) {
	var matched []*models.Category
	for _, category := range r.categories {
		if !activeOnly || category.IsActive {
			matched = append(matched, category)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Position < matched[j].Position })
	return matched, nil
}

func (r *fakeCategoryRepo) CountProducts(_ context.Context, categoryID uint) (int64, error) {
	var count int64
	for _, product := range r.products.products {
		if product.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func newTestCatalogService() (*CatalogService, *fakeCategoryRepo, *fakeProductRepo) {
	productRepo := newFakeProductRepo(testProducts()...)
	categoryRepo := newFakeCategoryRepo(productRepo,
		&models.Category{ID: 1, Name: "Käse", Position: 0, IsActive: true},
		&models.Category{ID: 2, Name: "Archiv", Position: 1, IsActive: false},
		&models.Category{ID: 3, Name: "Wein", Position: 2, IsActive: true},
	)
	return NewCatalogService(categoryRepo, productRepo), categoryRepo, productRepo
}

func TestGetCatalogShowsActiveOnly(t *testing.T) {
	svc, _, _ := newTestCatalogService()

	catalog, err := svc.GetCatalog(context.Background())
	require.NoError(t, err)

	// Inactive category dropped, order preserved
	require.Len(t, catalog.Categories, 2)
	assert.Equal(t, "Käse", catalog.Categories[0].Name)
	assert.Equal(t, "Wein", catalog.Categories[1].Name)

	// Only active products of category 1
	assert.Len(t, catalog.Categories[0].Products, 2)
	assert.Empty(t, catalog.Categories[1].Products)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _, _ := newTestCatalogService()

	_, err := svc.CreateProduct(context.Background(), &ProductInput{CategoryID: 1, Price: 5})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.CreateProduct(context.Background(), &ProductInput{CategoryID: 1, Name: "Salami", Price: 0})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.CreateProduct(context.Background(), &ProductInput{CategoryID: 99, Name: "Salami", Price: 5})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	product, err := svc.CreateProduct(context.Background(), &ProductInput{CategoryID: 1, Name: "Salami", Price: 4.50})
	require.NoError(t, err)
	assert.True(t, product.IsActive)
}

func TestDeleteCategoryGuardsProducts(t *testing.T) {
	svc, categoryRepo, productRepo := newTestCatalogService()

	err := svc.DeleteCategory(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCategoryNotEmpty)
	assert.Contains(t, categoryRepo.categories, uint(1))

	// Empty the category, then deletion goes through
	for id, product := range productRepo.products {
		if product.CategoryID == 1 {
			delete(productRepo.products, id)
		}
	}
	require.NoError(t, svc.DeleteCategory(context.Background(), 1))
	assert.NotContains(t, categoryRepo.categories, uint(1))
}

func TestUpdateProductMovesCategory(t *testing.T) {
	svc, _, productRepo := newTestCatalogService()

	_, err := svc.UpdateProduct(context.Background(), 1, &ProductInput{CategoryID: 99})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	updated, err := svc.UpdateProduct(context.Background(), 1, &ProductInput{CategoryID: 3, Price: 7.90})
	require.NoError(t, err)
	assert.Equal(t, uint(3), updated.CategoryID)
	assert.InDelta(t, 7.90, productRepo.products[1].Price, 0.001)
}

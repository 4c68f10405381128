package services

import (
	"context"
	"errors"
	"log"

	"feinkost-backend/internal/adapters/persistence/models"
	"feinkost-backend/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Catalog errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotEmpty = errors.New("category still has products")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
	ErrEmptyName        = errors.New("name is required")
)

// CatalogService handles the product catalog
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// CatalogView is the public storefront listing: active categories in
// display order, each with its active products.
type CatalogView struct {
	Categories []CatalogCategory `json:"categories"`
}

// CatalogCategory is one category with its products
type CatalogCategory struct {
	ID       uint              `json:"id"`
	Name     string            `json:"name"`
	Products []*models.Product `json:"products"`
}

// GetCatalog returns the public catalog view
func (s *CatalogService) GetCatalog(ctx context.Context) (*CatalogView, error) {
	categories, err := s.categoryRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uint][]*models.Product)
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	view := &CatalogView{Categories: make([]CatalogCategory, 0, len(categories))}
	for _, cat := range categories {
		view.Categories = append(view.Categories, CatalogCategory{
			ID:       cat.ID,
			Name:     cat.Name,
			Products: byCategory[cat.ID],
		})
	}
	return view, nil
}

// ============================================================
// Admin: Categories
// ============================================================

// CategoryInput represents category create/update input
type CategoryInput struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
	IsActive *bool  `json:"is_active"`
}

// CreateCategory creates a new category
func (s *CatalogService) CreateCategory(ctx context.Context, input *CategoryInput) (*models.Category, error) {
	if input.Name == "" {
		return nil, ErrEmptyName
	}

	category := &models.Category{
		Name:     input.Name,
		Position: input.Position,
		IsActive: true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	log.Printf("✅ Category created: %s", category.Name)
	return category, nil
}

// UpdateCategory updates a category
func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, input *CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	category.Position = input.Position
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes an empty category
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}

	return s.categoryRepo.Delete(ctx, id)
}

// ListCategories lists all categories (admin view includes inactive)
func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx, false)
}

// ============================================================
// Admin: Products
// ============================================================

// ProductInput represents product create/update input
type ProductInput struct {
	CategoryID  uint    `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

// CreateProduct creates a new product
func (s *CatalogService) CreateProduct(ctx context.Context, input *ProductInput) (*models.Product, error) {
	if input.Name == "" {
		return nil, ErrEmptyName
	}
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("✅ Product created: %s (%.2f)", product.Name, product.Price)
	return product, nil
}

// UpdateProduct updates a product
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, input *ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price != 0 {
		if input.Price < 0 {
			return nil, ErrInvalidPrice
		}
		product.Price = input.Price
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	product.Category = nil
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists all products (admin view includes inactive)
func (s *CatalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.List(ctx, false)
}

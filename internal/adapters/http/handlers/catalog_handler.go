package handlers

import (
	"errors"
	"strconv"

	"feinkost-backend/internal/core/services"
	"feinkost-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles catalog HTTP requests
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetCatalog returns the public storefront catalog
// @Summary Public catalog
// @Description List active categories with their active products
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /catalog [get]
func (h *CatalogHandler) GetCatalog(c *fiber.Ctx) error {
	catalog, err := h.catalogService.GetCatalog(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load catalog")
	}
	return response.Success(c, "Catalog retrieved", catalog)
}

// ============================================================
// Admin: Categories
// ============================================================

// ListCategories lists all categories including inactive ones
// @Summary List categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load categories")
	}
	return response.Success(c, "Categories retrieved", fiber.Map{"categories": categories})
}

// CreateCategory creates a category
// @Summary Create category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body services.CategoryInput true "Category"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	category, err := h.catalogService.CreateCategory(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrEmptyName) {
			return response.BadRequest(c, "Name is required")
		}
		return response.InternalServerError(c, "Failed to create category")
	}

	return response.Created(c, "Category created", fiber.Map{"category": category})
}

// UpdateCategory updates a category
// @Summary Update category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param body body services.CategoryInput true "Category"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}

	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	category, err := h.catalogService.UpdateCategory(c.Context(), id, &input)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to update category")
	}

	return response.Success(c, "Category updated", fiber.Map{"category": category})
}

// DeleteCategory deletes an empty category
// @Summary Delete category
// @Tags Catalog
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}

	if err := h.catalogService.DeleteCategory(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			return response.NotFound(c, "Category not found")
		case errors.Is(err, services.ErrCategoryNotEmpty):
			return response.Conflict(c, "Category still has products")
		default:
			return response.InternalServerError(c, "Failed to delete category")
		}
	}

	return response.Success(c, "Category deleted", nil)
}

// ============================================================
// Admin: Products
// ============================================================

// ListProducts lists all products including inactive ones
// @Summary List products
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.catalogService.ListProducts(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load products")
	}
	return response.Success(c, "Products retrieved", fiber.Map{"products": products})
}

// CreateProduct creates a product
// @Summary Create product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param body body services.ProductInput true "Product"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.catalogService.CreateProduct(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyName):
			return response.BadRequest(c, "Name is required")
		case errors.Is(err, services.ErrInvalidPrice):
			return response.BadRequest(c, "Price must be greater than zero")
		case errors.Is(err, services.ErrCategoryNotFound):
			return response.NotFound(c, "Category not found")
		default:
			return response.InternalServerError(c, "Failed to create product")
		}
	}

	return response.Created(c, "Product created", fiber.Map{"product": product})
}

// UpdateProduct updates a product
// @Summary Update product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param body body services.ProductInput true "Product"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}

	var input services.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.catalogService.UpdateProduct(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, services.ErrCategoryNotFound):
			return response.NotFound(c, "Category not found")
		case errors.Is(err, services.ErrInvalidPrice):
			return response.BadRequest(c, "Price must be greater than zero")
		default:
			return response.InternalServerError(c, "Failed to update product")
		}
	}

	return response.Success(c, "Product updated", fiber.Map{"product": product})
}

// DeleteProduct deletes a product
// @Summary Delete product
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return nil
	}

	if err := h.catalogService.DeleteProduct(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return response.NotFound(c, "Product not found")
		}
		return response.InternalServerError(c, "Failed to delete product")
	}

	return response.Success(c, "Product deleted", nil)
}

// parseIDParam reads a numeric :id route parameter. On failure the 400
// response has already been written and ok is false.
func parseIDParam(c *fiber.Ctx) (id uint, ok bool) {
	parsed, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		_ = response.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return uint(parsed), true
}

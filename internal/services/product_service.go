package services

import (
	"butik/internal/models"
	"butik/internal/repositories"

	"github.com/gosimple/slug"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductBySlug retrieves a single product by its slug.
func (s *ProductService) GetProductBySlug(productSlug string) (*models.Product, error) {
	return s.repo.GetBySlug(productSlug)
}

// CreateProduct creates a new product. When no slug is supplied one is
// derived from the name; uniqueness is enforced by the repository.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.Slug == "" {
		product.Slug = slug.Make(product.Name)
	}
	if product.Stock == 0 {
		product.IsSoldOut = true
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if product.Slug == "" {
		product.Slug = slug.Make(product.Name)
	}
	product.IsSoldOut = product.Stock == 0
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

package services

import (
	"sort"

	"tamaravastra/internal/models"
	"tamaravastra/internal/repositories"

	"github.com/shopspring/decimal"
)

// CatalogService handles business logic related to the saree catalogue.
type CatalogService struct {
	repo repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetBestsellers returns up to four products flagged as bestsellers.
func (s *CatalogService) GetBestsellers() ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	var best []models.Product
	for _, p := range products {
		if p.IsBestseller {
			best = append(best, p)
		}
	}
	sort.Slice(best, func(i, j int) bool { return best[i].Name < best[j].Name })
	if len(best) > 4 {
		best = best[:4]
	}
	return best, nil
}

// FilterProducts returns products matching the category and price ceiling.
// An empty category or "all" matches every category; a nil maxPrice disables
// the price filter.
func (s *CatalogService) FilterProducts(category string, maxPrice *decimal.Decimal) ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !p.MatchesCategory(category) {
			continue
		}
		if maxPrice != nil && p.Price.GreaterThan(*maxPrice) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// SearchProducts returns products whose name or description contains the
// query.
func (s *CatalogService) SearchProducts(query string) ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.MatchesQuery(query) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// CreateProduct creates a new product.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

package service

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/internal/app/repository"
	"github.com/artisell/artisell-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductOutOfStock = errors.New("product out of stock")
)

type ProductSort string

const (
	ProductSortPrice     ProductSort = "price"
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortTitle     ProductSort = "title"
)

type ProductListOptions struct {
	Region        string
	Artist        string
	Medium        string
	Search        string
	FeaturedOnly  bool
	InStockOnly   bool
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	Sort          ProductSort
	SortAscending bool
	Limit         int
	Offset        int
}

type ProductFilterSummary struct {
	Regions []string
	Mediums []string
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetFeaturedProducts(limit int) ([]model.Product, error)
	GetAvailableFilters() (ProductFilterSummary, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
	SetStock(id uint, inStock bool) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"region":   opts.Region,
		"artist":   opts.Artist,
		"medium":   opts.Medium,
		"search":   opts.Search,
		"featured": opts.FeaturedOnly,
		"sort":     opts.Sort,
	})

	filter := repository.ProductFilter{
		Region:        opts.Region,
		Artist:        opts.Artist,
		Medium:        opts.Medium,
		Search:        opts.Search,
		FeaturedOnly:  opts.FeaturedOnly,
		InStockOnly:   opts.InStockOnly,
		MinPrice:      opts.MinPrice,
		MaxPrice:      opts.MaxPrice,
		SortBy:        repository.ProductSort(opts.Sort),
		SortAscending: opts.SortAscending,
		Limit:         opts.Limit,
		Offset:        opts.Offset,
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err, map[string]interface{}{
			"region": opts.Region,
			"search": opts.Search,
		})
		return nil, err
	}

	logger.Info("Products listed successfully", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	logger.Debug("Fetching product by ID", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	return product, nil
}

func (s *productService) GetFeaturedProducts(limit int) ([]model.Product, error) {
	logger.Debug("Fetching featured products", map[string]interface{}{
		"limit": limit,
	})

	products, err := s.productRepo.FindFeatured(limit)
	if err != nil {
		logger.Error("Failed to fetch featured products", err, map[string]interface{}{
			"limit": limit,
		})
		return nil, err
	}

	logger.Info("Featured products fetched successfully", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetAvailableFilters() (ProductFilterSummary, error) {
	logger.Debug("Fetching available product filters", nil)

	attrs, err := s.productRepo.ListAttributes()
	if err != nil {
		logger.Error("Failed to fetch product filters", err, nil)
		return ProductFilterSummary{}, err
	}

	return ProductFilterSummary{
		Regions: attrs.Regions,
		Mediums: attrs.Mediums,
	}, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	logger.Info("Creating product", map[string]interface{}{
		"title":  product.Title,
		"artist": product.Artist,
	})

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"title": product.Title,
		})
		return err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (s *productService) UpdateProduct(product *model.Product) error {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": product.ID,
	})

	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found for update", map[string]interface{}{
				"product_id": product.ID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product for update", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	product.CreatedAt = existing.CreatedAt
	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found for deletion", map[string]interface{}{
				"product_id": id,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product for deletion", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) SetStock(id uint, inStock bool) error {
	logger.Info("Updating product stock flag", map[string]interface{}{
		"product_id": id,
		"in_stock":   inStock,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.SetStock(id, inStock); err != nil {
		logger.Error("Failed to update product stock flag", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	return nil
}

package repository

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPrice     ProductSort = "price"
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortTitle     ProductSort = "title"
)

type ProductFilter struct {
	Region        string
	Artist        string
	Medium        string
	Search        string
	FeaturedOnly  bool
	InStockOnly   bool
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	SortBy        ProductSort
	SortAscending bool
	Limit         int
	Offset        int
}

type ProductAttributes struct {
	Regions []string
	Mediums []string
}

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindAll() ([]model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindFeatured(limit int) ([]model.Product, error)
	ListAttributes() (ProductAttributes, error)
	Update(product *model.Product) error
	Delete(id uint) error
	SetStock(id uint, inStock bool) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"title":  product.Title,
		"artist": product.Artist,
		"region": product.Region,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"title":  product.Title,
			"artist": product.Artist,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})
	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	logger.Info("Bulk creating products in database", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products in database", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}

	logger.Info("Products bulk created in database", map[string]interface{}{
		"count": len(products),
	})
	return nil
}

func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).Preload("Images")
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	return r.FindWithFilter(ProductFilter{})
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"region":    filter.Region,
		"artist":    filter.Artist,
		"medium":    filter.Medium,
		"search":    filter.Search,
		"featured":  filter.FeaturedOnly,
		"sort_by":   filter.SortBy,
		"ascending": filter.SortAscending,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
	})

	query := r.baseQuery()

	if filter.Region != "" {
		query = query.Where("products.region = ?", filter.Region)
	}

	if filter.Artist != "" {
		query = query.Where("products.artist = ?", filter.Artist)
	}

	if filter.Medium != "" {
		query = query.Where("products.medium = ?", filter.Medium)
	}

	if filter.FeaturedOnly {
		query = query.Where("products.is_featured = ?", true)
	}

	if filter.InStockOnly {
		query = query.Where("products.in_stock = ?", true)
	}

	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}

	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("products.title LIKE ? OR products.artist LIKE ? OR products.description LIKE ?", like, like, like)
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}

	switch filter.SortBy {
	case ProductSortPrice:
		query = query.Order("products.price " + direction)
	case ProductSortTitle:
		query = query.Order("products.title " + direction)
	case ProductSortCreatedAt:
		fallthrough
	default:
		query = query.Order("products.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"region": filter.Region,
			"search": filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	err := r.baseQuery().First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Debug("Product found by ID in database", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})
	return &product, nil
}

func (r *productRepository) FindFeatured(limit int) ([]model.Product, error) {
	return r.FindWithFilter(ProductFilter{
		FeaturedOnly: true,
		Limit:        limit,
	})
}

func (r *productRepository) ListAttributes() (ProductAttributes, error) {
	logger.Debug("Listing product attributes", nil)

	result := ProductAttributes{}

	if err := r.db.Model(&model.Product{}).
		Where("region IS NOT NULL AND region <> ''").
		Distinct().
		Order("region ASC").
		Pluck("region", &result.Regions).Error; err != nil {
		logger.Error("Failed to fetch distinct regions", err, nil)
		return result, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("medium IS NOT NULL AND medium <> ''").
		Distinct().
		Order("medium ASC").
		Pluck("medium", &result.Mediums).Error; err != nil {
		logger.Error("Failed to fetch distinct mediums", err, nil)
		return result, err
	}

	logger.Debug("Product attributes listed", map[string]interface{}{
		"region_count": len(result.Regions),
		"medium_count": len(result.Mediums),
	})
	return result, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
			"title":      product.Title,
		})
		return err
	}

	logger.Debug("Product updated in database", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (r *productRepository) SetStock(id uint, inStock bool) error {
	logger.Debug("Updating product stock flag in database", map[string]interface{}{
		"product_id": id,
		"in_stock":   inStock,
	})

	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("in_stock", inStock).Error; err != nil {
		logger.Error("Failed to update product stock flag in database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Debug("Product stock flag updated in database", map[string]interface{}{
		"product_id": id,
		"in_stock":   inStock,
	})
	return nil
}

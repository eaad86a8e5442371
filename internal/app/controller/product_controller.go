package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/internal/app/service"
	apperrors "github.com/artisell/artisell-backend/internal/errors"
	"github.com/artisell/artisell-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductImageRequest struct {
	ImageURL  string `json:"image_url" binding:"required"`
	IsPrimary bool   `json:"is_primary"`
}

type CreateProductRequest struct {
	Title       string                `json:"title" binding:"required"`
	Artist      string                `json:"artist" binding:"required"`
	Price       string                `json:"price" binding:"required"`
	Description string                `json:"description"`
	Region      string                `json:"region" binding:"required"`
	Medium      string                `json:"medium"`
	Dimensions  string                `json:"dimensions"`
	Year        int                   `json:"year"`
	IsFeatured  bool                  `json:"is_featured"`
	InStock     *bool                 `json:"in_stock"`
	Images      []ProductImageRequest `json:"images"`
}

// GetAllProducts lists artworks with optional filters
// GET /api/v1/products
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.ProductListOptions{
		Region:       c.Query("region"),
		Artist:       c.Query("artist"),
		Medium:       c.Query("medium"),
		Search:       c.Query("search"),
		FeaturedOnly: c.Query("featured") == "true",
		InStockOnly:  c.Query("in_stock") == "true",
		Sort:         service.ProductSort(c.Query("sort")),
	}

	if v := c.Query("order"); v == "asc" {
		opts.SortAscending = true
	}
	if v := c.Query("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			opts.Limit = limit
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset > 0 {
			opts.Offset = offset
		}
	}
	if v := c.Query("min_price"); v != "" {
		if price, err := decimal.NewFromString(v); err == nil {
			opts.MinPrice = &price
		}
	}
	if v := c.Query("max_price"); v != "" {
		if price, err := decimal.NewFromString(v); err == nil {
			opts.MaxPrice = &price
		}
	}

	products, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		log.Error("Failed to list products", err, map[string]interface{}{
			"region": opts.Region,
			"search": opts.Search,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetFeaturedProducts lists artworks flagged for the storefront
// GET /api/v1/products/featured
func (ctrl *ProductController) GetFeaturedProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit := 8
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	products, err := ctrl.productService.GetFeaturedProducts(limit)
	if err != nil {
		log.Error("Failed to fetch featured products", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "featured products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductFilters returns the distinct regions and mediums for filtering
// GET /api/v1/products/filters
func (ctrl *ProductController) GetProductFilters(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filters, err := ctrl.productService.GetAvailableFilters()
	if err != nil {
		log.Error("Failed to fetch product filters", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "product filters")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"regions": filters.Regions,
		"mediums": filters.Mediums,
	})
}

// GetProductByID returns one artwork
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": c.Param("id"),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid artwork ID")
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Artwork not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct adds an artwork to the catalog (admin)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid artwork details")
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		log.Warn("Invalid product price", map[string]interface{}{
			"price": req.Price,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Price must be a non-negative number")
		return
	}

	product := &model.Product{
		Title:       req.Title,
		Artist:      req.Artist,
		Price:       price,
		Description: req.Description,
		Region:      req.Region,
		Medium:      req.Medium,
		Dimensions:  req.Dimensions,
		Year:        req.Year,
		IsFeatured:  req.IsFeatured,
		InStock:     true,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	for _, img := range req.Images {
		product.Images = append(product.Images, model.ProductImage{
			ImageURL:  img.ImageURL,
			IsPrimary: img.IsPrimary,
		})
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"title": req.Title,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct modifies an artwork (admin)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid artwork ID")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update product request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid artwork details")
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Price must be a non-negative number")
		return
	}

	product := &model.Product{
		Title:       req.Title,
		Artist:      req.Artist,
		Price:       price,
		Description: req.Description,
		Region:      req.Region,
		Medium:      req.Medium,
		Dimensions:  req.Dimensions,
		Year:        req.Year,
		IsFeatured:  req.IsFeatured,
		InStock:     true,
	}
	product.ID = id
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := ctrl.productService.UpdateProduct(product); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Artwork not found")
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		return
	}

	log.Info("Product updated", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProduct removes an artwork from the catalog (admin)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid artwork ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Artwork not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete product")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Artwork deleted",
	})
}

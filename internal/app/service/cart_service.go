package service

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/artisell/artisell-backend/config"
	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/internal/app/repository"
	"github.com/artisell/artisell-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("cart is empty")
)

// totalsFromSubtotal applies the configured flat shipping fee and tax rate.
// Tax is rounded to two decimal places before summing.
func totalsFromSubtotal(subtotal decimal.Decimal, checkout config.CheckoutConfig) model.CartTotals {
	tax := subtotal.Mul(checkout.TaxRate).Round(2)
	return model.CartTotals{
		Subtotal: subtotal,
		Shipping: checkout.ShippingFee,
		Tax:      tax,
		Total:    subtotal.Add(checkout.ShippingFee).Add(tax),
	}
}

type CartService interface {
	GetUserCart(userID uint) ([]model.CartItem, model.CartTotals, error)
	ComputeTotals(cartItems []model.CartItem) model.CartTotals
	AddToCart(userID, productID uint, quantity int) error
	UpdateQuantity(userID, productID uint, quantity int) error
	RemoveFromCart(userID, productID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	checkout    config.CheckoutConfig
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	checkout config.CheckoutConfig,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		checkout:    checkout,
	}
}

func (s *cartService) GetUserCart(userID uint) ([]model.CartItem, model.CartTotals, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, model.CartTotals{}, err
	}

	totals := s.ComputeTotals(cartItems)

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
		"total":   totals.Total,
	})
	return cartItems, totals, nil
}

// ComputeTotals derives the cart totals from its items. Totals are never
// stored; callers recompute them from current product prices every time.
func (s *cartService) ComputeTotals(cartItems []model.CartItem) model.CartTotals {
	subtotal := decimal.Zero
	for _, item := range cartItems {
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
	}

	if len(cartItems) == 0 {
		return model.CartTotals{
			Subtotal: decimal.Zero,
			Shipping: decimal.Zero,
			Tax:      decimal.Zero,
			Total:    decimal.Zero,
		}
	}

	return totalsFromSubtotal(subtotal, s.checkout)
}

func (s *cartService) AddToCart(userID, productID uint, quantity int) error {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	if !product.InStock {
		logger.Warn("Cannot add to cart: product out of stock", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return ErrProductOutOfStock
	}

	existingItem, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	if existingItem != nil {
		logger.Debug("Updating existing cart item", map[string]interface{}{
			"cart_item_id": existingItem.ID,
			"old_qty":      existingItem.Quantity,
			"new_qty":      existingItem.Quantity + quantity,
		})
		existingItem.Quantity += quantity
		if err := s.cartRepo.Update(existingItem); err != nil {
			logger.Error("Failed to update cart item", err, map[string]interface{}{
				"cart_item_id": existingItem.ID,
			})
			return err
		}
		return nil
	}

	cartItem := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	if err := s.cartRepo.Create(cartItem); err != nil {
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	logger.Info("Cart item added successfully", map[string]interface{}{
		"cart_item_id": cartItem.ID,
	})
	return nil
}

func (s *cartService) UpdateQuantity(userID, productID uint, quantity int) error {
	logger.Info("Updating cart item quantity", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	// Quantities at or below zero leave the cart untouched.
	if quantity <= 0 {
		logger.Debug("Ignoring non-positive quantity update", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"quantity":   quantity,
		})
		return nil
	}

	cartItem, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found for quantity update", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	cartItem.Quantity = quantity
	if err := s.cartRepo.Update(cartItem); err != nil {
		logger.Error("Failed to update cart item quantity", err, map[string]interface{}{
			"cart_item_id": cartItem.ID,
		})
		return err
	}

	logger.Info("Cart item quantity updated successfully", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"quantity":     quantity,
	})
	return nil
}

func (s *cartService) RemoveFromCart(userID, productID uint) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	cartItem, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found for removal", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item for removal", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	if err := s.cartRepo.Delete(cartItem.ID); err != nil {
		logger.Error("Failed to delete cart item", err, map[string]interface{}{
			"cart_item_id": cartItem.ID,
		})
		return err
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"cart_item_id": cartItem.ID,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})

	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("User cart cleared", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/artisell/artisell-backend/config"
	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/internal/app/repository"
	apperrors "github.com/artisell/artisell-backend/internal/errors"
	"github.com/artisell/artisell-backend/pkg/logger"
	"github.com/artisell/artisell-backend/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAuthRequired         = errors.New("authentication required")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrOrderFailed          = errors.New("order could not be processed")
)

// orderNumberAttempts bounds regeneration when a generated order number
// collides with an existing one.
const orderNumberAttempts = 3

// CheckoutInfo carries the shipping and payment details collected at checkout.
type CheckoutInfo struct {
	FullName      string
	Email         string
	Phone         string
	Address       string
	City          string
	Region        string
	PostalCode    string
	PaymentMethod model.PaymentMethod
	Notes         string
}

type CheckoutService interface {
	PlaceOrder(userID uint, info CheckoutInfo) (*model.Order, error)
}

type checkoutService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	db        *gorm.DB
	checkout  config.CheckoutConfig

	// swapped in tests to force order number collisions
	generateOrderNumber func() string
}

func NewCheckoutService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	db *gorm.DB,
	checkout config.CheckoutConfig,
) CheckoutService {
	return &checkoutService{
		orderRepo:           orderRepo,
		cartRepo:            cartRepo,
		db:                  db,
		checkout:            checkout,
		generateOrderNumber: util.GenerateOrderNumber,
	}
}

// PlaceOrder turns the user's cart into a persisted order. The order and its
// items are written in one transaction; either everything lands or nothing
// does. The cart is left untouched so the caller decides when to clear it.
func (s *checkoutService) PlaceOrder(userID uint, info CheckoutInfo) (*model.Order, error) {
	logger.Info("Placing order", map[string]interface{}{
		"user_id":        userID,
		"payment_method": info.PaymentMethod,
	})

	if userID == 0 {
		logger.Warn("Order rejected: missing user", nil)
		return nil, ErrAuthRequired
	}

	if !model.ValidPaymentMethod(info.PaymentMethod) {
		logger.Warn("Order rejected: invalid payment method", map[string]interface{}{
			"user_id":        userID,
			"payment_method": info.PaymentMethod,
		})
		return nil, ErrInvalidPaymentMethod
	}

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if len(cartItems) == 0 {
		logger.Warn("Cannot place order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCartEmpty
	}

	logger.Debug("Processing cart items for checkout", map[string]interface{}{
		"user_id":    userID,
		"item_count": len(cartItems),
	})

	var order *model.Order
	for attempt := 1; attempt <= orderNumberAttempts; attempt++ {
		order, err = s.createOrder(userID, info, cartItems)
		if err == nil {
			break
		}
		if apperrors.IsUniqueViolation(err) {
			logger.Warn("Order number collision, regenerating", map[string]interface{}{
				"user_id": userID,
				"attempt": attempt,
			})
			continue
		}
		return nil, err
	}

	if err != nil {
		logger.Error("Order number collisions exhausted retries", err, map[string]interface{}{
			"user_id":  userID,
			"attempts": orderNumberAttempts,
		})
		return nil, ErrOrderFailed
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total,
		"item_count":   len(order.OrderItems),
	})

	return s.orderRepo.FindByID(order.ID)
}

// createOrder runs one transactional attempt: reprice every cart line from
// the current product rows, derive the totals, and persist the order with
// its items atomically.
func (s *checkoutService) createOrder(userID uint, info CheckoutInfo, cartItems []model.CartItem) (*model.Order, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order creation, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var (
		subtotal   = decimal.Zero
		orderItems []model.OrderItem
	)

	for _, cartItem := range cartItems {
		var product model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, cartItem.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product not found during checkout", map[string]interface{}{
					"user_id":    userID,
					"product_id": cartItem.ProductID,
				})
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to fetch product during checkout", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": cartItem.ProductID,
			})
			return nil, err
		}

		if !product.InStock {
			tx.Rollback()
			logger.Warn("Checkout failed: product no longer in stock", map[string]interface{}{
				"user_id":    userID,
				"product_id": product.ID,
			})
			return nil, ErrProductOutOfStock
		}

		orderItems = append(orderItems, model.OrderItem{
			ProductID: cartItem.ProductID,
			Quantity:  cartItem.Quantity,
			Price:     product.Price,
		})
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(cartItem.Quantity))))
	}

	totals := totalsFromSubtotal(subtotal, s.checkout)

	order := &model.Order{
		UserID:        userID,
		OrderNumber:   s.generateOrderNumber(),
		FullName:      info.FullName,
		Email:         info.Email,
		Phone:         info.Phone,
		Address:       info.Address,
		City:          info.City,
		Region:        info.Region,
		PostalCode:    info.PostalCode,
		PaymentMethod: info.PaymentMethod,
		Notes:         info.Notes,
		Subtotal:      totals.Subtotal,
		Shipping:      totals.Shipping,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Status:        model.OrderStatusProcessing,
		OrderItems:    orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id":      userID,
			"order_number": order.OrderNumber,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	return order, nil
}

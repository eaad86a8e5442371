package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/internal/app/service"
	apperrors "github.com/artisell/artisell-backend/internal/errors"
	"github.com/artisell/artisell-backend/internal/middleware"
)

type OrderController struct {
	orderService    service.OrderService
	checkoutService service.CheckoutService
	cartService     service.CartService
}

func NewOrderController(
	orderService service.OrderService,
	checkoutService service.CheckoutService,
	cartService service.CartService,
) *OrderController {
	return &OrderController{
		orderService:    orderService,
		checkoutService: checkoutService,
		cartService:     cartService,
	}
}

type CheckoutRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Address       string `json:"address" binding:"required"`
	City          string `json:"city" binding:"required"`
	Region        string `json:"region" binding:"required"`
	PostalCode    string `json:"postal_code" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	Notes         string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Checkout places an order from the user's cart and clears the cart
// POST /api/v1/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized checkout attempt", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			apperrors.RespondWithValidationError(c, fieldErrors(validationErrs))
			return
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid checkout details")
		return
	}

	order, err := ctrl.checkoutService.PlaceOrder(userID, service.CheckoutInfo{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		Region:        req.Region,
		PostalCode:    req.PostalCode,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthRequired):
			log.Warn("Checkout without a valid user", nil)
			apperrors.Unauthorized(c, "Authentication required")
		case errors.Is(err, service.ErrCartEmpty):
			log.Warn("Checkout with empty cart", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			log.Warn("Checkout with invalid payment method", map[string]interface{}{
				"user_id":        userID,
				"payment_method": req.PaymentMethod,
			})
			apperrors.BadRequest(c, apperrors.OrderInvalidPayment, "Invalid payment method")
		case errors.Is(err, service.ErrProductNotFound):
			log.Warn("Checkout with missing product", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "An artwork in your cart is no longer available")
		case errors.Is(err, service.ErrProductOutOfStock):
			log.Warn("Checkout with out of stock product", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.ProductOutOfStock, "An artwork in your cart is no longer available")
		case errors.Is(err, service.ErrOrderFailed):
			log.Error("Checkout failed after retries", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.OrderProcessingFailed, "There was a problem processing your order. Please try again")
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "checkout")
		}
		return
	}

	// The order is committed at this point. Clearing the cart afterwards
	// keeps the two concerns separate; a failure here leaves stale cart
	// rows but never a broken order.
	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Warn("Failed to clear cart after checkout", map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
			"error":    err.Error(),
		})
	}

	log.Info("Checkout completed", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetOrders returns the user's order history
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to orders", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID returns a single order owned by the user
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to order", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		log.Warn("Invalid order ID format", map[string]interface{}{
			"user_id":  userID,
			"order_id": c.Param("id"),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			log.Warn("Order not found", map[string]interface{}{
				"user_id":  userID,
				"order_id": orderID,
			})
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// GetAllOrders returns every order, optionally filtered by status (admin)
// GET /api/v1/admin/orders
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := c.Query("status")
	orders, err := ctrl.orderService.GetAllOrders(status)
	if err != nil {
		log.Error("Failed to fetch all orders", err, map[string]interface{}{
			"status": status,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get all orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus moves an order along its lifecycle (admin)
// PUT /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		log.Warn("Invalid order ID format", map[string]interface{}{
			"order_id": c.Param("id"),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order status request", map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	err := ctrl.orderService.UpdateOrderStatus(orderID, model.OrderStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		if errors.Is(err, service.ErrInvalidStatusTransition) {
			log.Warn("Invalid order status transition", map[string]interface{}{
				"order_id":   orderID,
				"new_status": req.Status,
			})
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Order cannot move to this status")
			return
		}
		log.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update order status")
		return
	}

	log.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   req.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
	})
}

// GetOrderStats returns aggregate order counts and revenue (admin)
// GET /api/v1/admin/orders/stats
func (ctrl *OrderController) GetOrderStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.orderService.GetStats()
	if err != nil {
		log.Error("Failed to fetch order statistics", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get order stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}

// fieldErrors flattens binding failures into a field to message map.
func fieldErrors(errs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = "This field is required"
		case "email":
			fields[name] = "Must be a valid email address"
		default:
			fields[name] = "Invalid value"
		}
	}
	return fields
}

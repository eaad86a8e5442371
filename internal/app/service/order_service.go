package service

import (
	"errors"

	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/internal/app/repository"
	"github.com/artisell/artisell-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// validStatusTransitions maps each order status to the statuses it may move
// into. Delivered and cancelled are terminal.
var validStatusTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusProcessing: {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:    {model.OrderStatusDelivered},
}

type OrderService interface {
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	GetOrderByNumber(userID uint, orderNumber string) (*model.Order, error)
	GetAllOrders(status string) ([]model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
	GetStats() (repository.OrderStats, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User orders fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	logger.Debug("Fetching order by ID", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found", map[string]interface{}{
				"user_id":  userID,
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}

	logger.Debug("Order fetched successfully", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
		"status":   order.Status,
	})
	return order, nil
}

func (s *orderService) GetOrderByNumber(userID uint, orderNumber string) (*model.Order, error) {
	logger.Debug("Fetching order by order number", map[string]interface{}{
		"user_id":      userID,
		"order_number": orderNumber,
	})

	order, err := s.orderRepo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found by number", map[string]interface{}{
				"user_id":      userID,
				"order_number": orderNumber,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order by number", err, map[string]interface{}{
			"user_id":      userID,
			"order_number": orderNumber,
		})
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"order_number": orderNumber,
			"owner_id":     order.UserID,
		})
		return nil, ErrOrderNotFound
	}

	return order, nil
}

func (s *orderService) GetAllOrders(status string) ([]model.Order, error) {
	logger.Debug("Fetching all orders", map[string]interface{}{
		"status": status,
	})

	orders, err := s.orderRepo.FindAll(status)
	if err != nil {
		logger.Error("Failed to fetch all orders", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}

	logger.Info("All orders fetched successfully", map[string]interface{}{
		"status": status,
		"count":  len(orders),
	})
	return orders, nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id":   orderID,
		"new_status": status,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found for status update", map[string]interface{}{
				"order_id": orderID,
			})
			return ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for status update", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}

	if !isValidTransition(order.Status, status) {
		logger.Warn("Invalid order status transition", map[string]interface{}{
			"order_id":   orderID,
			"from":       order.Status,
			"new_status": status,
		})
		return ErrInvalidStatusTransition
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id":   orderID,
			"new_status": status,
		})
		return err
	}

	logger.Info("Order status updated successfully", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return nil
}

func isValidTransition(from, to model.OrderStatus) bool {
	for _, allowed := range validStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *orderService) GetStats() (repository.OrderStats, error) {
	logger.Debug("Fetching order statistics", nil)

	stats, err := s.orderRepo.GetStats()
	if err != nil {
		logger.Error("Failed to fetch order statistics", err, nil)
		return stats, err
	}

	logger.Info("Order statistics fetched successfully", map[string]interface{}{
		"total_orders": stats.TotalOrders,
	})
	return stats, nil
}

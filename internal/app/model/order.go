package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string
type PaymentMethod string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentGCash        PaymentMethod = "gcash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCOD          PaymentMethod = "cod"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCreditCard, PaymentGCash, PaymentBankTransfer, PaymentCOD:
		return true
	}
	return false
}

// Order is an immutable record of a completed checkout. Only Status changes
// after creation.
type Order struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	OrderNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	FullName      string          `gorm:"type:varchar(100);not null" json:"full_name"`
	Email         string          `gorm:"type:varchar(100);not null" json:"email"`
	Phone         string          `gorm:"type:varchar(20);not null" json:"phone"`
	Address       string          `gorm:"type:varchar(255);not null" json:"address"`
	City          string          `gorm:"type:varchar(100);not null" json:"city"`
	Region        string          `gorm:"type:varchar(100);not null" json:"region"`
	PostalCode    string          `gorm:"type:varchar(20);not null" json:"postal_code"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(50);not null" json:"payment_method"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	Shipping      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"shipping"`
	Tax           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"tax"`
	Total         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	Status        OrderStatus     `gorm:"type:varchar(20);default:'processing'" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem captures one product line of an order with the unit price at
// purchase time, decoupled from the live product price.
type OrderItem struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a single artwork listing
type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Artist      string          `gorm:"not null" json:"artist"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	Region      string          `gorm:"type:varchar(100);index" json:"region"` // Luzon, Visayas, Mindanao
	Medium      string          `gorm:"type:varchar(100)" json:"medium"`
	Dimensions  string          `gorm:"type:varchar(100)" json:"dimensions"`
	Year        int             `json:"year"`
	IsFeatured  bool            `gorm:"default:false;index" json:"is_featured"`
	// No default tag: gorm skips zero-valued fields that carry one on
	// insert, which would persist InStock:false as in stock.
	InStock     bool            `json:"in_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	Images     []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	OrderItems []OrderItem    `gorm:"foreignKey:ProductID" json:"-"`
	CartItems  []CartItem     `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

type ProductImage struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	ImageURL  string `gorm:"not null" json:"image_url"`
	IsPrimary bool   `gorm:"default:false" json:"is_primary"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

// PrimaryImageURL returns the primary image, or the first one when none is
// flagged primary.
func (p *Product) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.ImageURL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].ImageURL
	}
	return ""
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartEntry is one menu item placed in a user's cart. The price is a
// snapshot taken when the item was added.
type CartEntry struct {
	ID         string          `json:"id" gorm:"type:char(36);primaryKey"`
	Email      string          `json:"email" gorm:"size:255;not null;index" validate:"required,email"`
	MenuItemID string          `json:"menuId" gorm:"type:char(36);not null;index" validate:"required"`
	Name       string          `json:"name" gorm:"size:255"`
	Image      string          `json:"image,omitempty" gorm:"size:1024"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// TableName keeps the collection name used by existing clients.
func (CartEntry) TableName() string {
	return "carts"
}

// BeforeCreate sets UUID before creating the record.
func (c *CartEntry) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

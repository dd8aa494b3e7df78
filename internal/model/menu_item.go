package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem is a dish on the restaurant menu.
type MenuItem struct {
	ID        string          `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string          `json:"name" gorm:"size:255;not null" validate:"required"`
	Recipe    string          `json:"recipe" gorm:"type:text"`
	Image     string          `json:"image,omitempty" gorm:"size:1024"`
	Category  string          `json:"category" gorm:"size:64;not null;index" validate:"required"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MenuItemPatch carries the fields an admin may change on a menu item.
// Nil fields are left untouched.
type MenuItemPatch struct {
	Name     *string          `json:"name" validate:"omitempty,min=1"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category" validate:"omitempty,min=1"`
	Recipe   *string          `json:"recipe"`
	Image    *string          `json:"image"`
}

// Columns returns the column updates described by the patch.
func (p MenuItemPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.Category != nil {
		cols["category"] = *p.Category
	}
	if p.Recipe != nil {
		cols["recipe"] = *p.Recipe
	}
	if p.Image != nil {
		cols["image"] = *p.Image
	}
	return cols
}

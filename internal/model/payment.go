package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus represents the fulfilment status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
)

// Payment is the permanent record of a completed checkout. It is never
// updated after creation.
type Payment struct {
	ID            string          `json:"id" gorm:"type:char(36);primaryKey"`
	Email         string          `json:"email" gorm:"size:255;not null;index"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	TransactionID string          `json:"transactionId" gorm:"size:255;index"`
	Status        PaymentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt     time.Time       `json:"date" gorm:"index"`

	// Relations
	CartItems []PaymentCartItem `json:"-" gorm:"foreignKey:PaymentID"`
	MenuItems []PaymentMenuItem `json:"-" gorm:"foreignKey:PaymentID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PaymentCartItem links a payment to a cart entry it settled.
type PaymentCartItem struct {
	ID        uint   `gorm:"primaryKey"`
	PaymentID string `gorm:"type:char(36);not null;index"`
	CartID    string `gorm:"type:char(36);not null;index"`
}

// PaymentMenuItem links a payment to a menu item it purchased.
type PaymentMenuItem struct {
	ID         uint   `gorm:"primaryKey"`
	PaymentID  string `gorm:"type:char(36);not null;index"`
	MenuItemID string `gorm:"type:char(36);not null;index"`
}

// SetSettledCartIDs replaces the list of settled cart entries.
func (p *Payment) SetSettledCartIDs(ids []string) {
	p.CartItems = make([]PaymentCartItem, 0, len(ids))
	for _, id := range ids {
		p.CartItems = append(p.CartItems, PaymentCartItem{CartID: id})
	}
}

// SetMenuItemIDs replaces the list of purchased menu items.
func (p *Payment) SetMenuItemIDs(ids []string) {
	p.MenuItems = make([]PaymentMenuItem, 0, len(ids))
	for _, id := range ids {
		p.MenuItems = append(p.MenuItems, PaymentMenuItem{MenuItemID: id})
	}
}

// SettledCartIDs returns the cart entry ids this payment settled.
func (p *Payment) SettledCartIDs() []string {
	ids := make([]string, 0, len(p.CartItems))
	for _, item := range p.CartItems {
		ids = append(ids, item.CartID)
	}
	return ids
}

// MenuItemIDs returns the menu item ids this payment purchased.
func (p *Payment) MenuItemIDs() []string {
	ids := make([]string, 0, len(p.MenuItems))
	for _, item := range p.MenuItems {
		ids = append(ids, item.MenuItemID)
	}
	return ids
}

// MarshalJSON flattens the settlement lists into id arrays.
func (p Payment) MarshalJSON() ([]byte, error) {
	type payment Payment
	return json.Marshal(struct {
		payment
		SettledItemIDs []string `json:"settledItemIds"`
		MenuItemIDs    []string `json:"menuItemIds"`
	}{
		payment:        payment(p),
		SettledItemIDs: p.SettledCartIDs(),
		MenuItemIDs:    p.MenuItemIDs(),
	})
}

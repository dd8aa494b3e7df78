package model

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// InsertResult reports a created record. The shape matches what the web
// client already understands.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult reports how many records an update changed.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports how many records a delete removed.
type DeleteResult struct {
	Acknowledged bool   `json:"acknowledged"`
	DeletedCount int64  `json:"deletedCount"`
	Error        string `json:"error,omitempty"`
}

// AdminStats is the dashboard summary.
type AdminStats struct {
	MenuItems int64           `json:"menuItems"`
	Orders    int64           `json:"orders"`
	Users     int64           `json:"users"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// CategoryStat aggregates purchased menu items for one category.
type CategoryStat struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Settlement reports both steps of recording a payment. CartClearResult may
// be unacknowledged even though the payment was stored.
type Settlement struct {
	PaymentResult   InsertResult `json:"paymentResult"`
	CartClearResult DeleteResult `json:"cartClearResult"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront-api/internal/ordering"
)

type Order struct {
	ID          string          `db:"id" json:"id"`
	OrderNumber string          `db:"order_number" json:"order_number"`
	CustomerID  string          `db:"customer_id" json:"customer_id"`
	Status      ordering.Status `db:"status" json:"status"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
	DeliveryFee decimal.Decimal `db:"delivery_fee" json:"delivery_fee"`
	VATAmount   decimal.Decimal `db:"vat_amount" json:"vat_amount"`
	Total       decimal.Decimal `db:"total" json:"total"`
	Notes       string          `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time      `db:"deleted_at" json:"-"`

	Items []*OrderItem `db:"-" json:"items,omitempty"`
}

type OrderItem struct {
	ID        string          `db:"id" json:"id"`
	OrderID   string          `db:"order_id" json:"order_id"`
	ProductID string          `db:"product_id" json:"product_id"`
	VariantID string          `db:"variant_id" json:"variant_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	LineTotal decimal.Decimal `db:"line_total" json:"line_total"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	DeletedAt *time.Time      `db:"deleted_at" json:"-"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductType string

const (
	ProductTypeSimple   ProductType = "SIMPLE"
	ProductTypeVariable ProductType = "VARIABLE"
)

type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

type Product struct {
	ID               string              `db:"id" json:"id"`
	Slug             string              `db:"slug" json:"slug"`
	SKU              string              `db:"sku" json:"sku"`
	Name             LocalizedText       `db:"name" json:"name"`
	Description      LocalizedText       `db:"description" json:"description,omitempty"`
	ShortDescription LocalizedText       `db:"short_description" json:"short_description,omitempty"`
	BasePrice        decimal.NullDecimal `db:"base_price" json:"base_price,omitempty"`
	Type             ProductType         `db:"type" json:"type"`
	Status           ProductStatus       `db:"status" json:"status"`
	IsBestPrice      bool                `db:"is_best_price" json:"is_best_price"`
	IsExclusive      bool                `db:"is_exclusive" json:"is_exclusive"`
	IsTopSelling     bool                `db:"is_top_selling" json:"is_top_selling"`
	IsNewArrival     bool                `db:"is_new_arrival" json:"is_new_arrival"`
	CreatedBy        string              `db:"created_by" json:"created_by"`
	CreatedAt        time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time           `db:"updated_at" json:"updated_at"`
	DeletedAt        *time.Time          `db:"deleted_at" json:"-"`

	Variants []*ProductVariant `db:"-" json:"variants,omitempty"`
}

type ProductVariant struct {
	ID        string              `db:"id" json:"id"`
	ProductID string              `db:"product_id" json:"product_id"`
	SKU       string              `db:"sku" json:"sku"`
	Name      LocalizedText       `db:"name" json:"name,omitempty"`
	Attrs     Attributes          `db:"attributes" json:"attributes,omitempty"`
	IsPrimary bool                `db:"is_primary" json:"is_primary"`
	Price     decimal.Decimal     `db:"price" json:"price"`
	ListPrice decimal.NullDecimal `db:"list_price" json:"list_price,omitempty"`
	Stock     int                 `db:"stock" json:"stock"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt time.Time           `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time          `db:"deleted_at" json:"-"`
}

type Category struct {
	ID        string        `db:"id" json:"id"`
	Slug      string        `db:"slug" json:"slug"`
	Name      LocalizedText `db:"name" json:"name"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string          `gorm:"column:name;not null" json:"name"`
	Description     string          `gorm:"column:description;type:text;not null" json:"description"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null" json:"price"`
	StockQuantity   int             `gorm:"column:stock_quantity;not null;check:stock_quantity >= 0" json:"stock_quantity"`
	Brand           string          `gorm:"column:brand;not null" json:"brand"`
	IsFeatured      bool            `gorm:"column:is_featured;default:false" json:"is_featured"`
	CategoryID      uuid.UUID       `gorm:"column:category_id;type:uuid;index;not null" json:"category_id"`
	ProductImageID  *uuid.UUID      `gorm:"column:product_image_id;type:uuid" json:"product_image_id"`
	ProductVideoID  *uuid.UUID      `gorm:"column:product_video_id;type:uuid" json:"product_video_id"`
	Weight          float64         `gorm:"column:weight" json:"weight,omitempty"`
	ShippingClass   string          `gorm:"column:shipping_class" json:"shipping_class,omitempty"`
	MetaTitle       string          `gorm:"column:meta_title" json:"meta_title,omitempty"`
	MetaDescription string          `gorm:"column:meta_description" json:"meta_description,omitempty"`
	SeoURL          string          `gorm:"column:seo_url" json:"seo_url,omitempty"`
	CreatedBy       string          `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt       time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedBy       string          `gorm:"column:updated_by;not null" json:"updated_by"`
	UpdatedAt       time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductSummary is the reduced projection served by the selected-properties listing.
type ProductSummary struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Brand         string          `json:"brand"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	IsFeatured    bool            `json:"is_featured"`
}

// ProductDetail is a product joined with its category and primary media.
// A missing linked record is nil and renders as null.
type ProductDetail struct {
	Product
	Category *Category     `json:"category"`
	Image    *ProductImage `json:"product_image"`
	Video    *ProductVideo `json:"product_video"`
}

type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;index;not null" json:"product_id"`
	ImageURL  string    `gorm:"column:image_url;not null" json:"image_url"`
	IsPrimary bool      `gorm:"column:is_primary;default:false" json:"is_primary"`
	CreatedBy string    `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedBy string    `gorm:"column:updated_by" json:"updated_by,omitempty"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

type ProductVideo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;index;not null" json:"product_id"`
	VideoURL  string    `gorm:"column:video_url;not null" json:"video_url"`
	IsPrimary bool      `gorm:"column:is_primary;default:false" json:"is_primary"`
	CreatedBy string    `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedBy string    `gorm:"column:updated_by" json:"updated_by,omitempty"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ProductVideo) TableName() string {
	return "product_videos"
}

// ProductFilter narrows product listings. Zero values mean no restriction.
type ProductFilter struct {
	CategoryIDs  []uuid.UUID
	FeaturedOnly bool
	Limit        int
}

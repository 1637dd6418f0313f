package domain

import (
	"time"

	"github.com/cartstream/analytics-sync/pkg/database"
)

// ProductModel is the parent analytics row for the product aggregate.
// supplier_name is a snapshot captured at product creation and is never
// refreshed from the supplier aggregate.
type ProductModel struct {
	ProductID        string  `gorm:"column:product_id;type:varchar(24);primaryKey"`
	SupplierID       string  `gorm:"column:supplier_id;type:varchar(24);not null;index:idx_products_supplier"`
	SupplierName     *string `gorm:"type:varchar(200)"`
	Name             string  `gorm:"type:varchar(200);not null"`
	ShortDescription *string `gorm:"type:varchar(500)"`
	Category         string  `gorm:"type:varchar(50);not null;index:idx_products_category"`
	UnitType         string  `gorm:"type:varchar(20);not null"`
	BaseSKU          *string `gorm:"column:base_sku;type:varchar(100)"`
	Brand            *string `gorm:"type:varchar(100)"`
	BasePriceCents   int     `gorm:"not null"`
	Status           string  `gorm:"type:varchar(20);not null;index:idx_products_status"`
	ViewCount        int     `gorm:"default:0"`
	FavoriteCount    int     `gorm:"default:0"`
	PurchaseCount    int     `gorm:"default:0"`
	TotalReviews     int     `gorm:"default:0"`

	PublishedAt *time.Time `gorm:"precision:6"`
	CreatedAt   time.Time  `gorm:"precision:6;not null;index:idx_products_created;autoCreateTime:false"`
	UpdatedAt   time.Time  `gorm:"precision:6;not null;autoUpdateTime:false"`

	EventID        *string    `gorm:"column:event_id;type:varchar(36)"`
	EventTimestamp *time.Time `gorm:"precision:6"`
}

// TableName specifies the table name for ProductModel.
func (ProductModel) TableName() string {
	return "products"
}

// ProductVariantModel mirrors one entry of the product's keyed variant
// collection. Rows carry a surrogate key; (product_id, variant_key) is the
// natural identity, and the FK cascades on parent deletion.
type ProductVariantModel struct {
	ID          uint             `gorm:"primaryKey;autoIncrement"`
	ProductID   string           `gorm:"column:product_id;type:varchar(24);not null;uniqueIndex:uq_product_variant,priority:1;index:idx_variants_product"`
	VariantKey  string           `gorm:"type:varchar(200);not null;uniqueIndex:uq_product_variant,priority:2"`
	VariantID   string           `gorm:"column:variant_id;type:varchar(100);not null"`
	VariantName string           `gorm:"type:varchar(200);not null"`
	Attributes  database.JSONMap `gorm:"column:attributes_json"`
	PriceCents  int              `gorm:"not null"`
	CostCents   *int
	Quantity    int      `gorm:"default:0"`
	WidthCM     *float64 `gorm:"column:width_cm"`
	HeightCM    *float64 `gorm:"column:height_cm"`
	DepthCM     *float64 `gorm:"column:depth_cm"`
	ImageURL    *string  `gorm:"column:image_url;type:text"`

	Product *ProductModel `gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for ProductVariantModel.
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

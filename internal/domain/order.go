package domain

import (
	"time"

	"github.com/cartstream/analytics-sync/pkg/database"
)

// OrderModel is the parent analytics row for the order aggregate. Customer
// and shipping columns are snapshots frozen at order time.
type OrderModel struct {
	OrderID               string  `gorm:"column:order_id;type:varchar(24);primaryKey"`
	OrderNumber           string  `gorm:"type:varchar(50);not null;uniqueIndex:uq_order_number"`
	CustomerUserID        string  `gorm:"column:customer_user_id;type:varchar(24);not null;index:idx_orders_customer"`
	CustomerDisplayName   *string `gorm:"type:varchar(200)"`
	CustomerEmail         *string `gorm:"type:varchar(255)"`
	CustomerPhone         *string `gorm:"type:varchar(50)"`
	ShippingRecipientName *string `gorm:"type:varchar(200)"`
	ShippingPhone         *string `gorm:"type:varchar(50)"`
	ShippingStreet1       *string `gorm:"column:shipping_street_1;type:varchar(200)"`
	ShippingStreet2       *string `gorm:"column:shipping_street_2;type:varchar(200)"`
	ShippingCity          *string `gorm:"type:varchar(100)"`
	ShippingState         *string `gorm:"type:varchar(100)"`
	ShippingZipCode       *string `gorm:"type:varchar(20)"`
	ShippingCountry       *string `gorm:"type:varchar(2)"`
	Status                string  `gorm:"type:varchar(20);not null;index:idx_orders_status"`

	CreatedAt time.Time `gorm:"precision:6;not null;index:idx_orders_created;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"precision:6;not null;autoUpdateTime:false"`

	EventID        *string    `gorm:"column:event_id;type:varchar(36)"`
	EventTimestamp *time.Time `gorm:"precision:6"`
}

// TableName specifies the table name for OrderModel.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is one line item of an order. Snapshot and pricing columns
// are written once at order creation; only the fulfillment block below them
// is ever updated afterwards.
type OrderItemModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	OrderID    string `gorm:"column:order_id;type:varchar(24);not null;uniqueIndex:uq_order_item,priority:1;index:idx_items_order"`
	ItemID     string `gorm:"column:item_id;type:varchar(50);not null;uniqueIndex:uq_order_item,priority:2"`
	ProductID  string `gorm:"column:product_id;type:varchar(24);not null;index:idx_items_product"`
	SupplierID string `gorm:"column:supplier_id;type:varchar(24);not null"`

	ProductName       *string          `gorm:"type:varchar(200)"`
	VariantName       *string          `gorm:"type:varchar(200)"`
	VariantAttributes database.JSONMap `gorm:"column:variant_attributes_json"`
	ImageURL          *string          `gorm:"column:image_url;type:text"`
	SupplierName      *string          `gorm:"type:varchar(200)"`

	Quantity        int `gorm:"not null"`
	UnitPriceCents  int `gorm:"not null"`
	FinalPriceCents int `gorm:"not null"`
	TotalCents      int `gorm:"not null"`

	FulfillmentStatus *string    `gorm:"type:varchar(20)"`
	ShippedQuantity   int        `gorm:"default:0"`
	TrackingNumber    *string    `gorm:"type:varchar(100)"`
	Carrier           *string    `gorm:"type:varchar(100)"`
	ShippedAt         *time.Time `gorm:"precision:6"`
	DeliveredAt       *time.Time `gorm:"precision:6"`

	Order *OrderModel `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for OrderItemModel.
func (OrderItemModel) TableName() string {
	return "order_items"
}

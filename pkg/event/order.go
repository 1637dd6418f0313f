package event

// OrderPayload is the full order aggregate. Both order.created and
// order.cancelled carry it; items freeze a product snapshot at purchase
// time and are never replaced wholesale afterwards.
type OrderPayload struct {
	OrderID         string          `json:"order_id"`
	OrderNumber     string          `json:"order_number"`
	Customer        OrderCustomer   `json:"customer"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       Time            `json:"created_at"`
	UpdatedAt       Time            `json:"updated_at"`
}

// OrderCustomer is the customer snapshot denormalized from the user
// aggregate at order time.
type OrderCustomer struct {
	UserID      string  `json:"user_id"`
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
}

type ShippingAddress struct {
	RecipientName  *string `json:"recipient_name"`
	Phone          *string `json:"phone"`
	StreetAddress1 *string `json:"street_address_1"`
	StreetAddress2 *string `json:"street_address_2"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	ZipCode        *string `json:"zip_code"`
	Country        *string `json:"country"`
}

type OrderItem struct {
	ItemID          string          `json:"item_id"`
	ProductSnapshot ProductSnapshot `json:"product_snapshot"`
	Quantity        int             `json:"quantity"`
	UnitPriceCents  int             `json:"unit_price_cents"`
	FinalPriceCents int             `json:"final_price_cents"`
	TotalCents      int             `json:"total_cents"`

	// Mutable fulfillment fields; everything above is frozen at creation.
	FulfillmentStatus *string `json:"fulfillment_status"`
	ShippedQuantity   int     `json:"shipped_quantity"`
	TrackingNumber    *string `json:"tracking_number"`
	Carrier           *string `json:"carrier"`
	ShippedAt         Time    `json:"shipped_at"`
	DeliveredAt       Time    `json:"delivered_at"`
}

// ProductSnapshot is the product state captured at purchase time.
type ProductSnapshot struct {
	ProductID         string            `json:"product_id"`
	SupplierID        string            `json:"supplier_id"`
	ProductName       *string           `json:"product_name"`
	VariantName       *string           `json:"variant_name"`
	VariantAttributes map[string]string `json:"variant_attributes"`
	ImageURL          *string           `json:"image_url"`
	SupplierName      *string           `json:"supplier_name"`
}

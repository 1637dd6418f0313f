package event

// ProductPayload is the full product aggregate carried by every product
// lifecycle event except product.deleted. Variants are a keyed collection;
// the key set can grow, shrink or rename between events.
type ProductPayload struct {
	ProductID        string                    `json:"product_id"`
	SupplierID       string                    `json:"supplier_id"`
	SupplierInfo     SupplierInfo              `json:"supplier_info"`
	Name             string                    `json:"name"`
	ShortDescription *string                   `json:"short_description"`
	Category         string                    `json:"category"`
	UnitType         string                    `json:"unit_type"`
	Metadata         ProductMetadata           `json:"metadata"`
	BasePriceCents   int                       `json:"base_price_cents"`
	Status           string                    `json:"status"`
	Stats            ProductStats              `json:"stats"`
	Variants         map[string]ProductVariant `json:"variants"`
	PublishedAt      Time                      `json:"published_at"`
	CreatedAt        Time                      `json:"created_at"`
	UpdatedAt        Time                      `json:"updated_at"`
}

// SupplierInfo is the supplier snapshot denormalized onto the product at
// creation time. Never refreshed from the supplier aggregate.
type SupplierInfo struct {
	Name *string `json:"name"`
}

type ProductMetadata struct {
	BaseSKU *string `json:"base_sku"`
	Brand   *string `json:"brand"`
}

type ProductStats struct {
	ViewCount     int `json:"view_count"`
	FavoriteCount int `json:"favorite_count"`
	PurchaseCount int `json:"purchase_count"`
	TotalReviews  int `json:"total_reviews"`
}

type ProductVariant struct {
	VariantID         string             `json:"variant_id"`
	VariantName       string             `json:"variant_name"`
	Attributes        []VariantAttribute `json:"attributes"`
	PriceCents        int                `json:"price_cents"`
	CostCents         *int               `json:"cost_cents"`
	Quantity          int                `json:"quantity"`
	PackageDimensions *PackageDimensions `json:"package_dimensions"`
	ImageURL          *string            `json:"image_url"`
}

type VariantAttribute struct {
	Name  string `json:"attribute_name"`
	Value string `json:"attribute_value"`
}

type PackageDimensions struct {
	WidthCM  *float64 `json:"width_cm"`
	HeightCM *float64 `json:"height_cm"`
	DepthCM  *float64 `json:"depth_cm"`
}

// ProductRef is the minimal payload carried by product.deleted.
type ProductRef struct {
	ProductID string `json:"product_id"`
}

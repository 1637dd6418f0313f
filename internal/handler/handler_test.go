package handler

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cartstream/analytics-sync/internal/domain"
	"github.com/cartstream/analytics-sync/internal/repository"
	"github.com/cartstream/analytics-sync/pkg/database"
	"github.com/cartstream/analytics-sync/pkg/event"
)

type fixture struct {
	db       *gorm.DB
	registry Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "replica.db") + "?_foreign_keys=on"
	db, err := database.New(&database.Config{Driver: "sqlite", FilePath: dsn})
	require.NoError(t, err)
	require.NoError(t, repository.Bootstrap(db))

	registry, err := NewRegistry(
		repository.NewGormUserRepository(db),
		repository.NewGormSupplierRepository(db),
		repository.NewGormProductRepository(db),
		repository.NewGormOrderRepository(db),
		repository.NewGormPostRepository(db),
	)
	require.NoError(t, err)

	return &fixture{db: db, registry: registry}
}

// apply decodes a raw envelope and runs it through the dispatch table the
// way the consumer loop would.
func (f *fixture) apply(t *testing.T, raw string) error {
	t.Helper()

	env, err := event.Decode([]byte(raw))
	require.NoError(t, err)
	fn, ok := f.registry[env.Type]
	require.True(t, ok, "no handler for %s", env.Type)
	return fn(context.Background(), env)
}

func envelope(eventType, eventID, entityID, data string) string {
	return fmt.Sprintf(`{
		"event_type": %q,
		"event_id": %q,
		"entity_id": %q,
		"timestamp": "2026-03-01T12:00:00+00:00",
		"data": %s
	}`, eventType, eventID, entityID, data)
}

func TestRegistryCoversEveryEventType(t *testing.T) {
	f := newFixture(t)
	for _, typ := range event.Types() {
		assert.Contains(t, f.registry, typ)
	}
	assert.Len(t, f.registry, len(event.Types()))
}

func TestUserLifecycle(t *testing.T) {
	f := newFixture(t)

	created := envelope("user.created", "evt-1", "u1", `{
		"user_id": "u1",
		"email": "ada@example.com",
		"profile": {"display_name": "Ada", "bio": "pioneer"},
		"version": 1,
		"created_at": "2026-03-01T10:00:00+00:00"
	}`)
	require.NoError(t, f.apply(t, created))

	var row domain.UserModel
	require.NoError(t, f.db.First(&row, "user_id = ?", "u1").Error)
	assert.Equal(t, "ada@example.com", row.Email)
	assert.Equal(t, "Ada", row.DisplayName)
	require.NotNil(t, row.EventID)
	assert.Equal(t, "evt-1", *row.EventID)
	// updated_at falls back to created_at when the producer omits it.
	assert.True(t, row.UpdatedAt.Equal(row.CreatedAt))

	updated := envelope("user.updated", "evt-2", "u1", `{
		"user_id": "u1",
		"email": "ada@newmail.example.com",
		"profile": {"display_name": "Ada L."},
		"version": 2,
		"created_at": "2026-03-01T10:00:00+00:00",
		"updated_at": "2026-03-02T10:00:00+00:00"
	}`)
	require.NoError(t, f.apply(t, updated))

	require.NoError(t, f.db.First(&row, "user_id = ?", "u1").Error)
	assert.Equal(t, "ada@newmail.example.com", row.Email)
	assert.Equal(t, "Ada L.", row.DisplayName)
	assert.Equal(t, 2, row.Version)

	deleted := envelope("user.deleted", "evt-3", "u1", `{"user_id": "u1"}`)
	require.NoError(t, f.apply(t, deleted))

	require.NoError(t, f.db.First(&row, "user_id = ?", "u1").Error)
	require.NotNil(t, row.DeletedAt)
	assert.Equal(t, "ada@newmail.example.com", row.Email, "soft delete keeps row data")
}

func TestUserCreatedMissingRequiredFields(t *testing.T) {
	f := newFixture(t)

	raw := envelope("user.created", "evt-1", "u1", `{
		"user_id": "u1",
		"profile": {"display_name": "Ada"},
		"created_at": "2026-03-01T10:00:00+00:00"
	}`)
	assert.Error(t, f.apply(t, raw), "missing email must fail")

	var n int64
	require.NoError(t, f.db.Model(&domain.UserModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUserDeletedFallsBackToEntityID(t *testing.T) {
	f := newFixture(t)

	created := envelope("user.created", "evt-1", "u1", `{
		"email": "ada@example.com",
		"profile": {"display_name": "Ada"},
		"created_at": "2026-03-01T10:00:00+00:00"
	}`)
	require.NoError(t, f.apply(t, created))

	// Minimal delete payload without the nested id.
	deleted := envelope("user.deleted", "evt-2", "u1", `{}`)
	require.NoError(t, f.apply(t, deleted))

	var row domain.UserModel
	require.NoError(t, f.db.First(&row, "user_id = ?", "u1").Error)
	assert.NotNil(t, row.DeletedAt)
}

func TestSupplierLifecycle(t *testing.T) {
	f := newFixture(t)

	created := envelope("supplier.created", "evt-1", "s1", `{
		"email": "sales@acme.example.com",
		"contact_info": {
			"primary_phone": "+15550001111",
			"contact_person": {"name": "Grace", "title": "CEO"},
			"support_email": "support@acme.example.com"
		},
		"company_info": {
			"legal_name": "Acme Goods LLC",
			"dba_name": "Acme",
			"business_address": {"city": "Portland", "state": "OR", "country": "US"}
		},
		"social_media": {"instagram_handle": "acmegoods"},
		"timezone": "America/Los_Angeles",
		"created_at": "2026-03-01T10:00:00+00:00"
	}`)
	require.NoError(t, f.apply(t, created))

	var row domain.SupplierModel
	require.NoError(t, f.db.First(&row, "supplier_id = ?", "s1").Error)
	assert.Equal(t, "Acme Goods LLC", row.LegalName)
	assert.Equal(t, "Grace", *row.ContactPersonName)
	assert.Equal(t, "Portland", *row.City)
	assert.Equal(t, "acmegoods", *row.InstagramHandle)

	deleted := envelope("supplier.deleted", "evt-2", "s1", `{"supplier_id": "s1"}`)
	require.NoError(t, f.apply(t, deleted))

	var n int64
	require.NoError(t, f.db.Model(&domain.SupplierModel{}).Count(&n).Error)
	assert.Zero(t, n, "supplier delete is a hard delete")
}

const productWithTwoVariants = `{
	"supplier_id": "s1",
	"supplier_info": {"name": "Acme"},
	"name": "Widget",
	"category": "hardware",
	"unit_type": "piece",
	"metadata": {"base_sku": "WID", "brand": "Acme"},
	"base_price_cents": 1999,
	"status": "active",
	"stats": {"view_count": 7, "purchase_count": 2},
	"variants": {
		"small": {
			"variant_id": "var-s",
			"variant_name": "Small",
			"attributes": [{"attribute_name": "size", "attribute_value": "S"}],
			"price_cents": 1999,
			"quantity": 10,
			"package_dimensions": {"width_cm": 10.5, "height_cm": 4.0, "depth_cm": 2.0}
		},
		"large": {
			"variant_id": "var-l",
			"variant_name": "Large",
			"attributes": [{"attribute_name": "size", "attribute_value": "L"}],
			"price_cents": 2999,
			"quantity": 3
		}
	},
	"created_at": "2026-03-01T10:00:00+00:00"
}`

func TestProductLifecycle(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.apply(t, envelope("product.created", "evt-1", "p1", productWithTwoVariants)))

	var row domain.ProductModel
	require.NoError(t, f.db.First(&row, "product_id = ?", "p1").Error)
	assert.Equal(t, "s1", row.SupplierID)
	assert.Equal(t, "WID", *row.BaseSKU)
	assert.Equal(t, 7, row.ViewCount)

	var variants []domain.ProductVariantModel
	require.NoError(t, f.db.Where("product_id = ?", "p1").Order("variant_key").Find(&variants).Error)
	require.Len(t, variants, 2)
	assert.Equal(t, "large", variants[0].VariantKey)
	assert.Equal(t, "small", variants[1].VariantKey)
	assert.Equal(t, map[string]string{"size": "S"}, map[string]string(variants[1].Attributes))
	require.NotNil(t, variants[1].WidthCM)
	assert.InDelta(t, 10.5, *variants[1].WidthCM, 0.001)
	assert.Nil(t, variants[0].WidthCM)

	// A later event with one variant replaces the collection.
	oneVariant := `{
		"supplier_id": "s1",
		"name": "Widget",
		"category": "hardware",
		"unit_type": "piece",
		"base_price_cents": 1999,
		"status": "out_of_stock",
		"variants": {
			"small": {"variant_id": "var-s", "variant_name": "Small", "price_cents": 1999, "quantity": 0}
		},
		"created_at": "2026-03-01T10:00:00+00:00",
		"updated_at": "2026-03-04T10:00:00+00:00"
	}`
	require.NoError(t, f.apply(t, envelope("product.out_of_stock", "evt-2", "p1", oneVariant)))

	require.NoError(t, f.db.First(&row, "product_id = ?", "p1").Error)
	assert.Equal(t, "out_of_stock", row.Status)

	require.NoError(t, f.db.Where("product_id = ?", "p1").Find(&variants).Error)
	require.Len(t, variants, 1)
	assert.Equal(t, "small", variants[0].VariantKey)

	require.NoError(t, f.apply(t, envelope("product.deleted", "evt-3", "p1", `{"product_id": "p1"}`)))

	var n int64
	require.NoError(t, f.db.Model(&domain.ProductModel{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, f.db.Model(&domain.ProductVariantModel{}).Count(&n).Error)
	assert.Zero(t, n, "variants cascade with the parent")
}

func TestOrderLifecycle(t *testing.T) {
	f := newFixture(t)

	created := envelope("order.created", "evt-1", "o1", `{
		"order_number": "ORD-1001",
		"customer": {"user_id": "u1", "display_name": "Ada"},
		"shipping_address": {"recipient_name": "Ada", "city": "Portland", "country": "US"},
		"status": "paid",
		"items": [
			{
				"item_id": "item-1",
				"product_snapshot": {
					"product_id": "p1",
					"supplier_id": "s1",
					"product_name": "Widget",
					"variant_attributes": {"size": "S"}
				},
				"quantity": 2,
				"unit_price_cents": 1999,
				"final_price_cents": 1799,
				"total_cents": 3598
			}
		],
		"created_at": "2026-03-01T10:00:00+00:00"
	}`)
	require.NoError(t, f.apply(t, created))

	var items []domain.OrderItemModel
	require.NoError(t, f.db.Where("order_id = ?", "o1").Find(&items).Error)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].FulfillmentStatus)
	assert.Equal(t, "pending", *items[0].FulfillmentStatus, "omitted fulfillment status defaults")
	assert.Equal(t, "Widget", *items[0].ProductName)

	cancelled := envelope("order.cancelled", "evt-2", "o1", `{
		"order_number": "ORD-1001",
		"customer": {"user_id": "u1"},
		"status": "cancelled",
		"created_at": "2026-03-01T10:00:00+00:00"
	}`)
	require.NoError(t, f.apply(t, cancelled))

	var row domain.OrderModel
	require.NoError(t, f.db.First(&row, "order_id = ?", "o1").Error)
	assert.Equal(t, "cancelled", row.Status)
	require.NotNil(t, row.EventID)
	assert.Equal(t, "evt-2", *row.EventID)
}

func TestOrderCancelledMissingOrderNumber(t *testing.T) {
	f := newFixture(t)

	raw := envelope("order.cancelled", "evt-1", "o1", `{"customer": {"user_id": "u1"}}`)
	assert.Error(t, f.apply(t, raw))
}

func TestPostLifecycle(t *testing.T) {
	f := newFixture(t)

	created := envelope("post.created", "evt-1", "po1", `{
		"post_type": "image",
		"author": {"user_id": "u1", "display_name": "Ada", "author_type": "user"},
		"text_content": "look at this",
		"media": [
			{"media_type": "image", "media_url": "https://cdn.example.com/1.jpg", "width": 800, "height": 600}
		],
		"link_preview": {"url": "https://example.com", "title": "Example"},
		"stats": {"view_count": 3, "like_count": 1, "engagement_rate": 0.33},
		"created_at": "2026-03-01T10:00:00+00:00"
	}`)
	require.NoError(t, f.apply(t, created))

	var row domain.PostModel
	require.NoError(t, f.db.First(&row, "post_id = ?", "po1").Error)
	assert.Equal(t, "image", row.PostType)
	assert.Equal(t, "u1", row.AuthorUserID)
	require.NotNil(t, row.MediaJSON)
	assert.Contains(t, *row.MediaJSON, "cdn.example.com/1.jpg")
	assert.Equal(t, "https://example.com", *row.LinkURL)
	assert.InDelta(t, 0.33, row.EngagementRate, 0.001)
	assert.Nil(t, row.PublishedAt)

	published := envelope("post.published", "evt-2", "po1", `{
		"post_type": "image",
		"author": {"user_id": "u1"},
		"text_content": "look at this",
		"stats": {"view_count": 3},
		"published_at": "2026-03-02T09:00:00+00:00",
		"created_at": "2026-03-01T10:00:00+00:00",
		"updated_at": "2026-03-02T09:00:00+00:00"
	}`)
	require.NoError(t, f.apply(t, published))

	require.NoError(t, f.db.First(&row, "post_id = ?", "po1").Error)
	require.NotNil(t, row.PublishedAt)
	assert.Nil(t, row.MediaJSON, "full upsert mirrors the latest aggregate state")

	deleted := envelope("post.deleted", "evt-3", "po1", `{"post_id": "po1"}`)
	require.NoError(t, f.apply(t, deleted))

	require.NoError(t, f.db.First(&row, "post_id = ?", "po1").Error)
	assert.NotNil(t, row.DeletedAt)
}

func TestReplayedEnvelopeIsIdempotent(t *testing.T) {
	f := newFixture(t)

	raw := envelope("product.created", "evt-1", "p1", productWithTwoVariants)
	require.NoError(t, f.apply(t, raw))
	require.NoError(t, f.apply(t, raw))

	var n int64
	require.NoError(t, f.db.Model(&domain.ProductModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	require.NoError(t, f.db.Model(&domain.ProductVariantModel{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

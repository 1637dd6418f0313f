package handler

import (
	"context"
	"fmt"
	"sort"

	"github.com/cartstream/analytics-sync/internal/domain"
	"github.com/cartstream/analytics-sync/internal/repository"
	"github.com/cartstream/analytics-sync/pkg/database"
	"github.com/cartstream/analytics-sync/pkg/event"
	"github.com/cartstream/analytics-sync/pkg/log"
)

// ProductHandler flattens product events into the products and
// product_variants tables.
type ProductHandler struct {
	repo *repository.GormProductRepository
}

// NewProductHandler creates the product handler set.
func NewProductHandler(repo *repository.GormProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// Handlers returns the event-kind mapping for the product domain. Every
// lifecycle kind carries the full aggregate and shares the upsert routine;
// the emitted event type is what distinguishes them in the trace log.
func (h *ProductHandler) Handlers() Registry {
	return Registry{
		event.ProductCreated:      h.handleUpsert,
		event.ProductUpdated:      h.handleUpsert,
		event.ProductPublished:    h.handleUpsert,
		event.ProductDiscontinued: h.handleUpsert,
		event.ProductOutOfStock:   h.handleUpsert,
		event.ProductRestored:     h.handleUpsert,
		event.ProductDeleted:      h.handleDeleted,
	}
}

func (h *ProductHandler) handleUpsert(ctx context.Context, env *event.Envelope) error {
	var p event.ProductPayload
	if err := env.DecodeData(&p); err != nil {
		return err
	}
	if p.SupplierID == "" || p.Name == "" || p.Category == "" || p.UnitType == "" || p.Status == "" || p.CreatedAt.IsZero() {
		return fmt.Errorf("product payload for %s missing required fields", env.EntityID)
	}

	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = p.CreatedAt
	}

	row := &domain.ProductModel{
		ProductID:        env.EntityID,
		SupplierID:       p.SupplierID,
		SupplierName:     p.SupplierInfo.Name,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		Category:         p.Category,
		UnitType:         p.UnitType,
		BaseSKU:          p.Metadata.BaseSKU,
		Brand:            p.Metadata.Brand,
		BasePriceCents:   p.BasePriceCents,
		Status:           p.Status,
		ViewCount:        p.Stats.ViewCount,
		FavoriteCount:    p.Stats.FavoriteCount,
		PurchaseCount:    p.Stats.PurchaseCount,
		TotalReviews:     p.Stats.TotalReviews,
		PublishedAt:      p.PublishedAt.Ptr(),
		CreatedAt:        p.CreatedAt.UTC(),
		UpdatedAt:        updatedAt.UTC(),
		EventID:          eventIDPtr(env),
		EventTimestamp:   env.Timestamp.Ptr(),
	}
	if err := h.repo.Upsert(ctx, row); err != nil {
		return err
	}

	// The parent write precedes the children write; the pair is not one
	// transaction, so a reader racing between them can briefly observe the
	// previous variant set.
	variants := flattenVariants(env.EntityID, p.Variants)
	if err := h.repo.ReplaceVariants(ctx, env.EntityID, variants); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str(log.FieldEventType, string(env.Type)).
		Str(log.FieldEntityID, env.EntityID).
		Str("status", p.Status).
		Int("variants", len(variants)).
		Msg("product row upserted")
	return nil
}

func (h *ProductHandler) handleDeleted(ctx context.Context, env *event.Envelope) error {
	var ref event.ProductRef
	if err := env.DecodeData(&ref); err != nil {
		return err
	}
	productID := ref.ProductID
	if productID == "" {
		productID = env.EntityID
	}

	// Variants go with the parent via the FK cascade.
	if err := h.repo.Delete(ctx, productID); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str(log.FieldEventType, string(env.Type)).
		Str(log.FieldEntityID, productID).
		Msg("product row deleted")
	return nil
}

// flattenVariants turns the keyed variant collection into child rows,
// sorted by key for deterministic insert order. Optional sub-objects
// (package dimensions, attributes) degrade to nulls.
func flattenVariants(productID string, variants map[string]event.ProductVariant) []domain.ProductVariantModel {
	keys := make([]string, 0, len(variants))
	for key := range variants {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]domain.ProductVariantModel, 0, len(variants))
	for _, key := range keys {
		v := variants[key]

		var attrs database.JSONMap
		if len(v.Attributes) > 0 {
			attrs = make(database.JSONMap, len(v.Attributes))
			for _, a := range v.Attributes {
				attrs[a.Name] = a.Value
			}
		}

		row := domain.ProductVariantModel{
			ProductID:   productID,
			VariantKey:  key,
			VariantID:   v.VariantID,
			VariantName: v.VariantName,
			Attributes:  attrs,
			PriceCents:  v.PriceCents,
			CostCents:   v.CostCents,
			Quantity:    v.Quantity,
			ImageURL:    v.ImageURL,
		}
		if dims := v.PackageDimensions; dims != nil {
			row.WidthCM = dims.WidthCM
			row.HeightCM = dims.HeightCM
			row.DepthCM = dims.DepthCM
		}
		rows = append(rows, row)
	}
	return rows
}

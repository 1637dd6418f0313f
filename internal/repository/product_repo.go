package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cartstream/analytics-sync/internal/domain"
	"github.com/cartstream/analytics-sync/pkg/log"
)

// productUpsertColumns excludes product_id, supplier_id and created_at:
// the id and the owning supplier are immutable, and created_at must survive
// replays.
var productUpsertColumns = []string{
	"supplier_name", "name", "short_description", "category", "unit_type",
	"base_sku", "brand", "base_price_cents", "status",
	"view_count", "favorite_count", "purchase_count", "total_reviews",
	"published_at", "updated_at", "event_id", "event_timestamp",
}

// GormProductRepository writes the products and product_variants tables.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Upsert inserts the parent row or updates it on primary-key conflict.
func (r *GormProductRepository) Upsert(ctx context.Context, row *domain.ProductModel) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns(productUpsertColumns),
	}).Create(row).Error
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldEntityID, row.ProductID).Msg("failed to upsert product")
		return fmt.Errorf("failed to upsert product %s: %w", row.ProductID, err)
	}
	return nil
}

// ReplaceVariants deletes every existing variant row of the product and
// inserts one row per current collection entry. Delete-then-insert rather
// than per-row upsert because the variant key set can shrink or rename
// between events. The pair runs in one transaction so readers never observe
// a half-replaced collection; the parent upsert remains a separate call.
func (r *GormProductRepository) ReplaceVariants(ctx context.Context, productID string, variants []domain.ProductVariantModel) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&domain.ProductVariantModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear variants: %w", err)
		}
		if len(variants) == 0 {
			return nil
		}
		if err := tx.Create(&variants).Error; err != nil {
			return fmt.Errorf("failed to insert variants: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldEntityID, productID).Msg("failed to replace variants")
		return fmt.Errorf("failed to replace variants of product %s: %w", productID, err)
	}
	return nil
}

// Delete removes the product row; the foreign key cascades the delete to
// its variant rows.
func (r *GormProductRepository) Delete(ctx context.Context, productID string) error {
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&domain.ProductModel{})
	if res.Error != nil {
		log.Ctx(ctx).Error().Err(res.Error).Str(log.FieldEntityID, productID).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product %s: %w", productID, res.Error)
	}
	return nil
}

// GetByID returns the parent row.
func (r *GormProductRepository) GetByID(ctx context.Context, productID string) (*domain.ProductModel, error) {
	var row domain.ProductModel
	err := r.db.WithContext(ctx).First(&row, "product_id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	return &row, nil
}

// ListVariants returns the variant rows of a product ordered by key.
func (r *GormProductRepository) ListVariants(ctx context.Context, productID string) ([]domain.ProductVariantModel, error) {
	var rows []domain.ProductVariantModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("variant_key").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list variants of product %s: %w", productID, err)
	}
	return rows, nil
}

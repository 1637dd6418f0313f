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

var supplierUpsertColumns = []string{
	"email", "primary_phone",
	"contact_person_name", "contact_person_title", "contact_person_email", "contact_person_phone",
	"legal_name", "dba_name",
	"street_address_1", "street_address_2", "city", "state", "zip_code", "country",
	"support_email", "support_phone",
	"facebook_url", "instagram_handle", "twitter_handle", "linkedin_url",
	"timezone", "updated_at", "event_id", "event_timestamp",
}

// GormSupplierRepository writes the suppliers table.
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GORM-based supplier repository.
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// Upsert inserts the row or, on primary-key conflict, updates every column
// except supplier_id and created_at.
func (r *GormSupplierRepository) Upsert(ctx context.Context, row *domain.SupplierModel) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "supplier_id"}},
		DoUpdates: clause.AssignmentColumns(supplierUpsertColumns),
	}).Create(row).Error
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldEntityID, row.SupplierID).Msg("failed to upsert supplier")
		return fmt.Errorf("failed to upsert supplier %s: %w", row.SupplierID, err)
	}
	return nil
}

// Delete removes the supplier row outright.
func (r *GormSupplierRepository) Delete(ctx context.Context, supplierID string) error {
	res := r.db.WithContext(ctx).Where("supplier_id = ?", supplierID).Delete(&domain.SupplierModel{})
	if res.Error != nil {
		log.Ctx(ctx).Error().Err(res.Error).Str(log.FieldEntityID, supplierID).Msg("failed to delete supplier")
		return fmt.Errorf("failed to delete supplier %s: %w", supplierID, res.Error)
	}
	return nil
}

// GetByID returns the supplier row.
func (r *GormSupplierRepository) GetByID(ctx context.Context, supplierID string) (*domain.SupplierModel, error) {
	var row domain.SupplierModel
	err := r.db.WithContext(ctx).First(&row, "supplier_id = ?", supplierID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get supplier %s: %w", supplierID, err)
	}
	return &row, nil
}

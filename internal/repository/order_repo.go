package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cartstream/analytics-sync/internal/domain"
	"github.com/cartstream/analytics-sync/pkg/log"
)

// Orders are snapshot-preserving: on conflict only the lifecycle and
// bookkeeping columns move. Customer, shipping and created_at columns are
// frozen at first insert and excluded from the update set.
var orderUpsertColumns = []string{
	"status", "updated_at", "event_id", "event_timestamp",
}

// Item snapshot and pricing columns never appear here; replays cannot
// corrupt frozen values.
var orderItemUpsertColumns = []string{
	"fulfillment_status", "shipped_quantity",
	"tracking_number", "carrier", "shipped_at", "delivered_at",
}

// GormOrderRepository writes the orders and order_items tables.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM-based order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Upsert inserts the order or, on conflict, selectively updates lifecycle
// and bookkeeping columns only.
func (r *GormOrderRepository) Upsert(ctx context.Context, row *domain.OrderModel) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns(orderUpsertColumns),
	}).Create(row).Error
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldEntityID, row.OrderID).Msg("failed to upsert order")
		return fmt.Errorf("failed to upsert order %s: %w", row.OrderID, err)
	}
	return nil
}

// UpsertItems inserts line items on first sight and selectively updates
// only their fulfillment block on (order_id, item_id) conflict. Items are
// never replaced wholesale.
func (r *GormOrderRepository) UpsertItems(ctx context.Context, items []domain.OrderItemModel) error {
	if len(items) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns(orderItemUpsertColumns),
	}).Create(&items).Error
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldEntityID, items[0].OrderID).Msg("failed to upsert order items")
		return fmt.Errorf("failed to upsert items of order %s: %w", items[0].OrderID, err)
	}
	return nil
}

// Cancel marks the order cancelled. The reference write keys on the
// human-readable order number, not the primary key.
func (r *GormOrderRepository) Cancel(ctx context.Context, orderNumber string, eventID *string, eventTS *time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.OrderModel{}).
		Where("order_number = ?", orderNumber).
		Updates(map[string]interface{}{
			"status":          "cancelled",
			"event_id":        eventID,
			"event_timestamp": eventTS,
		})
	if res.Error != nil {
		log.Ctx(ctx).Error().Err(res.Error).Str("order_number", orderNumber).Msg("failed to cancel order")
		return fmt.Errorf("failed to cancel order %s: %w", orderNumber, res.Error)
	}
	if res.RowsAffected == 0 {
		log.Ctx(ctx).Warn().Str("order_number", orderNumber).Msg("cancel matched no order row")
	}
	return nil
}

// GetByID returns the parent row.
func (r *GormOrderRepository) GetByID(ctx context.Context, orderID string) (*domain.OrderModel, error) {
	var row domain.OrderModel
	err := r.db.WithContext(ctx).First(&row, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	return &row, nil
}

// ListItems returns the line items of an order.
func (r *GormOrderRepository) ListItems(ctx context.Context, orderID string) ([]domain.OrderItemModel, error) {
	var rows []domain.OrderItemModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("item_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items of order %s: %w", orderID, err)
	}
	return rows, nil
}

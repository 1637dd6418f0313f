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

// ErrNotFound is returned by lookups for rows that do not exist.
var ErrNotFound = errors.New("row not found")

// userUpsertColumns is everything a later event may change. The primary key
// and created_at are deliberately absent so replays can never move them.
var userUpsertColumns = []string{
	"email", "phone", "display_name", "avatar", "bio", "version",
	"deleted_at", "updated_at", "event_id", "event_timestamp",
}

// GormUserRepository writes the users table.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Upsert inserts the row or, on primary-key conflict, updates every column
// except user_id and created_at.
func (r *GormUserRepository) Upsert(ctx context.Context, row *domain.UserModel) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(userUpsertColumns),
	}).Create(row).Error
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldEntityID, row.UserID).Msg("failed to upsert user")
		return fmt.Errorf("failed to upsert user %s: %w", row.UserID, err)
	}
	return nil
}

// SoftDelete sets the deletion marker without touching other columns. The
// row stays queryable by primary key.
func (r *GormUserRepository) SoftDelete(ctx context.Context, userID string, eventID *string, eventTS *time.Time) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"deleted_at":      now,
			"event_id":        eventID,
			"event_timestamp": eventTS,
		})
	if res.Error != nil {
		log.Ctx(ctx).Error().Err(res.Error).Str(log.FieldEntityID, userID).Msg("failed to soft-delete user")
		return fmt.Errorf("failed to soft-delete user %s: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		log.Ctx(ctx).Warn().Str(log.FieldEntityID, userID).Msg("soft-delete matched no user row")
	}
	return nil
}

// GetByID returns the row regardless of its deletion marker.
func (r *GormUserRepository) GetByID(ctx context.Context, userID string) (*domain.UserModel, error) {
	var row domain.UserModel
	err := r.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return &row, nil
}

// ListActive returns non-deleted users, newest first.
func (r *GormUserRepository) ListActive(ctx context.Context, limit, offset int) ([]domain.UserModel, error) {
	var rows []domain.UserModel
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	return rows, nil
}

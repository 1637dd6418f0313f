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

// postUpsertColumns excludes post_id, author_user_id, author_type and
// created_at; authorship is immutable once written.
var postUpsertColumns = []string{
	"post_type", "author_display_name", "author_avatar",
	"text_content", "media_json",
	"link_url", "link_title", "link_description", "link_image", "link_site_name",
	"view_count", "like_count", "comment_count", "share_count", "save_count",
	"engagement_rate", "last_comment_at",
	"deleted_at", "published_at", "updated_at", "event_id", "event_timestamp",
}

// GormPostRepository writes the posts table.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-based post repository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Upsert inserts the row or updates it on primary-key conflict.
func (r *GormPostRepository) Upsert(ctx context.Context, row *domain.PostModel) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns(postUpsertColumns),
	}).Create(row).Error
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldEntityID, row.PostID).Msg("failed to upsert post")
		return fmt.Errorf("failed to upsert post %s: %w", row.PostID, err)
	}
	return nil
}

// SoftDelete sets the deletion marker without touching other columns.
func (r *GormPostRepository) SoftDelete(ctx context.Context, postID string, eventID *string, eventTS *time.Time) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&domain.PostModel{}).
		Where("post_id = ?", postID).
		Updates(map[string]interface{}{
			"deleted_at":      now,
			"event_id":        eventID,
			"event_timestamp": eventTS,
		})
	if res.Error != nil {
		log.Ctx(ctx).Error().Err(res.Error).Str(log.FieldEntityID, postID).Msg("failed to soft-delete post")
		return fmt.Errorf("failed to soft-delete post %s: %w", postID, res.Error)
	}
	if res.RowsAffected == 0 {
		log.Ctx(ctx).Warn().Str(log.FieldEntityID, postID).Msg("soft-delete matched no post row")
	}
	return nil
}

// GetByID returns the row regardless of its deletion marker.
func (r *GormPostRepository) GetByID(ctx context.Context, postID string) (*domain.PostModel, error) {
	var row domain.PostModel
	err := r.db.WithContext(ctx).First(&row, "post_id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post %s: %w", postID, err)
	}
	return &row, nil
}

// ListPublished returns published, non-deleted posts, newest first.
func (r *GormPostRepository) ListPublished(ctx context.Context, limit, offset int) ([]domain.PostModel, error) {
	var rows []domain.PostModel
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL AND published_at IS NOT NULL").
		Order("published_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}
	return rows, nil
}

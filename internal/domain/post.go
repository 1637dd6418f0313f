package domain

import "time"

// PostModel is the flat analytics row for the post aggregate. The media
// list is display-only, so it lives in a serialized JSON column instead of
// a child table.
type PostModel struct {
	PostID            string  `gorm:"column:post_id;type:varchar(24);primaryKey"`
	PostType          string  `gorm:"type:varchar(20);not null;index:idx_posts_type"`
	AuthorUserID      string  `gorm:"column:author_user_id;type:varchar(24);not null;index:idx_posts_author"`
	AuthorDisplayName *string `gorm:"type:varchar(200)"`
	AuthorAvatar      *string `gorm:"type:text"`
	AuthorType        *string `gorm:"type:varchar(20)"`
	TextContent       *string `gorm:"type:text"`
	MediaJSON         *string `gorm:"column:media_json;type:json"`
	LinkURL           *string `gorm:"column:link_url;type:text"`
	LinkTitle         *string `gorm:"type:varchar(200)"`
	LinkDescription   *string `gorm:"type:varchar(500)"`
	LinkImage         *string `gorm:"type:text"`
	LinkSiteName      *string `gorm:"type:varchar(200)"`

	ViewCount      int     `gorm:"default:0"`
	LikeCount      int     `gorm:"default:0"`
	CommentCount   int     `gorm:"default:0"`
	ShareCount     int     `gorm:"default:0"`
	SaveCount      int     `gorm:"default:0"`
	EngagementRate float64 `gorm:"default:0"`

	LastCommentAt *time.Time `gorm:"precision:6"`
	DeletedAt     *time.Time `gorm:"precision:6"`
	PublishedAt   *time.Time `gorm:"precision:6;index:idx_posts_published"`
	CreatedAt     time.Time  `gorm:"precision:6;not null;index:idx_posts_created;autoCreateTime:false"`
	UpdatedAt     time.Time  `gorm:"precision:6;not null;autoUpdateTime:false"`

	EventID        *string    `gorm:"column:event_id;type:varchar(36)"`
	EventTimestamp *time.Time `gorm:"precision:6"`
}

// TableName specifies the table name for PostModel.
func (PostModel) TableName() string {
	return "posts"
}

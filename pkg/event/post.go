package event

// PostPayload is the full post aggregate carried by post.created,
// post.updated and post.published.
type PostPayload struct {
	PostID      string            `json:"post_id"`
	PostType    string            `json:"post_type"`
	Author      PostAuthor        `json:"author"`
	TextContent *string           `json:"text_content"`
	Media       []MediaAttachment `json:"media"`
	LinkPreview *LinkPreview      `json:"link_preview"`
	Stats       PostStats         `json:"stats"`
	DeletedAt   Time              `json:"deleted_at"`
	PublishedAt Time              `json:"published_at"`
	CreatedAt   Time              `json:"created_at"`
	UpdatedAt   Time              `json:"updated_at"`
}

// PostAuthor is the author snapshot denormalized at post-creation time.
type PostAuthor struct {
	UserID      string  `json:"user_id"`
	DisplayName *string `json:"display_name"`
	Avatar      *string `json:"avatar"`
	AuthorType  *string `json:"author_type"`
}

// MediaAttachment is display-only and rarely queried, so the replica stores
// the list as a serialized JSON column rather than a child table.
type MediaAttachment struct {
	MediaType       string  `json:"media_type"`
	MediaURL        string  `json:"media_url"`
	ThumbnailURL    *string `json:"thumbnail_url"`
	Width           *int    `json:"width"`
	Height          *int    `json:"height"`
	DurationSeconds *int    `json:"duration_seconds"`
	SizeBytes       *int    `json:"size_bytes"`
}

type LinkPreview struct {
	URL         *string `json:"url"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	SiteName    *string `json:"site_name"`
}

type PostStats struct {
	ViewCount      int     `json:"view_count"`
	LikeCount      int     `json:"like_count"`
	CommentCount   int     `json:"comment_count"`
	ShareCount     int     `json:"share_count"`
	SaveCount      int     `json:"save_count"`
	EngagementRate float64 `json:"engagement_rate"`
	LastCommentAt  Time    `json:"last_comment_at"`
}

// PostRef is the minimal payload carried by post.deleted.
type PostRef struct {
	PostID string `json:"post_id"`
}

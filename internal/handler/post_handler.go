package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cartstream/analytics-sync/internal/domain"
	"github.com/cartstream/analytics-sync/internal/repository"
	"github.com/cartstream/analytics-sync/pkg/event"
	"github.com/cartstream/analytics-sync/pkg/log"
)

// PostHandler flattens post events into the posts table.
type PostHandler struct {
	repo *repository.GormPostRepository
}

// NewPostHandler creates the post handler set.
func NewPostHandler(repo *repository.GormPostRepository) *PostHandler {
	return &PostHandler{repo: repo}
}

// Handlers returns the event-kind mapping for the post domain.
func (h *PostHandler) Handlers() Registry {
	return Registry{
		event.PostCreated:   h.handleUpsert,
		event.PostUpdated:   h.handleUpsert,
		event.PostPublished: h.handleUpsert,
		event.PostDeleted:   h.handleDeleted,
	}
}

func (h *PostHandler) handleUpsert(ctx context.Context, env *event.Envelope) error {
	var p event.PostPayload
	if err := env.DecodeData(&p); err != nil {
		return err
	}
	if p.PostType == "" || p.Author.UserID == "" || p.CreatedAt.IsZero() {
		return fmt.Errorf("post payload for %s missing required fields", env.EntityID)
	}

	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = p.CreatedAt
	}

	// Media is display-only, stored as one serialized column.
	var mediaJSON *string
	if len(p.Media) > 0 {
		raw, err := json.Marshal(p.Media)
		if err != nil {
			return fmt.Errorf("failed to marshal media of post %s: %w", env.EntityID, err)
		}
		s := string(raw)
		mediaJSON = &s
	}

	var link event.LinkPreview
	if p.LinkPreview != nil {
		link = *p.LinkPreview
	}

	row := &domain.PostModel{
		PostID:            env.EntityID,
		PostType:          p.PostType,
		AuthorUserID:      p.Author.UserID,
		AuthorDisplayName: p.Author.DisplayName,
		AuthorAvatar:      p.Author.Avatar,
		AuthorType:        p.Author.AuthorType,
		TextContent:       p.TextContent,
		MediaJSON:         mediaJSON,
		LinkURL:           link.URL,
		LinkTitle:         link.Title,
		LinkDescription:   link.Description,
		LinkImage:         link.Image,
		LinkSiteName:      link.SiteName,
		ViewCount:         p.Stats.ViewCount,
		LikeCount:         p.Stats.LikeCount,
		CommentCount:      p.Stats.CommentCount,
		ShareCount:        p.Stats.ShareCount,
		SaveCount:         p.Stats.SaveCount,
		EngagementRate:    p.Stats.EngagementRate,
		LastCommentAt:     p.Stats.LastCommentAt.Ptr(),
		DeletedAt:         p.DeletedAt.Ptr(),
		PublishedAt:       p.PublishedAt.Ptr(),
		CreatedAt:         p.CreatedAt.UTC(),
		UpdatedAt:         updatedAt.UTC(),
		EventID:           eventIDPtr(env),
		EventTimestamp:    env.Timestamp.Ptr(),
	}
	if err := h.repo.Upsert(ctx, row); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str(log.FieldEventType, string(env.Type)).
		Str(log.FieldEntityID, env.EntityID).
		Msg("post row upserted")
	return nil
}

func (h *PostHandler) handleDeleted(ctx context.Context, env *event.Envelope) error {
	var ref event.PostRef
	if err := env.DecodeData(&ref); err != nil {
		return err
	}
	postID := ref.PostID
	if postID == "" {
		postID = env.EntityID
	}

	if err := h.repo.SoftDelete(ctx, postID, eventIDPtr(env), env.Timestamp.Ptr()); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str(log.FieldEventType, string(env.Type)).
		Str(log.FieldEntityID, postID).
		Msg("post row soft-deleted")
	return nil
}

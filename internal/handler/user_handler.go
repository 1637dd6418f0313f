package handler

import (
	"context"
	"fmt"

	"github.com/cartstream/analytics-sync/internal/domain"
	"github.com/cartstream/analytics-sync/internal/repository"
	"github.com/cartstream/analytics-sync/pkg/event"
	"github.com/cartstream/analytics-sync/pkg/log"
)

// UserHandler flattens user events into the users table.
type UserHandler struct {
	repo *repository.GormUserRepository
}

// NewUserHandler creates the user handler set.
func NewUserHandler(repo *repository.GormUserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// Handlers returns the event-kind mapping for the user domain.
func (h *UserHandler) Handlers() Registry {
	return Registry{
		event.UserCreated: h.handleUpsert,
		event.UserUpdated: h.handleUpsert,
		event.UserDeleted: h.handleDeleted,
	}
}

// handleUpsert is shared by created and updated; both carry the full
// aggregate.
func (h *UserHandler) handleUpsert(ctx context.Context, env *event.Envelope) error {
	var p event.UserPayload
	if err := env.DecodeData(&p); err != nil {
		return err
	}
	if p.Email == "" || p.Profile.DisplayName == "" || p.CreatedAt.IsZero() {
		return fmt.Errorf("user payload for %s missing required fields", env.EntityID)
	}

	version := p.Version
	if version == 0 {
		version = 1
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = p.CreatedAt
	}

	row := &domain.UserModel{
		UserID:         env.EntityID,
		Email:          p.Email,
		Phone:          p.Phone,
		DisplayName:    p.Profile.DisplayName,
		Avatar:         p.Profile.Avatar,
		Bio:            p.Profile.Bio,
		Version:        version,
		DeletedAt:      p.DeletedAt.Ptr(),
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      updatedAt.UTC(),
		EventID:        eventIDPtr(env),
		EventTimestamp: env.Timestamp.Ptr(),
	}
	if err := h.repo.Upsert(ctx, row); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str(log.FieldEventType, string(env.Type)).
		Str(log.FieldEntityID, env.EntityID).
		Msg("user row upserted")
	return nil
}

func (h *UserHandler) handleDeleted(ctx context.Context, env *event.Envelope) error {
	var ref event.UserRef
	if err := env.DecodeData(&ref); err != nil {
		return err
	}
	// Minimal delete payloads may omit the nested id field.
	userID := ref.UserID
	if userID == "" {
		userID = env.EntityID
	}

	if err := h.repo.SoftDelete(ctx, userID, eventIDPtr(env), env.Timestamp.Ptr()); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str(log.FieldEventType, string(env.Type)).
		Str(log.FieldEntityID, userID).
		Msg("user row soft-deleted")
	return nil
}

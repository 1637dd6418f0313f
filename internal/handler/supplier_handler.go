package handler

import (
	"context"
	"fmt"

	"github.com/cartstream/analytics-sync/internal/domain"
	"github.com/cartstream/analytics-sync/internal/repository"
	"github.com/cartstream/analytics-sync/pkg/event"
	"github.com/cartstream/analytics-sync/pkg/log"
)

// SupplierHandler flattens supplier events into the suppliers table. The
// wide row draws on the contact, company and social sub-objects, including
// the doubly-nested contact person and business address.
type SupplierHandler struct {
	repo *repository.GormSupplierRepository
}

// NewSupplierHandler creates the supplier handler set.
func NewSupplierHandler(repo *repository.GormSupplierRepository) *SupplierHandler {
	return &SupplierHandler{repo: repo}
}

// Handlers returns the event-kind mapping for the supplier domain.
func (h *SupplierHandler) Handlers() Registry {
	return Registry{
		event.SupplierCreated: h.handleUpsert,
		event.SupplierUpdated: h.handleUpsert,
		event.SupplierDeleted: h.handleDeleted,
	}
}

func (h *SupplierHandler) handleUpsert(ctx context.Context, env *event.Envelope) error {
	var p event.SupplierPayload
	if err := env.DecodeData(&p); err != nil {
		return err
	}
	if p.Email == "" || p.ContactInfo.PrimaryPhone == "" || p.CompanyInfo.LegalName == "" || p.CreatedAt.IsZero() {
		return fmt.Errorf("supplier payload for %s missing required fields", env.EntityID)
	}

	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = p.CreatedAt
	}

	person := p.ContactInfo.ContactPerson
	address := p.CompanyInfo.BusinessAddress

	row := &domain.SupplierModel{
		SupplierID:         env.EntityID,
		Email:              p.Email,
		PrimaryPhone:       p.ContactInfo.PrimaryPhone,
		ContactPersonName:  person.Name,
		ContactPersonTitle: person.Title,
		ContactPersonEmail: person.Email,
		ContactPersonPhone: person.Phone,
		LegalName:          p.CompanyInfo.LegalName,
		DBAName:            p.CompanyInfo.DBAName,
		StreetAddress1:     address.StreetAddress1,
		StreetAddress2:     address.StreetAddress2,
		City:               address.City,
		State:              address.State,
		ZipCode:            address.ZipCode,
		Country:            address.Country,
		SupportEmail:       p.ContactInfo.SupportEmail,
		SupportPhone:       p.ContactInfo.SupportPhone,
		FacebookURL:        p.SocialMedia.FacebookURL,
		InstagramHandle:    p.SocialMedia.InstagramHandle,
		TwitterHandle:      p.SocialMedia.TwitterHandle,
		LinkedinURL:        p.SocialMedia.LinkedinURL,
		Timezone:           p.Timezone,
		CreatedAt:          p.CreatedAt.UTC(),
		UpdatedAt:          updatedAt.UTC(),
		EventID:            eventIDPtr(env),
		EventTimestamp:     env.Timestamp.Ptr(),
	}
	if err := h.repo.Upsert(ctx, row); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str(log.FieldEventType, string(env.Type)).
		Str(log.FieldEntityID, env.EntityID).
		Msg("supplier row upserted")
	return nil
}

func (h *SupplierHandler) handleDeleted(ctx context.Context, env *event.Envelope) error {
	var ref event.SupplierRef
	if err := env.DecodeData(&ref); err != nil {
		return err
	}
	supplierID := ref.SupplierID
	if supplierID == "" {
		supplierID = env.EntityID
	}

	if err := h.repo.Delete(ctx, supplierID); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str(log.FieldEventType, string(env.Type)).
		Str(log.FieldEntityID, supplierID).
		Msg("supplier row deleted")
	return nil
}

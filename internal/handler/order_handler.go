package handler

import (
	"context"
	"fmt"

	"github.com/cartstream/analytics-sync/internal/domain"
	"github.com/cartstream/analytics-sync/internal/repository"
	"github.com/cartstream/analytics-sync/pkg/database"
	"github.com/cartstream/analytics-sync/pkg/event"
	"github.com/cartstream/analytics-sync/pkg/log"
)

// OrderHandler flattens order events into the orders and order_items
// tables. Orders are snapshot-preserving: item product/pricing columns are
// frozen at creation and only the fulfillment block may move afterwards.
type OrderHandler struct {
	repo *repository.GormOrderRepository
}

// NewOrderHandler creates the order handler set.
func NewOrderHandler(repo *repository.GormOrderRepository) *OrderHandler {
	return &OrderHandler{repo: repo}
}

// Handlers returns the event-kind mapping for the order domain.
func (h *OrderHandler) Handlers() Registry {
	return Registry{
		event.OrderCreated:   h.handleCreated,
		event.OrderCancelled: h.handleCancelled,
	}
}

func (h *OrderHandler) handleCreated(ctx context.Context, env *event.Envelope) error {
	var p event.OrderPayload
	if err := env.DecodeData(&p); err != nil {
		return err
	}
	if p.OrderNumber == "" || p.Customer.UserID == "" || p.Status == "" || p.CreatedAt.IsZero() {
		return fmt.Errorf("order payload for %s missing required fields", env.EntityID)
	}

	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = p.CreatedAt
	}

	addr := p.ShippingAddress
	row := &domain.OrderModel{
		OrderID:               env.EntityID,
		OrderNumber:           p.OrderNumber,
		CustomerUserID:        p.Customer.UserID,
		CustomerDisplayName:   p.Customer.DisplayName,
		CustomerEmail:         p.Customer.Email,
		CustomerPhone:         p.Customer.Phone,
		ShippingRecipientName: addr.RecipientName,
		ShippingPhone:         addr.Phone,
		ShippingStreet1:       addr.StreetAddress1,
		ShippingStreet2:       addr.StreetAddress2,
		ShippingCity:          addr.City,
		ShippingState:         addr.State,
		ShippingZipCode:       addr.ZipCode,
		ShippingCountry:       addr.Country,
		Status:                p.Status,
		CreatedAt:             p.CreatedAt.UTC(),
		UpdatedAt:             updatedAt.UTC(),
		EventID:               eventIDPtr(env),
		EventTimestamp:        env.Timestamp.Ptr(),
	}
	if err := h.repo.Upsert(ctx, row); err != nil {
		return err
	}

	items := make([]domain.OrderItemModel, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, flattenOrderItem(env.EntityID, item))
	}
	if err := h.repo.UpsertItems(ctx, items); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str(log.FieldEventType, string(env.Type)).
		Str(log.FieldEntityID, env.EntityID).
		Str("order_number", p.OrderNumber).
		Int("items", len(items)).
		Msg("order row upserted")
	return nil
}

func (h *OrderHandler) handleCancelled(ctx context.Context, env *event.Envelope) error {
	var p event.OrderPayload
	if err := env.DecodeData(&p); err != nil {
		return err
	}
	if p.OrderNumber == "" {
		return fmt.Errorf("order.cancelled payload for %s missing order_number", env.EntityID)
	}

	if err := h.repo.Cancel(ctx, p.OrderNumber, eventIDPtr(env), env.Timestamp.Ptr()); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str(log.FieldEventType, string(env.Type)).
		Str(log.FieldEntityID, env.EntityID).
		Str("order_number", p.OrderNumber).
		Msg("order cancelled")
	return nil
}

// flattenOrderItem flattens one line item, pulling the product snapshot up
// into flat columns. fulfillment_status defaults to pending when the
// producer omits it.
func flattenOrderItem(orderID string, item event.OrderItem) domain.OrderItemModel {
	snap := item.ProductSnapshot

	status := item.FulfillmentStatus
	if status == nil {
		pending := "pending"
		status = &pending
	}

	var attrs database.JSONMap
	if len(snap.VariantAttributes) > 0 {
		attrs = database.JSONMap(snap.VariantAttributes)
	}

	return domain.OrderItemModel{
		OrderID:           orderID,
		ItemID:            item.ItemID,
		ProductID:         snap.ProductID,
		SupplierID:        snap.SupplierID,
		ProductName:       snap.ProductName,
		VariantName:       snap.VariantName,
		VariantAttributes: attrs,
		ImageURL:          snap.ImageURL,
		SupplierName:      snap.SupplierName,
		Quantity:          item.Quantity,
		UnitPriceCents:    item.UnitPriceCents,
		FinalPriceCents:   item.FinalPriceCents,
		TotalCents:        item.TotalCents,
		FulfillmentStatus: status,
		ShippedQuantity:   item.ShippedQuantity,
		TrackingNumber:    item.TrackingNumber,
		Carrier:           item.Carrier,
		ShippedAt:         item.ShippedAt.Ptr(),
		DeliveredAt:       item.DeliveredAt.Ptr(),
	}
}

// Package handler flattens domain-event payloads into the analytics
// replica. One handler set per domain; lifecycle kinds that carry the full
// aggregate share a single upsert routine, delete kinds use a minimal one.
package handler

import (
	"context"
	"fmt"

	"github.com/cartstream/analytics-sync/internal/repository"
	"github.com/cartstream/analytics-sync/pkg/event"
)

// Func processes one decoded envelope. A returned error means the message
// must not be committed and will be redelivered after a restart.
type Func func(ctx context.Context, env *event.Envelope) error

// Registry is the closed dispatch table from event kind to handler.
type Registry map[event.Type]Func

// NewRegistry assembles the dispatch table for all five domains and fails
// if any known event kind is left without a handler.
func NewRegistry(
	users *repository.GormUserRepository,
	suppliers *repository.GormSupplierRepository,
	products *repository.GormProductRepository,
	orders *repository.GormOrderRepository,
	posts *repository.GormPostRepository,
) (Registry, error) {
	reg := Registry{}
	sets := []Registry{
		NewUserHandler(users).Handlers(),
		NewSupplierHandler(suppliers).Handlers(),
		NewProductHandler(products).Handlers(),
		NewOrderHandler(orders).Handlers(),
		NewPostHandler(posts).Handlers(),
	}
	for _, set := range sets {
		for t, fn := range set {
			if _, dup := reg[t]; dup {
				return nil, fmt.Errorf("duplicate handler for event type %q", t)
			}
			reg[t] = fn
		}
	}

	for _, t := range event.Types() {
		if _, ok := reg[t]; !ok {
			return nil, fmt.Errorf("no handler registered for event type %q", t)
		}
	}
	return reg, nil
}

// eventIDPtr returns the envelope's event id for the bookkeeping columns.
func eventIDPtr(env *event.Envelope) *string {
	if env.EventID == "" {
		return nil
	}
	id := env.EventID
	return &id
}

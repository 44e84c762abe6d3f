package commands

import (
	"errors"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"
	"jewelryorders/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one detail line is required")
)

// CreateOrderCommand represents a coordinator placing a new order with a
// supplier factory. Detail lines are given as form drafts and consolidated
// by the handler.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(coordinator, order.Header{
//	    ID:           kernel.NewUUID(),
//	    PONumber:     "PO-2026-0001",
//	    Factory:      kernel.Reference{Name: "Sinar Mas"},
//	    DeliveryDate: due,
//	}, order.Content{Category: order.Basic, BasicName: "Rantai Italy"},
//	    []services.ItemDraft{{Purity: "8k", Color: "rg", Size: "45", WeightSpec: "2-4", Pcs: 1}})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	header  order.Header
	product order.Content
	drafts  []services.ItemDraft

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks the actor, order id and drafts. Content rules
// are applied when the order is built.
func NewCreateOrderCommand(
	actor kernel.Actor,
	header order.Header,
	product order.Content,
	drafts []services.ItemDraft,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		header:  header,
		product: product,
		guard:   guard.NewConstructorGuard(),
	}
	cmd.product.Items = nil

	if err := errors.Join(
		cmd.setActor(actor),
		header.ID.Validate(),
		cmd.setDrafts(drafts),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) Header() order.Header {
	return c.header
}

// Product returns the editable fields without detail lines.
func (c CreateOrderCommand) Product() order.Content {
	return c.product
}

func (c CreateOrderCommand) Drafts() []services.ItemDraft {
	out := make([]services.ItemDraft, len(c.drafts))
	copy(out, c.drafts)
	return out
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setDrafts(drafts []services.ItemDraft) error {
	if len(drafts) == 0 {
		return ErrItemsAreRequired
	}
	c.drafts = make([]services.ItemDraft, len(drafts))
	copy(c.drafts, drafts)
	return nil
}

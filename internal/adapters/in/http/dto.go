package http

import (
	"fmt"
	"strings"
	"time"

	"jewelryorders/internal/core/application/usecases/commands"
	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/notification"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/core/domain/services"
)

// ItemDraft is a detail line as typed into the order form. Berat may be a
// range such as "2-4".
type ItemDraft struct {
	Purity string `json:"kadar"`
	Color  string `json:"warna"`
	Size   string `json:"ukuran"`
	Weight string `json:"berat"`
	Pcs    int    `json:"pcs"`
	Notes  string `json:"notes,omitempty"`
}

func (d ItemDraft) toService() services.ItemDraft {
	return services.ItemDraft{
		Purity:     d.Purity,
		Color:      d.Color,
		Size:       d.Size,
		WeightSpec: d.Weight,
		Pcs:        d.Pcs,
		Notes:      d.Notes,
	}
}

func drafts(in []ItemDraft) []services.ItemDraft {
	out := make([]services.ItemDraft, len(in))
	for i, d := range in {
		out[i] = d.toService()
	}
	return out
}

type NewOrder struct {
	ID           string           `json:"id,omitempty"`
	PONumber     string           `json:"poNumber"`
	RequestID    string           `json:"requestId,omitempty"`
	Factory      kernel.Reference `json:"factory"`
	Customer     kernel.Reference `json:"customer"`
	DeliveryDate string           `json:"deliveryDate"`
	Category     order.Category   `json:"category"`
	ProductType  string           `json:"productType"`
	BasicName    string           `json:"basicName,omitempty"`
	ModelName    string           `json:"modelName,omitempty"`
	PhotoID      string           `json:"photoId,omitempty"`
	Items        []ItemDraft      `json:"items"`
}

func (b NewOrder) command(actor kernel.Actor) (commands.CreateOrderCommand, error) {
	id := kernel.NewUUID()
	if b.ID != "" {
		parsed, err := kernel.UUIDFromString(b.ID)
		if err != nil {
			return commands.CreateOrderCommand{}, badRequest(err)
		}
		id = parsed
	}

	var requestID *kernel.UUID
	if b.RequestID != "" {
		parsed, err := kernel.UUIDFromString(b.RequestID)
		if err != nil {
			return commands.CreateOrderCommand{}, badRequest(err)
		}
		requestID = &parsed
	}

	due, err := parseDate(b.DeliveryDate)
	if err != nil {
		return commands.CreateOrderCommand{}, badRequest(err)
	}

	return commands.NewCreateOrderCommand(actor, order.Header{
		ID:           id,
		PONumber:     b.PONumber,
		RequestID:    requestID,
		Factory:      b.Factory,
		Customer:     b.Customer,
		DeliveryDate: due,
	}, order.Content{
		Category:    b.Category,
		ProductType: b.ProductType,
		BasicName:   b.BasicName,
		ModelName:   b.ModelName,
		PhotoID:     b.PhotoID,
	}, drafts(b.Items))
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("deliveryDate %q is not a date", s)
	}
	return t.UTC(), nil
}

type ItemEdit struct {
	ID     string           `json:"id"`
	Fields order.DetailItem `json:"fields"`
}

type ItemChanges struct {
	Removals  []string    `json:"removals,omitempty"`
	Edits     []ItemEdit  `json:"edits,omitempty"`
	Additions []ItemDraft `json:"additions,omitempty"`
}

// OrderEdit carries the fields to change. Detail lines are only edited
// through Items.
type OrderEdit struct {
	LastSeenRevisions *int           `json:"lastSeenRevisions"`
	Fields            order.FieldSet `json:"fields"`
	Items             ItemChanges    `json:"items"`
}

func (b OrderEdit) command(actor kernel.Actor, id kernel.UUID) (commands.EditOrderCommand, error) {
	edits := make([]commands.ItemEdit, len(b.Items.Edits))
	for i, e := range b.Items.Edits {
		edits[i] = commands.ItemEdit{ID: e.ID, Fields: e.Fields}
	}
	return commands.NewEditOrderCommand(actor, id, lastSeen(b.LastSeenRevisions), b.Fields, commands.ItemChanges{
		Removals:  b.Items.Removals,
		Edits:     edits,
		Additions: drafts(b.Items.Additions),
	})
}

type StatusChange struct {
	Status            string `json:"status"`
	LastSeenRevisions *int   `json:"lastSeenRevisions"`
}

func (b StatusChange) command(actor kernel.Actor, id kernel.UUID) (commands.ChangeOrderStatusCommand, error) {
	status, err := order.ParseStatus(b.Status)
	if err != nil {
		return commands.ChangeOrderStatusCommand{}, err
	}
	return commands.NewChangeOrderStatusCommand(actor, id, status, lastSeen(b.LastSeenRevisions))
}

// lastSeen turns an omitted revision count into "do not check".
func lastSeen(n *int) int {
	if n == nil {
		return -1
	}
	return *n
}

type Arrival struct {
	// Arrived maps detail line ids to the pieces that arrived.
	Arrived map[string]int `json:"arrived"`
}

type RequestEvent struct {
	EventType notification.EventType `json:"eventType"`
}

type ViewResult struct {
	Changed bool `json:"changed"`
}

type ImageCreated struct {
	ID string `json:"id"`
}

package services

import (
	"fmt"
	"slices"
	"strings"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"
	"jewelryorders/internal/pkg/errs"
)

// ItemDraft is one detail line as entered on the order form. WeightSpec may
// list several weights and ranges, e.g. "2,4,7-9".
type ItemDraft struct {
	Purity     string
	Color      string
	Size       string
	WeightSpec string
	Pcs        int
	Notes      string
}

// ItemConsolidator merges detail-line edits so that no two lines of an order
// share a (kadar, warna, ukuran, berat) key.
//
// All methods return new slices; the input is never mutated.
type ItemConsolidator struct {
	ids kernel.IDGenerator
}

func NewItemConsolidator(ids kernel.IDGenerator) ItemConsolidator {
	if ids == nil {
		ids = kernel.UUIDGenerator{}
	}
	return ItemConsolidator{ids: ids}
}

// Upsert expands draft.WeightSpec and merges one line per weight token into
// items. An existing line with the same key gets its pcs increased and the
// draft notes appended; otherwise a new line with a fresh id is added. An
// empty WeightSpec is a single empty token.
//
// Returns the updated lines and the ids of the lines that were touched, in
// token order.
func (c ItemConsolidator) Upsert(items []order.DetailItem, draft ItemDraft) ([]order.DetailItem, []string, error) {
	if draft.Pcs < 0 {
		return nil, nil, errs.NewValueIsOutOfRangeError("pcs", draft.Pcs, 0, "unbounded")
	}

	tokens := []string{""}
	if strings.TrimSpace(draft.WeightSpec) != "" {
		tokens = order.ParseWeightSpec(draft.WeightSpec)
	}

	updated := cloneNonNil(items)
	index := make(map[order.ItemKey]int, len(updated))
	for i, it := range updated {
		index[it.Key()] = i
	}

	notes := strings.TrimSpace(draft.Notes)
	affected := make([]string, 0, len(tokens))
	for _, token := range tokens {
		line := order.DetailItem{
			Purity: draft.Purity,
			Color:  draft.Color,
			Size:   draft.Size,
			Weight: token,
			Pcs:    draft.Pcs,
			Notes:  notes,
		}.Normalized()

		if i, ok := index[line.Key()]; ok {
			updated[i].Pcs += line.Pcs
			updated[i].Notes = joinNotes(updated[i].Notes, line.Notes)
			affected = appendOnce(affected, updated[i].ID)
			continue
		}

		line.ID = c.ids.NewID()
		updated = append(updated, line)
		index[line.Key()] = len(updated) - 1
		affected = appendOnce(affected, line.ID)
	}

	return updated, affected, nil
}

// EditByID replaces the mutable fields of the line with the given id. The id
// and the supply counters are kept.
//
// Errors:
//   - *errs.ObjectNotFoundError when no line has the id
//   - *errs.ValueIsInvalidError when the edit would collide with another line's key
//   - *errs.ValueIsOutOfRangeError for negative pcs
func (c ItemConsolidator) EditByID(items []order.DetailItem, id string, fields order.DetailItem) ([]order.DetailItem, error) {
	if fields.Pcs < 0 {
		return nil, errs.NewValueIsOutOfRangeError("pcs", fields.Pcs, 0, "unbounded")
	}

	pos := slices.IndexFunc(items, func(it order.DetailItem) bool { return it.ID == id })
	if pos < 0 {
		return nil, errs.NewObjectNotFoundError("detail item", id)
	}

	updated := cloneNonNil(items)
	edited := updated[pos]
	edited.Purity = fields.Purity
	edited.Color = fields.Color
	edited.Size = fields.Size
	edited.Weight = fields.Weight
	edited.Pcs = fields.Pcs
	edited.Notes = fields.Notes
	edited = edited.Normalized()

	for i, it := range updated {
		if i != pos && it.Key() == edited.Key() {
			return nil, errs.NewValueIsInvalidErrorWithCause("detail item",
				fmt.Errorf("%s would share key %s with %s", id, edited.Key(), it.ID))
		}
	}

	updated[pos] = edited
	return updated, nil
}

// RemoveByID drops the line with the given id. Removing a missing id is a no-op.
func (c ItemConsolidator) RemoveByID(items []order.DetailItem, id string) []order.DetailItem {
	return slices.DeleteFunc(cloneNonNil(items), func(it order.DetailItem) bool { return it.ID == id })
}

// SortForDisplay orders lines by kadar number, warna, ukuran and numeric
// berat, keeping the input order for ties.
func (c ItemConsolidator) SortForDisplay(items []order.DetailItem) []order.DetailItem {
	sorted := cloneNonNil(items)
	slices.SortStableFunc(sorted, compareForDisplay)
	return sorted
}

func compareForDisplay(a, b order.DetailItem) int {
	if d := order.PurityNumber(a.Purity) - order.PurityNumber(b.Purity); d != 0 {
		return d
	}
	if d := strings.Compare(strings.TrimSpace(a.Color), strings.TrimSpace(b.Color)); d != 0 {
		return d
	}
	if d := strings.Compare(strings.TrimSpace(a.Size), strings.TrimSpace(b.Size)); d != 0 {
		return d
	}
	return order.WeightValue(a.Weight).Cmp(order.WeightValue(b.Weight))
}

func joinNotes(existing, added string) string {
	switch {
	case existing == "":
		return added
	case added == "":
		return existing
	}
	return existing + ", " + added
}

func appendOnce(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func cloneNonNil(items []order.DetailItem) []order.DetailItem {
	out := order.CloneItems(items)
	if out == nil {
		return []order.DetailItem{}
	}
	return out
}

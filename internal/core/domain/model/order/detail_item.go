package order

import (
	"errors"
	"fmt"
	"strings"

	"jewelryorders/internal/pkg/errs"
)

// DetailItem is one product line of an order: a purity/color/size/weight
// combination and the number of pieces ordered for it.
type DetailItem struct {
	// ID is unique within the order and never changes.
	ID string `json:"id"`
	// Purity is the kadar code, e.g. "8k" or "24k".
	Purity string `json:"kadar"`
	// Color is the warna code, e.g. "rg" for rose gold.
	Color string `json:"warna"`
	// Size is the ukuran: a numeric length or an enumerated size code.
	Size string `json:"ukuran"`
	// Weight is a single berat token after range expansion.
	Weight string `json:"berat"`
	Pcs    int    `json:"pcs"`
	Notes  string `json:"notes,omitempty"`

	// AvailablePcs and OrderPcs are only used in the supply-fulfillment variant.
	AvailablePcs *int `json:"availablePcs,omitempty"`
	OrderPcs     *int `json:"orderPcs,omitempty"`
}

// ItemKey is the consolidation key of a detail line. Within an order's item
// set no two lines share a key.
type ItemKey struct {
	Purity string
	Color  string
	Size   string
	Weight string
}

func (k ItemKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.Purity, k.Color, k.Size, k.Weight)
}

// Key returns the consolidation key. Values are trimmed but otherwise
// compared exactly, so "8K" and "8k" are different keys.
func (d DetailItem) Key() ItemKey {
	return ItemKey{
		Purity: strings.TrimSpace(d.Purity),
		Color:  strings.TrimSpace(d.Color),
		Size:   strings.TrimSpace(d.Size),
		Weight: strings.TrimSpace(d.Weight),
	}
}

// Normalized returns a copy with trimmed codes and weight.
func (d DetailItem) Normalized() DetailItem {
	k := d.Key()
	d.Purity, d.Color, d.Size, d.Weight = k.Purity, k.Color, k.Size, k.Weight
	d.Notes = strings.TrimSpace(d.Notes)
	return d
}

// Validate checks the category-independent rules of a single line.
func (d DetailItem) Validate() error {
	var idErr, pcsErr error
	if strings.TrimSpace(d.ID) == "" {
		idErr = errs.NewValueIsRequiredError("detail item id")
	}
	if d.Pcs < 0 {
		pcsErr = errs.NewValueIsOutOfRangeError("pcs", d.Pcs, 0, "unbounded")
	}
	return errors.Join(idErr, pcsErr)
}

// IsSizeNumeric reports whether the ukuran is a length rather than a size code.
func (d DetailItem) IsSizeNumeric() bool {
	_, ok := parseDecimal(d.Size)
	return ok
}

// CloneItems returns a deep copy of items, including the optional counters.
func CloneItems(items []DetailItem) []DetailItem {
	if items == nil {
		return nil
	}
	out := make([]DetailItem, len(items))
	for i, it := range items {
		out[i] = it
		if it.AvailablePcs != nil {
			v := *it.AvailablePcs
			out[i].AvailablePcs = &v
		}
		if it.OrderPcs != nil {
			v := *it.OrderPcs
			out[i].OrderPcs = &v
		}
	}
	return out
}

// validateUniqueKeys enforces the consolidation invariant over a whole item set.
func validateUniqueKeys(items []DetailItem) error {
	seenKeys := make(map[ItemKey]string, len(items))
	seenIDs := make(map[string]struct{}, len(items))
	var errList []error
	for _, it := range items {
		if _, dup := seenIDs[it.ID]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"detail item id", fmt.Errorf("%s is used more than once", it.ID)))
		}
		seenIDs[it.ID] = struct{}{}

		if other, dup := seenKeys[it.Key()]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"detail items", fmt.Errorf("%s and %s share key %s", other, it.ID, it.Key())))
		}
		seenKeys[it.Key()] = it.ID
	}
	return errors.Join(errList...)
}

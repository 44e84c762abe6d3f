package order

import (
	"errors"
	"fmt"
	"strings"

	"jewelryorders/internal/pkg/errs"
)

// Content is the editable part of an order that revisions track.
type Content struct {
	Category    Category
	ProductType string
	BasicName   string
	ModelName   string
	PhotoID     string
	Items       []DetailItem
}

// Fields returns every editable field as a fully populated FieldSet.
func (c Content) Fields() FieldSet {
	return FieldSet{
		Category:    CategoryPtr(c.Category),
		ProductType: cloneString(&c.ProductType),
		BasicName:   cloneString(&c.BasicName),
		ModelName:   cloneString(&c.ModelName),
		Items:       nonNilItems(CloneItems(c.Items)),
		PhotoID:     cloneString(&c.PhotoID),
	}
}

// Apply overlays the present fields of fs and returns the result.
func (c Content) Apply(fs FieldSet) Content {
	out := c
	out.Items = CloneItems(c.Items)
	if fs.Category != nil {
		out.Category = *fs.Category
	}
	if fs.ProductType != nil {
		out.ProductType = strings.TrimSpace(*fs.ProductType)
	}
	if fs.BasicName != nil {
		out.BasicName = strings.TrimSpace(*fs.BasicName)
	}
	if fs.ModelName != nil {
		out.ModelName = strings.TrimSpace(*fs.ModelName)
	}
	if fs.PhotoID != nil {
		out.PhotoID = strings.TrimSpace(*fs.PhotoID)
	}
	if fs.Items != nil {
		out.Items = nonNilItems(CloneItems(fs.Items))
	}
	return out
}

// Validate applies the category rules:
//   - basic: every line has a berat, BasicName is set, ModelName is empty
//   - model: every line has kadar and warna and pcs > 0, ModelName is set,
//     BasicName is empty
//
// Both require at least one line and unique line ids and keys.
func (c Content) Validate() error {
	if err := c.Category.Validate(); err != nil {
		return err
	}

	var errList []error
	if len(c.Items) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("detail items"))
	}
	for _, it := range c.Items {
		if err := it.Validate(); err != nil {
			errList = append(errList, err)
		}
	}
	errList = append(errList, validateUniqueKeys(c.Items))

	switch c.Category {
	case Basic:
		errList = append(errList, c.validateBasic()...)
	case Model:
		errList = append(errList, c.validateModel()...)
	}
	return errors.Join(errList...)
}

func (c Content) validateBasic() []error {
	var errList []error
	if strings.TrimSpace(c.BasicName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("basicName"))
	}
	if strings.TrimSpace(c.ModelName) != "" {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("modelName",
			fmt.Errorf("must be empty for category %s", Basic)))
	}
	for _, it := range c.Items {
		if strings.TrimSpace(it.Weight) == "" {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause("berat",
				fmt.Errorf("detail item %s", it.ID)))
		}
	}
	return errList
}

func (c Content) validateModel() []error {
	var errList []error
	if strings.TrimSpace(c.ModelName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("modelName"))
	}
	if strings.TrimSpace(c.BasicName) != "" {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("basicName",
			fmt.Errorf("must be empty for category %s", Model)))
	}
	for _, it := range c.Items {
		if strings.TrimSpace(it.Purity) == "" {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause("kadar",
				fmt.Errorf("detail item %s", it.ID)))
		}
		if strings.TrimSpace(it.Color) == "" {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause("warna",
				fmt.Errorf("detail item %s", it.ID)))
		}
		if it.Pcs <= 0 {
			errList = append(errList, errs.NewValueIsOutOfRangeErrorWithCause("pcs", it.Pcs, 1, "unbounded",
				fmt.Errorf("detail item %s", it.ID)))
		}
	}
	return errList
}

func nonNilItems(items []DetailItem) []DetailItem {
	if items == nil {
		return []DetailItem{}
	}
	return items
}

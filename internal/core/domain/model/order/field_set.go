package order

import (
	"fmt"
	"reflect"
	"strings"
)

// Field names one editable order field tracked by revisions.
type Field string

const (
	FieldCategory    Field = "category"
	FieldProductType Field = "productType"
	FieldBasicName   Field = "basicName"
	FieldModelName   Field = "modelName"
	FieldItems       Field = "items"
	FieldPhotoID     Field = "photoId"
)

// fieldOrder fixes the order Fields() reports present fields in.
var fieldOrder = []Field{FieldCategory, FieldProductType, FieldBasicName, FieldModelName, FieldItems, FieldPhotoID}

// FieldSet is an explicit optional-field view of the editable order fields.
// A nil pointer (or nil Items) means the field is absent from the set.
//
// A revision stores two FieldSets, Changes and PreviousValues, with identical
// field presence. Fields absent from a revision's set are not recorded by it,
// so an arbitrary historical state can only be rebuilt for the fields that
// each revision carried.
type FieldSet struct {
	Category    *Category    `json:"category,omitempty"`
	ProductType *string      `json:"productType,omitempty"`
	BasicName   *string      `json:"basicName,omitempty"`
	ModelName   *string      `json:"modelName,omitempty"`
	Items       []DetailItem `json:"items"`
	PhotoID     *string      `json:"photoId,omitempty"`
}

// Fields lists the present fields in a stable order.
func (f FieldSet) Fields() []Field {
	present := make([]Field, 0, len(fieldOrder))
	for _, field := range fieldOrder {
		if f.Has(field) {
			present = append(present, field)
		}
	}
	return present
}

func (f FieldSet) Has(field Field) bool {
	switch field {
	case FieldCategory:
		return f.Category != nil
	case FieldProductType:
		return f.ProductType != nil
	case FieldBasicName:
		return f.BasicName != nil
	case FieldModelName:
		return f.ModelName != nil
	case FieldItems:
		return f.Items != nil
	case FieldPhotoID:
		return f.PhotoID != nil
	}
	return false
}

func (f FieldSet) IsEmpty() bool {
	return len(f.Fields()) == 0
}

// Clone returns a deep copy.
func (f FieldSet) Clone() FieldSet {
	out := FieldSet{Items: CloneItems(f.Items)}
	if f.Category != nil {
		c := *f.Category
		out.Category = &c
	}
	out.ProductType = cloneString(f.ProductType)
	out.BasicName = cloneString(f.BasicName)
	out.ModelName = cloneString(f.ModelName)
	out.PhotoID = cloneString(f.PhotoID)
	return out
}

// SamePresence reports whether both sets carry exactly the same fields.
func (f FieldSet) SamePresence(other FieldSet) bool {
	return reflect.DeepEqual(f.Fields(), other.Fields())
}

// Describe renders a present field for notification change lists.
func (f FieldSet) Describe(field Field) string {
	switch field {
	case FieldCategory:
		if f.Category != nil {
			return f.Category.String()
		}
	case FieldProductType:
		return deref(f.ProductType)
	case FieldBasicName:
		return deref(f.BasicName)
	case FieldModelName:
		return deref(f.ModelName)
	case FieldPhotoID:
		return deref(f.PhotoID)
	case FieldItems:
		total := 0
		for _, it := range f.Items {
			total += it.Pcs
		}
		return fmt.Sprintf("%d lines, %d pcs", len(f.Items), total)
	}
	return ""
}

// Equal reports whether field holds the same value in both sets.
func (f FieldSet) Equal(other FieldSet, field Field) bool {
	switch field {
	case FieldCategory:
		return reflect.DeepEqual(f.Category, other.Category)
	case FieldProductType:
		return reflect.DeepEqual(f.ProductType, other.ProductType)
	case FieldBasicName:
		return reflect.DeepEqual(f.BasicName, other.BasicName)
	case FieldModelName:
		return reflect.DeepEqual(f.ModelName, other.ModelName)
	case FieldItems:
		return reflect.DeepEqual(f.Items, other.Items)
	case FieldPhotoID:
		return reflect.DeepEqual(f.PhotoID, other.PhotoID)
	}
	return false
}

// StringPtr is a convenience for building FieldSets.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	return &s
}

// CategoryPtr is a convenience for building FieldSets.
func CategoryPtr(c Category) *Category {
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

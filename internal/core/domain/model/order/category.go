package order

import (
	"fmt"
	"strings"

	"jewelryorders/internal/pkg/errs"
)

// Category decides which product-name field an order carries and which
// detail-line fields are mandatory.
type Category int

const (
	UnknownCategory Category = iota
	// Basic orders are named by BasicName and every line needs a weight.
	Basic
	// Model orders are named by ModelName and every line needs purity, color and pieces.
	Model
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		Basic: "basic",
		Model: "model",
	}
}

func ParseCategory(s string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for c, name := range getCategoryStrings() {
		if name == normalized {
			return c, nil
		}
	}
	return UnknownCategory, errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a valid category", s))
}

func (c Category) Validate() error {
	if _, ok := getCategoryStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

func (c Category) String() string {
	if s, ok := getCategoryStrings()[c]; ok {
		return s
	}
	return "unknown"
}

func (c Category) MarshalText() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

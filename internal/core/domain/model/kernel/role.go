package kernel

import (
	"fmt"
	"strings"

	"jewelryorders/internal/pkg/errs"
)

// Role is the closed set of acting roles. Its tag is the value carried in
// access tokens and in a notification's target audience.
type Role int

const (
	// UnknownRole is the zero value and never valid.
	UnknownRole Role = iota
	// Coordinator ("jb") creates and manages orders.
	Coordinator
	// Supplier ("pabrik") fulfils orders and advances their status.
	Supplier
	// Sales originates requests and follows stock-ready orders.
	Sales
	// Stockist reviews originating requests before an order is created.
	Stockist
)

func roleTags() map[Role]string {
	return map[Role]string{
		Coordinator: "jb",
		Supplier:    "pabrik",
		Sales:       "sales",
		Stockist:    "stockist",
	}
}

// AllRoles lists the valid roles in declaration order.
func AllRoles() []Role {
	return []Role{Coordinator, Supplier, Sales, Stockist}
}

// ParseRole maps a tag ("jb", "pabrik", "sales", "stockist") to its Role.
// Matching ignores case and surrounding spaces.
func ParseRole(tag string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	for role, t := range roleTags() {
		if t == normalized {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", tag))
}

func (r Role) Validate() error {
	if _, ok := roleTags()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the role tag, or "unknown".
func (r Role) String() string {
	if tag, ok := roleTags()[r]; ok {
		return tag
	}
	return "unknown"
}

func (r Role) MarshalText() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

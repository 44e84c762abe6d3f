package kernel

import (
	"errors"
	"strings"

	"jewelryorders/internal/pkg/errs"
)

// Actor identifies who performs an operation and in which role.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

func NewActor(id string, role Role) (Actor, error) {
	a := Actor{ID: strings.TrimSpace(id), Role: role}
	if err := a.Validate(); err != nil {
		return Actor{}, err
	}
	return a, nil
}

func (a Actor) Validate() error {
	var idErr error
	if a.ID == "" {
		idErr = errs.NewValueIsRequiredError("actor id")
	}
	return errors.Join(idErr, a.Role.Validate())
}

// Reference is the id/name pair an order keeps for its supplier (pabrik) and customer.
type Reference struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r Reference) IsZero() bool {
	return r.ID == "" && r.Name == ""
}

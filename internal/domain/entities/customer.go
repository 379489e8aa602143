package entities

import (
	"strings"
	"time"
	"unicode/utf8"
)

const EntityCustomer = "customer"

type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Active    bool
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerDetails are the reception-editable fields of a customer.
type CustomerDetails struct {
	Name  string
	Phone string
	Email string
}

func (d *CustomerDetails) Normalize() error {
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))

	if n := utf8.RuneCountInString(d.Name); n < 2 || n > 100 {
		return NewValidationError("name", "must be between 2 and 100 characters")
	}
	if n := utf8.RuneCountInString(d.Phone); n < 7 || n > 20 {
		return NewValidationError("phone", "must be between 7 and 20 characters")
	}
	if d.Email != "" && !strings.Contains(d.Email, "@") {
		return NewValidationError("email", "must be a valid address")
	}
	return nil
}

func NewCustomer(id string, d CustomerDetails, now time.Time) (Customer, error) {
	if err := d.Normalize(); err != nil {
		return Customer{}, err
	}
	return Customer{
		ID:        id,
		Name:      d.Name,
		Phone:     d.Phone,
		Email:     d.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c Customer) Exists() bool {
	return c.ID != ""
}

func (c *Customer) Edit(d CustomerDetails, at time.Time) error {
	if !c.Active {
		return &TransitionError{Entity: EntityCustomer, State: "inactive", Event: "edit"}
	}
	if err := d.Normalize(); err != nil {
		return err
	}
	c.Name = d.Name
	c.Phone = d.Phone
	c.Email = d.Email
	c.UpdatedAt = at
	return nil
}

// Deactivate soft-deletes the customer. activeDevices is the number of
// active devices still registered to it; they must be retired first.
func (c *Customer) Deactivate(activeDevices int, at time.Time) error {
	if !c.Active {
		return &TransitionError{Entity: EntityCustomer, State: "inactive", Event: "delete"}
	}
	if activeDevices > 0 {
		return &TransitionError{Entity: EntityCustomer, State: "has_active_devices", Event: "delete"}
	}
	c.Active = false
	c.UpdatedAt = at
	return nil
}

// ConflictsWith reports the field on which d would duplicate other. Phone
// numbers and emails identify a customer.
func (d CustomerDetails) ConflictsWith(other Customer) (string, bool) {
	switch {
	case d.Phone == other.Phone:
		return "phone", true
	case d.Email != "" && d.Email == other.Email:
		return "email", true
	}
	return "", false
}

type CustomerFilter struct {
	IncludeInactive bool
}

func (f CustomerFilter) Matches(c Customer) bool {
	return f.IncludeInactive || c.Active
}

package entities

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const EntityDevice = "device"

type DeviceType string

const (
	DeviceComputer   DeviceType = "computer"
	DeviceLaptop     DeviceType = "laptop"
	DevicePrinter    DeviceType = "printer"
	DeviceTablet     DeviceType = "tablet"
	DeviceSmartphone DeviceType = "smartphone"
	DeviceMonitor    DeviceType = "monitor"
	DeviceOther      DeviceType = "other"
)

func (t DeviceType) Valid() bool {
	switch t {
	case DeviceComputer, DeviceLaptop, DevicePrinter, DeviceTablet, DeviceSmartphone, DeviceMonitor, DeviceOther:
		return true
	}
	return false
}

// MaxDevicePhotos bounds the photo filenames attached to one device.
const MaxDevicePhotos = 5

// Device is a customer's equipment received at the counter. Service orders
// reference it by ID through their DeviceRef. Photos are blob store
// filenames and are never opened here.
type Device struct {
	ID                 string
	CustomerID         string
	Type               DeviceType
	Brand              string
	Model              string
	SerialNumber       string
	ProblemDescription string
	Accessories        string
	Photos             []string
	Active             bool
	Version            int64
	ReceivedAt         time.Time
	UpdatedAt          time.Time
}

type DeviceDetails struct {
	CustomerID         string
	Type               DeviceType
	Brand              string
	Model              string
	SerialNumber       string
	ProblemDescription string
	Accessories        string
	Photos             []string
}

func (d *DeviceDetails) Normalize() error {
	d.CustomerID = strings.TrimSpace(d.CustomerID)
	d.Brand = strings.TrimSpace(d.Brand)
	d.Model = strings.TrimSpace(d.Model)
	d.SerialNumber = strings.TrimSpace(d.SerialNumber)
	d.ProblemDescription = strings.TrimSpace(d.ProblemDescription)
	d.Accessories = strings.TrimSpace(d.Accessories)

	if d.CustomerID == "" {
		return NewValidationError("customer_id", "is required")
	}
	if !d.Type.Valid() {
		return NewValidationError("type", "must be computer, laptop, printer, tablet, smartphone, monitor or other")
	}
	if d.Brand == "" {
		return NewValidationError("brand", "is required")
	}
	if d.Model == "" {
		return NewValidationError("model", "is required")
	}
	if d.ProblemDescription == "" {
		return NewValidationError("problem_description", "is required")
	}
	if utf8.RuneCountInString(d.ProblemDescription) > MaxNotesLength {
		return NewValidationError("problem_description", "must not exceed 1000 characters")
	}
	photos, err := normalizePhotos(d.Photos)
	if err != nil {
		return err
	}
	d.Photos = photos
	return nil
}

func normalizePhotos(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	if len(out) > MaxDevicePhotos {
		return nil, NewValidationError("photos", fmt.Sprintf("at most %d photos per device", MaxDevicePhotos))
	}
	return out, nil
}

func NewDevice(id string, d DeviceDetails, now time.Time) (Device, error) {
	if err := d.Normalize(); err != nil {
		return Device{}, err
	}
	return Device{
		ID:                 id,
		CustomerID:         d.CustomerID,
		Type:               d.Type,
		Brand:              d.Brand,
		Model:              d.Model,
		SerialNumber:       d.SerialNumber,
		ProblemDescription: d.ProblemDescription,
		Accessories:        d.Accessories,
		Photos:             d.Photos,
		Active:             true,
		ReceivedAt:         now,
		UpdatedAt:          now,
	}, nil
}

func (d Device) Exists() bool {
	return d.ID != ""
}

// Description is the one-line label used on reports, e.g. "Dell XPS 13 (laptop)".
func (d Device) Description() string {
	return fmt.Sprintf("%s %s (%s)", d.Brand, d.Model, d.Type)
}

func (d *Device) requireActive(op string) error {
	if !d.Active {
		return &TransitionError{Entity: EntityDevice, State: "inactive", Event: op}
	}
	return nil
}

// Edit replaces the device details. New photos are appended to the
// existing ones.
func (d *Device) Edit(details DeviceDetails, at time.Time) error {
	if err := d.requireActive("edit"); err != nil {
		return err
	}
	details.Photos = append(append([]string(nil), d.Photos...), details.Photos...)
	if err := details.Normalize(); err != nil {
		return err
	}
	d.CustomerID = details.CustomerID
	d.Type = details.Type
	d.Brand = details.Brand
	d.Model = details.Model
	d.SerialNumber = details.SerialNumber
	d.ProblemDescription = details.ProblemDescription
	d.Accessories = details.Accessories
	d.Photos = details.Photos
	d.UpdatedAt = at
	return nil
}

func (d *Device) RemovePhoto(name string, at time.Time) error {
	if err := d.requireActive("remove_photo"); err != nil {
		return err
	}
	for i, p := range d.Photos {
		if p == name {
			d.Photos = append(d.Photos[:i:i], d.Photos[i+1:]...)
			d.UpdatedAt = at
			return nil
		}
	}
	return &NotFoundError{Entity: "device_photo", ID: name}
}

// Deactivate soft-deletes the device. activeOrders is the number of active
// service orders referencing it.
func (d *Device) Deactivate(activeOrders int, at time.Time) error {
	if err := d.requireActive("delete"); err != nil {
		return err
	}
	if activeOrders > 0 {
		return &TransitionError{Entity: EntityDevice, State: "has_active_orders", Event: "delete"}
	}
	d.Active = false
	d.UpdatedAt = at
	return nil
}

type DeviceFilter struct {
	CustomerID      string
	IncludeInactive bool
}

func (f DeviceFilter) Matches(d Device) bool {
	if !f.IncludeInactive && !d.Active {
		return false
	}
	if f.CustomerID != "" && d.CustomerID != f.CustomerID {
		return false
	}
	return true
}

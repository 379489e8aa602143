package response

import (
	"time"

	"servicedesk/internal/domain/entities"
)

type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Active    bool      `json:"active"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromCustomer(c entities.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Active:    c.Active,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromCustomers(cs []entities.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromCustomer(c))
	}
	return out
}

type DeviceResponse struct {
	ID                 string    `json:"id"`
	CustomerID         string    `json:"customer_id"`
	Type               string    `json:"type"`
	Brand              string    `json:"brand"`
	Model              string    `json:"model"`
	Description        string    `json:"description"`
	SerialNumber       string    `json:"serial_number,omitempty"`
	ProblemDescription string    `json:"problem_description"`
	Accessories        string    `json:"accessories,omitempty"`
	Photos             []string  `json:"photos"`
	Active             bool      `json:"active"`
	Version            int64     `json:"version"`
	ReceivedAt         time.Time `json:"received_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func FromDevice(d entities.Device) DeviceResponse {
	photos := d.Photos
	if photos == nil {
		photos = []string{}
	}
	return DeviceResponse{
		ID:                 d.ID,
		CustomerID:         d.CustomerID,
		Type:               string(d.Type),
		Brand:              d.Brand,
		Model:              d.Model,
		Description:        d.Description(),
		SerialNumber:       d.SerialNumber,
		ProblemDescription: d.ProblemDescription,
		Accessories:        d.Accessories,
		Photos:             photos,
		Active:             d.Active,
		Version:            d.Version,
		ReceivedAt:         d.ReceivedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func FromDevices(ds []entities.Device) []DeviceResponse {
	out := make([]DeviceResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromDevice(d))
	}
	return out
}

package request

import "servicedesk/internal/domain/entities"

type CustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

func (r CustomerRequest) ToDetails() entities.CustomerDetails {
	return entities.CustomerDetails{Name: r.Name, Phone: r.Phone, Email: r.Email}
}

// DeviceRequest registers or edits a device. Photos are blob store
// filenames; on edit they are appended to the stored ones.
type DeviceRequest struct {
	CustomerID         string   `json:"customer_id" binding:"required"`
	Type               string   `json:"type" binding:"required"`
	Brand              string   `json:"brand" binding:"required"`
	Model              string   `json:"model" binding:"required"`
	SerialNumber       string   `json:"serial_number"`
	ProblemDescription string   `json:"problem_description" binding:"required"`
	Accessories        string   `json:"accessories"`
	Photos             []string `json:"photos"`
}

func (r DeviceRequest) ToDetails() entities.DeviceDetails {
	return entities.DeviceDetails{
		CustomerID:         r.CustomerID,
		Type:               entities.DeviceType(r.Type),
		Brand:              r.Brand,
		Model:              r.Model,
		SerialNumber:       r.SerialNumber,
		ProblemDescription: r.ProblemDescription,
		Accessories:        r.Accessories,
		Photos:             r.Photos,
	}
}

type RemovePhotoRequest struct {
	Photo string `json:"photo" binding:"required"`
}

package dto

import "time"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	JoinDate  string `json:"joinDate,omitempty"`
	IDType    string `json:"idType,omitempty"`
	IDNumber  string `json:"idNumber,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id.
// Solo los campos presentes sobreescriben el valor existente.
type UpdateCustomerRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	JoinDate  *string `json:"joinDate,omitempty"`
	IDType    *string `json:"idType,omitempty"`
	IDNumber  *string `json:"idNumber,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string            `json:"id"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName,omitempty"`
	Email     string            `json:"email,omitempty"`
	Phone     string            `json:"phone"`
	Address   string            `json:"address,omitempty"`
	JoinDate  time.Time         `json:"joinDate"`
	IDType    string            `json:"idType,omitempty"`
	IDNumber  string            `json:"idNumber,omitempty"`
	Photo     *ImageRefResponse `json:"photo,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CustomerEnvelope registro único con la forma {success, message?, data}.
type CustomerEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Data    CustomerResponse `json:"data"`
}

// CustomerListResponse listado completo con conteo.
type CustomerListResponse struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Data    []CustomerResponse `json:"data"`
}

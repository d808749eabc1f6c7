package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImageUpload bytes crudos de una imagen recibida por multipart.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// CreateLoanRequest body para POST /api/loans.
// Los numéricos requeridos son punteros para distinguir "ausente" de cero.
type CreateLoanRequest struct {
	Name         string           `json:"name"`
	Phone        string           `json:"phone"`
	Address      string           `json:"address,omitempty"`
	JoinDate     string           `json:"joinDate,omitempty"` // YYYY-MM-DD o RFC3339; vacío = ahora
	IDType       string           `json:"idType,omitempty"`
	IDNumber     string           `json:"idNumber,omitempty"`
	LoanAmount   *decimal.Decimal `json:"loanAmount"`
	InterestRate *decimal.Decimal `json:"interestRate"` // porcentaje anual
	Term         string           `json:"term,omitempty"`
	Months       *int             `json:"months,omitempty"`
	Years        *int             `json:"years,omitempty"`
	Status       string           `json:"status,omitempty"`
	TotalLoans   *int             `json:"totalLoans,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

// UpdateLoanRequest body para PUT /api/loans/:id.
// Todo es puntero: solo los campos presentes sobreescriben el valor existente.
type UpdateLoanRequest struct {
	Name         *string          `json:"name,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Address      *string          `json:"address,omitempty"`
	JoinDate     *string          `json:"joinDate,omitempty"`
	IDType       *string          `json:"idType,omitempty"`
	IDNumber     *string          `json:"idNumber,omitempty"`
	LoanAmount   *decimal.Decimal `json:"loanAmount,omitempty"`
	InterestRate *decimal.Decimal `json:"interestRate,omitempty"`
	Term         *string          `json:"term,omitempty"`
	Months       *int             `json:"months,omitempty"`
	Years        *int             `json:"years,omitempty"`
	Status       *string          `json:"status,omitempty"`
	TotalLoans   *int             `json:"totalLoans,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

// ImageRefResponse referencia de imagen en respuestas.
type ImageRefResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// LoanResponse préstamo en respuestas.
type LoanResponse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Phone              string            `json:"phone"`
	Address            string            `json:"address,omitempty"`
	JoinDate           time.Time         `json:"joinDate"`
	IDType             string            `json:"idType,omitempty"`
	IDNumber           string            `json:"idNumber,omitempty"`
	CustomerImage      *ImageRefResponse `json:"customerImage,omitempty"`
	LoanAmount         decimal.Decimal   `json:"loanAmount"`
	InterestRate       decimal.Decimal   `json:"interestRate"`
	Term               string            `json:"term"`
	Months             int               `json:"months,omitempty"`
	Years              int               `json:"years,omitempty"`
	TotalPayable       *decimal.Decimal  `json:"totalPayable,omitempty"`
	MonthlyInstallment *decimal.Decimal  `json:"monthlyInstallment,omitempty"`
	Status             string            `json:"status"`
	TotalLoans         int               `json:"totalLoans"`
	Notes              string            `json:"notes,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// LoanEnvelope registro único con la forma {success, message?, data}.
type LoanEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    LoanResponse `json:"data"`
}

// LoanListResponse listado completo con conteo (sin paginación).
type LoanListResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Data    []LoanResponse `json:"data"`
}

// ListLoansQuery query params de GET /api/loans.
type ListLoansQuery struct {
	Status    string `query:"status"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

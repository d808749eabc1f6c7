package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TermUnit unidad del plazo del préstamo.
type TermUnit string

const (
	TermMonths TermUnit = "months"
	TermYears  TermUnit = "years"
)

// Valid reporta si la unidad de plazo es una de las permitidas.
func (t TermUnit) Valid() bool {
	return t == TermMonths || t == TermYears
}

// LoanStatus estado del ciclo de vida del préstamo.
type LoanStatus string

const (
	StatusActive    LoanStatus = "active"
	StatusClosed    LoanStatus = "closed"
	StatusDefaulted LoanStatus = "defaulted"
	StatusPending   LoanStatus = "pending"
)

// Valid reporta si el estado es uno de los permitidos.
func (s LoanStatus) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusDefaulted, StatusPending:
		return true
	}
	return false
}

// ValidIDType reporta si el tipo de documento de identidad es uno de los aceptados.
func ValidIDType(s string) bool {
	switch s {
	case "Aadhaar", "PAN", "Voter ID", "Driving License", "Passport":
		return true
	}
	return false
}

// ImageRef referencia durable a una imagen en el servicio externo.
// URL es pública; PublicID permite borrarla después.
type ImageRef struct {
	URL      string
	PublicID string
}

// Loan representa un préstamo con los datos del cliente embebidos.
// TotalPayable y MonthlyInstallment son derivados: el use case los recalcula
// en cada escritura que toque LoanAmount, InterestRate, Term, Months o Years,
// de modo que nunca quedan desfasados en reposo.
type Loan struct {
	ID       string
	Name     string
	Phone    string
	Address  string
	JoinDate time.Time

	IDType   string // vacío = sin documento
	IDNumber string // vacío = sin número; si existe es único en toda la colección

	CustomerImage *ImageRef

	LoanAmount   decimal.Decimal
	InterestRate decimal.Decimal // porcentaje anual
	Term         TermUnit
	Months       int // 0 = no definido
	Years        int // 0 = no definido

	TotalPayable       decimal.NullDecimal
	MonthlyInstallment decimal.NullDecimal

	Status     LoanStatus
	TotalLoans int // préstamos agrupados bajo este registro (mínimo 1)
	Notes      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TermInMonths devuelve el plazo normalizado a meses (0 si no está definido).
func (l *Loan) TermInMonths() int {
	if l.Term == TermYears && l.Years > 0 {
		return l.Years * 12
	}
	return l.Months
}

package repository

import (
	"context"

	"github.com/jhoicas/prestamos-api/internal/domain/entity"
)

// LoanListFilter criterios de listado. Los campos vacíos no filtran.
type LoanListFilter struct {
	Status    entity.LoanStatus // coincidencia exacta
	Search    string            // substring case-insensitive sobre name/phone/idNumber
	SortBy    string            // nombre de campo del API (whitelist en el adaptador)
	SortOrder string            // asc | desc
}

// LoanRepository define el puerto de persistencia para Loan.
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type LoanRepository interface {
	Create(ctx context.Context, loan *entity.Loan) error
	GetByID(ctx context.Context, id string) (*entity.Loan, error)
	GetByIDNumber(ctx context.Context, idNumber string) (*entity.Loan, error)
	List(ctx context.Context, filter LoanListFilter) ([]*entity.Loan, error)
	Update(ctx context.Context, loan *entity.Loan) error
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/prestamos-api/internal/domain/entity"
)

// LoanSummary totales agregados de toda la colección de préstamos.
// Los promedios son NullDecimal: con la colección vacía no hay promedio (Valid=false).
type LoanSummary struct {
	TotalLoans      int64
	TotalAmount     decimal.Decimal
	TotalPayable    decimal.Decimal
	ActiveLoans     int64
	ClosedLoans     int64
	AvgLoanAmount   decimal.NullDecimal
	AvgInterestRate decimal.NullDecimal
}

// StatusCount cantidad de préstamos por estado. Los estados sin registros no aparecen.
type StatusCount struct {
	Status entity.LoanStatus
	Count  int64
}

// LoanStatsRepository consultas de lectura para las estadísticas agregadas.
// Las implementaciones son read-only (no modifican datos).
type LoanStatsRepository interface {
	GetSummary(ctx context.Context) (LoanSummary, error)
	GetStatusDistribution(ctx context.Context) ([]StatusCount, error)
}

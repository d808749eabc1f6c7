package dto

import "github.com/shopspring/decimal"

// StatsSummary totales agregados de la colección de préstamos.
// Los promedios son punteros: con la colección vacía no se emiten.
type StatsSummary struct {
	TotalLoans      int64            `json:"totalLoans"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	TotalPayable    decimal.Decimal  `json:"totalPayable"`
	ActiveLoans     int64            `json:"activeLoans"`
	ClosedLoans     int64            `json:"closedLoans"`
	AvgLoanAmount   *decimal.Decimal `json:"avgLoanAmount,omitempty"`
	AvgInterestRate *decimal.Decimal `json:"avgInterestRate,omitempty"`
}

// StatusCountDTO elemento de la distribución por estado.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// StatsData cuerpo de GET /api/loans/stats.
type StatsData struct {
	Summary            StatsSummary     `json:"summary"`
	StatusDistribution []StatusCountDTO `json:"statusDistribution"`
}

// StatsResponse envoltorio de la respuesta de estadísticas.
type StatsResponse struct {
	Success bool      `json:"success"`
	Data    StatsData `json:"data"`
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/prestamos-api/internal/domain/entity"
	"github.com/jhoicas/prestamos-api/internal/domain/repository"
)

var _ repository.LoanStatsRepository = (*LoanStatsRepo)(nil)

// LoanStatsRepo consultas de solo lectura para estadísticas de préstamos.
type LoanStatsRepo struct {
	pool *pgxpool.Pool
}

// NewLoanStatsRepository construye el adaptador de estadísticas.
func NewLoanStatsRepository(pool *pgxpool.Pool) *LoanStatsRepo {
	return &LoanStatsRepo{pool: pool}
}

// GetSummary devuelve los totales globales en una sola pasada.
// COALESCE lleva las sumas a cero con la tabla vacía; los AVG quedan NULL
// (NullDecimal Valid=false) porque un promedio sin registros no existe.
func (r *LoanStatsRepo) GetSummary(ctx context.Context) (repository.LoanSummary, error) {
	const query = `
	SELECT
	    COUNT(*)                                      AS total_loans,
	    COALESCE(SUM(loan_amount), 0)                 AS total_amount,
	    COALESCE(SUM(total_payable), 0)               AS total_payable,
	    COUNT(*) FILTER (WHERE status = 'active')     AS active_loans,
	    COUNT(*) FILTER (WHERE status = 'closed')     AS closed_loans,
	    AVG(loan_amount)                              AS avg_loan_amount,
	    AVG(interest_rate)                            AS avg_interest_rate
	FROM loans`

	var s repository.LoanSummary
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalLoans,
		&s.TotalAmount,
		&s.TotalPayable,
		&s.ActiveLoans,
		&s.ClosedLoans,
		&s.AvgLoanAmount,
		&s.AvgInterestRate,
	)
	if err != nil {
		return repository.LoanSummary{}, fmt.Errorf("stats.GetSummary: %w", err)
	}
	return s, nil
}

// GetStatusDistribution agrupa por estado. Los estados sin registros no aparecen.
func (r *LoanStatsRepo) GetStatusDistribution(ctx context.Context) ([]repository.StatusCount, error) {
	const query = `
	SELECT status, COUNT(*) AS count
	FROM loans
	GROUP BY status
	ORDER BY count DESC, status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stats.GetStatusDistribution: %w", err)
	}
	defer rows.Close()

	var results []repository.StatusCount
	for rows.Next() {
		var (
			status string
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("stats.GetStatusDistribution scan: %w", err)
		}
		results = append(results, repository.StatusCount{
			Status: entity.LoanStatus(status),
			Count:  count,
		})
	}
	return results, rows.Err()
}

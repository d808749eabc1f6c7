package usecase

import (
	"context"

	"github.com/jhoicas/prestamos-api/internal/application/dto"
	"github.com/jhoicas/prestamos-api/internal/domain/repository"
)

// StatsUseCase arma las estadísticas agregadas de préstamos.
type StatsUseCase struct {
	repo repository.LoanStatsRepository
}

// NewStatsUseCase construye el caso de uso de estadísticas.
func NewStatsUseCase(repo repository.LoanStatsRepository) *StatsUseCase {
	return &StatsUseCase{repo: repo}
}

// Get devuelve el resumen global y la distribución por estado.
// Con la colección vacía: conteos en cero, promedios omitidos, distribución vacía.
func (uc *StatsUseCase) Get(ctx context.Context) (*dto.StatsResponse, error) {
	summary, err := uc.repo.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	distribution, err := uc.repo.GetStatusDistribution(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.StatsResponse{
		Success: true,
		Data: dto.StatsData{
			Summary: dto.StatsSummary{
				TotalLoans:      summary.TotalLoans,
				TotalAmount:     summary.TotalAmount,
				TotalPayable:    summary.TotalPayable,
				ActiveLoans:     summary.ActiveLoans,
				ClosedLoans:     summary.ClosedLoans,
				AvgLoanAmount:   nullDecimalPtr(summary.AvgLoanAmount),
				AvgInterestRate: nullDecimalPtr(summary.AvgInterestRate),
			},
			StatusDistribution: make([]dto.StatusCountDTO, 0, len(distribution)),
		},
	}
	for _, s := range distribution {
		out.Data.StatusDistribution = append(out.Data.StatusDistribution, dto.StatusCountDTO{
			Status: string(s.Status),
			Count:  s.Count,
		})
	}
	return out, nil
}

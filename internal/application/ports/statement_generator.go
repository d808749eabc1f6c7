package ports

import (
	"context"

	"github.com/jhoicas/prestamos-api/internal/domain/entity"
)

// StatementGenerator produce el estado de cuenta imprimible de un préstamo.
type StatementGenerator interface {
	GenerateStatement(ctx context.Context, loan *entity.Loan) ([]byte, error)
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/prestamos-api/internal/application/dto"
	"github.com/jhoicas/prestamos-api/internal/application/ports"
	"github.com/jhoicas/prestamos-api/internal/domain"
	"github.com/jhoicas/prestamos-api/internal/domain/entity"
	loancalc "github.com/jhoicas/prestamos-api/internal/domain/loan"
	"github.com/jhoicas/prestamos-api/internal/domain/repository"
)

// LoanUseCase aplica las reglas de negocio de préstamos (casos de uso).
type LoanUseCase struct {
	repo   repository.LoanRepository
	images ports.ImageStore
	pdf    ports.StatementGenerator
}

// NewLoanUseCase construye el caso de uso con sus puertos.
func NewLoanUseCase(repo repository.LoanRepository, images ports.ImageStore, pdf ports.StatementGenerator) *LoanUseCase {
	return &LoanUseCase{repo: repo, images: images, pdf: pdf}
}

// Create valida, deriva los campos financieros y persiste un préstamo nuevo.
// Si viene imagen, la sube ANTES de escribir el registro: un fallo de subida
// falla la petición completa (domain.ErrUpstreamStorage).
// Devuelve domain.ErrDuplicate si el idNumber ya existe (lo decide la DB, no
// un check-then-write de aplicación).
func (uc *LoanUseCase) Create(ctx context.Context, in dto.CreateLoanRequest, image *dto.ImageUpload) (*dto.LoanResponse, error) {
	now := time.Now()
	l := &entity.Loan{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(in.Name),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		JoinDate:   now,
		IDType:     strings.TrimSpace(in.IDType),
		IDNumber:   strings.TrimSpace(in.IDNumber),
		Term:       entity.TermMonths,
		Status:     entity.StatusActive,
		TotalLoans: 1,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Term != "" {
		l.Term = entity.TermUnit(in.Term)
	}
	if in.Status != "" {
		l.Status = entity.LoanStatus(in.Status)
	}
	if in.LoanAmount != nil {
		l.LoanAmount = *in.LoanAmount
	}
	if in.InterestRate != nil {
		l.InterestRate = *in.InterestRate
	}
	if in.Months != nil {
		l.Months = *in.Months
	}
	if in.Years != nil {
		l.Years = *in.Years
	}
	if in.TotalLoans != nil {
		l.TotalLoans = *in.TotalLoans
	}

	var fields []string
	if in.JoinDate != "" {
		when, err := parseDate(in.JoinDate)
		if err != nil {
			fields = append(fields, "Join date must be a valid date")
		} else {
			l.JoinDate = when
		}
	}
	if in.LoanAmount == nil {
		fields = append(fields, "Loan amount is required")
	}
	if in.InterestRate == nil {
		fields = append(fields, "Interest rate is required")
	}
	fields = append(fields, validateLoan(l)...)
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	loancalc.Recalculate(l)

	if image != nil {
		ref, err := uc.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		l.CustomerImage = ref
	}

	if err := uc.repo.Create(ctx, l); err != nil {
		// La imagen ya subida quedaría huérfana: limpieza best-effort.
		if l.CustomerImage != nil {
			uc.deleteImageBestEffort(ctx, l.CustomerImage.PublicID)
		}
		return nil, err
	}
	return loanToResponse(l), nil
}

// GetByID obtiene un préstamo. ErrInvalidID si el id no es un UUID,
// ErrNotFound si no existe.
func (uc *LoanUseCase) GetByID(ctx context.Context, id string) (*dto.LoanResponse, error) {
	l, err := uc.loadLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	return loanToResponse(l), nil
}

// Update fusiona los campos presentes sobre el registro existente, recalcula
// los derivados y persiste. Si viene imagen nueva, la anterior se borra del
// servicio externo en modo best-effort DESPUÉS de persistir: su fallo nunca
// hace fallar el update.
func (uc *LoanUseCase) Update(ctx context.Context, id string, in dto.UpdateLoanRequest, image *dto.ImageUpload) (*dto.LoanResponse, error) {
	existing, err := uc.loadLoan(ctx, id)
	if err != nil {
		return nil, err
	}

	l := *existing
	var fields []string
	if in.Name != nil {
		l.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		l.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		l.Address = strings.TrimSpace(*in.Address)
	}
	if in.JoinDate != nil {
		when, perr := parseDate(*in.JoinDate)
		if perr != nil {
			fields = append(fields, "Join date must be a valid date")
		} else {
			l.JoinDate = when
		}
	}
	if in.IDType != nil {
		l.IDType = strings.TrimSpace(*in.IDType)
	}
	if in.IDNumber != nil {
		l.IDNumber = strings.TrimSpace(*in.IDNumber)
	}
	if in.LoanAmount != nil {
		l.LoanAmount = *in.LoanAmount
	}
	if in.InterestRate != nil {
		l.InterestRate = *in.InterestRate
	}
	if in.Term != nil {
		l.Term = entity.TermUnit(*in.Term)
	}
	if in.Months != nil {
		l.Months = *in.Months
	}
	if in.Years != nil {
		l.Years = *in.Years
	}
	if in.Status != nil {
		l.Status = entity.LoanStatus(*in.Status)
	}
	if in.TotalLoans != nil {
		l.TotalLoans = *in.TotalLoans
	}
	if in.Notes != nil {
		l.Notes = strings.TrimSpace(*in.Notes)
	}

	fields = append(fields, validateLoan(&l)...)
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	// Recalcular siempre: si los insumos no cambiaron el resultado es idéntico,
	// y los derivados nunca quedan desfasados tras una escritura.
	loancalc.Recalculate(&l)

	var oldImage *entity.ImageRef
	if image != nil {
		ref, serr := uc.storeImage(ctx, image)
		if serr != nil {
			return nil, serr
		}
		oldImage = existing.CustomerImage
		l.CustomerImage = ref
	}

	l.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, &l); err != nil {
		if image != nil && l.CustomerImage != nil {
			uc.deleteImageBestEffort(ctx, l.CustomerImage.PublicID)
		}
		return nil, err
	}

	if oldImage != nil {
		uc.deleteImageBestEffort(ctx, oldImage.PublicID)
	}
	return loanToResponse(&l), nil
}

// Delete elimina el préstamo. La imagen adjunta (si existe) se borra del
// servicio externo en modo best-effort; su fallo se registra y se ignora.
func (uc *LoanUseCase) Delete(ctx context.Context, id string) error {
	l, err := uc.loadLoan(ctx, id)
	if err != nil {
		return err
	}
	if l.CustomerImage != nil {
		uc.deleteImageBestEffort(ctx, l.CustomerImage.PublicID)
	}
	return uc.repo.Delete(ctx, l.ID)
}

// List devuelve todos los préstamos que cumplan el filtro, con conteo.
func (uc *LoanUseCase) List(ctx context.Context, q dto.ListLoansQuery) (*dto.LoanListResponse, error) {
	order := strings.ToLower(q.SortOrder)
	if order != "asc" {
		order = "desc"
	}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	loans, err := uc.repo.List(ctx, repository.LoanListFilter{
		Status:    entity.LoanStatus(q.Status),
		Search:    strings.TrimSpace(q.Search),
		SortBy:    sortBy,
		SortOrder: order,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.LoanResponse, 0, len(loans))
	for _, l := range loans {
		items = append(items, *loanToResponse(l))
	}
	return &dto.LoanListResponse{Success: true, Count: len(items), Data: items}, nil
}

// FindByIDNumber busca por número de documento exacto.
func (uc *LoanUseCase) FindByIDNumber(ctx context.Context, idNumber string) (*dto.LoanResponse, error) {
	l, err := uc.repo.GetByIDNumber(ctx, strings.TrimSpace(idNumber))
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return loanToResponse(l), nil
}

// Statement genera el estado de cuenta PDF del préstamo.
func (uc *LoanUseCase) Statement(ctx context.Context, id string) ([]byte, error) {
	l, err := uc.loadLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateStatement(ctx, l)
}

// ── Helpers internos ──────────────────────────────────────────────────────────

func (uc *LoanUseCase) loadLoan(ctx context.Context, id string) (*entity.Loan, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	l, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

func (uc *LoanUseCase) storeImage(ctx context.Context, image *dto.ImageUpload) (*entity.ImageRef, error) {
	return storeImageThrough(ctx, uc.images, image)
}

func (uc *LoanUseCase) deleteImageBestEffort(ctx context.Context, publicID string) {
	deleteImageBestEffort(ctx, uc.images, publicID)
}

// validateLoan reúne TODAS las violaciones de la entidad en una sola pasada.
// Los mensajes replican los que el frontend ya espera.
func validateLoan(l *entity.Loan) []string {
	var fields []string
	if l.Name == "" {
		fields = append(fields, "Name is required")
	}
	if l.Phone == "" {
		fields = append(fields, "Phone number is required")
	}
	if l.LoanAmount.IsNegative() {
		fields = append(fields, "Loan amount cannot be negative")
	}
	if l.InterestRate.IsNegative() {
		fields = append(fields, "Interest rate cannot be negative")
	}
	if !l.Term.Valid() {
		fields = append(fields, fmt.Sprintf("`%s` is not a valid term unit", l.Term))
	}
	// 0 significa "no definido" (el plazo es opcional); negativo sí es violación.
	if l.Months < 0 {
		fields = append(fields, "Months must be at least 1")
	}
	if l.Years < 0 {
		fields = append(fields, "Years must be at least 1")
	}
	if l.IDType != "" && !entity.ValidIDType(l.IDType) {
		fields = append(fields, fmt.Sprintf("`%s` is not a valid ID type", l.IDType))
	}
	if !l.Status.Valid() {
		fields = append(fields, fmt.Sprintf("`%s` is not a valid status", l.Status))
	}
	if l.TotalLoans < 1 {
		fields = append(fields, "Total loans must be at least 1")
	}
	return fields
}

// parseDate acepta fecha sola (YYYY-MM-DD) o RFC3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func loanToResponse(l *entity.Loan) *dto.LoanResponse {
	if l == nil {
		return nil
	}
	out := &dto.LoanResponse{
		ID:           l.ID,
		Name:         l.Name,
		Phone:        l.Phone,
		Address:      l.Address,
		JoinDate:     l.JoinDate,
		IDType:       l.IDType,
		IDNumber:     l.IDNumber,
		LoanAmount:   l.LoanAmount,
		InterestRate: l.InterestRate,
		Term:         string(l.Term),
		Months:       l.Months,
		Years:        l.Years,
		Status:       string(l.Status),
		TotalLoans:   l.TotalLoans,
		Notes:        l.Notes,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
	if l.CustomerImage != nil {
		out.CustomerImage = &dto.ImageRefResponse{URL: l.CustomerImage.URL, PublicID: l.CustomerImage.PublicID}
	}
	out.TotalPayable = nullDecimalPtr(l.TotalPayable)
	out.MonthlyInstallment = nullDecimalPtr(l.MonthlyInstallment)
	return out
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

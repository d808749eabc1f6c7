package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/prestamos-api/internal/domain"
	"github.com/jhoicas/prestamos-api/internal/domain/entity"
	"github.com/jhoicas/prestamos-api/internal/domain/repository"
)

var _ repository.LoanRepository = (*LoanRepo)(nil)

const loanColumns = `id, name, phone, address, join_date, id_type, COALESCE(id_number, ''),
	image_url, image_public_id, loan_amount, interest_rate, term, months, years,
	total_payable, monthly_installment, status, total_loans, notes, created_at, updated_at`

// sortColumns whitelist de campo del API -> columna. Cualquier otro valor
// cae al orden por defecto (created_at).
var sortColumns = map[string]string{
	"name":               "name",
	"phone":              "phone",
	"address":            "address",
	"joinDate":           "join_date",
	"idType":             "id_type",
	"idNumber":           "id_number",
	"loanAmount":         "loan_amount",
	"interestRate":       "interest_rate",
	"term":               "term",
	"months":             "months",
	"years":              "years",
	"totalPayable":       "total_payable",
	"monthlyInstallment": "monthly_installment",
	"status":             "status",
	"totalLoans":         "total_loans",
	"createdAt":          "created_at",
	"updatedAt":          "updated_at",
}

// LoanRepo implementación de LoanRepository (usable con pool o tx).
type LoanRepo struct {
	q Querier
}

// NewLoanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoanRepository(q Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

// Create persiste un préstamo nuevo. La colisión de id_number la detecta el
// índice único parcial de la DB (nunca check-then-write de aplicación).
func (r *LoanRepo) Create(ctx context.Context, l *entity.Loan) error {
	query := `
		INSERT INTO loans (id, name, phone, address, join_date, id_type, id_number,
			image_url, image_public_id, loan_amount, interest_rate, term, months, years,
			total_payable, monthly_installment, status, total_loans, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	imageURL, imagePublicID := imageFields(l.CustomerImage)
	_, err := r.q.Exec(ctx, query,
		l.ID, l.Name, l.Phone, l.Address, l.JoinDate, l.IDType, nullIfEmpty(l.IDNumber),
		imageURL, imagePublicID, l.LoanAmount, l.InterestRate, string(l.Term), l.Months, l.Years,
		l.TotalPayable, l.MonthlyInstallment, string(l.Status), l.TotalLoans, l.Notes, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo por ID. Devuelve (nil, nil) si no existe.
func (r *LoanRepo) GetByID(ctx context.Context, id string) (*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	l, err := scanLoan(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return l, nil
}

// GetByIDNumber busca por número de documento exacto. Devuelve (nil, nil) si no existe.
func (r *LoanRepo) GetByIDNumber(ctx context.Context, idNumber string) (*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id_number = $1`
	l, err := scanLoan(r.q.QueryRow(ctx, query, idNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan by id_number: %w", err)
	}
	return l, nil
}

// List devuelve el conjunto completo que cumpla el filtro (sin paginación).
// status filtra por igualdad; search es substring case-insensitive sobre
// name/phone/id_number; ambos se combinan con AND.
func (r *LoanRepo) List(ctx context.Context, filter repository.LoanListFilter) ([]*entity.Loan, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE $%d OR phone ILIKE $%d OR COALESCE(id_number, '') ILIKE $%d)", n, n, n))
	}

	query := `SELECT ` + loanColumns + ` FROM loans`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + orderClause(filter.SortBy, filter.SortOrder)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	var list []*entity.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Update actualiza el registro completo (el merge de campos ya lo hizo el use case).
func (r *LoanRepo) Update(ctx context.Context, l *entity.Loan) error {
	query := `
		UPDATE loans SET name = $2, phone = $3, address = $4, join_date = $5, id_type = $6,
			id_number = $7, image_url = $8, image_public_id = $9, loan_amount = $10,
			interest_rate = $11, term = $12, months = $13, years = $14, total_payable = $15,
			monthly_installment = $16, status = $17, total_loans = $18, notes = $19, updated_at = $20
		WHERE id = $1`
	imageURL, imagePublicID := imageFields(l.CustomerImage)
	_, err := r.q.Exec(ctx, query,
		l.ID, l.Name, l.Phone, l.Address, l.JoinDate, l.IDType, nullIfEmpty(l.IDNumber),
		imageURL, imagePublicID, l.LoanAmount, l.InterestRate, string(l.Term), l.Months, l.Years,
		l.TotalPayable, l.MonthlyInstallment, string(l.Status), l.TotalLoans, l.Notes, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update loan: %w", err)
	}
	return nil
}

// Delete elimina un préstamo por ID.
func (r *LoanRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM loans WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	return nil
}

// orderClause arma el ORDER BY pasando por la whitelist (evita inyección vía sortBy).
func orderClause(sortBy, sortOrder string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

func imageFields(ref *entity.ImageRef) (url, publicID string) {
	if ref == nil {
		return "", ""
	}
	return ref.URL, ref.PublicID
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoan(row rowScanner) (*entity.Loan, error) {
	var (
		l                       entity.Loan
		term, status            string
		imageURL, imagePublicID string
	)
	err := row.Scan(
		&l.ID, &l.Name, &l.Phone, &l.Address, &l.JoinDate, &l.IDType, &l.IDNumber,
		&imageURL, &imagePublicID, &l.LoanAmount, &l.InterestRate, &term, &l.Months, &l.Years,
		&l.TotalPayable, &l.MonthlyInstallment, &status, &l.TotalLoans, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Term = entity.TermUnit(term)
	l.Status = entity.LoanStatus(status)
	if imageURL != "" {
		l.CustomerImage = &entity.ImageRef{URL: imageURL, PublicID: imagePublicID}
	}
	return &l, nil
}

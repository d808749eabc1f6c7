package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prestamos-api/internal/application/dto"
	"github.com/jhoicas/prestamos-api/internal/application/usecase"
	"github.com/jhoicas/prestamos-api/internal/domain"
	"github.com/jhoicas/prestamos-api/internal/domain/entity"
	"github.com/jhoicas/prestamos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeLoanRepo repositorio en memoria indexado por id.
type fakeLoanRepo struct {
	loans      map[string]*entity.Loan
	createErr  error
	deleteCnt  int
	lastFilter repository.LoanListFilter
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[string]*entity.Loan)}
}

func (r *fakeLoanRepo) Create(_ context.Context, l *entity.Loan) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.loans {
		if l.IDNumber != "" && existing.IDNumber == l.IDNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *l
	r.loans[l.ID] = &cp
	return nil
}

func (r *fakeLoanRepo) GetByID(_ context.Context, id string) (*entity.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLoanRepo) GetByIDNumber(_ context.Context, idNumber string) (*entity.Loan, error) {
	for _, l := range r.loans {
		if l.IDNumber != "" && l.IDNumber == idNumber {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLoanRepo) List(_ context.Context, f repository.LoanListFilter) ([]*entity.Loan, error) {
	r.lastFilter = f
	var out []*entity.Loan
	for _, l := range r.loans {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeLoanRepo) Update(_ context.Context, l *entity.Loan) error {
	if _, ok := r.loans[l.ID]; !ok {
		return domain.ErrNotFound
	}
	// Misma unicidad que el índice parcial: colisión solo contra OTRO registro.
	for id, existing := range r.loans {
		if id != l.ID && l.IDNumber != "" && existing.IDNumber == l.IDNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *l
	r.loans[l.ID] = &cp
	return nil
}

func (r *fakeLoanRepo) Delete(_ context.Context, id string) error {
	r.deleteCnt++
	delete(r.loans, id)
	return nil
}

// fakeImageStore registra las llamadas y permite forzar fallos.
type fakeImageStore struct {
	storeErr   error
	deleteErr  error
	stored     int
	deletedIDs []string
}

func (s *fakeImageStore) Store(_ context.Context, _ []byte, _ string) (*entity.ImageRef, error) {
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	s.stored++
	return &entity.ImageRef{URL: "https://img.test/loan.jpg", PublicID: "loans/abc123"}, nil
}

func (s *fakeImageStore) Delete(_ context.Context, publicID string) error {
	s.deletedIDs = append(s.deletedIDs, publicID)
	return s.deleteErr
}

// fakeStatementGen devuelve un PDF sintético.
type fakeStatementGen struct{}

func (fakeStatementGen) GenerateStatement(_ context.Context, _ *entity.Loan) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

func buildUseCase() (*usecase.LoanUseCase, *fakeLoanRepo, *fakeImageStore) {
	repo := newFakeLoanRepo()
	images := &fakeImageStore{}
	uc := usecase.NewLoanUseCase(repo, images, fakeStatementGen{})
	return uc, repo, images
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func validCreateRequest() dto.CreateLoanRequest {
	return dto.CreateLoanRequest{
		Name:         "Ravi Kumar",
		Phone:        "9876543210",
		IDType:       "Aadhaar",
		IDNumber:     "1234-5678-9012",
		LoanAmount:   decPtr(100_000),
		InterestRate: decPtr(12),
		Term:         "months",
		Months:       intPtr(12),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestLoanCreate_DerivaCamposFinancieros(t *testing.T) {
	uc, _, _ := buildUseCase()

	out, err := uc.Create(context.Background(), validCreateRequest(), nil)
	require.NoError(t, err)

	require.NotNil(t, out.TotalPayable, "con plazo presente deben derivarse los campos")
	require.NotNil(t, out.MonthlyInstallment)
	assert.True(t, decimal.NewFromInt(112_000).Equal(*out.TotalPayable))
	assert.Equal(t, "9333.33", out.MonthlyInstallment.Round(2).String())
	assert.Equal(t, "active", out.Status, "el estado por defecto es active")
	assert.Equal(t, 1, out.TotalLoans)
}

func TestLoanCreate_SinPlazoNoDerivaNiFalla(t *testing.T) {
	uc, _, _ := buildUseCase()
	in := validCreateRequest()
	in.Months = nil // plazo ausente: el cálculo es best-effort

	out, err := uc.Create(context.Background(), in, nil)
	require.NoError(t, err)
	assert.Nil(t, out.TotalPayable)
	assert.Nil(t, out.MonthlyInstallment)
}

func TestLoanCreate_ValidacionAcumulaTodosLosMensajes(t *testing.T) {
	uc, _, _ := buildUseCase()
	neg := decimal.NewFromInt(-5)
	in := dto.CreateLoanRequest{
		LoanAmount:   &neg,
		InterestRate: decPtr(12),
		IDType:       "Cedula",
		Status:       "archived",
	}

	_, err := uc.Create(context.Background(), in, nil)
	require.Error(t, err)

	verr := domain.AsValidation(err)
	require.NotNil(t, verr, "debe ser un error de validación, no %T", err)
	assert.Contains(t, verr.Fields, "Name is required")
	assert.Contains(t, verr.Fields, "Phone number is required")
	assert.Contains(t, verr.Fields, "Loan amount cannot be negative")
	assert.Contains(t, verr.Fields, "`Cedula` is not a valid ID type")
	assert.Contains(t, verr.Fields, "`archived` is not a valid status")
}

func TestLoanCreate_RequiereMontoYTasa(t *testing.T) {
	uc, _, _ := buildUseCase()
	in := dto.CreateLoanRequest{Name: "Ravi", Phone: "99"}

	_, err := uc.Create(context.Background(), in, nil)
	verr := domain.AsValidation(err)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "Loan amount is required")
	assert.Contains(t, verr.Fields, "Interest rate is required")
}

func TestLoanCreate_IDNumberDuplicado(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.Create(context.Background(), validCreateRequest(), nil)
	require.NoError(t, err)

	in := validCreateRequest()
	in.Phone = "0000000000"
	_, err = uc.Create(context.Background(), in, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLoanCreate_FalloDeImagenFallaElAlta(t *testing.T) {
	uc, repo, images := buildUseCase()
	images.storeErr = errors.New("cloud caído")

	_, err := uc.Create(context.Background(), validCreateRequest(),
		&dto.ImageUpload{Data: []byte("jpg"), ContentType: "image/jpeg"})

	assert.ErrorIs(t, err, domain.ErrUpstreamStorage,
		"un fallo de subida debe abortar el alta completa")
	assert.Empty(t, repo.loans, "nada debe persistirse si la imagen falló")
}

func TestLoanCreate_ImagenInvalidaPasaComoInvalidInput(t *testing.T) {
	uc, _, images := buildUseCase()
	images.storeErr = domain.ErrInvalidInput

	_, err := uc.Create(context.Background(), validCreateRequest(),
		&dto.ImageUpload{Data: []byte("x"), ContentType: "text/plain"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrUpstreamStorage)
}

func TestLoanCreate_InsertFallidoLimpiaImagenHuerfana(t *testing.T) {
	uc, repo, images := buildUseCase()
	repo.createErr = errors.New("db caída")

	_, err := uc.Create(context.Background(), validCreateRequest(),
		&dto.ImageUpload{Data: []byte("jpg"), ContentType: "image/jpeg"})

	require.Error(t, err)
	assert.Equal(t, []string{"loans/abc123"}, images.deletedIDs,
		"la imagen ya subida debe limpiarse cuando el insert falla")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetByID / FindByIDNumber
// ──────────────────────────────────────────────────────────────────────────────

func TestLoanGetByID_IDInvalido(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.GetByID(context.Background(), "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestLoanGetByID_NoExiste(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.GetByID(context.Background(), "00000000-0000-0000-0000-000000000099")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoanFindByIDNumber_NoExiste(t *testing.T) {
	uc, _, _ := buildUseCase()
	_, err := uc.FindByIDNumber(context.Background(), "9999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoanFindByIDNumber_Encontrado(t *testing.T) {
	uc, _, _ := buildUseCase()
	created, err := uc.Create(context.Background(), validCreateRequest(), nil)
	require.NoError(t, err)

	out, err := uc.FindByIDNumber(context.Background(), "1234-5678-9012")
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestLoanUpdate_CambioDeMontoRecalculaDerivados(t *testing.T) {
	uc, _, _ := buildUseCase()
	created, err := uc.Create(context.Background(), validCreateRequest(), nil)
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), created.ID,
		dto.UpdateLoanRequest{LoanAmount: decPtr(200_000)}, nil)
	require.NoError(t, err)

	require.NotNil(t, out.TotalPayable)
	assert.True(t, decimal.NewFromInt(224_000).Equal(*out.TotalPayable),
		"duplicar el monto debe duplicar el total a pagar")
}

func TestLoanUpdate_CampoAjenoNoTocaDerivados(t *testing.T) {
	uc, _, _ := buildUseCase()
	created, err := uc.Create(context.Background(), validCreateRequest(), nil)
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), created.ID,
		dto.UpdateLoanRequest{Notes: strPtr("pagos al día")}, nil)
	require.NoError(t, err)

	require.NotNil(t, out.TotalPayable)
	assert.True(t, created.TotalPayable.Equal(*out.TotalPayable))
	assert.Equal(t, "pagos al día", out.Notes)
}

func TestLoanUpdate_QuitarPlazoLimpiaDerivados(t *testing.T) {
	uc, _, _ := buildUseCase()
	created, err := uc.Create(context.Background(), validCreateRequest(), nil)
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), created.ID,
		dto.UpdateLoanRequest{Months: intPtr(0)}, nil)
	require.NoError(t, err)

	assert.Nil(t, out.TotalPayable, "sin plazo los derivados deben desaparecer")
	assert.Nil(t, out.MonthlyInstallment)
}

func TestLoanUpdate_ValidaElResultadoFusionado(t *testing.T) {
	uc, _, _ := buildUseCase()
	created, err := uc.Create(context.Background(), validCreateRequest(), nil)
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), created.ID,
		dto.UpdateLoanRequest{Name: strPtr("   ")}, nil)

	verr := domain.AsValidation(err)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "Name is required")
}

func TestLoanUpdate_IDNumberDeOtroRegistroEsDuplicado(t *testing.T) {
	uc, _, _ := buildUseCase()
	first, err := uc.Create(context.Background(), validCreateRequest(), nil)
	require.NoError(t, err)

	second := validCreateRequest()
	second.IDNumber = "0000-1111-2222"
	second.Phone = "0000000000"
	created, err := uc.Create(context.Background(), second, nil)
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), created.ID,
		dto.UpdateLoanRequest{IDNumber: strPtr(first.IDNumber)}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate,
		"tomar el idNumber de otro registro debe rechazarse como duplicado")
}

func TestLoanUpdate_ConservarElPropioIDNumberNoEsDuplicado(t *testing.T) {
	uc, _, _ := buildUseCase()
	created, err := uc.Create(context.Background(), validCreateRequest(), nil)
	require.NoError(t, err)

	// Reenviar el mismo idNumber del registro no colisiona consigo mismo.
	out, err := uc.Update(context.Background(), created.ID,
		dto.UpdateLoanRequest{IDNumber: strPtr(created.IDNumber)}, nil)
	require.NoError(t, err)
	assert.Equal(t, created.IDNumber, out.IDNumber)
}

func TestLoanUpdate_ImagenNuevaBorraLaAnterior(t *testing.T) {
	uc, _, images := buildUseCase()
	created, err := uc.Create(context.Background(), validCreateRequest(),
		&dto.ImageUpload{Data: []byte("v1"), ContentType: "image/png"})
	require.NoError(t, err)
	require.Empty(t, images.deletedIDs)

	_, err = uc.Update(context.Background(), created.ID,
		dto.UpdateLoanRequest{}, &dto.ImageUpload{Data: []byte("v2"), ContentType: "image/png"})
	require.NoError(t, err)

	assert.Equal(t, []string{"loans/abc123"}, images.deletedIDs,
		"la referencia anterior debe borrarse tras persistir la nueva")
}

func TestLoanUpdate_FalloAlBorrarImagenViejaNoFallaElUpdate(t *testing.T) {
	uc, _, images := buildUseCase()
	created, err := uc.Create(context.Background(), validCreateRequest(),
		&dto.ImageUpload{Data: []byte("v1"), ContentType: "image/png"})
	require.NoError(t, err)

	images.deleteErr = errors.New("timeout")
	out, err := uc.Update(context.Background(), created.ID,
		dto.UpdateLoanRequest{}, &dto.ImageUpload{Data: []byte("v2"), ContentType: "image/png"})

	require.NoError(t, err, "el borrado de la imagen vieja es best-effort")
	assert.NotNil(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestLoanDelete_FalloDeImagenNoImpideElBorrado(t *testing.T) {
	uc, repo, images := buildUseCase()
	created, err := uc.Create(context.Background(), validCreateRequest(),
		&dto.ImageUpload{Data: []byte("v1"), ContentType: "image/png"})
	require.NoError(t, err)

	images.deleteErr = errors.New("cloud caído")
	err = uc.Delete(context.Background(), created.ID)

	require.NoError(t, err, "el borrado de imagen es best-effort")
	assert.Equal(t, 1, repo.deleteCnt, "el registro debe borrarse exactamente una vez")
	assert.Empty(t, repo.loans)
}

func TestLoanDelete_NoExiste(t *testing.T) {
	uc, _, _ := buildUseCase()
	err := uc.Delete(context.Background(), "00000000-0000-0000-0000-000000000099")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestLoanList_NormalizaOrdenYDefaults(t *testing.T) {
	uc, repo, _ := buildUseCase()
	_, err := uc.Create(context.Background(), validCreateRequest(), nil)
	require.NoError(t, err)

	out, err := uc.List(context.Background(), dto.ListLoansQuery{SortOrder: "ASC"})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Count)
	assert.True(t, out.Success)
	assert.Equal(t, "createdAt", repo.lastFilter.SortBy, "sortBy por defecto")
	assert.Equal(t, "asc", repo.lastFilter.SortOrder, "el orden se normaliza a minúsculas")

	out2, err := uc.List(context.Background(), dto.ListLoansQuery{SortOrder: "sideways"})
	require.NoError(t, err)
	assert.Equal(t, "desc", repo.lastFilter.SortOrder, "orden desconocido cae a desc")
	assert.Equal(t, 1, out2.Count)
}

func TestLoanList_RecortaElTerminoDeBusqueda(t *testing.T) {
	uc, repo, _ := buildUseCase()
	_, err := uc.List(context.Background(), dto.ListLoansQuery{Search: "  ravi  "})
	require.NoError(t, err)
	assert.Equal(t, "ravi", repo.lastFilter.Search)
}

// ──────────────────────────────────────────────────────────────────────────────
// Statement
// ──────────────────────────────────────────────────────────────────────────────

func TestLoanStatement_DevuelvePDF(t *testing.T) {
	uc, _, _ := buildUseCase()
	created, err := uc.Create(context.Background(), validCreateRequest(), nil)
	require.NoError(t, err)

	data, err := uc.Statement(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

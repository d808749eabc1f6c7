package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prestamos-api/internal/application/dto"
	"github.com/jhoicas/prestamos-api/internal/application/usecase"
	"github.com/jhoicas/prestamos-api/internal/domain"
	"github.com/jhoicas/prestamos-api/internal/domain/entity"
)

// fakeCustomerRepo repositorio en memoria indexado por id.
type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
	updateErr error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	delete(r.customers, id)
	return nil
}

func buildCustomerUseCase() (*usecase.CustomerUseCase, *fakeCustomerRepo, *fakeImageStore) {
	repo := newFakeCustomerRepo()
	images := &fakeImageStore{}
	return usecase.NewCustomerUseCase(repo, images), repo, images
}

func TestCustomerCreate_RequiereNombreYTelefono(t *testing.T) {
	uc, _, _ := buildCustomerUseCase()

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{}, nil)

	verr := domain.AsValidation(err)
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "First name is required")
	assert.Contains(t, verr.Fields, "Phone number is required")
}

func TestCustomerCreate_PersisteConFoto(t *testing.T) {
	uc, repo, images := buildCustomerUseCase()

	out, err := uc.Create(context.Background(),
		dto.CreateCustomerRequest{FirstName: "Anita", Phone: "9876543210"},
		&dto.ImageUpload{Data: []byte("jpg"), ContentType: "image/jpeg"})

	require.NoError(t, err)
	require.NotNil(t, out.Photo)
	assert.Equal(t, "loans/abc123", out.Photo.PublicID)
	assert.Len(t, repo.customers, 1)
	assert.Equal(t, 1, images.stored)
}

func TestCustomerUpdate_FusionaCamposPresentes(t *testing.T) {
	uc, _, _ := buildCustomerUseCase()
	created, err := uc.Create(context.Background(),
		dto.CreateCustomerRequest{FirstName: "Anita", LastName: "Devi", Phone: "9876543210"}, nil)
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), created.ID,
		dto.UpdateCustomerRequest{Phone: strPtr("1111111111")}, nil)

	require.NoError(t, err)
	assert.Equal(t, "1111111111", out.Phone)
	assert.Equal(t, "Anita", out.FirstName, "los campos ausentes se conservan")
	assert.Equal(t, "Devi", out.LastName)
}

func TestCustomerUpdate_UpdateFallidoLimpiaFotoNueva(t *testing.T) {
	uc, repo, images := buildCustomerUseCase()
	created, err := uc.Create(context.Background(),
		dto.CreateCustomerRequest{FirstName: "Anita", Phone: "9876543210"}, nil)
	require.NoError(t, err)

	repo.updateErr = errors.New("db caída")
	_, err = uc.Update(context.Background(), created.ID,
		dto.UpdateCustomerRequest{},
		&dto.ImageUpload{Data: []byte("jpg"), ContentType: "image/jpeg"})

	require.Error(t, err)
	assert.Equal(t, []string{"loans/abc123"}, images.deletedIDs,
		"la foto ya subida debe limpiarse cuando el update falla")
}

func TestCustomerDelete_BorraFotoBestEffort(t *testing.T) {
	uc, repo, images := buildCustomerUseCase()
	created, err := uc.Create(context.Background(),
		dto.CreateCustomerRequest{FirstName: "Anita", Phone: "9876543210"},
		&dto.ImageUpload{Data: []byte("jpg"), ContentType: "image/jpeg"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	assert.Empty(t, repo.customers)
	assert.Equal(t, []string{"loans/abc123"}, images.deletedIDs)
}

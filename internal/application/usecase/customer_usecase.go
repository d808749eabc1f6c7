package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/prestamos-api/internal/application/dto"
	"github.com/jhoicas/prestamos-api/internal/application/ports"
	"github.com/jhoicas/prestamos-api/internal/domain"
	"github.com/jhoicas/prestamos-api/internal/domain/entity"
	"github.com/jhoicas/prestamos-api/internal/domain/repository"
)

// CustomerUseCase reglas de negocio para clientes sueltos.
// Espejo simple del caso de uso de préstamos: sin campos derivados ni unicidad.
type CustomerUseCase struct {
	repo   repository.CustomerRepository
	images ports.ImageStore
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, images ports.ImageStore) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, images: images}
}

// Create valida lo mínimo (firstName y phone) y persiste el cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest, image *dto.ImageUpload) (*dto.CustomerResponse, error) {
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		JoinDate:  now,
		IDType:    strings.TrimSpace(in.IDType),
		IDNumber:  strings.TrimSpace(in.IDNumber),
		CreatedAt: now,
		UpdatedAt: now,
	}

	var fields []string
	if in.JoinDate != "" {
		when, err := parseDate(in.JoinDate)
		if err != nil {
			fields = append(fields, "Join date must be a valid date")
		} else {
			c.JoinDate = when
		}
	}
	if c.FirstName == "" {
		fields = append(fields, "First name is required")
	}
	if c.Phone == "" {
		fields = append(fields, "Phone number is required")
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	if image != nil {
		ref, err := uc.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		c.Photo = ref
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		if c.Photo != nil {
			uc.deleteImageBestEffort(ctx, c.Photo.PublicID)
		}
		return nil, err
	}
	return customerToResponse(c), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.loadCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

// List devuelve todos los clientes, más recientes primero.
func (uc *CustomerUseCase) List(ctx context.Context) (*dto.CustomerListResponse, error) {
	customers, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, *customerToResponse(c))
	}
	return &dto.CustomerListResponse{Success: true, Count: len(items), Data: items}, nil
}

// Update fusiona los campos presentes y persiste. La foto anterior se borra
// best-effort cuando llega una nueva.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest, image *dto.ImageUpload) (*dto.CustomerResponse, error) {
	existing, err := uc.loadCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	c := *existing
	var fields []string
	if in.FirstName != nil {
		c.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		c.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.JoinDate != nil {
		when, perr := parseDate(*in.JoinDate)
		if perr != nil {
			fields = append(fields, "Join date must be a valid date")
		} else {
			c.JoinDate = when
		}
	}
	if in.IDType != nil {
		c.IDType = strings.TrimSpace(*in.IDType)
	}
	if in.IDNumber != nil {
		c.IDNumber = strings.TrimSpace(*in.IDNumber)
	}
	if c.FirstName == "" {
		fields = append(fields, "First name is required")
	}
	if c.Phone == "" {
		fields = append(fields, "Phone number is required")
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	var oldPhoto *entity.ImageRef
	if image != nil {
		ref, serr := uc.storeImage(ctx, image)
		if serr != nil {
			return nil, serr
		}
		oldPhoto = existing.Photo
		c.Photo = ref
	}

	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, &c); err != nil {
		// La foto recién subida quedaría huérfana: limpieza best-effort.
		if image != nil && c.Photo != nil {
			uc.deleteImageBestEffort(ctx, c.Photo.PublicID)
		}
		return nil, err
	}
	if oldPhoto != nil {
		uc.deleteImageBestEffort(ctx, oldPhoto.PublicID)
	}
	return customerToResponse(&c), nil
}

// Delete elimina el cliente con limpieza best-effort de su foto.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.loadCustomer(ctx, id)
	if err != nil {
		return err
	}
	if c.Photo != nil {
		uc.deleteImageBestEffort(ctx, c.Photo.PublicID)
	}
	return uc.repo.Delete(ctx, c.ID)
}

func (uc *CustomerUseCase) loadCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *CustomerUseCase) storeImage(ctx context.Context, image *dto.ImageUpload) (*entity.ImageRef, error) {
	return storeImageThrough(ctx, uc.images, image)
}

func (uc *CustomerUseCase) deleteImageBestEffort(ctx context.Context, publicID string) {
	deleteImageBestEffort(ctx, uc.images, publicID)
}

func customerToResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	out := &dto.CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		JoinDate:  c.JoinDate,
		IDType:    c.IDType,
		IDNumber:  c.IDNumber,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Photo != nil {
		out.Photo = &dto.ImageRefResponse{URL: c.Photo.URL, PublicID: c.Photo.PublicID}
	}
	return out
}

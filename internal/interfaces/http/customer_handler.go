package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prestamos-api/internal/application/dto"
	"github.com/jhoicas/prestamos-api/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente (multipart admite archivo image)"
// @Success      201   {object}  dto.CustomerEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	in, err := parseCreateCustomerRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "Invalid request body"))
	}
	image, err := imageFromRequest(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "Could not read uploaded file"))
	}

	out, err := h.uc.Create(c.UserContext(), in, image)
	if err != nil {
		return respondDomainError(c, err, "Customer not found")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CustomerEnvelope{
		Success: true,
		Message: "Customer created successfully",
		Data:    *out,
	})
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondDomainError(c, err, "Customer not found")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err, "Customer not found")
	}
	return c.JSON(dto.CustomerEnvelope{Success: true, Data: *out})
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Accept       json,mpfd
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Campos a sobreescribir (multipart admite archivo image)"
// @Success      200   {object}  dto.CustomerEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	in, err := parseUpdateCustomerRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "Invalid request body"))
	}
	image, err := imageFromRequest(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "Could not read uploaded file"))
	}

	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in, image)
	if err != nil {
		return respondDomainError(c, err, "Customer not found")
	}
	return c.JSON(dto.CustomerEnvelope{
		Success: true,
		Message: "Customer updated successfully",
		Data:    *out,
	})
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondDomainError(c, err, "Customer not found")
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Customer deleted successfully"})
}

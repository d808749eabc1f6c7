package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prestamos-api/internal/application/dto"
	"github.com/jhoicas/prestamos-api/internal/application/usecase"
)

// LoanHandler maneja las peticiones HTTP de préstamos.
type LoanHandler struct {
	uc    *usecase.LoanUseCase
	stats *usecase.StatsUseCase
}

// NewLoanHandler construye el handler.
func NewLoanHandler(uc *usecase.LoanUseCase, stats *usecase.StatsUseCase) *LoanHandler {
	return &LoanHandler{uc: uc, stats: stats}
}

// Create godoc
// @Summary      Crear préstamo
// @Tags         loans
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.CreateLoanRequest  true  "Datos del préstamo (multipart admite archivo customerImage)"
// @Success      201   {object}  dto.LoanEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	in, fields, err := parseCreateLoanRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "Invalid request body"))
	}
	if len(fields) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailValidation(fields))
	}
	image, err := imageFromRequest(c, "customerImage")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "Could not read uploaded file"))
	}

	out, err := h.uc.Create(c.UserContext(), in, image)
	if err != nil {
		return respondDomainError(c, err, "Loan not found")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LoanEnvelope{
		Success: true,
		Message: "Loan created successfully",
		Data:    *out,
	})
}

// List godoc
// @Summary      Listar préstamos
// @Tags         loans
// @Produce      json
// @Param        status     query  string  false  "Filtro exacto por estado (active|closed|defaulted|pending)"
// @Param        search     query  string  false  "Substring case-insensitive sobre name/phone/idNumber"
// @Param        sortBy     query  string  false  "Campo de orden"  default(createdAt)
// @Param        sortOrder  query  string  false  "asc | desc"      default(desc)
// @Success      200  {object}  dto.LoanListResponse
// @Router       /api/loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	var q dto.ListLoansQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_QUERY", "Invalid query parameters"))
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondDomainError(c, err, "Loan not found")
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas agregadas
// @Tags         loans
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/loans/stats [get]
func (h *LoanHandler) Stats(c *fiber.Ctx) error {
	out, err := h.stats.Get(c.UserContext())
	if err != nil {
		return respondDomainError(c, err, "Loan not found")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener préstamo por ID
// @Tags         loans
// @Produce      json
// @Param        id  path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.LoanEnvelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err, "Loan not found")
	}
	return c.JSON(dto.LoanEnvelope{Success: true, Data: *out})
}

// Update godoc
// @Summary      Actualizar préstamo
// @Tags         loans
// @Accept       json,mpfd
// @Produce      json
// @Param        id    path  string  true  "ID del préstamo"
// @Param        body  body  dto.UpdateLoanRequest  true  "Campos a sobreescribir (multipart admite archivo customerImage)"
// @Success      200   {object}  dto.LoanEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/loans/{id} [put]
func (h *LoanHandler) Update(c *fiber.Ctx) error {
	in, fields, err := parseUpdateLoanRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "Invalid request body"))
	}
	if len(fields) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailValidation(fields))
	}
	image, err := imageFromRequest(c, "customerImage")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "Could not read uploaded file"))
	}

	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in, image)
	if err != nil {
		return respondDomainError(c, err, "Loan not found")
	}
	return c.JSON(dto.LoanEnvelope{
		Success: true,
		Message: "Loan updated successfully",
		Data:    *out,
	})
}

// Delete godoc
// @Summary      Eliminar préstamo
// @Tags         loans
// @Produce      json
// @Param        id  path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans/{id} [delete]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondDomainError(c, err, "Loan not found")
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Loan deleted successfully"})
}

// SearchByIDNumber godoc
// @Summary      Buscar préstamo por número de documento exacto
// @Tags         loans
// @Produce      json
// @Param        idNumber  path  string  true  "Número de documento"
// @Success      200  {object}  dto.LoanEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans/search/{idNumber} [get]
func (h *LoanHandler) SearchByIDNumber(c *fiber.Ctx) error {
	out, err := h.uc.FindByIDNumber(c.UserContext(), c.Params("idNumber"))
	if err != nil {
		return respondDomainError(c, err, "No loan found for this ID number")
	}
	return c.JSON(dto.LoanEnvelope{Success: true, Data: *out})
}

// Statement godoc
// @Summary      Estado de cuenta del préstamo en PDF
// @Tags         loans
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del préstamo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans/{id}/statement.pdf [get]
func (h *LoanHandler) Statement(c *fiber.Ctx) error {
	data, err := h.uc.Statement(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err, "Loan not found")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="loan-statement.pdf"`)
	return c.Send(data)
}

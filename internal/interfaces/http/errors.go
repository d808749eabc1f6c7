package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/prestamos-api/internal/application/dto"
	"github.com/jhoicas/prestamos-api/internal/domain"
	"github.com/jhoicas/prestamos-api/pkg/logger"
)

// respondDomainError mapea errores de dominio a la forma estable
// {success:false, message, errors?}. Lo que no reconozca se propaga al
// ErrorHandler global (500 + log con contexto).
func respondDomainError(c *fiber.Ctx, err error, notFoundMsg string) error {
	if ve := domain.AsValidation(err); ve != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailValidation(ve.Fields))
	}
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_ID", "Invalid ID format"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", notFoundMsg))
	case errors.Is(err, domain.ErrDuplicate):
		// 400 (no 409): el frontend existente espera ese código para el mensaje.
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("DUPLICATE", "ID number already exists"))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_INPUT", err.Error()))
	case errors.Is(err, domain.ErrUpstreamStorage):
		return c.Status(fiber.StatusBadGateway).JSON(dto.Fail("UPSTREAM_STORAGE", "Image upload failed"))
	}
	return err
}

// ErrorHandler maneja todo error no mapeado por los handlers: lo registra con
// contexto completo y responde 5xx sin filtrar internals fuera de development.
func ErrorHandler(log *logger.Logger, env string) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		log.Error().
			Err(err).
			Str("path", c.Path()).
			Str("method", c.Method()).
			Time("timestamp", time.Now()).
			Msg("error no controlado")

		msg := "Internal Server Error"
		if env == "development" {
			msg = err.Error()
		}
		return c.Status(status).JSON(dto.Fail("INTERNAL", msg))
	}
}

// NotFoundHandler fallback para rutas inexistentes.
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.Fail(
		"NOT_FOUND", "Route "+c.OriginalURL()+" not found"))
}

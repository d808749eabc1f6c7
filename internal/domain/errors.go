package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidID       = errors.New("identificador mal formado")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUpstreamStorage = errors.New("fallo del servicio de almacenamiento de imágenes")
)

// ValidationError agrupa todas las violaciones de campos de una misma petición.
// El handler HTTP la mapea a 400 con la lista completa en `errors`.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validación: " + strings.Join(e.Fields, "; ")
}

// AsValidation devuelve la ValidationError envuelta en err, o nil.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

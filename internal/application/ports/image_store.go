// Package ports declara los puertos de salida hacia servicios externos.
package ports

import (
	"context"

	"github.com/jhoicas/prestamos-api/internal/domain/entity"
)

// ImageStore puerto hacia el servicio externo de imágenes.
//
// Store rechaza contenido que no sea imagen y payloads de más de 5 MiB.
// Delete es idempotente: borrar una referencia inexistente no es error, y su
// fallo nunca debe abortar la operación principal del llamador.
type ImageStore interface {
	Store(ctx context.Context, data []byte, contentType string) (*entity.ImageRef, error)
	Delete(ctx context.Context, publicID string) error
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/prestamos-api/internal/application/dto"
	"github.com/jhoicas/prestamos-api/internal/application/ports"
	"github.com/jhoicas/prestamos-api/internal/domain"
	"github.com/jhoicas/prestamos-api/internal/domain/entity"
)

// storeImageThrough sube la imagen distinguiendo error de entrada (tipo/tamaño)
// de fallo del servicio externo (ErrUpstreamStorage).
func storeImageThrough(ctx context.Context, images ports.ImageStore, image *dto.ImageUpload) (*entity.ImageRef, error) {
	ref, err := images.Store(ctx, image.Data, image.ContentType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamStorage, err)
	}
	return ref, nil
}

// deleteImageBestEffort borra y traga el error: la mutación principal del
// registro debe completarse aunque la limpieza remota falle.
func deleteImageBestEffort(ctx context.Context, images ports.ImageStore, publicID string) {
	if err := images.Delete(ctx, publicID); err != nil {
		log.Warn().Err(err).Str("public_id", publicID).Msg("no se pudo borrar la imagen del servicio externo")
	}
}

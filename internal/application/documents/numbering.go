package documents

import (
	"context"
	"fmt"

	"github.com/jhoicas/Documentos-api/internal/application/dto"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
)

// PreviewNumber número que recibiría el próximo documento del tipo t. No reserva nada:
// la creación vuelve a calcularlo bajo lock y puede devolver otro.
func (uc *UseCase) PreviewNumber(ctx context.Context, t document.Type) (*dto.NumberResponse, error) {
	number, err := uc.read.Sequences.Peek(ctx, t, uc.now())
	if err != nil {
		return nil, fmt.Errorf("preview number: %w", err)
	}
	return &dto.NumberResponse{Type: string(t), Number: number, Reserved: false}, nil
}

// LatestNumber mismo cálculo que PreviewNumber; se mantiene como ruta separada por compatibilidad.
func (uc *UseCase) LatestNumber(ctx context.Context, t document.Type) (*dto.NumberResponse, error) {
	return uc.PreviewNumber(ctx, t)
}

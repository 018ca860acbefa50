package movement

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tu-usuario/bodega-epp/internal/application/dto"
	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/query"
	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
)

// Lecturas puras sobre el ledger: sin efectos secundarios, orden por
// defecto del más reciente al más antiguo.

// ListByItem devuelve los movimientos de un ítem, más recientes primero.
func (uc *UseCase) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]dto.MovementResponse, error) {
	movs, err := uc.movRepo.ListByItem(ctx, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movs), nil
}

// ListByOperator devuelve los movimientos registrados por un usuario.
func (uc *UseCase) ListByOperator(ctx context.Context, operatorID string, limit, offset int) ([]dto.MovementResponse, error) {
	movs, err := uc.movRepo.ListByOperator(ctx, operatorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movs), nil
}

// ListByRecipient devuelve los movimientos cuyo receptor es el usuario dado.
func (uc *UseCase) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]dto.MovementResponse, error) {
	movs, err := uc.movRepo.ListByRecipient(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(movs), nil
}

// List devuelve el ledger paginado con búsqueda, orden y filtros.
func (uc *UseCase) List(ctx context.Context, in dto.MovementListRequest) (query.Page[dto.MovementResponse], error) {
	filter := repository.MovementFilter{
		ItemID:      in.ItemID,
		OperatorID:  in.OperatorID,
		RecipientID: in.RecipientID,
		Type:        in.Type,
	}
	page, err := uc.movRepo.List(ctx, filter, in.ToParams())
	if err != nil {
		return query.Page[dto.MovementResponse]{}, err
	}
	out := make([]dto.MovementResponse, 0, len(page.Items))
	for i := range page.Items {
		out = append(out, *toMovementResponse(&page.Items[i]))
	}
	return query.Page[dto.MovementResponse]{
		Items:      out,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:               m.ID,
		ItemID:           m.ItemID,
		OperatorID:       m.OperatorID,
		Type:             m.Type,
		Quantity:         m.Quantity,
		RecipientID:      m.RecipientID,
		ExpectedReturnAt: m.ExpectedReturnAt,
		Note:             m.Note,
		Signature:        m.Signature,
		CreatedAt:        m.CreatedAt,
	}
}

func toMovementResponses(movs []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, *toMovementResponse(m))
	}
	return out
}

func auditDetail(m *entity.Movement) string {
	b, err := json.Marshal(map[string]any{
		"movement_id": m.ID,
		"type":        m.Type,
		"quantity":    m.Quantity,
	})
	if err != nil {
		return fmt.Sprintf(`{"movement_id":%q}`, m.ID)
	}
	return string(b)
}

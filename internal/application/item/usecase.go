package item

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/bodega-epp/internal/application/audit"
	"github.com/tu-usuario/bodega-epp/internal/application/dto"
	"github.com/tu-usuario/bodega-epp/internal/application/movement"
	"github.com/tu-usuario/bodega-epp/internal/domain"
	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/query"
	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
)

// UseCase administración del catálogo de ítems. El SKU es inmutable
// después de creado y la cantidad nunca se edita directamente: el saldo
// inicial entra como movimiento CHECKIN de apertura para que el ledger
// explique todo el stock.
type UseCase struct {
	txRunner movement.TxRunner
	itemRepo repository.ItemRepository
	recorder *audit.Recorder
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner movement.TxRunner, itemRepo repository.ItemRepository, recorder *audit.Recorder, now func() time.Time) *UseCase {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, recorder: recorder, now: now}
}

// Create crea el ítem. SKU duplicado → ErrSkuAlreadyExists (Conflict).
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.SKU == "" || in.InitialQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.itemRepo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrSkuAlreadyExists
	}

	now := uc.now()
	item := &entity.Item{
		ID:                uuid.New().String(),
		Name:              in.Name,
		SKU:               in.SKU,
		Quantity:          in.InitialQuantity,
		MinStock:          in.MinStock,
		MaxStock:          in.MaxStock,
		EsEPP:             in.EsEPP,
		UnitCost:          in.UnitCost,
		ExpiryDate:        in.ExpiryDate,
		NextMaintenanceAt: in.NextMaintenanceAt,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		auditRepo repository.AuditRepository,
	) error {
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		if in.InitialQuantity > 0 {
			opening := &entity.Movement{
				ID:         uuid.New().String(),
				ItemID:     item.ID,
				OperatorID: actorID,
				Type:       entity.MovementTypeCheckin,
				Quantity:   in.InitialQuantity,
				Note:       "saldo inicial",
				CreatedAt:  now,
			}
			if err := movRepo.Create(ctx, opening); err != nil {
				return err
			}
		}
		uc.recorder.RecordWith(ctx, auditRepo, audit.Entry{
			ActorID:  actorID,
			Action:   entity.AuditActionCreate,
			Entity:   "item",
			EntityID: item.ID,
			Detail:   fmt.Sprintf(`{"sku":%q}`, item.SKU),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update actualiza los campos editables del ítem. Ni SKU ni cantidad se tocan.
func (uc *UseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	item.Name = in.Name
	item.MinStock = in.MinStock
	item.MaxStock = in.MaxStock
	item.EsEPP = in.EsEPP
	item.UnitCost = in.UnitCost
	item.ExpiryDate = in.ExpiryDate
	item.LastMaintenanceAt = in.LastMaintenanceAt
	item.NextMaintenanceAt = in.NextMaintenanceAt
	item.UpdatedAt = uc.now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		ActorID:  actorID,
		Action:   entity.AuditActionUpdate,
		Entity:   "item",
		EntityID: item.ID,
	})
	return toItemResponse(item), nil
}

// Delete elimina el ítem. Si tiene movimientos asociados la persistencia lo
// bloquea y se devuelve ErrItemReferenced (Conflict): el ledger nunca queda
// huérfano.
func (uc *UseCase) Delete(ctx context.Context, actorID, id string) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if err := uc.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		ActorID:  actorID,
		Action:   entity.AuditActionDelete,
		Entity:   "item",
		EntityID: id,
	})
	return nil
}

// Get devuelve un ítem por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List devuelve el catálogo paginado con búsqueda y orden.
func (uc *UseCase) List(ctx context.Context, in dto.ListRequest) (query.Page[dto.ItemResponse], error) {
	page, err := uc.itemRepo.List(ctx, in.ToParams())
	if err != nil {
		return query.Page[dto.ItemResponse]{}, err
	}
	items := make([]dto.ItemResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *toItemResponse(&page.Items[i]))
	}
	return query.Page[dto.ItemResponse]{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:                i.ID,
		Name:              i.Name,
		SKU:               i.SKU,
		Quantity:          i.Quantity,
		MinStock:          i.MinStock,
		MaxStock:          i.MaxStock,
		EsEPP:             i.EsEPP,
		UnitCost:          i.UnitCost,
		ExpiryDate:        i.ExpiryDate,
		LastMaintenanceAt: i.LastMaintenanceAt,
		NextMaintenanceAt: i.NextMaintenanceAt,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

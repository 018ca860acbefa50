package movement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/bodega-epp/internal/application/audit"
	"github.com/tu-usuario/bodega-epp/internal/application/dto"
	"github.com/tu-usuario/bodega-epp/internal/domain"
	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
)

// UseCase registra movimientos del ledger de forma transaccional:
// Validar → bloquear fila del ítem (SELECT FOR UPDATE) → mutar agregado →
// anotar ledger → anotar bitácora → Commit. Si el commit falla no queda
// observable ni la mutación ni la entrada del ledger.
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
	movRepo  repository.MovementRepository
	recorder *audit.Recorder
	now      func() time.Time
}

// NewUseCase construye el caso de uso. now inyectable para tests (UTC).
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	movRepo repository.MovementRepository,
	recorder *audit.Recorder,
	now func() time.Time,
) *UseCase {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &UseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		userRepo: userRepo,
		movRepo:  movRepo,
		recorder: recorder,
		now:      now,
	}
}

// RegisterCheckout registra una salida de bodega: valida, resta stock y
// anota la entrada CHECKOUT del ledger en una sola transacción.
//
// La verificación de stock se hace contra el valor persistido bajo el
// bloqueo de fila, no contra la lectura previa: dos checkouts concurrentes
// del mismo ítem nunca pueden exceder juntos el stock disponible.
//
// Para ítems EPP el checkout exige receptor y firma; se rechaza antes de
// tocar el stock.
func (uc *UseCase) RegisterCheckout(ctx context.Context, operatorID string, in dto.CheckoutRequest) (*dto.MovementResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	operator, err := uc.userRepo.GetByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, domain.ErrNotFound
	}
	if item.EsEPP && (in.RecipientID == "" || in.Signature == "") {
		return nil, domain.ErrInvalidInput
	}
	var recipientID *string
	if in.RecipientID != "" {
		recipient, err := uc.userRepo.GetByID(ctx, in.RecipientID)
		if err != nil {
			return nil, err
		}
		if recipient == nil {
			return nil, domain.ErrNotFound
		}
		recipientID = &recipient.ID
	}

	var mov *entity.Movement
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		auditRepo repository.AuditRepository,
	) error {
		// Bloquea la fila del ítem; el chequeo de stock ocurre sobre el
		// valor persistido, no sobre la lectura sin bloqueo de arriba.
		locked, err := itemRepo.GetByIDForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		// El reloj se lee bajo el bloqueo de fila: el orden de los
		// timestamps del ledger coincide con el orden de commit.
		now := uc.now()
		mov = &entity.Movement{
			ID:               uuid.New().String(),
			ItemID:           in.ItemID,
			OperatorID:       operatorID,
			Type:             entity.MovementTypeCheckout,
			Quantity:         in.Quantity,
			RecipientID:      recipientID,
			ExpectedReturnAt: in.ExpectedReturnAt,
			Note:             in.Note,
			Signature:        in.Signature,
			CreatedAt:        now,
		}
		if err := locked.DecreaseStock(in.Quantity, now); err != nil {
			return err
		}
		if err := itemRepo.Update(ctx, locked); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		uc.recorder.RecordWith(ctx, auditRepo, audit.Entry{
			ActorID:  operatorID,
			Action:   entity.AuditActionCheckout,
			Entity:   "item",
			EntityID: in.ItemID,
			Detail:   auditDetail(mov),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// RegisterCheckin registra una devolución o entrada: suma stock y anota la
// entrada CHECKIN del ledger en una sola transacción. No hay tope de stock
// en el dominio; el exceso sobre MaxStock es una alerta de reportes.
func (uc *UseCase) RegisterCheckin(ctx context.Context, operatorID string, in dto.CheckinRequest) (*dto.MovementResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	operator, err := uc.userRepo.GetByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, domain.ErrNotFound
	}

	var mov *entity.Movement
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		auditRepo repository.AuditRepository,
	) error {
		locked, err := itemRepo.GetByIDForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		mov = &entity.Movement{
			ID:         uuid.New().String(),
			ItemID:     in.ItemID,
			OperatorID: operatorID,
			Type:       entity.MovementTypeCheckin,
			Quantity:   in.Quantity,
			Note:       in.Note,
			CreatedAt:  now,
		}
		if err := locked.IncreaseStock(in.Quantity, now); err != nil {
			return err
		}
		if err := itemRepo.Update(ctx, locked); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		uc.recorder.RecordWith(ctx, auditRepo, audit.Entry{
			ActorID:  operatorID,
			Action:   entity.AuditActionCheckin,
			Entity:   "item",
			EntityID: in.ItemID,
			Detail:   auditDetail(mov),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

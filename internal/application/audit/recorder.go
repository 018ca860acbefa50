package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/query"
	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
	"github.com/tu-usuario/bodega-epp/pkg/logger"
)

// Entry datos de un registro de bitácora a anotar.
type Entry struct {
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Detail   string
}

// Recorder anota registros en la bitácora como observador pasivo: un fallo
// al anotar se loguea y se traga, nunca hace fallar la operación de negocio
// que lo originó.
type Recorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewRecorder construye el recorder. now inyectable para tests.
func NewRecorder(repo repository.AuditRepository, log *logger.Logger, now func() time.Time) *Recorder {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Recorder{repo: repo, log: log, now: now}
}

// Record anota usando el repositorio por defecto (fuera de transacción).
func (r *Recorder) Record(ctx context.Context, e Entry) {
	r.RecordWith(ctx, r.repo, e)
}

// RecordWith anota usando el repositorio dado; pasar un repo atado a una
// transacción para que el registro viaje en el mismo commit del caller.
func (r *Recorder) RecordWith(ctx context.Context, repo repository.AuditRepository, e Entry) {
	log := &entity.AuditLog{
		ID:        uuid.New().String(),
		ActorID:   e.ActorID,
		Action:    e.Action,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Detail:    e.Detail,
		CreatedAt: r.now(),
	}
	if err := repo.Create(ctx, log); err != nil {
		r.log.Error().Err(err).
			Str("action", e.Action).
			Str("entity", e.Entity).
			Str("entity_id", e.EntityID).
			Msg("no se pudo anotar en la bitácora")
	}
}

// List devuelve la bitácora paginada para la capa de visualización.
func (r *Recorder) List(ctx context.Context, params query.ListParams) (query.Page[entity.AuditLog], error) {
	return r.repo.List(ctx, params)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/bodega-epp/internal/application/auth"
	"github.com/tu-usuario/bodega-epp/internal/application/movement"
	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
	"github.com/tu-usuario/bodega-epp/internal/domain/query"
	"github.com/tu-usuario/bodega-epp/internal/domain/repository"
)

// Ensure TxRunner implements movement.TxRunner and auth.TokenTxRunner.
var _ movement.TxRunner = (*TxRunner)(nil)
var _ auth.TokenTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del ledger atados a
// la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	movRepo := NewMovementRepository(tx)
	auditRepo := &savepointAuditRepo{tx: tx}

	if err := fn(itemRepo, movRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTokens inicia una transacción con el repo de credenciales de refresh
// (rotación: revocar + crear es todo o nada).
func (r *TxRunner) RunTokens(ctx context.Context, fn func(tokenRepo repository.RefreshTokenRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRefreshTokenRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// savepointAuditRepo aísla el INSERT de bitácora en un savepoint (el Begin
// anidado de pgx). Un fallo de la bitácora revierte solo el savepoint: la
// transacción de negocio sigue usable y su Commit no se ve afectado. Sin
// esto, un statement fallido dejaría la transacción en estado abortado y
// arrastraría la operación de negocio completa.
type savepointAuditRepo struct {
	tx pgx.Tx
}

func (r *savepointAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	sp, err := r.tx.Begin(ctx)
	if err != nil {
		return err
	}
	if err := NewAuditRepository(sp).Create(ctx, log); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

func (r *savepointAuditRepo) List(ctx context.Context, params query.ListParams) (query.Page[entity.AuditLog], error) {
	return NewAuditRepository(r.tx).List(ctx, params)
}

package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bodega-epp/internal/domain"
	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
)

func newItem(quantity int) *entity.Item {
	return &entity.Item{
		ID:       "00000000-0000-0000-0000-00000000000a",
		Name:     "Casco de seguridad",
		SKU:      "EPP-CASCO-01",
		Quantity: quantity,
		EsEPP:    true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// DecreaseStock
// ──────────────────────────────────────────────────────────────────────────────

func TestDecreaseStock_DescuentaYActualizaTimestamp(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	item := newItem(10)

	require.NoError(t, item.DecreaseStock(4, now))

	assert.Equal(t, 6, item.Quantity)
	assert.Equal(t, now, item.UpdatedAt)
}

// Borde: retirar exactamente todo el stock debe dejar la cantidad en cero.
func TestDecreaseStock_TodoElStock_QuedaEnCero(t *testing.T) {
	item := newItem(5)

	require.NoError(t, item.DecreaseStock(5, time.Now()))

	assert.Equal(t, 0, item.Quantity)
}

// Borde: retirar cantidad + 1 debe fallar sin mutar el stock.
func TestDecreaseStock_MasQueElStock_Falla(t *testing.T) {
	item := newItem(5)

	err := item.DecreaseStock(6, time.Now())

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, item.Quantity, "un retiro fallido no debe mutar la cantidad")
}

func TestDecreaseStock_CantidadNoPositiva_Falla(t *testing.T) {
	item := newItem(5)

	assert.ErrorIs(t, item.DecreaseStock(0, time.Now()), domain.ErrInvalidInput)
	assert.ErrorIs(t, item.DecreaseStock(-3, time.Now()), domain.ErrInvalidInput)
	assert.Equal(t, 5, item.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// IncreaseStock
// ──────────────────────────────────────────────────────────────────────────────

func TestIncreaseStock_Suma(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	item := newItem(3)

	require.NoError(t, item.IncreaseStock(7, now))

	assert.Equal(t, 10, item.Quantity)
	assert.Equal(t, now, item.UpdatedAt)
}

// Un ingreso por encima de MaxStock no es error: MaxStock es umbral de reportes.
func TestIncreaseStock_SobreMaxStock_NoFalla(t *testing.T) {
	item := newItem(8)
	item.MaxStock = 10

	require.NoError(t, item.IncreaseStock(100, time.Now()))

	assert.Equal(t, 108, item.Quantity)
}

func TestIncreaseStock_CantidadNoPositiva_Falla(t *testing.T) {
	item := newItem(3)

	assert.ErrorIs(t, item.IncreaseStock(0, time.Now()), domain.ErrInvalidInput)
	assert.ErrorIs(t, item.IncreaseStock(-1, time.Now()), domain.ErrInvalidInput)
	assert.Equal(t, 3, item.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movement.Delta
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementDelta_CheckoutNegativoCheckinPositivo(t *testing.T) {
	out := entity.Movement{Type: entity.MovementTypeCheckout, Quantity: 4}
	in := entity.Movement{Type: entity.MovementTypeCheckin, Quantity: 4}

	assert.Equal(t, -4, out.Delta())
	assert.Equal(t, 4, in.Delta())
}

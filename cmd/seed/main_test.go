package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// parseRow
// ──────────────────────────────────────────────────────────────────────────────

func TestParseRow_FilaValida(t *testing.T) {
	row, err := parseRow([]string{"EPP-CASCO-01", "Casco de seguridad", "12", "2", "20", "SI", "35000,50"})
	require.NoError(t, err)

	assert.Equal(t, "EPP-CASCO-01", row.sku)
	assert.Equal(t, 12, row.quantity)
	assert.True(t, row.esEPP)
	assert.Equal(t, "35000.50", row.unitCost, "la coma decimal del legado se normaliza a punto")
}

func TestParseRow_CamposInvalidos(t *testing.T) {
	casos := [][]string{
		{"", "Sin SKU", "1", "0", "0", "NO", "0"},
		{"HER-X", "", "1", "0", "0", "NO", "0"},
		{"HER-X", "Nombre", "-1", "0", "0", "NO", "0"},
		{"HER-X", "Nombre", "abc", "0", "0", "NO", "0"},
		{"HER-X", "Nombre", "1", "0", "0", "NO", "no-numero"},
	}
	for _, c := range casos {
		_, err := parseRow(c)
		assert.Error(t, err, "fila %v debe rechazarse", c)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// writeSeedSQL — los saldos iniciales entran por el ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestWriteSeedSQL_EmiteCheckinDeAperturaPorItemConStock(t *testing.T) {
	var sb strings.Builder
	writeSeedSQL(&sb, []catalogRow{
		{sku: "EPP-CASCO-01", name: "Casco", quantity: 12, esEPP: true, unitCost: "35000.50"},
		{sku: "HER-LLAVE-01", name: "Llave", quantity: 0, unitCost: "0"},
	}, "admin@bodega.local", "$2a$10$hash-de-prueba")
	sql := sb.String()

	// Admin y los dos ítems presentes.
	assert.Contains(t, sql, "INSERT INTO users")
	assert.Contains(t, sql, "'admin@bodega.local'")
	assert.Contains(t, sql, "'EPP-CASCO-01'")
	assert.Contains(t, sql, "'HER-LLAVE-01'")

	// Cada ítem con stock inicial recibe exactamente una entrada CHECKIN;
	// un ítem con cantidad cero no genera movimiento.
	assert.Equal(t, 1, strings.Count(sql, "'CHECKIN', 12, 'saldo inicial'"))
	assert.Equal(t, 1, strings.Count(sql, "INSERT INTO movements"))

	// Guard de re-ejecución: no duplicar saldos en un segundo import.
	assert.Contains(t, sql, "NOT EXISTS (SELECT 1 FROM movements m WHERE m.item_id = i.id)")

	// El reimporte de un ítem existente nunca pisa la cantidad: el stock
	// vive en el ledger.
	assert.NotContains(t, sql, "quantity = EXCLUDED.quantity")
}

func TestWriteSeedSQL_EscapaComillas(t *testing.T) {
	var sb strings.Builder
	writeSeedSQL(&sb, []catalogRow{
		{sku: "HER-X", name: "Llave 'L' hexagonal", quantity: 1, unitCost: "0"},
	}, "admin@bodega.local", "hash")

	assert.Contains(t, sb.String(), "Llave ''L'' hexagonal")
}

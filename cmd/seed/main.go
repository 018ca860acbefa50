// seed genera un script SQL para poblar el catálogo de ítems a partir del
// CSV exportado del sistema legado (codificado en Windows-1252, separado
// por punto y coma) y crea el usuario administrador inicial.
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: migrations/002_seed_catalog.sql
//
// Variables de entorno:
//
//	SEED_ADMIN_EMAIL    correo del administrador (default admin@bodega.local)
//	SEED_ADMIN_PASSWORD contraseña inicial (default cambiar123)
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Columnas esperadas del CSV legado:
// SKU;NOMBRE;CANTIDAD;STOCK_MIN;STOCK_MAX;ES_EPP;COSTO_UNITARIO
const expectedColumns = 7

type catalogRow struct {
	sku      string
	name     string
	quantity int
	minStock int
	maxStock int
	esEPP    bool
	unitCost string
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El sistema legado exporta en Windows-1252
	r := csv.NewReader(transform.NewReader(f, charmap.Windows1252.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = expectedColumns

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var rows []catalogRow
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "SKU") {
			continue // encabezado
		}
		row, err := parseRow(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d: %v\n", i+1, err)
			os.Exit(1)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "El CSV no contiene filas de catálogo")
		os.Exit(1)
	}

	adminEmail := envOr("SEED_ADMIN_EMAIL", "admin@bodega.local")
	adminPassword := envOr("SEED_ADMIN_PASSWORD", "cambiar123")
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash de contraseña: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	writeSeedSQL(out, rows, adminEmail, string(hash))

	fmt.Printf("Generado %s: %d ítems, admin %s\n", outPath, len(rows), adminEmail)
}

// writeSeedSQL emite el script: administrador, ítems y el movimiento CHECKIN
// de apertura por ítem con stock. El saldo inicial entra por el ledger, no
// como cantidad suelta: la cantidad de cada ítem queda explicada por la suma
// de sus movimientos desde el arranque.
func writeSeedSQL(out io.Writer, rows []catalogRow, adminEmail, adminHash string) {
	email := escapeSQL(strings.ToLower(adminEmail))

	fmt.Fprint(out, "-- Catálogo inicial de ítems y usuario administrador\n")
	fmt.Fprint(out, "-- Generado desde el CSV del sistema legado\n\n")

	// 1. Administrador inicial
	fmt.Fprint(out, "-- 1. Usuario administrador\n")
	fmt.Fprintf(out, "INSERT INTO users (id, email, password_hash, name, role, active)\n")
	fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', 'Administrador', 'admin', TRUE)\n",
		email, escapeSQL(adminHash))
	fmt.Fprint(out, "ON CONFLICT (email) DO NOTHING;\n\n")

	// 2. Ítems del catálogo (la cantidad nunca se pisa en reimportes)
	fmt.Fprint(out, "-- 2. Catálogo de ítems\n")
	for _, row := range rows {
		fmt.Fprintf(out, "INSERT INTO items (id, name, sku, quantity, min_stock, max_stock, es_epp, unit_cost)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', %d, %d, %d, %t, %s)\n",
			escapeSQL(row.name), escapeSQL(row.sku),
			row.quantity, row.minStock, row.maxStock, row.esEPP, row.unitCost)
		fmt.Fprint(out, "ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, "+
			"min_stock = EXCLUDED.min_stock, max_stock = EXCLUDED.max_stock, "+
			"es_epp = EXCLUDED.es_epp, unit_cost = EXCLUDED.unit_cost;\n")
	}

	// 3. Movimiento CHECKIN de apertura por ítem con stock inicial.
	// El guard NOT EXISTS hace el script re-ejecutable sin duplicar saldos.
	fmt.Fprint(out, "\n-- 3. Saldos iniciales como entradas del ledger\n")
	for _, row := range rows {
		if row.quantity == 0 {
			continue
		}
		fmt.Fprintf(out, "INSERT INTO movements (id, item_id, operator_id, type, quantity, note)\n")
		fmt.Fprintf(out, "SELECT gen_random_uuid(), i.id, u.id, 'CHECKIN', %d, 'saldo inicial'\n", row.quantity)
		fmt.Fprintf(out, "FROM items i, users u\n")
		fmt.Fprintf(out, "WHERE i.sku = '%s' AND lower(u.email) = '%s'\n", escapeSQL(row.sku), email)
		fmt.Fprintf(out, "  AND NOT EXISTS (SELECT 1 FROM movements m WHERE m.item_id = i.id);\n")
	}
}

func parseRow(rec []string) (catalogRow, error) {
	sku := strings.TrimSpace(rec[0])
	name := strings.TrimSpace(rec[1])
	if sku == "" || name == "" {
		return catalogRow{}, fmt.Errorf("sku y nombre son obligatorios")
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(rec[2]))
	if err != nil || quantity < 0 {
		return catalogRow{}, fmt.Errorf("cantidad inválida: %q", rec[2])
	}
	minStock, err := strconv.Atoi(strings.TrimSpace(rec[3]))
	if err != nil || minStock < 0 {
		return catalogRow{}, fmt.Errorf("stock mínimo inválido: %q", rec[3])
	}
	maxStock, err := strconv.Atoi(strings.TrimSpace(rec[4]))
	if err != nil || maxStock < 0 {
		return catalogRow{}, fmt.Errorf("stock máximo inválido: %q", rec[4])
	}
	esEPP := strings.EqualFold(strings.TrimSpace(rec[5]), "SI") ||
		strings.EqualFold(strings.TrimSpace(rec[5]), "TRUE")
	unitCost := strings.TrimSpace(strings.ReplaceAll(rec[6], ",", "."))
	if unitCost == "" {
		unitCost = "0"
	}
	if _, err := strconv.ParseFloat(unitCost, 64); err != nil {
		return catalogRow{}, fmt.Errorf("costo unitario inválido: %q", rec[6])
	}
	return catalogRow{
		sku: sku, name: name, quantity: quantity,
		minStock: minStock, maxStock: maxStock,
		esEPP: esEPP, unitCost: unitCost,
	}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

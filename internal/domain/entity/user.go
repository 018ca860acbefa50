package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"    // jefe de bodega
	RoleRRHH     = "rrhh"     // recursos humanos
	RoleEmpleado = "empleado" // receptor de equipos, acceso de solo lectura
)

// User representa un usuario del sistema: operador de bodega o empleado
// receptor de equipos.
type User struct {
	ID           string
	Email        string // único, normalizado a minúsculas
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, rrhh, empleado
	Active       bool
	CostCenter   string // centro de costos para atribución de EPP (opcional)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

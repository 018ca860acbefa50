package entity

import "time"

// Acciones registradas en la bitácora.
const (
	AuditActionCreate   = "CREATE"
	AuditActionUpdate   = "UPDATE"
	AuditActionDelete   = "DELETE"
	AuditActionLogin    = "LOGIN"
	AuditActionCheckout = "CHECKOUT"
	AuditActionCheckin  = "CHECKIN"
)

// AuditLog es un registro inmutable de la bitácora de acciones.
// Solo se consume para visualización; nunca condiciona la operación que lo originó.
type AuditLog struct {
	ID        string
	ActorID   string
	Action    string
	Entity    string // nombre de la entidad afectada: item, user, movement...
	EntityID  string
	Detail    string // JSON libre con el antes/después o el contexto
	CreatedAt time.Time
}

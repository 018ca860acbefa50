package entity

import "time"

// Tipos de movimiento del ledger.
const (
	MovementTypeCheckout = "CHECKOUT" // salida de bodega
	MovementTypeCheckin  = "CHECKIN"  // devolución / entrada
)

// Movement es una entrada inmutable del ledger de stock: una vez creada
// nunca se actualiza ni se borra. Es la fuente de verdad de cómo el ítem
// llegó a su cantidad actual.
type Movement struct {
	ID               string
	ItemID           string
	OperatorID       string // usuario que registra el movimiento
	Type             string // CHECKOUT | CHECKIN
	Quantity         int    // > 0 siempre; el signo lo da Type
	RecipientID      *string
	ExpectedReturnAt *time.Time
	Note             string
	Signature        string // payload de firma digital (capturado por el cliente)
	CreatedAt        time.Time
}

// Delta devuelve el efecto del movimiento sobre la cantidad del ítem.
func (m *Movement) Delta() int {
	if m.Type == MovementTypeCheckout {
		return -m.Quantity
	}
	return m.Quantity
}

package dto

import "time"

// CheckoutRequest body para POST /api/movements/checkout.
// Para ítems EPP, recipient_id y signature son obligatorios.
type CheckoutRequest struct {
	ItemID           string     `json:"item_id" validate:"required,uuid"`
	Quantity         int        `json:"quantity" validate:"required,gt=0"`
	RecipientID      string     `json:"recipient_id,omitempty" validate:"omitempty,uuid"`
	ExpectedReturnAt *time.Time `json:"expected_return_at,omitempty"`
	Signature        string     `json:"signature,omitempty"`
	Note             string     `json:"note,omitempty" validate:"omitempty,max=500"`
}

// CheckinRequest body para POST /api/movements/checkin.
type CheckinRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Note     string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// MovementResponse salida de una entrada del ledger.
type MovementResponse struct {
	ID               string     `json:"id"`
	ItemID           string     `json:"item_id"`
	OperatorID       string     `json:"operator_id"`
	Type             string     `json:"type"`
	Quantity         int        `json:"quantity"`
	RecipientID      *string    `json:"recipient_id,omitempty"`
	ExpectedReturnAt *time.Time `json:"expected_return_at,omitempty"`
	Note             string     `json:"note,omitempty"`
	Signature        string     `json:"signature,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// MovementListRequest query params del listado del ledger.
type MovementListRequest struct {
	ListRequest
	ItemID      string `query:"item_id"`
	OperatorID  string `query:"user_id"`
	RecipientID string `query:"recipient_id"`
	Type        string `query:"type"`
}

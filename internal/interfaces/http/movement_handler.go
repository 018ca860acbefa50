package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bodega-epp/internal/application/dto"
	"github.com/tu-usuario/bodega-epp/internal/application/movement"
	"github.com/tu-usuario/bodega-epp/internal/domain"
)

// MovementHandler maneja las peticiones HTTP del ledger de movimientos (protegido).
type MovementHandler struct {
	uc *movement.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Checkout godoc
// @Summary      Registrar salida de bodega
// @Description  Para ítems EPP recipient_id y signature son obligatorios.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "item_id, quantity, recipient_id?, expected_return_at?, signature?, note?"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/checkout [post]
func (h *MovementHandler) Checkout(c *fiber.Ctx) error {
	operatorID := GetUserID(c)
	if operatorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterCheckout(c.Context(), operatorID, in)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Checkin godoc
// @Summary      Registrar devolución / entrada a bodega
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckinRequest  true  "item_id, quantity, note?"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/checkin [post]
func (h *MovementHandler) Checkin(c *fiber.Ctx) error {
	operatorID := GetUserID(c)
	if operatorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CheckinRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterCheckin(c.Context(), operatorID, in)
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar el ledger de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        pageNumber  query  int     false  "Página (>=1, default 1)"
// @Param        pageSize    query  int     false  "Tamaño de página (<=100, default 20)"
// @Param        searchTerm  query  string  false  "Búsqueda por nota"
// @Param        sortBy      query  string  false  "createdAt | type | quantity"
// @Param        sortOrder   query  string  false  "asc | desc"
// @Param        item_id     query  string  false  "Filtrar por ítem"
// @Param        user_id     query  string  false  "Filtrar por operador"
// @Param        recipient_id query string  false  "Filtrar por receptor"
// @Success      200  {object}  query.Page[dto.MovementResponse]
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// movementError traduce los errores de dominio del ledger a HTTP.
func movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos: cantidad positiva requerida; ítems EPP exigen receptor y firma"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem o usuario no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// ListByItem godoc
// @Summary      Historial de movimientos de un ítem
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        limit   query  int     false  "Máximo de filas (default 50, tope 100)"
// @Param        offset  query  int     false  "Desplazamiento (default 0)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/item/{id} [get]
func (h *MovementHandler) ListByItem(c *fiber.Ctx) error {
	limit, offset := limitOffset(c)
	out, err := h.uc.ListByItem(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// ListByOperator godoc
// @Summary      Movimientos registrados por un operador
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del operador"
// @Param        limit   query  int     false  "Máximo de filas (default 50, tope 100)"
// @Param        offset  query  int     false  "Desplazamiento (default 0)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/operator/{id} [get]
func (h *MovementHandler) ListByOperator(c *fiber.Ctx) error {
	limit, offset := limitOffset(c)
	out, err := h.uc.ListByOperator(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// ListByRecipient godoc
// @Summary      Movimientos cuyo receptor es el usuario dado
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del receptor"
// @Param        limit   query  int     false  "Máximo de filas (default 50, tope 100)"
// @Param        offset  query  int     false  "Desplazamiento (default 0)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/recipient/{id} [get]
func (h *MovementHandler) ListByRecipient(c *fiber.Ctx) error {
	limit, offset := limitOffset(c)
	out, err := h.uc.ListByRecipient(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// limitOffset lee limit/offset de la query con defaults y tope.
func limitOffset(c *fiber.Ctx) (int, int) {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

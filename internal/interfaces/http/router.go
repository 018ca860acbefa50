package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bodega-epp/internal/application/audit"
	"github.com/tu-usuario/bodega-epp/internal/application/auth"
	"github.com/tu-usuario/bodega-epp/internal/application/item"
	"github.com/tu-usuario/bodega-epp/internal/application/movement"
	"github.com/tu-usuario/bodega-epp/internal/application/user"
	"github.com/tu-usuario/bodega-epp/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	MovementUC *movement.UseCase
	ItemUC     *item.UseCase
	UserUC     *user.UseCase
	Recorder   *audit.Recorder
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/users/me/change-password", authHandler.ChangePassword)

	// Ledger de movimientos: checkouts/checkins los registran admin y rrhh
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/checkout", RequireRole(entity.RoleAdmin, entity.RoleRRHH), movementHandler.Checkout)
	movements.Post("/checkin", RequireRole(entity.RoleAdmin, entity.RoleRRHH), movementHandler.Checkin)
	movements.Get("/", movementHandler.List)
	movements.Get("/item/:id", movementHandler.ListByItem)
	movements.Get("/operator/:id", movementHandler.ListByOperator)
	movements.Get("/recipient/:id", movementHandler.ListByRecipient)

	// Catálogo de ítems: escrituras solo admin
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", RequireRole(entity.RoleAdmin), itemHandler.Create)
	items.Put("/:id", RequireRole(entity.RoleAdmin), itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Delete)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)

	// Usuarios: solo admin
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)

	// Bitácora: solo admin
	auditHandler := NewAuditHandler(deps.Recorder)
	protected.Get("/audit", RequireRole(entity.RoleAdmin), auditHandler.List)
}

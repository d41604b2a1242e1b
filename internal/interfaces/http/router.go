package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-api/internal/application/auth"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	OrderUC   *usecase.OrderUseCase
	VehicleUC *usecase.VehicleUseCase
	UserUC    *usecase.UserUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	orderHandler := NewOrderHandler(deps.OrderUC)
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	userHandler := NewUserHandler(deps.UserUC)

	// Auth (público)
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token resuelto contra la DB)
	protected := app.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Get("/auth/me", authHandler.Me)

	// Vehicles (cliente gestiona los propios)
	vehicles := protected.Group("/vehicles", RequireRole(entity.RoleCustomer, entity.RoleAdmin))
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Delete("/:id", vehicleHandler.Delete)

	// Orders
	orders := protected.Group("/orders")
	orders.Post("/", RequireRole(entity.RoleCustomer, entity.RoleAdmin), orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Put("/:id/status", RequireRole(entity.RoleMechanic, entity.RoleAdmin), orderHandler.UpdateStatus)
	orders.Delete("/:id", orderHandler.Cancel)

	// Admin (solo admin; creación a nombre de clientes y gestión de usuarios)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Get("/users", userHandler.List)
	admin.Put("/users/:id/role", userHandler.UpdateRole)
	admin.Delete("/users/:id", userHandler.Delete)
	admin.Post("/orders", orderHandler.AdminCreate)
	admin.Get("/vehicles", vehicleHandler.AdminList)
	admin.Post("/vehicles", vehicleHandler.AdminCreate)
}

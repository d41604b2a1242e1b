package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/internal/domain"
)

// OrderHandler maneja las peticiones HTTP de órdenes de servicio.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create POST /orders — crea una orden del propio cliente.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	actor := GetUser(c)
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Create(actor, in)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(order)
}

// AdminCreate POST /admin/orders — crea una orden a nombre de un cliente (por email).
func (h *OrderHandler) AdminCreate(c *fiber.Ctx) error {
	var in dto.AdminCreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CustomerEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_email es requerido"})
	}
	order, err := h.uc.AdminCreate(in)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(order)
}

// List GET /orders?status=&service_date= — listado role-scoped; el listado
// completo sin filtros sale del cache.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	actor := GetUser(c)
	orders, err := h.uc.List(actor, c.Query("status"), c.Query("service_date"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(orders)
}

// UpdateStatus PUT /orders/:id/status?status=... — transición de estado (mecánico/admin).
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query param status es requerido"})
	}
	order, err := h.uc.UpdateStatus(c.Params("id"), status)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(order)
}

// Cancel DELETE /orders/:id — cancela la orden (cliente: solo las propias).
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	actor := GetUser(c)
	order, err := h.uc.Cancel(actor, c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(order)
}

// orderError mapea errores de dominio de órdenes a códigos HTTP.
func orderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrPastServiceDate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PAST_SERVICE_DATE", Message: "la fecha de servicio no puede estar en el pasado"})
	case errors.Is(err, domain.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "estado de orden inválido"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la orden no le pertenece"})
	case errors.Is(err, domain.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ORDER_NOT_FOUND", Message: "orden no encontrada"})
	case errors.Is(err, domain.ErrVehicleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "VEHICLE_NOT_FOUND", Message: "vehículo no encontrado"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "cliente no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

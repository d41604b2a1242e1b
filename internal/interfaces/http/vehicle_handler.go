package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/internal/domain"
)

// VehicleHandler maneja las peticiones HTTP de vehículos.
type VehicleHandler struct {
	uc *usecase.VehicleUseCase
}

// NewVehicleHandler construye el handler.
func NewVehicleHandler(uc *usecase.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{uc: uc}
}

// Create POST /vehicles — registra un vehículo del propio cliente.
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	actor := GetUser(c)
	var in dto.CreateVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	vehicle, err := h.uc.Create(actor, in)
	if err != nil {
		return vehicleError(c, err)
	}
	return c.JSON(vehicle)
}

// List GET /vehicles — vehículos del propio cliente.
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	actor := GetUser(c)
	vehicles, err := h.uc.ListOwn(actor)
	if err != nil {
		return vehicleError(c, err)
	}
	return c.JSON(vehicles)
}

// Delete DELETE /vehicles/:id — elimina un vehículo propio (o cualquiera si admin).
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	actor := GetUser(c)
	if err := h.uc.Delete(actor, c.Params("id")); err != nil {
		return vehicleError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// AdminCreate POST /admin/vehicles — registra un vehículo a nombre de un cliente.
func (h *VehicleHandler) AdminCreate(c *fiber.Ctx) error {
	var in dto.AdminCreateVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CustomerEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_email es requerido"})
	}
	vehicle, err := h.uc.AdminCreate(in)
	if err != nil {
		return vehicleError(c, err)
	}
	return c.JSON(vehicle)
}

// AdminList GET /admin/vehicles — todos los vehículos.
func (h *VehicleHandler) AdminList(c *fiber.Ctx) error {
	vehicles, err := h.uc.ListAll()
	if err != nil {
		return vehicleError(c, err)
	}
	return c.JSON(vehicles)
}

// vehicleError mapea errores de dominio de vehículos a códigos HTTP.
func vehicleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "make, model y plate son requeridos"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el vehículo no le pertenece"})
	case errors.Is(err, domain.ErrVehicleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "VEHICLE_NOT_FOUND", Message: "vehículo no encontrado"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "cliente no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/internal/domain"
)

// UserHandler maneja las rutas de administración de usuarios (solo admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List GET /admin/users — todos los usuarios.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.List()
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(users)
}

// UpdateRole PUT /admin/users/:id/role — cambia el rol de un usuario.
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	actor := GetUser(c)
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.UpdateRole(actor, c.Params("id"), in.Role)
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(user)
}

// Delete DELETE /admin/users/:id — elimina un usuario (cascada vehículos y órdenes).
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actor := GetUser(c)
	if err := h.uc.Delete(actor, c.Params("id")); err != nil {
		return userError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// userError mapea errores de dominio de usuarios a códigos HTTP.
func userError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rol inválido"})
	case errors.Is(err, domain.ErrSelfProtection):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SELF_PROTECTION", Message: "un admin no puede eliminar ni degradar su propia cuenta"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "usuario no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

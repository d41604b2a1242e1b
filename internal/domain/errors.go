package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrVehicleNotFound    = errors.New("vehículo no encontrado")
	ErrOrderNotFound      = errors.New("orden no encontrada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidStatus      = errors.New("estado de orden inválido")
	ErrPastServiceDate    = errors.New("la fecha de servicio no puede estar en el pasado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrSelfProtection     = errors.New("un admin no puede eliminar ni degradar su propia cuenta")
)

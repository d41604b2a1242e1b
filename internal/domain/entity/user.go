package entity

import "time"

// Roles válidos para User.
const (
	RoleCustomer = "customer"
	RoleMechanic = "mechanic"
	RoleAdmin    = "admin"
)

// ValidRole indica si el rol pertenece al conjunto cerrado de tres valores.
func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleMechanic, RoleAdmin:
		return true
	}
	return false
}

// User representa un usuario del sistema (cliente, mecánico o admin).
// Al eliminar un User se eliminan en cascada sus Vehicles y Orders.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // customer, mechanic, admin
	CreatedAt    time.Time
}

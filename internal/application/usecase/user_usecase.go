package usecase

import (
	"github.com/jhoicas/taller-api/internal/application/auth"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/internal/infrastructure/memcache"
	"github.com/jhoicas/taller-api/pkg/logger"
)

// UserUseCase operaciones de administración de usuarios (solo admin).
type UserUseCase struct {
	userRepo repository.UserRepository
	cache    OrderCache
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso. Recibe el cache de órdenes porque
// borrar un usuario cascada sus órdenes y el listado cacheado queda obsoleto.
func NewUserUseCase(userRepo repository.UserRepository, cache OrderCache, log *logger.Logger) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, cache: cache, log: log}
}

// List lista todos los usuarios.
func (uc *UserUseCase) List() ([]*dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// UpdateRole cambia el rol de un usuario. Un admin no puede degradar su propia
// cuenta (regla de auto-protección).
func (uc *UserUseCase) UpdateRole(actor *entity.User, id, role string) (*dto.UserResponse, error) {
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	if id == actor.ID && role != entity.RoleAdmin {
		return nil, domain.ErrSelfProtection
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.userRepo.UpdateRole(id, role); err != nil {
		return nil, err
	}
	user.Role = role
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario junto con sus vehículos y órdenes (cascada en DB)
// e invalida el listado de órdenes cacheado. Un admin no puede borrarse a sí mismo.
func (uc *UserUseCase) Delete(actor *entity.User, id string) error {
	if id == actor.ID {
		return domain.ErrSelfProtection
	}
	if err := uc.userRepo.Delete(id); err != nil {
		return err
	}
	if err := uc.cache.Delete(memcache.KeyOrdersAll); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar el cache de órdenes")
	}
	return nil
}

package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// VehicleUseCase aplica reglas de negocio para vehículos: un cliente solo
// gestiona los suyos; un admin puede registrarlos a nombre de cualquier cliente.
type VehicleUseCase struct {
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
}

// NewVehicleUseCase construye el caso de uso con sus puertos.
func NewVehicleUseCase(vehicleRepo repository.VehicleRepository, userRepo repository.UserRepository) *VehicleUseCase {
	return &VehicleUseCase{vehicleRepo: vehicleRepo, userRepo: userRepo}
}

// Create registra un vehículo del propio cliente.
func (uc *VehicleUseCase) Create(actor *entity.User, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	return uc.create(actor.ID, in.Make, in.Model, in.Plate, in.Year)
}

// AdminCreate registra un vehículo a nombre de un cliente buscado por email.
func (uc *VehicleUseCase) AdminCreate(in dto.AdminCreateVehicleRequest) (*dto.VehicleResponse, error) {
	customer, err := uc.userRepo.GetByEmail(in.CustomerEmail)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.create(customer.ID, in.Make, in.Model, in.Plate, in.Year)
}

func (uc *VehicleUseCase) create(userID, make, model, plate string, year *int) (*dto.VehicleResponse, error) {
	if make == "" || model == "" || plate == "" {
		return nil, domain.ErrInvalidInput
	}
	vehicle := &entity.Vehicle{
		ID:        uuid.New().String(),
		UserID:    userID,
		Make:      make,
		Model:     model,
		Plate:     plate,
		Year:      year,
		CreatedAt: time.Now(),
	}
	if err := uc.vehicleRepo.Create(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// ListOwn lista los vehículos del actor.
func (uc *VehicleUseCase) ListOwn(actor *entity.User) ([]*dto.VehicleResponse, error) {
	vehicles, err := uc.vehicleRepo.ListByUser(actor.ID)
	if err != nil {
		return nil, err
	}
	return toVehicleResponses(vehicles), nil
}

// ListAll lista todos los vehículos (ruta de admin).
func (uc *VehicleUseCase) ListAll() ([]*dto.VehicleResponse, error) {
	vehicles, err := uc.vehicleRepo.List()
	if err != nil {
		return nil, err
	}
	return toVehicleResponses(vehicles), nil
}

// Delete elimina un vehículo. Un cliente solo puede borrar los suyos; un admin
// cualquiera. Las órdenes que lo referencian quedan con la referencia limpia.
func (uc *VehicleUseCase) Delete(actor *entity.User, id string) error {
	vehicle, err := uc.vehicleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return domain.ErrVehicleNotFound
	}
	if actor.Role != entity.RoleAdmin && vehicle.UserID != actor.ID {
		return domain.ErrForbidden
	}
	return uc.vehicleRepo.Delete(id)
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	return &dto.VehicleResponse{
		ID:        v.ID,
		UserID:    v.UserID,
		Make:      v.Make,
		Model:     v.Model,
		Plate:     v.Plate,
		Year:      v.Year,
		CreatedAt: v.CreatedAt,
	}
}

func toVehicleResponses(vehicles []*entity.Vehicle) []*dto.VehicleResponse {
	out := make([]*dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	return out
}

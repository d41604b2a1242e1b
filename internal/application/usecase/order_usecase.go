package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/internal/infrastructure/memcache"
	"github.com/jhoicas/taller-api/pkg/logger"
)

// OrderUseCase aplica reglas de negocio para órdenes de servicio: ownership,
// validación de fecha y estado, invalidación del cache y publicación de eventos.
type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	cache       OrderCache
	publisher   EventPublisher
	log         *logger.Logger
}

// NewOrderUseCase construye el caso de uso con sus puertos.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	cache OrderCache,
	publisher EventPublisher,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		cache:       cache,
		publisher:   publisher,
		log:         log,
	}
}

// Create crea una orden para el propio cliente. La fecha de servicio no puede
// estar en el pasado y el vehículo referenciado, si lo hay, debe ser suyo.
func (uc *OrderUseCase) Create(actor *entity.User, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	return uc.create(actor, in.VehicleID, in.ServiceDate, in.Notes)
}

// AdminCreate crea una orden a nombre de un cliente buscado por email.
func (uc *OrderUseCase) AdminCreate(in dto.AdminCreateOrderRequest) (*dto.OrderResponse, error) {
	customer, err := uc.userRepo.GetByEmail(in.CustomerEmail)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.create(customer, in.VehicleID, in.ServiceDate, in.Notes)
}

func (uc *OrderUseCase) create(customer *entity.User, vehicleID *string, serviceDate, notes string) (*dto.OrderResponse, error) {
	day, err := parseServiceDate(serviceDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if day.Before(today()) {
		return nil, domain.ErrPastServiceDate
	}

	vehicleDesc := "sin vehículo registrado"
	if vehicleID != nil {
		vehicle, err := uc.vehicleRepo.GetByID(*vehicleID)
		if err != nil {
			return nil, err
		}
		// Un vehículo ajeno se reporta igual que uno inexistente.
		if vehicle == nil || vehicle.UserID != customer.ID {
			return nil, domain.ErrVehicleNotFound
		}
		vehicleDesc = vehicle.Description()
	}

	order := &entity.Order{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Vehicle:      vehicleDesc,
		VehicleID:    vehicleID,
		ServiceDate:  day,
		Status:       entity.StatusScheduled,
		Notes:        notes,
		CreatedAt:    time.Now(),
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	uc.invalidateCache()
	return toOrderResponse(order), nil
}

// List lista órdenes según el scope del actor: los clientes ven solo las suyas,
// mecánicos y admins ven todas. El listado completo sin filtros de mecánico/admin
// se sirve read-through desde el cache; cualquier vista filtrada va directo a la DB.
func (uc *OrderUseCase) List(actor *entity.User, status, serviceDate string) ([]*dto.OrderResponse, error) {
	filter := repository.OrderFilter{Status: status}
	if serviceDate != "" {
		day, err := parseServiceDate(serviceDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.ServiceDate = &day
	}
	if actor.Role == entity.RoleCustomer {
		filter.CustomerID = actor.ID
	}

	cacheable := filter.Empty()
	if cacheable {
		if raw, ok := uc.cache.Get(memcache.KeyOrdersAll); ok {
			var cached []*dto.OrderResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
			// Entrada corrupta: se ignora y se repobla desde la DB.
		}
	}

	orders, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	if cacheable {
		if err := uc.cache.SetJSON(memcache.KeyOrdersAll, out); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo poblar el cache de órdenes")
		}
	}
	return out, nil
}

// UpdateStatus transiciona la orden al estado dado (mecánico o admin).
// Cualquier estado permitido es alcanzable desde cualquier otro.
// Invalida el cache y publica el evento de cambio de estado best-effort.
func (uc *OrderUseCase) UpdateStatus(id, status string) (*dto.OrderResponse, error) {
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if err := uc.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status
	uc.invalidateCache()
	uc.publishStatusEvent(order)
	return toOrderResponse(order), nil
}

// Cancel cancela una orden. Un cliente solo puede cancelar las propias;
// mecánicos y admins pueden cancelar cualquiera.
func (uc *OrderUseCase) Cancel(actor *entity.User, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if actor.Role == entity.RoleCustomer && order.CustomerID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if err := uc.orderRepo.UpdateStatus(id, entity.StatusCancelled); err != nil {
		return nil, err
	}
	order.Status = entity.StatusCancelled
	uc.invalidateCache()
	uc.publishStatusEvent(order)
	return toOrderResponse(order), nil
}

// InvalidateCache borra la entrada del listado completo. También la usa el
// caso de uso de usuarios: borrar un usuario cascada sus órdenes.
func (uc *OrderUseCase) InvalidateCache() {
	uc.invalidateCache()
}

func (uc *OrderUseCase) invalidateCache() {
	if err := uc.cache.Delete(memcache.KeyOrdersAll); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar el cache de órdenes")
	}
}

// publishStatusEvent publica el evento best-effort: un fallo se loguea y se traga,
// el cambio de estado ya persistido no se revierte.
func (uc *OrderUseCase) publishStatusEvent(order *entity.Order) {
	event := entity.StatusEvent{
		Event:        entity.EventOrderStatusChanged,
		OrderID:      order.ID,
		NewStatus:    order.Status,
		ServiceDate:  order.ServiceDate.Format(dto.DateLayout),
		CustomerName: order.CustomerName,
		Vehicle:      order.Vehicle,
	}
	if err := uc.publisher.Publish(context.Background(), event); err != nil {
		uc.log.Error().Err(err).Str("order_id", order.ID).Str("new_status", order.Status).
			Msg("no se pudo publicar el evento de cambio de estado")
	}
}

func parseServiceDate(s string) (time.Time, error) {
	return time.Parse(dto.DateLayout, s)
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Vehicle:      o.Vehicle,
		VehicleID:    o.VehicleID,
		ServiceDate:  o.ServiceDate.Format(dto.DateLayout),
		Status:       o.Status,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
	}
}

package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/infrastructure/memcache"
	"github.com/jhoicas/taller-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type orderFixture struct {
	uc        *usecase.OrderUseCase
	users     *fakeUserRepo
	vehicles  *fakeVehicleRepo
	orders    *fakeOrderRepo
	cache     *fakeCache
	publisher *fakePublisher
	customer  *entity.User
	other     *entity.User
	mechanic  *entity.User
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		users:     newFakeUserRepo(),
		vehicles:  newFakeVehicleRepo(),
		orders:    newFakeOrderRepo(),
		cache:     newFakeCache(),
		publisher: &fakePublisher{},
	}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	f.uc = usecase.NewOrderUseCase(f.orders, f.vehicles, f.users, f.cache, f.publisher, log)

	f.customer = &entity.User{ID: "cust-1", Email: "a@x.com", Name: "Ann", Role: entity.RoleCustomer}
	f.other = &entity.User{ID: "cust-2", Email: "b@x.com", Name: "Bob", Role: entity.RoleCustomer}
	f.mechanic = &entity.User{ID: "mech-1", Email: "m@x.com", Name: "Max", Role: entity.RoleMechanic}
	require.NoError(t, f.users.Create(f.customer))
	require.NoError(t, f.users.Create(f.other))
	require.NoError(t, f.users.Create(f.mechanic))
	return f
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format(dto.DateLayout)
}

func yesterday() string {
	return time.Now().AddDate(0, 0, -1).Format(dto.DateLayout)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_FechaPasada_Rechazada(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.Create(f.customer, dto.CreateOrderRequest{ServiceDate: yesterday()})
	assert.ErrorIs(t, err, domain.ErrPastServiceDate,
		"una fecha de servicio en el pasado debe rechazarse sin importar el rol")
}

func TestCreateOrder_FechaHoy_Aceptada(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.uc.Create(f.customer, dto.CreateOrderRequest{
		ServiceDate: time.Now().Format(dto.DateLayout),
	})
	require.NoError(t, err, "hoy no es pasado: debe aceptarse")
	assert.Equal(t, entity.StatusScheduled, order.Status)
}

func TestCreateOrder_FechaInvalida_Rechazada(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.Create(f.customer, dto.CreateOrderRequest{ServiceDate: "24-01-2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_VehiculoAjeno_NotFound(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.vehicles.Create(&entity.Vehicle{ID: "veh-1", UserID: f.other.ID, Make: "VW", Model: "Golf", Plate: "AA-111"}))

	vid := "veh-1"
	_, err := f.uc.Create(f.customer, dto.CreateOrderRequest{VehicleID: &vid, ServiceDate: tomorrow()})
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound,
		"un vehículo de otro cliente debe reportarse igual que uno inexistente")
}

func TestCreateOrder_ConVehiculoPropio_DesnormalizaDescripcion(t *testing.T) {
	f := newOrderFixture(t)
	year := 2019
	require.NoError(t, f.vehicles.Create(&entity.Vehicle{
		ID: "veh-1", UserID: f.customer.ID, Make: "VW", Model: "Golf", Plate: "AA-111", Year: &year,
	}))

	vid := "veh-1"
	order, err := f.uc.Create(f.customer, dto.CreateOrderRequest{VehicleID: &vid, ServiceDate: tomorrow()})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusScheduled, order.Status, "una orden nueva arranca en scheduled")
	assert.Equal(t, "Ann", order.CustomerName)
	assert.Equal(t, "VW Golf (2019) AA-111", order.Vehicle)
}

func TestCreateOrder_InvalidaCache(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.cache.SetJSON(memcache.KeyOrdersAll, []string{"stale"}))

	_, err := f.uc.Create(f.customer, dto.CreateOrderRequest{ServiceDate: tomorrow()})
	require.NoError(t, err)

	_, ok := f.cache.Get(memcache.KeyOrdersAll)
	assert.False(t, ok, "crear una orden debe invalidar el listado cacheado")
}

func TestAdminCreateOrder_ClienteDesconocido_NotFound(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.AdminCreate(dto.AdminCreateOrderRequest{
		CustomerEmail: "nadie@x.com",
		ServiceDate:   tomorrow(),
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAdminCreateOrder_PorEmail_AsignaAlCliente(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.uc.AdminCreate(dto.AdminCreateOrderRequest{
		CustomerEmail: "a@x.com",
		ServiceDate:   tomorrow(),
	})
	require.NoError(t, err)
	assert.Equal(t, f.customer.ID, order.CustomerID, "la orden debe quedar a nombre del cliente resuelto por email")
}

// ──────────────────────────────────────────────────────────────────────────────
// List + cache read-through
// ──────────────────────────────────────────────────────────────────────────────

func TestListOrders_ClienteSoloVeLasSuyas(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.uc.Create(f.customer, dto.CreateOrderRequest{ServiceDate: tomorrow()})
	require.NoError(t, err)
	_, err = f.uc.Create(f.other, dto.CreateOrderRequest{ServiceDate: tomorrow()})
	require.NoError(t, err)

	list, err := f.uc.List(f.customer, "", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.customer.ID, list[0].CustomerID)
}

func TestListOrders_SinFiltros_PueblaElCache(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.uc.Create(f.customer, dto.CreateOrderRequest{ServiceDate: tomorrow()})
	require.NoError(t, err)

	list, err := f.uc.List(f.mechanic, "", "")
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, ok := f.cache.Get(memcache.KeyOrdersAll)
	assert.True(t, ok, "el listado completo de mecánico/admin debe quedar cacheado")
}

func TestListOrders_CacheHit_SirveDesdeElCache(t *testing.T) {
	f := newOrderFixture(t)
	cached := []*dto.OrderResponse{{ID: "from-cache", Status: entity.StatusScheduled}}
	require.NoError(t, f.cache.SetJSON(memcache.KeyOrdersAll, cached))

	list, err := f.uc.List(f.mechanic, "", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "from-cache", list[0].ID, "con cache hit no se debe ir a la DB")
}

func TestListOrders_ConFiltro_NoCachea(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.uc.Create(f.customer, dto.CreateOrderRequest{ServiceDate: tomorrow()})
	require.NoError(t, err)

	_, err = f.uc.List(f.mechanic, entity.StatusScheduled, "")
	require.NoError(t, err)

	_, ok := f.cache.Get(memcache.KeyOrdersAll)
	assert.False(t, ok, "las vistas filtradas nunca se cachean")
}

func TestListOrders_ScopeDeCliente_NoUsaElCacheGlobal(t *testing.T) {
	f := newOrderFixture(t)
	cached := []*dto.OrderResponse{{ID: "ajena", CustomerID: f.other.ID}}
	require.NoError(t, f.cache.SetJSON(memcache.KeyOrdersAll, cached))
	_, err := f.uc.Create(f.customer, dto.CreateOrderRequest{ServiceDate: tomorrow()})
	require.NoError(t, err)

	list, err := f.uc.List(f.customer, "", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.customer.ID, list[0].CustomerID,
		"el listado de un cliente jamás debe salir del cache global sin scope")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus / Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_EstadoInvalido_BadRequest(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.uc.Create(f.customer, dto.CreateOrderRequest{ServiceDate: tomorrow()})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(order.ID, "terminadisima")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Empty(t, f.publisher.events, "un estado inválido no debe publicar nada")
}

func TestUpdateStatus_OrdenInexistente_NotFound(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.UpdateStatus("no-existe", entity.StatusDone)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateStatus_PublicaEventoEInvalidaCache(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.uc.Create(f.customer, dto.CreateOrderRequest{ServiceDate: tomorrow()})
	require.NoError(t, err)
	require.NoError(t, f.cache.SetJSON(memcache.KeyOrdersAll, []string{"stale"}))

	updated, err := f.uc.UpdateStatus(order.ID, entity.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, updated.Status)

	_, ok := f.cache.Get(memcache.KeyOrdersAll)
	assert.False(t, ok, "el cambio de estado debe limpiar el listado cacheado")

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, entity.EventOrderStatusChanged, event.Event)
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, entity.StatusDone, event.NewStatus)
	assert.Equal(t, "Ann", event.CustomerName)
}

func TestUpdateStatus_BrokerCaido_NoRevierteElCambio(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.uc.Create(f.customer, dto.CreateOrderRequest{ServiceDate: tomorrow()})
	require.NoError(t, err)
	f.publisher.fail = true

	updated, err := f.uc.UpdateStatus(order.ID, entity.StatusFinished)
	require.NoError(t, err, "el publish es best-effort: su fallo no revierte el estado")
	assert.Equal(t, entity.StatusFinished, updated.Status)

	persisted, err := f.orders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusFinished, persisted.Status)
}

func TestCancel_ClienteSoloCancelaLasSuyas(t *testing.T) {
	f := newOrderFixture(t)
	foreign, err := f.uc.Create(f.other, dto.CreateOrderRequest{ServiceDate: tomorrow()})
	require.NoError(t, err)

	_, err = f.uc.Cancel(f.customer, foreign.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"cancelar la orden de otro cliente debe dar Forbidden")

	_, err = f.uc.Cancel(f.customer, "no-existe")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestCancel_PublicaEventoCancelled(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.uc.Create(f.customer, dto.CreateOrderRequest{ServiceDate: tomorrow()})
	require.NoError(t, err)

	cancelled, err := f.uc.Cancel(f.customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, cancelled.Status)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, entity.StatusCancelled, f.publisher.events[0].NewStatus)
}

func TestCancel_MecanicoPuedeCancelarCualquiera(t *testing.T) {
	f := newOrderFixture(t)
	order, err := f.uc.Create(f.customer, dto.CreateOrderRequest{ServiceDate: tomorrow()})
	require.NoError(t, err)

	cancelled, err := f.uc.Cancel(f.mechanic, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, cancelled.Status)
}

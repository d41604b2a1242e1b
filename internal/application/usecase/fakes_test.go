package usecase_test

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos (mismo contrato que los adaptadores reales)
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List() ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(id, role string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeVehicleRepo struct {
	vehicles map[string]*entity.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: map[string]*entity.Vehicle{}}
}

func (r *fakeVehicleRepo) Create(v *entity.Vehicle) error {
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) ListByUser(userID string) ([]*entity.Vehicle, error) {
	var out []*entity.Vehicle
	for _, v := range r.vehicles {
		if v.UserID == userID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeVehicleRepo) List() ([]*entity.Vehicle, error) {
	var out []*entity.Vehicle
	for _, v := range r.vehicles {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeVehicleRepo) Delete(id string) error {
	if _, ok := r.vehicles[id]; !ok {
		return domain.ErrVehicleNotFound
	}
	delete(r.vehicles, id)
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*entity.Order{}}
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.ServiceDate != nil && !o.ServiceDate.Equal(*filter.ServiceDate) {
			continue
		}
		if filter.CustomerID != "" && o.CustomerID != filter.CustomerID {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

// fakeCache implementa usecase.OrderCache sobre un map, contando invalidaciones.
type fakeCache struct {
	data    map[string][]byte
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *fakeCache) SetJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = data
	return nil
}

func (c *fakeCache) Delete(key string) error {
	delete(c.data, key)
	c.deletes++
	return nil
}

// fakePublisher implementa usecase.EventPublisher registrando los eventos publicados.
type fakePublisher struct {
	events []entity.StatusEvent
	fail   bool
}

func (p *fakePublisher) Publish(_ context.Context, event entity.StatusEvent) error {
	if p.fail {
		return errors.New("broker caído")
	}
	p.events = append(p.events, event)
	return nil
}

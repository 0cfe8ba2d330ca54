package service_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/afroforma/roommaster/internal/domain"
)

// ---------- In-memory fakes ----------

type fakeTenantRepo struct {
	byID   map[string]*domain.Tenant
	bySlug map[string]*domain.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{
		byID:   make(map[string]*domain.Tenant),
		bySlug: make(map[string]*domain.Tenant),
	}
}

func (f *fakeTenantRepo) add(slug, name string) *domain.Tenant {
	t := &domain.Tenant{ID: uuid.NewString(), Slug: slug, Name: name, CreatedAt: time.Now()}
	f.byID[t.ID] = t
	f.bySlug[t.Slug] = t
	return t
}

func (f *fakeTenantRepo) FindByID(_ context.Context, id string) (*domain.Tenant, error) {
	return f.byID[id], nil
}

func (f *fakeTenantRepo) FindBySlug(_ context.Context, slug string) (*domain.Tenant, error) {
	return f.bySlug[slug], nil
}

func (f *fakeTenantRepo) Upsert(_ context.Context, slug, name string) (*domain.Tenant, error) {
	if t, ok := f.bySlug[slug]; ok {
		t.Name = name
		return t, nil
	}
	return f.add(slug, name), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // id -> user
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) add(tenantID, email, passwordHash, role string, active bool) *domain.User {
	u := &domain.User{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     active,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(_ context.Context, tenantID string, req *domain.CreateUserRequest, passwordHash string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.TenantID == tenantID && u.Email == req.Email {
			return nil, fmt.Errorf("duplicate email")
		}
	}
	u := f.add(tenantID, req.Email, passwordHash, req.Role, true)
	u.Name = req.Name
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, tenantID, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.TenantID == tenantID && u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, tenantID, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.users[id]
	if u == nil || u.TenantID != tenantID {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) List(_ context.Context, tenantID string, limit, offset int) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.User
	for _, u := range f.users {
		if u.TenantID == tenantID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Deactivate(_ context.Context, tenantID, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.users[id]
	if u == nil || u.TenantID != tenantID || !u.IsActive {
		return false, nil
	}
	u.IsActive = false
	return true, nil
}

func (f *fakeUserRepo) Upsert(_ context.Context, tenantID, email, name, passwordHash, role string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.TenantID == tenantID && u.Email == strings.ToLower(email) {
			u.PasswordHash = passwordHash
			u.Role = role
			u.IsActive = true
			return u, nil
		}
	}
	u := f.add(tenantID, email, passwordHash, role, true)
	u.Name = name
	return u, nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[string]*domain.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[string]*domain.Room)}
}

func (f *fakeRoomRepo) add(tenantID, number string, status domain.RoomStatus) *domain.Room {
	room := &domain.Room{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Number:    number,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.rooms[room.ID] = room
	return room
}

func (f *fakeRoomRepo) List(_ context.Context, tenantID string) ([]domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Room
	for _, room := range f.rooms {
		if room.TenantID == tenantID {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) FindByID(_ context.Context, tenantID, id string) (*domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room := f.rooms[id]
	if room == nil || room.TenantID != tenantID {
		return nil, nil
	}
	return room, nil
}

func (f *fakeRoomRepo) Create(_ context.Context, tenantID string, req *domain.CreateRoomRequest) (*domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room := f.add(tenantID, req.Number, req.Status)
	room.Type = req.Type
	room.Floor = req.Floor
	return room, nil
}

func (f *fakeRoomRepo) UpdateStatus(_ context.Context, tenantID, id string, status domain.RoomStatus) (*domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room := f.rooms[id]
	if room == nil || room.TenantID != tenantID {
		return nil, nil
	}
	room.Status = status
	return room, nil
}

func (f *fakeRoomRepo) Upsert(_ context.Context, tenantID string, req *domain.CreateRoomRequest) (*domain.Room, error) {
	return f.Create(context.Background(), tenantID, req)
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[string]*domain.Reservation
	createCalls  int
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[string]*domain.Reservation)}
}

func (f *fakeReservationRepo) List(_ context.Context, tenantID string, limit, offset int) ([]domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Reservation
	for _, res := range f.reservations {
		if res.TenantID == tenantID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, tenantID, id string) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := f.reservations[id]
	if res == nil || res.TenantID != tenantID {
		return nil, nil
	}
	return res, nil
}

func (f *fakeReservationRepo) Create(_ context.Context, tenantID string, req *domain.CreateReservationRequest) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	res := &domain.Reservation{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		RoomID:    req.RoomID,
		GuestName: req.GuestName,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Status:    req.Status,
		Amount:    req.Amount,
		Deposit:   req.Deposit,
		Source:    req.Source,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.reservations[res.ID] = res
	return res, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, tenantID, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := f.reservations[id]
	if res == nil || res.TenantID != tenantID {
		return nil, nil
	}
	res.Status = status
	return res, nil
}

func (f *fakeReservationRepo) CountByTenant(_ context.Context, tenantID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, res := range f.reservations {
		if res.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

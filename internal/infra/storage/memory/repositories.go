package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pousada/internal/domain/extras"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/reservation"
	"pousada/internal/domain/rooms"
)

// ErrVersionConflict is returned when a save is based on a stale version.
var ErrVersionConflict = errors.New("memory: version conflict")

// RoomRepository keeps deep copies so callers never share state with the store.
type RoomRepository struct {
	mu    sync.RWMutex
	items map[rooms.RoomID]*rooms.Room
}

func NewRoomRepository(seed ...*rooms.Room) *RoomRepository {
	r := &RoomRepository{items: make(map[rooms.RoomID]*rooms.Room, len(seed))}
	for _, room := range seed {
		r.items[room.ID] = room.Clone()
	}
	return r
}

func (r *RoomRepository) ByID(ctx context.Context, id rooms.RoomID) (*rooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.items[id]
	if !ok {
		return nil, rooms.ErrRoomNotFound
	}
	return room.Clone(), nil
}

// List returns every room ordered by id.
func (r *RoomRepository) List(ctx context.Context) ([]*rooms.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*rooms.Room, 0, len(r.items))
	for _, room := range r.items {
		out = append(out, room.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Save bumps the version after checking it against the stored one.
func (r *RoomRepository) Save(ctx context.Context, room *rooms.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.items[room.ID]; ok && current.Version != room.Version {
		return ErrVersionConflict
	}
	room.Version++
	r.items[room.ID] = room.Clone()
	return nil
}

type PackageRepository struct {
	mu    sync.RWMutex
	items map[promotions.PackageID]*promotions.Package
}

func NewPackageRepository(seed ...*promotions.Package) *PackageRepository {
	r := &PackageRepository{items: make(map[promotions.PackageID]*promotions.Package, len(seed))}
	for _, pkg := range seed {
		r.items[pkg.ID] = pkg
	}
	return r
}

func (r *PackageRepository) ByID(ctx context.Context, id promotions.PackageID) (*promotions.Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pkg, ok := r.items[id]
	if !ok {
		return nil, promotions.ErrPackageNotFound
	}
	return pkg, nil
}

func (r *PackageRepository) List(ctx context.Context) ([]*promotions.Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*promotions.Package, 0, len(r.items))
	for _, pkg := range r.items {
		out = append(out, pkg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DiscountRepository is keyed by the normalized code.
type DiscountRepository struct {
	mu    sync.RWMutex
	items map[string]*promotions.DiscountCode
}

func NewDiscountRepository(seed ...*promotions.DiscountCode) *DiscountRepository {
	r := &DiscountRepository{items: make(map[string]*promotions.DiscountCode, len(seed))}
	for _, code := range seed {
		r.items[promotions.NormalizeCode(code.Code)] = code.Clone()
	}
	return r
}

func (r *DiscountRepository) ByCode(ctx context.Context, code string) (*promotions.DiscountCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dc, ok := r.items[promotions.NormalizeCode(code)]
	if !ok {
		return nil, promotions.ErrDiscountNotFound
	}
	return dc.Clone(), nil
}

func (r *DiscountRepository) List(ctx context.Context) ([]*promotions.DiscountCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*promotions.DiscountCode, 0, len(r.items))
	for _, dc := range r.items {
		out = append(out, dc.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *DiscountRepository) Save(ctx context.Context, code *promotions.DiscountCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[promotions.NormalizeCode(code.Code)] = code.Clone()
	return nil
}

func (r *DiscountRepository) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := promotions.NormalizeCode(code)
	if _, ok := r.items[key]; !ok {
		return promotions.ErrDiscountNotFound
	}
	delete(r.items, key)
	return nil
}

type ExtraRepository struct {
	mu    sync.RWMutex
	items map[extras.ServiceID]*extras.Service
}

func NewExtraRepository(seed ...*extras.Service) *ExtraRepository {
	r := &ExtraRepository{items: make(map[extras.ServiceID]*extras.Service, len(seed))}
	for _, svc := range seed {
		r.items[svc.ID] = svc
	}
	return r
}

func (r *ExtraRepository) ByID(ctx context.Context, id extras.ServiceID) (*extras.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.items[id]
	if !ok {
		return nil, extras.ErrServiceNotFound
	}
	return svc, nil
}

func (r *ExtraRepository) List(ctx context.Context) ([]*extras.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*extras.Service, 0, len(r.items))
	for _, svc := range r.items {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type ReservationRepository struct {
	mu    sync.RWMutex
	items map[reservation.ID]*reservation.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[reservation.ID]*reservation.Reservation)}
}

func (r *ReservationRepository) ByID(ctx context.Context, id reservation.ID) (*reservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	clone := *res
	clone.ClearEvents()
	return &clone, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.items[res.ID]; ok && current.Version != res.Version {
		return ErrVersionConflict
	}
	res.Version++
	stored := *res
	stored.ClearEvents()
	r.items[res.ID] = &stored
	return nil
}

var (
	_ rooms.Repository              = (*RoomRepository)(nil)
	_ promotions.PackageRepository  = (*PackageRepository)(nil)
	_ promotions.DiscountRepository = (*DiscountRepository)(nil)
	_ extras.Repository             = (*ExtraRepository)(nil)
	_ reservation.Repository        = (*ReservationRepository)(nil)
)

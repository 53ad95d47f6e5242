package router

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pradyumyelame/EasyToStay/internal/model"
	"github.com/pradyumyelame/EasyToStay/internal/repository"
)

// memUsers, memPlaces and memBookings are map-backed repositories for
// exercising the full HTTP stack without a database.
type memUsers struct {
	mu    sync.Mutex
	users map[string]model.User
}

func (r *memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUsers) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[strings.ToLower(id)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *memUsers) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *memUsers) UpdateByID(ctx context.Context, id string, update model.UserUpdate) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.ProfilePic != nil {
		u.ProfilePic = *update.ProfilePic
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	r.users[id] = u
	return &u, nil
}

type memPlaces struct {
	mu     sync.Mutex
	users  *memUsers
	places map[string]model.Place
}

func (r *memPlaces) Create(ctx context.Context, place *model.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	place.ID = uuid.NewString()
	place.CreatedAt = time.Now()
	r.places[place.ID] = *place
	return nil
}

func (r *memPlaces) FindByID(ctx context.Context, id string) (*model.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.places[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *memPlaces) FindByIDWithOwner(ctx context.Context, id string) (*model.Place, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner, err := r.users.FindByID(ctx, p.OwnerID); err == nil {
		p.Owner = owner
	}
	return p, nil
}

func (r *memPlaces) ListByOwner(ctx context.Context, ownerID string) ([]model.Place, error) {
	all, _ := r.ListAll(ctx)
	out := []model.Place{}
	for _, p := range all {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPlaces) ListAll(ctx context.Context) ([]model.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Place, 0, len(r.places))
	for _, p := range r.places {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memPlaces) Update(ctx context.Context, place *model.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.places[place.ID]; !ok {
		return repository.ErrNotFound
	}
	r.places[place.ID] = *place
	return nil
}

func (r *memPlaces) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.places[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.places, id)
	return nil
}

type memBookings struct {
	mu       sync.Mutex
	places   *memPlaces
	bookings []model.Booking
}

func (r *memBookings) Create(ctx context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = uuid.NewString()
	booking.CreatedAt = time.Now()
	stored := *booking
	stored.Place = nil
	r.bookings = append(r.bookings, stored)
	return nil
}

func (r *memBookings) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memBookings) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	r.mu.Lock()
	var out []model.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	r.mu.Unlock()

	for i := range out {
		if p, err := r.places.FindByID(ctx, out[i].PlaceID); err == nil {
			out[i].Place = p
		}
	}
	return out, nil
}

func newMemStores() repository.Stores {
	users := &memUsers{users: map[string]model.User{}}
	places := &memPlaces{users: users, places: map[string]model.Place{}}
	return repository.Stores{
		Users:    users,
		Places:   places,
		Bookings: &memBookings{places: places},
	}
}

package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mehmetcc/folio/internal/person"
)

type fakePersonRepo struct {
	mu      sync.Mutex
	nextID  int64
	persons map[int64]*person.Person
	touched []int64
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{persons: map[int64]*person.Person{}}
}

func (f *fakePersonRepo) Create(_ context.Context, dto *person.PersonDTO) (*person.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.persons {
		if p.Username == dto.Username {
			return nil, person.ErrDuplicateUsername
		}
		if p.Email == strings.ToLower(dto.Email) {
			return nil, person.ErrDuplicateEmail
		}
	}
	f.nextID++
	p := &person.Person{
		ID:           f.nextID,
		Username:     dto.Username,
		Email:        strings.ToLower(dto.Email),
		PasswordHash: dto.PasswordHash,
		CreatedAt:    time.Now(),
	}
	f.persons[p.ID] = p
	return p, nil
}

func (f *fakePersonRepo) GetByID(_ context.Context, id int64) (*person.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.persons[id]
	if !ok {
		return nil, person.ErrNotFound
	}
	return p, nil
}

func (f *fakePersonRepo) GetByLogin(_ context.Context, login string) (*person.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.persons {
		if p.Username == login || p.Email == strings.ToLower(login) {
			return p, nil
		}
	}
	return nil, person.ErrNotFound
}

func (f *fakePersonRepo) TouchLastLogin(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakePersonRepo) List(context.Context) ([]person.Person, error) { return nil, nil }

func (f *fakePersonRepo) ToggleAdmin(_ context.Context, id int64) (*person.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.persons[id]
	if !ok {
		return nil, person.ErrNotFound
	}
	p.IsAdmin = !p.IsAdmin
	return p, nil
}

func (f *fakePersonRepo) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.persons)), nil
}

package barber

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/storage"
)

type fakeRepo struct {
	mu      sync.Mutex
	barbers map[string]*Barber
	// inUse marks services referenced by appointments.
	inUse map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{barbers: map[string]*Barber{}, inUse: map[string]bool{}}
}

func clone(b *Barber) *Barber {
	c := *b
	c.Services = append([]Service(nil), b.Services...)
	return &c
}

func (r *fakeRepo) Create(ctx context.Context, b *Barber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = uuid.NewString()
	for i := range b.Services {
		b.Services[i].ID = uuid.NewString()
		b.Services[i].BarberID = b.ID
		b.Services[i].Position = i
	}
	r.barbers[b.ID] = clone(b)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(b), nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Barber, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*Barber{}
	for _, b := range r.barbers {
		if filter.Keyword == "" || strings.Contains(strings.ToLower(b.Name), strings.ToLower(filter.Keyword)) {
			out = append(out, clone(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, b *Barber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.barbers[b.ID]
	if !ok {
		return ErrNotFound
	}
	cur.Name = b.Name
	cur.Schedule = b.Schedule
	return nil
}

func (r *fakeRepo) UpdateAvatar(ctx context.Context, id string, avatarPath, thumbnailPath *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.barbers[id]
	if !ok {
		return ErrNotFound
	}
	cur.AvatarPath = avatarPath
	cur.ThumbnailPath = thumbnailPath
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.barbers[id]; !ok {
		return ErrNotFound
	}
	delete(r.barbers, id)
	return nil
}

func (r *fakeRepo) CreateService(ctx context.Context, s *Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[s.BarberID]
	if !ok {
		return ErrNotFound
	}
	for _, existing := range b.Services {
		if existing.Name == s.Name {
			return ErrDuplicateService
		}
	}
	s.ID = uuid.NewString()
	s.Position = len(b.Services)
	b.Services = append(b.Services, *s)
	return nil
}

func (r *fakeRepo) UpdateService(ctx context.Context, s *Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[s.BarberID]
	if !ok {
		return ErrNotFound
	}
	for i := range b.Services {
		if b.Services[i].ID == s.ID {
			b.Services[i] = *s
			return nil
		}
	}
	return ErrServiceNotFound
}

func (r *fakeRepo) DeleteService(ctx context.Context, barberID, serviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[barberID]
	if !ok {
		return ErrNotFound
	}
	if r.inUse[serviceID] {
		return ErrServiceInUse
	}
	for i := range b.Services {
		if b.Services[i].ID == serviceID {
			b.Services = append(b.Services[:i], b.Services[i+1:]...)
			return nil
		}
	}
	return ErrServiceNotFound
}

type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (s *memStorage) Save(ctx context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
	return nil
}

func (s *memStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	return nil
}

func (s *memStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

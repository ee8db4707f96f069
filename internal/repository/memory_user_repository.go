package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lrms/workforce-service/internal/domain"
)

type memoryUserRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]domain.User
	byEmail map[string]int64
	now     func() time.Time
}

// NewMemoryUserRepository returns a process-local store used when no
// Postgres DSN is configured, and by tests.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		nextID:  1,
		byID:    make(map[int64]domain.User),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}
	now := r.now().UTC()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.nextID++

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[user.ID]
	if !ok {
		return ErrNotFound
	}
	if current.Email != user.Email {
		if _, taken := r.byEmail[user.Email]; taken {
			return ErrDuplicateEmail
		}
		delete(r.byEmail, current.Email)
		r.byEmail[user.Email] = user.ID
	}
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = r.now().UTC()
	r.byID[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, user.Email)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *memoryUserRepository) List(_ context.Context, filter UserFilter) ([]domain.User, error) {
	r.mu.RLock()
	result := make([]domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		result = append(result, user)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	limit, offset := filter.bounds()
	if offset >= len(result) {
		return []domain.User{}, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

func (r *memoryUserRepository) Count(_ context.Context, role *domain.Role) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if role == nil {
		return int64(len(r.byID)), nil
	}
	var total int64
	for _, user := range r.byID {
		if user.Role == *role {
			total++
		}
	}
	return total, nil
}

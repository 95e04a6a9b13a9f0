package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"tasktrack/internal/errors"
	"tasktrack/internal/model"
)

// In-memory implementations of the repository contracts. They back the
// service tests and any environment that runs without MySQL.

// MemoryUserRepository is a map-backed UserRepository with the same
// uniqueness semantics as the real store.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[uuid.UUID]model.User{}}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return &errors.ConflictError{Username: user.Username}
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		u := user
		return &u, nil
	}
	return nil, nil
}

// MemoryTaskRepository is a map-backed TaskRepository with owner scoping
// identical to the GORM implementation.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]model.Task
}

// NewMemoryTaskRepository creates an empty in-memory task store.
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: map[uuid.UUID]model.Task{}}
}

func (r *MemoryTaskRepository) Create(_ context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

func (r *MemoryTaskRepository) FindByIDAndOwner(_ context.Context, id, owner uuid.UUID) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	if !ok || task.OwnerID != owner {
		return nil, nil
	}
	t := task
	return &t, nil
}

func (r *MemoryTaskRepository) ListByOwner(_ context.Context, owner uuid.UUID) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var tasks []model.Task
	for _, task := range r.tasks {
		if task.OwnerID == owner {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *MemoryTaskRepository) Update(_ context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

func (r *MemoryTaskRepository) DeleteByIDAndOwner(_ context.Context, id, owner uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok || task.OwnerID != owner {
		return 0, nil
	}
	delete(r.tasks, id)
	return 1, nil
}

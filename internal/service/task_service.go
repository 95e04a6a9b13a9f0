package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tasktrack/internal/auth"
	"tasktrack/internal/cache"
	"tasktrack/internal/errors"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

const taskListCacheTTL = 5 * time.Minute

// CreateTaskInput carries the client-supplied task fields. There is no
// owner field: ownership always comes from the principal.
type CreateTaskInput struct {
	Title       string
	Description *string
	Completed   bool
}

// UpdateTaskInput is a partial update. Title and Completed follow the
// usual omitted-means-unchanged rule; Description is three-valued so a
// client can explicitly clear it.
type UpdateTaskInput struct {
	Title       *string
	Description model.OptionalString
	Completed   *bool
}

// TaskService is the ownership guard around task persistence: every
// operation is scoped to the calling principal's user id, never to
// anything the client sent.
type TaskService interface {
	Create(ctx context.Context, principal auth.Principal, input CreateTaskInput) (*model.Task, error)
	Get(ctx context.Context, principal auth.Principal, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, principal auth.Principal) ([]model.Task, error)
	Update(ctx context.Context, principal auth.Principal, id uuid.UUID, input UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error
}

type taskService struct {
	tasks repository.TaskRepository
	cache *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{tasks: tasks, cache: cache}
}

func (s *taskService) listCacheKey(owner uuid.UUID) string {
	return fmt.Sprintf("tasks:%s", owner)
}

// Create persists a task owned by the principal. OwnerID is assigned here
// unconditionally, overriding anything the client might have sent.
func (s *taskService) Create(ctx context.Context, principal auth.Principal, input CreateTaskInput) (*model.Task, error) {
	if err := validateTaskTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateTaskDescription(input.Description); err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:          uuid.New(),
		OwnerID:     principal.UserID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(principal.UserID))
	return task, nil
}

// Get returns the principal's task. A task owned by someone else yields
// the same ErrTaskNotFound as a task that does not exist.
func (s *taskService) Get(ctx context.Context, principal auth.Principal, id uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.FindByIDAndOwner(ctx, id, principal.UserID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, errors.ErrTaskNotFound
	}
	return task, nil
}

// List returns the principal's tasks, with a short-lived cache in front.
func (s *taskService) List(ctx context.Context, principal auth.Principal) ([]model.Task, error) {
	key := s.listCacheKey(principal.UserID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.tasks.ListByOwner(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, key, payload, taskListCacheTTL)
	}
	return tasks, nil
}

// Update applies a partial update to the principal's task.
func (s *taskService) Update(ctx context.Context, principal auth.Principal, id uuid.UUID, input UpdateTaskInput) (*model.Task, error) {
	task, err := s.tasks.FindByIDAndOwner(ctx, id, principal.UserID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, errors.ErrTaskNotFound
	}

	if input.Title != nil {
		if err := validateTaskTitle(*input.Title); err != nil {
			return nil, err
		}
		task.Title = *input.Title
	}
	if input.Description.IsSet() {
		if err := validateTaskDescription(input.Description.Value()); err != nil {
			return nil, err
		}
		task.Description = input.Description.Value()
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(principal.UserID))
	return task, nil
}

// Delete removes the principal's task; foreign and absent tasks are both
// ErrTaskNotFound.
func (s *taskService) Delete(ctx context.Context, principal auth.Principal, id uuid.UUID) error {
	affected, err := s.tasks.DeleteByIDAndOwner(ctx, id, principal.UserID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrTaskNotFound
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(principal.UserID))
	return nil
}

func validateTaskTitle(title string) error {
	if title == "" {
		return errors.NewValidationError("task title cannot be empty")
	}
	if len(title) > 200 {
		return errors.NewValidationError("task title must be at most 200 characters")
	}
	return nil
}

func validateTaskDescription(description *string) error {
	if description != nil && len(*description) > 1000 {
		return errors.NewValidationError("task description must be at most 1000 characters")
	}
	return nil
}

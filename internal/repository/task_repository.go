package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktrack/internal/model"
)

// TaskRepository persists tasks. Every read and write is scoped by owner:
// there is no way to address a task by id alone.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	// FindByIDAndOwner returns (nil, nil) when the task is absent or owned
	// by someone else; the two are indistinguishable by contract.
	FindByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (*model.Task, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	// DeleteByIDAndOwner reports how many rows were removed (0 or 1).
	DeleteByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *taskRepository) FindByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, owner).
		First(&task).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func (r *taskRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", owner).
		Order("created_at").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *taskRepository) DeleteByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, owner).
		Delete(&model.Task{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete task: %w", res.Error)
	}
	return res.RowsAffected, nil
}

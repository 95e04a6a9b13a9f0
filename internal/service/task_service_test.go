package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"tasktrack/internal/auth"
	"tasktrack/internal/cache"
	"tasktrack/internal/errors"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
)

func newTaskServiceForTest() TaskService {
	// Nil cache client exercises the fail-safe path: every call behaves
	// like a cache miss.
	var cacheClient *cache.Client
	return NewTaskService(repository.NewMemoryTaskRepository(), cacheClient)
}

func testPrincipal(username string) auth.Principal {
	return auth.Principal{UserID: uuid.New(), Username: username}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestTaskService_CreateForcesOwner(t *testing.T) {
	service := newTaskServiceForTest()
	alice := testPrincipal("alice")

	task, err := service.Create(context.Background(), alice, CreateTaskInput{Title: "buy milk"})
	assert.NoError(t, err)
	assert.Equal(t, alice.UserID, task.OwnerID)
	assert.Equal(t, "buy milk", task.Title)
	assert.False(t, task.Completed)
	assert.NotEqual(t, uuid.Nil, task.ID)
}

func TestTaskService_CreateValidatesInput(t *testing.T) {
	service := newTaskServiceForTest()
	alice := testPrincipal("alice")

	var validationErr *errors.ValidationError

	_, err := service.Create(context.Background(), alice, CreateTaskInput{Title: ""})
	assert.ErrorAs(t, err, &validationErr)

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}
	_, err = service.Create(context.Background(), alice, CreateTaskInput{Title: string(long)})
	assert.ErrorAs(t, err, &validationErr)
}

func TestTaskService_TenantIsolation(t *testing.T) {
	service := newTaskServiceForTest()
	alice := testPrincipal("alice")
	bob := testPrincipal("bob")

	created, err := service.Create(context.Background(), alice, CreateTaskInput{Title: "alice's task"})
	assert.NoError(t, err)

	// Alice sees her task.
	got, err := service.Get(context.Background(), alice, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// For Bob the same id is indistinguishable from a nonexistent task.
	_, err = service.Get(context.Background(), bob, created.ID)
	assert.ErrorIs(t, err, errors.ErrTaskNotFound)
	_, err = service.Get(context.Background(), bob, uuid.New())
	assert.ErrorIs(t, err, errors.ErrTaskNotFound)

	// Bob cannot update or delete it either.
	_, err = service.Update(context.Background(), bob, created.ID, UpdateTaskInput{Title: strPtr("stolen")})
	assert.ErrorIs(t, err, errors.ErrTaskNotFound)
	err = service.Delete(context.Background(), bob, created.ID)
	assert.ErrorIs(t, err, errors.ErrTaskNotFound)

	// Bob's list never includes Alice's tasks.
	bobTasks, err := service.List(context.Background(), bob)
	assert.NoError(t, err)
	assert.Empty(t, bobTasks)

	// The task is untouched for Alice.
	got, err = service.Get(context.Background(), alice, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice's task", got.Title)
}

func TestTaskService_ListFiltersByOwner(t *testing.T) {
	service := newTaskServiceForTest()
	alice := testPrincipal("alice")
	bob := testPrincipal("bob")

	_, err := service.Create(context.Background(), alice, CreateTaskInput{Title: "one"})
	assert.NoError(t, err)
	_, err = service.Create(context.Background(), alice, CreateTaskInput{Title: "two"})
	assert.NoError(t, err)
	_, err = service.Create(context.Background(), bob, CreateTaskInput{Title: "three"})
	assert.NoError(t, err)

	aliceTasks, err := service.List(context.Background(), alice)
	assert.NoError(t, err)
	assert.Len(t, aliceTasks, 2)
	for _, task := range aliceTasks {
		assert.Equal(t, alice.UserID, task.OwnerID)
	}

	bobTasks, err := service.List(context.Background(), bob)
	assert.NoError(t, err)
	assert.Len(t, bobTasks, 1)
	assert.Equal(t, "three", bobTasks[0].Title)
}

func TestTaskService_UpdatePatchSemantics(t *testing.T) {
	service := newTaskServiceForTest()
	alice := testPrincipal("alice")

	created, err := service.Create(context.Background(), alice, CreateTaskInput{
		Title:       "buy milk",
		Description: strPtr("two liters"),
	})
	assert.NoError(t, err)

	// Omitted description stays untouched.
	updated, err := service.Update(context.Background(), alice, created.ID, UpdateTaskInput{
		Title: strPtr("buy oat milk"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "buy oat milk", updated.Title)
	assert.NotNil(t, updated.Description)
	assert.Equal(t, "two liters", *updated.Description)

	// Explicit null clears it.
	updated, err = service.Update(context.Background(), alice, created.ID, UpdateTaskInput{
		Description: model.NewOptionalNull(),
	})
	assert.NoError(t, err)
	assert.Nil(t, updated.Description)
	assert.Equal(t, "buy oat milk", updated.Title)

	// A value sets it again, and completed toggles independently.
	updated, err = service.Update(context.Background(), alice, created.ID, UpdateTaskInput{
		Description: model.NewOptionalString("lactose free"),
		Completed:   boolPtr(true),
	})
	assert.NoError(t, err)
	assert.NotNil(t, updated.Description)
	assert.Equal(t, "lactose free", *updated.Description)
	assert.True(t, updated.Completed)
}

func TestTaskService_Delete(t *testing.T) {
	service := newTaskServiceForTest()
	alice := testPrincipal("alice")

	created, err := service.Create(context.Background(), alice, CreateTaskInput{Title: "buy milk"})
	assert.NoError(t, err)

	assert.NoError(t, service.Delete(context.Background(), alice, created.ID))

	_, err = service.Get(context.Background(), alice, created.ID)
	assert.ErrorIs(t, err, errors.ErrTaskNotFound)

	// Deleting again reports not found, same as a task that never existed.
	err = service.Delete(context.Background(), alice, created.ID)
	assert.ErrorIs(t, err, errors.ErrTaskNotFound)
}

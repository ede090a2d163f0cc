package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/apardew63/crm-server/internal/domain/auth"
)

type fakeStore struct {
	tasks    map[string]*Task
	replaces int
	deletes  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{tasks: map[string]*Task{}}
}

func (f *fakeStore) Get(ctx context.Context, taskID string) (*Task, error) {
	task, ok := f.tasks[taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeStore) Insert(ctx context.Context, task *Task) error {
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeStore) Replace(ctx context.Context, task *Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return ErrTaskNotFound
	}
	copied := *task
	f.tasks[task.ID] = &copied
	f.replaces++
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, taskID string) error {
	if _, ok := f.tasks[taskID]; !ok {
		return ErrTaskNotFound
	}
	delete(f.tasks, taskID)
	f.deletes++
	return nil
}

func (f *fakeStore) List(ctx context.Context, filter Filter) ([]*Task, error) {
	var out []*Task
	for _, task := range f.tasks {
		copied := *task
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeStore) FindCreatedBetween(ctx context.Context, start, end time.Time, statuses []string) ([]*Task, error) {
	return f.List(ctx, Filter{})
}

func (f *fakeStore) FindByAssignee(ctx context.Context, userID string, start, end time.Time) ([]*Task, error) {
	var out []*Task
	for _, task := range f.tasks {
		if task.Assigned(userID) {
			copied := *task
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Create(ctx context.Context, userID, ntype, title, body string) error {
	f.sent = append(f.sent, ntype+":"+userID)
	return nil
}

type fakeDirectory struct {
	known map[string]bool
}

func (f *fakeDirectory) UserExists(ctx context.Context, userID string) (bool, error) {
	return f.known[userID], nil
}

func newTestService() (*Service, *fakeStore, *fakeNotifier) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	directory := &fakeDirectory{known: map[string]bool{"emp-1": true, "emp-2": true, "manager-1": true}}
	return NewService(store, notifier, directory), store, notifier
}

func TestServiceCreateSeedsTaskAndNotifies(t *testing.T) {
	service, store, notifier := newTestService()
	actor := auth.Actor{UserID: "manager-1", Role: auth.RoleProjectManager}

	task, err := service.Create(context.Background(), actor, CreateInput{
		Title:     "Ship onboarding flow",
		Assignees: []AssigneeInput{{UserID: "emp-1"}, {UserID: "emp-2"}},
		DueDate:   time.Now().UTC().Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if task.Status != StatusPending {
		t.Fatalf("expected pending, got %q", task.Status)
	}
	if task.Assignees[0].Role != AssigneeRolePrimary {
		t.Fatalf("expected first assignee primary, got %q", task.Assignees[0].Role)
	}
	if len(task.TimeTracking) != 2 {
		t.Fatalf("expected seeded ledger entries, got %d", len(task.TimeTracking))
	}
	if _, ok := store.tasks[task.ID]; !ok {
		t.Fatal("task not persisted")
	}
	if len(notifier.sent) != 2 {
		t.Fatalf("expected 2 assignment notifications, got %v", notifier.sent)
	}
}

func TestServiceCreateRejectsUnknownAssignee(t *testing.T) {
	service, store, _ := newTestService()
	actor := auth.Actor{UserID: "manager-1", Role: auth.RoleProjectManager}

	_, err := service.Create(context.Background(), actor, CreateInput{
		Title:     "Ship onboarding flow",
		Assignees: []AssigneeInput{{UserID: "ghost"}},
		DueDate:   time.Now().UTC().Add(72 * time.Hour),
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(store.tasks) != 0 {
		t.Fatal("task persisted despite rejected assignee")
	}
}

func TestServiceGetPersistsOverdueExactlyOnce(t *testing.T) {
	service, store, _ := newTestService()

	task := newTrackedTask(t)
	task.DueDate = time.Now().UTC().Add(-time.Hour)
	if err := store.Insert(context.Background(), task); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := service.Get(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusOverdue {
		t.Fatalf("expected overdue, got %q", got.Status)
	}
	if store.replaces != 1 {
		t.Fatalf("expected one write-back, got %d", store.replaces)
	}

	if _, err := service.Get(context.Background(), task.ID); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if store.replaces != 1 {
		t.Fatalf("overdue transition persisted again: %d writes", store.replaces)
	}
}

func TestServiceDeleteEnforcesPolicy(t *testing.T) {
	service, store, _ := newTestService()

	task := newTrackedTask(t)
	if err := store.Insert(context.Background(), task); err != nil {
		t.Fatalf("insert: %v", err)
	}

	employee := auth.Actor{UserID: "emp-1", Role: auth.RoleEmployee}
	if err := service.Delete(context.Background(), employee, task.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if store.deletes != 0 {
		t.Fatal("task deleted despite denial")
	}

	admin := auth.Actor{UserID: "admin-1", Role: auth.RoleAdmin}
	if err := service.Delete(context.Background(), admin, task.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if store.deletes != 1 {
		t.Fatalf("expected one delete, got %d", store.deletes)
	}
}

func TestServiceCompleteNotifiesCreator(t *testing.T) {
	service, store, notifier := newTestService()

	task := newTrackedTask(t)
	task.DueDate = time.Now().UTC().Add(72 * time.Hour)
	if err := store.Insert(context.Background(), task); err != nil {
		t.Fatalf("insert: %v", err)
	}

	actor := auth.Actor{UserID: "emp-1", Role: auth.RoleEmployee}
	done, err := service.Complete(context.Background(), actor, task.ID, "")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q", done.Status)
	}

	found := false
	for _, sent := range notifier.sent {
		if sent == "task_completed:manager-1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected completion notification to creator, got %v", notifier.sent)
	}
}

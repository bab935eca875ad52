package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/orgadmin/backend/internal/domain/identity"
	"github.com/orgadmin/backend/internal/domain/shared"
	"github.com/orgadmin/backend/internal/domain/tracker"
)

// MockProjectRepository is a mock implementation of tracker.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracker.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracker.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracker.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tracker.Project), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *tracker.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*tracker.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracker.Project), args.Error(1)
}

func (m *MockProjectRepository) AddMember(ctx context.Context, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

func (m *MockProjectRepository) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

func (m *MockProjectRepository) ReplaceMembers(ctx context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error {
	args := m.Called(ctx, projectID, userIDs)
	return args.Error(0)
}

// MockTaskRepository is a mock implementation of tracker.TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracker.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracker.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracker.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tracker.Task), args.Error(1)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *tracker.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) FindByProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]tracker.Task, error) {
	args := m.Called(ctx, projectID, filter)
	return args.Get(0).([]tracker.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByAssignee(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]tracker.Task, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]tracker.Task), args.Error(1)
}

// MockUserRefRepository is a mock implementation of identity.UserRefRepository
type MockUserRefRepository struct {
	mock.Mock
}

func (m *MockUserRefRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.UserRef, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserRef), args.Error(1)
}

func (m *MockUserRefRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockCommentRepository is a mock implementation of tracker.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracker.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracker.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracker.Comment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tracker.Comment), args.Error(1)
}

func (m *MockCommentRepository) Save(ctx context.Context, comment *tracker.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) FindByTask(ctx context.Context, taskID uuid.UUID, filter shared.Filter) ([]tracker.Comment, error) {
	args := m.Called(ctx, taskID, filter)
	return args.Get(0).([]tracker.Comment), args.Error(1)
}

// MockActivityLogRepository is a mock implementation of tracker.ActivityLogRepository
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracker.ActivityLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracker.ActivityLog), args.Error(1)
}

func (m *MockActivityLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracker.ActivityLog, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tracker.ActivityLog), args.Error(1)
}

func (m *MockActivityLogRepository) Save(ctx context.Context, entry *tracker.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockActivityLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityLogRepository) FindByActor(ctx context.Context, actorID uuid.UUID, filter shared.Filter) ([]tracker.ActivityLog, error) {
	args := m.Called(ctx, actorID, filter)
	return args.Get(0).([]tracker.ActivityLog), args.Error(1)
}

func mustProject(t *testing.T, name string) *tracker.Project {
	t.Helper()
	project, err := tracker.NewProject(name, nil)
	assert.NoError(t, err)
	return project
}

func mustTask(t *testing.T, projectID uuid.UUID, title string) *tracker.Task {
	t.Helper()
	task, err := tracker.NewTask(projectID, title)
	assert.NoError(t, err)
	return task
}

func TestTaskService_Create_Success(t *testing.T) {
	mockTaskRepo := new(MockTaskRepository)
	mockProjectRepo := new(MockProjectRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewTaskService(mockTaskRepo, mockProjectRepo, mockUserRepo, nil)

	ctx := context.Background()
	project := mustProject(t, "Office Move")

	mockProjectRepo.On("FindByID", ctx, project.ID).Return(project, nil)
	mockTaskRepo.On("Save", ctx, mock.AnythingOfType("*tracker.Task")).Return(nil)

	result, err := service.Create(ctx, CreateTaskRequest{
		ProjectID: project.ID,
		Title:     "Pack the server room",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Pack the server room", result.Title)
	assert.Equal(t, "todo", result.Status)
	assert.Equal(t, 2, result.Priority)
	assert.Equal(t, 0, result.Progress)
	mockTaskRepo.AssertExpectations(t)
}

func TestTaskService_Create_UnknownProject(t *testing.T) {
	mockTaskRepo := new(MockTaskRepository)
	mockProjectRepo := new(MockProjectRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewTaskService(mockTaskRepo, mockProjectRepo, mockUserRepo, nil)

	ctx := context.Background()
	projectID := uuid.New()

	mockProjectRepo.On("FindByID", ctx, projectID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, CreateTaskRequest{
		ProjectID: projectID,
		Title:     "Orphan task",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PROJECT", domainErr.Code)
	mockTaskRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTaskService_Create_UnknownAssignee(t *testing.T) {
	mockTaskRepo := new(MockTaskRepository)
	mockProjectRepo := new(MockProjectRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewTaskService(mockTaskRepo, mockProjectRepo, mockUserRepo, nil)

	ctx := context.Background()
	project := mustProject(t, "Office Move")
	assignee := uuid.New()

	mockProjectRepo.On("FindByID", ctx, project.ID).Return(project, nil)
	mockUserRepo.On("Exists", ctx, assignee).Return(false, nil)

	result, err := service.Create(ctx, CreateTaskRequest{
		ProjectID:    project.ID,
		Title:        "Unassignable",
		AssignedToID: &assignee,
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_USER", domainErr.Code)
}

// Any status may follow any other; done back to todo is legal.
func TestTaskService_Update_StatusMovesFreely(t *testing.T) {
	mockTaskRepo := new(MockTaskRepository)
	mockProjectRepo := new(MockProjectRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewTaskService(mockTaskRepo, mockProjectRepo, mockUserRepo, nil)

	ctx := context.Background()
	task := mustTask(t, uuid.New(), "Pack the server room")
	assert.NoError(t, task.SetStatus(tracker.StatusDone))

	back := "todo"
	mockTaskRepo.On("FindByID", ctx, task.ID).Return(task, nil)
	mockTaskRepo.On("Save", ctx, task).Return(nil)

	result, err := service.Update(ctx, task.ID, UpdateTaskRequest{Status: &back})

	assert.NoError(t, err)
	assert.Equal(t, "todo", result.Status)
	mockTaskRepo.AssertExpectations(t)
}

func TestTaskService_Update_ProgressOutOfRange(t *testing.T) {
	mockTaskRepo := new(MockTaskRepository)
	mockProjectRepo := new(MockProjectRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewTaskService(mockTaskRepo, mockProjectRepo, mockUserRepo, nil)

	ctx := context.Background()
	task := mustTask(t, uuid.New(), "Pack the server room")
	progress := 150

	mockTaskRepo.On("FindByID", ctx, task.ID).Return(task, nil)

	result, err := service.Update(ctx, task.ID, UpdateTaskRequest{Progress: &progress})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION", domainErr.Code)
	assert.Equal(t, "progress", domainErr.Field)
	mockTaskRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTaskService_Update_ClearAssignee(t *testing.T) {
	mockTaskRepo := new(MockTaskRepository)
	mockProjectRepo := new(MockProjectRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewTaskService(mockTaskRepo, mockProjectRepo, mockUserRepo, nil)

	ctx := context.Background()
	task := mustTask(t, uuid.New(), "Pack the server room")
	assignee := uuid.New()
	task.Assign(&assignee)

	mockTaskRepo.On("FindByID", ctx, task.ID).Return(task, nil)
	mockTaskRepo.On("Save", ctx, task).Return(nil)

	result, err := service.Update(ctx, task.ID, UpdateTaskRequest{ClearAssignee: true})

	assert.NoError(t, err)
	assert.Nil(t, result.AssignedToID)
	mockUserRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestProjectService_ReplaceMembers_ValidatesUsers(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewProjectService(mockProjectRepo, mockUserRepo, nil)

	ctx := context.Background()
	project := mustProject(t, "Office Move")
	ghost := uuid.New()

	mockProjectRepo.On("FindByID", ctx, project.ID).Return(project, nil)
	mockUserRepo.On("Exists", ctx, ghost).Return(false, nil)

	result, err := service.ReplaceMembers(ctx, project.ID, ReplaceMembersRequest{
		MemberIDs: []uuid.UUID{ghost},
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_USER", domainErr.Code)
	mockProjectRepo.AssertNotCalled(t, "ReplaceMembers", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_ReplaceMembers_EmptyClearsRoster(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewProjectService(mockProjectRepo, mockUserRepo, nil)

	ctx := context.Background()
	project := mustProject(t, "Office Move")

	mockProjectRepo.On("FindByID", ctx, project.ID).Return(project, nil)
	mockProjectRepo.On("ReplaceMembers", ctx, project.ID, []uuid.UUID(nil)).Return(nil)
	mockProjectRepo.On("FindByIDWithMembers", ctx, project.ID).Return(project, nil)

	result, err := service.ReplaceMembers(ctx, project.ID, ReplaceMembersRequest{})

	assert.NoError(t, err)
	assert.Empty(t, result.Members)
	mockProjectRepo.AssertExpectations(t)
}

func TestCommentService_Create_UnknownTask(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockTaskRepo := new(MockTaskRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewCommentService(mockCommentRepo, mockTaskRepo, mockUserRepo, nil)

	ctx := context.Background()
	taskID := uuid.New()

	mockTaskRepo.On("FindByID", ctx, taskID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, CreateCommentRequest{TaskID: taskID, Body: "ping"})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TASK", domainErr.Code)
}

func TestCommentService_Create_Success(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockTaskRepo := new(MockTaskRepository)
	mockUserRepo := new(MockUserRefRepository)
	service := NewCommentService(mockCommentRepo, mockTaskRepo, mockUserRepo, nil)

	ctx := context.Background()
	task := mustTask(t, uuid.New(), "Pack the server room")

	mockTaskRepo.On("FindByID", ctx, task.ID).Return(task, nil)
	mockCommentRepo.On("Save", ctx, mock.AnythingOfType("*tracker.Comment")).Return(nil)

	result, err := service.Create(ctx, CreateCommentRequest{TaskID: task.ID, Body: "Done by Friday"})

	assert.NoError(t, err)
	assert.Equal(t, "Done by Friday", result.Body)
	assert.Nil(t, result.AuthorID)
	mockCommentRepo.AssertExpectations(t)
}

// Audit failures never propagate to the caller.
func TestActivityLogService_Record_SwallowsErrors(t *testing.T) {
	mockLogRepo := new(MockActivityLogRepository)
	service := NewActivityLogService(mockLogRepo)

	ctx := context.Background()
	mockLogRepo.On("Save", ctx, mock.AnythingOfType("*tracker.ActivityLog")).Return(errors.New("db down"))

	assert.NotPanics(t, func() {
		service.Record(ctx, tracker.ActionCreate, "Created something", nil)
	})
	mockLogRepo.AssertExpectations(t)
}

func TestActivityLogService_Append_InvalidAction(t *testing.T) {
	mockLogRepo := new(MockActivityLogRepository)
	service := NewActivityLogService(mockLogRepo)

	ctx := context.Background()

	result, err := service.Append(ctx, AppendActivityRequest{
		Action:  "explode",
		Message: "bad",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	mockLogRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestActivityLogService_Append_Success(t *testing.T) {
	mockLogRepo := new(MockActivityLogRepository)
	service := NewActivityLogService(mockLogRepo)

	ctx := context.Background()
	actor := uuid.New()

	mockLogRepo.On("Save", ctx, mock.AnythingOfType("*tracker.ActivityLog")).Return(nil)

	result, err := service.Append(ctx, AppendActivityRequest{
		ActorID: &actor,
		Action:  "login",
		Message: "Signed in",
	})

	assert.NoError(t, err)
	assert.Equal(t, "login", result.Action)
	assert.Equal(t, &actor, result.ActorID)
	assert.NotNil(t, result.Metadata)
	mockLogRepo.AssertExpectations(t)
}

package services

import (
	"sync"

	"kanban-project/board-service/models"
)

// BoardService is the single entry point the handler layer calls. It checks
// the caller's relationship to the project before delegating, and
// serializes every structural mutation per project so concurrent moves can
// never interleave their renumbering steps.
type BoardService struct {
	projects *ProjectService
	columns  *ColumnService
	tasks    *TaskService
	comments *CommentService
	users    *UserClient

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewBoardService wires the facade. users may be nil, in which case member
// ids are accepted without an existence check.
func NewBoardService(projects *ProjectService, columns *ColumnService, tasks *TaskService, comments *CommentService, users *UserClient) *BoardService {
	return &BoardService{
		projects: projects,
		columns:  columns,
		tasks:    tasks,
		comments: comments,
		users:    users,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lockProject takes the project's mutation lock and returns the unlock
// function. Locks are created lazily, one per project id, and are held for
// the scope of a single operation only.
func (s *BoardService) lockProject(projectID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[projectID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *BoardService) requireMember(projectID, userID string) error {
	if _, err := s.projects.GetProject(projectID); err != nil {
		return err
	}
	if !s.projects.IsMember(projectID, userID) {
		return models.NewAuthorizationError("user is not a member of this project")
	}
	return nil
}

func (s *BoardService) requireOwner(projectID, userID string) error {
	if _, err := s.projects.GetProject(projectID); err != nil {
		return err
	}
	if !s.projects.IsOwner(projectID, userID) {
		return models.NewAuthorizationError("only the project owner can perform this action")
	}
	return nil
}

func (s *BoardService) CreateProject(callerID, name, description string) (*models.Project, error) {
	return s.projects.CreateProject(name, description, callerID)
}

func (s *BoardService) GetProject(callerID, projectID string) (*models.Project, error) {
	if err := s.requireMember(projectID, callerID); err != nil {
		return nil, err
	}
	return s.projects.GetProject(projectID)
}

func (s *BoardService) GetProjectsForUser(callerID string) ([]*models.Project, error) {
	return s.projects.GetProjectsForUser(callerID)
}

func (s *BoardService) UpdateProject(callerID, projectID string, input UpdateProjectInput) (*models.Project, error) {
	if err := s.requireOwner(projectID, callerID); err != nil {
		return nil, err
	}
	defer s.lockProject(projectID)()
	return s.projects.UpdateProject(projectID, input)
}

// DeleteProject removes the project and cascades through its columns,
// tasks and comments.
func (s *BoardService) DeleteProject(callerID, projectID string) error {
	if err := s.requireOwner(projectID, callerID); err != nil {
		return err
	}
	defer s.lockProject(projectID)()

	if err := s.columns.DeleteColumnsForProject(projectID); err != nil {
		return err
	}
	return s.projects.DeleteProject(projectID)
}

func (s *BoardService) AddMember(callerID, projectID, userID string) (*models.Project, error) {
	if err := s.requireOwner(projectID, callerID); err != nil {
		return nil, err
	}
	if s.users != nil {
		exists, err := s.users.UserExists(userID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, models.NewValidationError("user %s does not exist", userID)
		}
	}
	defer s.lockProject(projectID)()
	return s.projects.AddMember(projectID, userID)
}

func (s *BoardService) RemoveMember(callerID, projectID, userID string) (*models.Project, error) {
	if err := s.requireOwner(projectID, callerID); err != nil {
		return nil, err
	}
	defer s.lockProject(projectID)()
	return s.projects.RemoveMember(projectID, userID)
}

func (s *BoardService) CreateColumn(callerID, projectID string, input CreateColumnInput) (*models.Column, error) {
	if err := s.requireMember(projectID, callerID); err != nil {
		return nil, err
	}
	defer s.lockProject(projectID)()
	return s.columns.CreateColumn(projectID, input)
}

func (s *BoardService) GetColumnsForProject(callerID, projectID string) ([]*models.Column, error) {
	if err := s.requireMember(projectID, callerID); err != nil {
		return nil, err
	}
	return s.columns.GetColumnsForProject(projectID)
}

func (s *BoardService) DeleteColumn(callerID, columnID string) error {
	column, err := s.columns.GetColumn(columnID)
	if err != nil {
		return err
	}
	if err := s.requireMember(column.ProjectID, callerID); err != nil {
		return err
	}
	defer s.lockProject(column.ProjectID)()
	return s.columns.DeleteColumn(columnID)
}

func (s *BoardService) CreateTask(callerID, projectID string, input CreateTaskInput) (*models.Task, error) {
	if err := s.requireMember(projectID, callerID); err != nil {
		return nil, err
	}
	defer s.lockProject(projectID)()
	return s.tasks.CreateTask(projectID, input)
}

func (s *BoardService) GetTask(callerID, taskID string) (*models.Task, error) {
	task, err := s.tasks.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(task.ProjectID, callerID); err != nil {
		return nil, err
	}
	return task, nil
}

// Task listings take the project lock so a reader can never observe a
// column in the middle of a renumbering pass.
func (s *BoardService) GetTasksForColumn(callerID, columnID string) ([]*models.Task, error) {
	column, err := s.columns.GetColumn(columnID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(column.ProjectID, callerID); err != nil {
		return nil, err
	}
	defer s.lockProject(column.ProjectID)()
	return s.tasks.GetTasksForColumn(columnID)
}

func (s *BoardService) GetTasksForProject(callerID, projectID string) ([]*models.Task, error) {
	if err := s.requireMember(projectID, callerID); err != nil {
		return nil, err
	}
	defer s.lockProject(projectID)()
	return s.tasks.GetTasksForProject(projectID)
}

func (s *BoardService) UpdateTask(callerID, taskID string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.tasks.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(task.ProjectID, callerID); err != nil {
		return nil, err
	}
	defer s.lockProject(task.ProjectID)()
	return s.tasks.UpdateTask(taskID, input)
}

func (s *BoardService) MoveTask(callerID, taskID, targetColumnID string, targetOrder int) (*models.Task, error) {
	task, err := s.tasks.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(task.ProjectID, callerID); err != nil {
		return nil, err
	}
	defer s.lockProject(task.ProjectID)()
	return s.tasks.MoveTask(taskID, targetColumnID, targetOrder)
}

func (s *BoardService) DeleteTask(callerID, taskID string) error {
	task, err := s.tasks.GetTask(taskID)
	if err != nil {
		return err
	}
	if err := s.requireMember(task.ProjectID, callerID); err != nil {
		return err
	}
	defer s.lockProject(task.ProjectID)()
	return s.tasks.DeleteTask(taskID)
}

func (s *BoardService) AssignTask(callerID, taskID, assigneeID string) (*models.Task, error) {
	task, err := s.tasks.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(task.ProjectID, callerID); err != nil {
		return nil, err
	}
	defer s.lockProject(task.ProjectID)()
	return s.tasks.AssignTask(taskID, assigneeID)
}

func (s *BoardService) AddComment(callerID, taskID, content string) (*models.Comment, error) {
	task, err := s.tasks.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(task.ProjectID, callerID); err != nil {
		return nil, err
	}
	return s.comments.AddComment(taskID, callerID, content)
}

func (s *BoardService) GetCommentsForTask(callerID, taskID string) ([]*models.Comment, error) {
	task, err := s.tasks.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(task.ProjectID, callerID); err != nil {
		return nil, err
	}
	return s.comments.GetCommentsForTask(taskID)
}

func (s *BoardService) DeleteComment(callerID, commentID string) error {
	return s.comments.DeleteComment(commentID, callerID)
}

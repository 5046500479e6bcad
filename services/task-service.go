package services

import (
	"sort"
	"strings"
	"time"

	"kanban-project/board-service/logging"
	"kanban-project/board-service/models"
	"kanban-project/board-service/repositories"

	"github.com/google/uuid"
)

const (
	maxTaskTitleLength       = 200
	maxTaskDescriptionLength = 1000
)

// TaskService owns task records and keeps the per-column ordering dense:
// after every mutation the order values inside a column are exactly
// 0..n-1, without gaps or duplicates.
type TaskService struct {
	tasks    repositories.TaskStore
	columns  repositories.ColumnStore
	comments repositories.CommentStore
}

func NewTaskService(tasks repositories.TaskStore, columns repositories.ColumnStore, comments repositories.CommentStore) *TaskService {
	return &TaskService{tasks: tasks, columns: columns, comments: comments}
}

type CreateTaskInput struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	ColumnID    string              `json:"columnId"`
	Priority    models.TaskPriority `json:"priority,omitempty"`
	AssigneeID  string              `json:"assigneeId,omitempty"`
}

type UpdateTaskInput struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	ColumnID    *string              `json:"columnId,omitempty"`
	Priority    *models.TaskPriority `json:"priority,omitempty"`
	AssigneeID  *string              `json:"assigneeId,omitempty"`
	Status      *models.Status       `json:"status,omitempty"`
}

func validateTaskTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", models.NewValidationError("task title cannot be empty")
	}
	if len(title) > maxTaskTitleLength {
		return "", models.NewValidationError("task title cannot exceed %d characters", maxTaskTitleLength)
	}
	return title, nil
}

// CreateTask creates a task at the end of the column: its order is one past
// the highest existing order, or 0 for an empty column. The task status is
// copied from the column.
func (s *TaskService) CreateTask(projectID string, input CreateTaskInput) (*models.Task, error) {
	title, err := validateTaskTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if len(input.Description) > maxTaskDescriptionLength {
		return nil, models.NewValidationError("task description cannot exceed %d characters", maxTaskDescriptionLength)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, models.NewValidationError("invalid task priority: %s", priority)
	}

	column, err := s.columns.Get(input.ColumnID)
	if err != nil {
		return nil, err
	}
	if column == nil || column.ProjectID != projectID {
		return nil, models.NewValidationError("invalid column")
	}

	existing, err := s.tasks.ByColumn(input.ColumnID)
	if err != nil {
		return nil, err
	}
	nextOrder := 0
	for _, t := range existing {
		if t.Order >= nextOrder {
			nextOrder = t.Order + 1
		}
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: input.Description,
		ColumnID:    input.ColumnID,
		ProjectID:   projectID,
		AssigneeID:  input.AssigneeID,
		Priority:    priority,
		Status:      column.Status,
		Order:       nextOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Insert(task); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created in column %s at order %d", task.ID, task.ColumnID, task.Order)
	return task, nil
}

func (s *TaskService) GetTask(id string) (*models.Task, error) {
	task, err := s.tasks.Get(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, models.NewNotFoundError("task", id)
	}
	return task, nil
}

// UpdateTask changes scalar task fields. Changing the column through this
// path would leave stale order values in both columns, so it is rejected;
// column changes go through MoveTask.
func (s *TaskService) UpdateTask(id string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	if input.ColumnID != nil && *input.ColumnID != task.ColumnID {
		return nil, models.NewValidationError("task column cannot be changed by update, use move")
	}
	if input.Title != nil {
		title, err := validateTaskTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	if input.Description != nil {
		if len(*input.Description) > maxTaskDescriptionLength {
			return nil, models.NewValidationError("task description cannot exceed %d characters", maxTaskDescriptionLength)
		}
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, models.NewValidationError("invalid task priority: %s", *input.Priority)
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, models.NewValidationError("invalid task status: %s", *input.Status)
		}
		task.Status = *input.Status
	}
	if input.AssigneeID != nil {
		task.AssigneeID = *input.AssigneeID
	}

	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

// MoveTask relocates a task to targetOrder in targetColumnID, renumbering
// both affected columns so their orders stay dense. Moving a task onto its
// current position is a no-op.
func (s *TaskService) MoveTask(id, targetColumnID string, targetOrder int) (*models.Task, error) {
	if targetOrder < 0 {
		return nil, models.NewValidationError("task order cannot be negative")
	}

	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}
	target, err := s.columns.Get(targetColumnID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, models.NewNotFoundError("column", targetColumnID)
	}
	if target.ProjectID != task.ProjectID {
		return nil, models.NewValidationError("cannot move a task to a column in a different project")
	}

	if task.ColumnID == targetColumnID {
		return s.moveWithinColumn(task, targetOrder)
	}
	return s.moveAcrossColumns(task, target, targetOrder)
}

func (s *TaskService) moveWithinColumn(task *models.Task, targetOrder int) (*models.Task, error) {
	colTasks, err := s.tasks.ByColumn(task.ColumnID)
	if err != nil {
		return nil, err
	}
	if max := len(colTasks) - 1; targetOrder > max {
		targetOrder = max
	}

	oldOrder := task.Order
	if targetOrder == oldOrder {
		return task, nil
	}

	for _, other := range colTasks {
		if other.ID == task.ID {
			continue
		}
		switch {
		case targetOrder > oldOrder && other.Order > oldOrder && other.Order <= targetOrder:
			other.Order--
		case targetOrder < oldOrder && other.Order >= targetOrder && other.Order < oldOrder:
			other.Order++
		default:
			continue
		}
		if err := s.tasks.Update(other); err != nil {
			return nil, s.reindexFailure(task.ColumnID, err)
		}
	}

	task.Order = targetOrder
	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(task); err != nil {
		return nil, s.reindexFailure(task.ColumnID, err)
	}

	logging.Logger.Infof("Event ID: TASK_MOVED, Description: Task %s moved to order %d within column %s", task.ID, targetOrder, task.ColumnID)
	return task, nil
}

func (s *TaskService) moveAcrossColumns(task *models.Task, target *models.Column, targetOrder int) (*models.Task, error) {
	sourceTasks, err := s.tasks.ByColumn(task.ColumnID)
	if err != nil {
		return nil, err
	}
	targetTasks, err := s.tasks.ByColumn(target.ID)
	if err != nil {
		return nil, err
	}
	if max := len(targetTasks); targetOrder > max {
		targetOrder = max
	}

	// Close the gap the task leaves behind in its source column.
	for _, other := range sourceTasks {
		if other.ID == task.ID || other.Order <= task.Order {
			continue
		}
		other.Order--
		if err := s.tasks.Update(other); err != nil {
			return nil, s.reindexFailure(task.ColumnID, err)
		}
	}

	// Open a slot at the insertion point in the target column.
	for _, other := range targetTasks {
		if other.Order < targetOrder {
			continue
		}
		other.Order++
		if err := s.tasks.Update(other); err != nil {
			return nil, s.reindexFailure(target.ID, err)
		}
	}

	sourceColumnID := task.ColumnID
	task.ColumnID = target.ID
	task.Order = targetOrder
	task.Status = target.Status
	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(task); err != nil {
		return nil, s.reindexFailure(target.ID, err)
	}

	logging.Logger.Infof("Event ID: TASK_MOVED, Description: Task %s moved from column %s to column %s at order %d", task.ID, sourceColumnID, target.ID, targetOrder)
	return task, nil
}

// DeleteTask removes the task and its comments, then closes the order gap
// it leaves in its column.
func (s *TaskService) DeleteTask(id string) error {
	task, err := s.GetTask(id)
	if err != nil {
		return err
	}

	if err := s.deleteCommentsForTask(id); err != nil {
		return err
	}
	if err := s.tasks.Delete(id); err != nil {
		return err
	}

	remaining, err := s.tasks.ByColumn(task.ColumnID)
	if err != nil {
		return s.reindexFailure(task.ColumnID, err)
	}
	for _, other := range remaining {
		if other.Order <= task.Order {
			continue
		}
		other.Order--
		if err := s.tasks.Update(other); err != nil {
			return s.reindexFailure(task.ColumnID, err)
		}
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s deleted from column %s", id, task.ColumnID)
	return nil
}

// DeleteTasksForColumn removes every task in the column together with its
// comments. Used by the column cascade, so no renumbering is needed.
func (s *TaskService) DeleteTasksForColumn(columnID string) error {
	colTasks, err := s.tasks.ByColumn(columnID)
	if err != nil {
		return err
	}
	for _, task := range colTasks {
		if err := s.deleteCommentsForTask(task.ID); err != nil {
			return err
		}
		if err := s.tasks.Delete(task.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *TaskService) GetTasksForColumn(columnID string) ([]*models.Task, error) {
	colTasks, err := s.tasks.ByColumn(columnID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(colTasks, func(i, j int) bool {
		return colTasks[i].Order < colTasks[j].Order
	})
	return colTasks, nil
}

func (s *TaskService) GetTasksForProject(projectID string) ([]*models.Task, error) {
	projectTasks, err := s.tasks.ByProject(projectID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(projectTasks, func(i, j int) bool {
		if projectTasks[i].Order != projectTasks[j].Order {
			return projectTasks[i].Order < projectTasks[j].Order
		}
		return projectTasks[i].ColumnID < projectTasks[j].ColumnID
	})
	return projectTasks, nil
}

// AssignTask sets the assignee, or clears it when assigneeID is empty. It
// has no effect on ordering.
func (s *TaskService) AssignTask(id, assigneeID string) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}
	task.AssigneeID = assigneeID
	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) deleteCommentsForTask(taskID string) error {
	comments, err := s.comments.ByTask(taskID)
	if err != nil {
		return err
	}
	for _, comment := range comments {
		if err := s.comments.Delete(comment.ID); err != nil {
			return err
		}
	}
	return nil
}

// reindexFailure is hit when a store write fails after validation passed
// and renumbering already started. The column may be left with a gap or a
// duplicate order, which nothing downstream repairs.
func (s *TaskService) reindexFailure(columnID string, err error) error {
	logging.Logger.Errorf("Event ID: ORDER_REINDEX_FAILED, Description: Reindexing column %s failed mid-operation, order density may be violated: %v", columnID, err)
	return err
}

package repositories

import "kanban-project/board-service/models"

// The stores hold entity records and nothing else: no validation, no
// ordering rules. Get returns (nil, nil) when the id is unknown so the
// service layer decides what "missing" means for each operation.

type ProjectStore interface {
	Insert(project *models.Project) error
	Get(id string) (*models.Project, error)
	Update(project *models.Project) error
	Delete(id string) error
	All() ([]*models.Project, error)
}

type ColumnStore interface {
	Insert(column *models.Column) error
	Get(id string) (*models.Column, error)
	Delete(id string) error
	ByProject(projectID string) ([]*models.Column, error)
}

type TaskStore interface {
	Insert(task *models.Task) error
	Get(id string) (*models.Task, error)
	Update(task *models.Task) error
	Delete(id string) error
	ByColumn(columnID string) ([]*models.Task, error)
	ByProject(projectID string) ([]*models.Task, error)
}

type CommentStore interface {
	Insert(comment *models.Comment) error
	Get(id string) (*models.Comment, error)
	Delete(id string) error
	ByTask(taskID string) ([]*models.Comment, error)
}

package services

import (
	"sort"
	"strings"

	"kanban-project/board-service/logging"
	"kanban-project/board-service/models"
	"kanban-project/board-service/repositories"

	"github.com/google/uuid"
)

const maxColumnNameLength = 50

type ColumnService struct {
	columns repositories.ColumnStore
	tasks   *TaskService
}

func NewColumnService(columns repositories.ColumnStore, tasks *TaskService) *ColumnService {
	return &ColumnService{columns: columns, tasks: tasks}
}

type CreateColumnInput struct {
	Name   string        `json:"name"`
	Status models.Status `json:"status"`
	Order  int           `json:"order"`
}

func (s *ColumnService) CreateColumn(projectID string, input CreateColumnInput) (*models.Column, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, models.NewValidationError("column name cannot be empty")
	}
	if len(name) > maxColumnNameLength {
		return nil, models.NewValidationError("column name cannot exceed %d characters", maxColumnNameLength)
	}
	if input.Order < 0 {
		return nil, models.NewValidationError("column order cannot be negative")
	}
	if !input.Status.Valid() {
		return nil, models.NewValidationError("invalid column status: %s", input.Status)
	}

	// Column orders are unique within a project, though not dense.
	existing, err := s.columns.ByProject(projectID)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if other.Order == input.Order {
			return nil, models.NewValidationError("column order %d is already in use", input.Order)
		}
	}

	column := &models.Column{
		ID:        uuid.New().String(),
		Name:      name,
		Order:     input.Order,
		ProjectID: projectID,
		Status:    input.Status,
	}

	if err := s.columns.Insert(column); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: COLUMN_CREATED, Description: Column %s created in project %s", column.ID, projectID)
	return column, nil
}

func (s *ColumnService) GetColumn(id string) (*models.Column, error) {
	column, err := s.columns.Get(id)
	if err != nil {
		return nil, err
	}
	if column == nil {
		return nil, models.NewNotFoundError("column", id)
	}
	return column, nil
}

func (s *ColumnService) GetColumnsForProject(projectID string) ([]*models.Column, error) {
	columns, err := s.columns.ByProject(projectID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].Order < columns[j].Order
	})
	return columns, nil
}

// DeleteColumn removes the column after cascading away its tasks and their
// comments.
func (s *ColumnService) DeleteColumn(id string) error {
	if _, err := s.GetColumn(id); err != nil {
		return err
	}
	if err := s.tasks.DeleteTasksForColumn(id); err != nil {
		return err
	}
	if err := s.columns.Delete(id); err != nil {
		return err
	}

	logging.Logger.Infof("Event ID: COLUMN_DELETED, Description: Column %s deleted with its tasks", id)
	return nil
}

// DeleteColumnsForProject cascades the project delete through every column.
func (s *ColumnService) DeleteColumnsForProject(projectID string) error {
	columns, err := s.columns.ByProject(projectID)
	if err != nil {
		return err
	}
	for _, column := range columns {
		if err := s.DeleteColumn(column.ID); err != nil {
			return err
		}
	}
	return nil
}

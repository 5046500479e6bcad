package repositories

import (
	"sync"

	"kanban-project/board-service/models"
)

// In-memory stores, the default backend. State lives in process-local maps
// and is lost on restart. Every read hands out a copy so callers never
// alias the stored record.

type MemoryProjectStore struct {
	mu       sync.RWMutex
	projects map[string]models.Project
}

func NewMemoryProjectStore() *MemoryProjectStore {
	return &MemoryProjectStore{projects: make(map[string]models.Project)}
}

func (s *MemoryProjectStore) Insert(project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *project
	stored.Members = append([]string(nil), project.Members...)
	s.projects[project.ID] = stored
	return nil
}

func (s *MemoryProjectStore) Get(id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	out := stored
	out.Members = append([]string(nil), stored.Members...)
	return &out, nil
}

func (s *MemoryProjectStore) Update(project *models.Project) error {
	return s.Insert(project)
}

func (s *MemoryProjectStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}

func (s *MemoryProjectStore) All() ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Project, 0, len(s.projects))
	for _, stored := range s.projects {
		p := stored
		p.Members = append([]string(nil), stored.Members...)
		out = append(out, &p)
	}
	return out, nil
}

type MemoryColumnStore struct {
	mu      sync.RWMutex
	columns map[string]models.Column
}

func NewMemoryColumnStore() *MemoryColumnStore {
	return &MemoryColumnStore{columns: make(map[string]models.Column)}
}

func (s *MemoryColumnStore) Insert(column *models.Column) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.columns[column.ID] = *column
	return nil
}

func (s *MemoryColumnStore) Get(id string) (*models.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.columns[id]
	if !ok {
		return nil, nil
	}
	out := stored
	return &out, nil
}

func (s *MemoryColumnStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.columns, id)
	return nil
}

func (s *MemoryColumnStore) ByProject(projectID string) ([]*models.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Column
	for _, stored := range s.columns {
		if stored.ProjectID == projectID {
			c := stored
			out = append(out, &c)
		}
	}
	return out, nil
}

type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[string]models.Task)}
}

func (s *MemoryTaskStore) Insert(task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = *task
	return nil
}

func (s *MemoryTaskStore) Get(id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	out := stored
	return &out, nil
}

func (s *MemoryTaskStore) Update(task *models.Task) error {
	return s.Insert(task)
}

func (s *MemoryTaskStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, id)
	return nil
}

func (s *MemoryTaskStore) ByColumn(columnID string) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Task
	for _, stored := range s.tasks {
		if stored.ColumnID == columnID {
			t := stored
			out = append(out, &t)
		}
	}
	return out, nil
}

func (s *MemoryTaskStore) ByProject(projectID string) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Task
	for _, stored := range s.tasks {
		if stored.ProjectID == projectID {
			t := stored
			out = append(out, &t)
		}
	}
	return out, nil
}

type MemoryCommentStore struct {
	mu       sync.RWMutex
	comments map[string]models.Comment
}

func NewMemoryCommentStore() *MemoryCommentStore {
	return &MemoryCommentStore{comments: make(map[string]models.Comment)}
}

func (s *MemoryCommentStore) Insert(comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.ID] = *comment
	return nil
}

func (s *MemoryCommentStore) Get(id string) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	out := stored
	return &out, nil
}

func (s *MemoryCommentStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.comments, id)
	return nil
}

func (s *MemoryCommentStore) ByTask(taskID string) ([]*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Comment
	for _, stored := range s.comments {
		if stored.TaskID == taskID {
			c := stored
			out = append(out, &c)
		}
	}
	return out, nil
}

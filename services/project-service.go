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
	maxProjectNameLength        = 100
	maxProjectDescriptionLength = 500
)

type ProjectService struct {
	projects repositories.ProjectStore
}

func NewProjectService(projects repositories.ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

type UpdateProjectInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func validateProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", models.NewValidationError("project name cannot be empty")
	}
	if len(name) > maxProjectNameLength {
		return "", models.NewValidationError("project name cannot exceed %d characters", maxProjectNameLength)
	}
	return name, nil
}

// CreateProject creates a new project owned by ownerID. The owner is always
// part of the member list.
func (s *ProjectService) CreateProject(name, description, ownerID string) (*models.Project, error) {
	name, err := validateProjectName(name)
	if err != nil {
		return nil, err
	}
	if len(description) > maxProjectDescriptionLength {
		return nil, models.NewValidationError("project description cannot exceed %d characters", maxProjectDescriptionLength)
	}

	now := time.Now().UTC()
	project := &models.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		Members:     []string{ownerID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.Insert(project); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %s created by user %s", project.ID, ownerID)
	return project, nil
}

func (s *ProjectService) GetProject(id string) (*models.Project, error) {
	project, err := s.projects.Get(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, models.NewNotFoundError("project", id)
	}
	return project, nil
}

// GetProjectsForUser returns every project the user owns or is a member of,
// most recently updated first.
func (s *ProjectService) GetProjectsForUser(userID string) ([]*models.Project, error) {
	all, err := s.projects.All()
	if err != nil {
		return nil, err
	}

	var projects []*models.Project
	for _, project := range all {
		if project.OwnerID == userID || project.HasMember(userID) {
			projects = append(projects, project)
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
	return projects, nil
}

func (s *ProjectService) UpdateProject(id string, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateProjectName(*input.Name)
		if err != nil {
			return nil, err
		}
		project.Name = name
	}
	if input.Description != nil {
		if len(*input.Description) > maxProjectDescriptionLength {
			return nil, models.NewValidationError("project description cannot exceed %d characters", maxProjectDescriptionLength)
		}
		project.Description = *input.Description
	}

	project.UpdatedAt = time.Now().UTC()
	if err := s.projects.Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(id string) error {
	if _, err := s.GetProject(id); err != nil {
		return err
	}
	if err := s.projects.Delete(id); err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s deleted", id)
	return nil
}

func (s *ProjectService) AddMember(id, userID string) (*models.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}
	if project.HasMember(userID) {
		return nil, models.NewValidationError("user is already a member of this project")
	}

	project.Members = append(project.Members, userID)
	project.UpdatedAt = time.Now().UTC()
	if err := s.projects.Update(project); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: MEMBER_ADDED, Description: User %s added to project %s", userID, id)
	return project, nil
}

func (s *ProjectService) RemoveMember(id, userID string) (*models.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}
	if userID == project.OwnerID {
		return nil, models.NewValidationError("cannot remove the project owner")
	}
	if !project.HasMember(userID) {
		return nil, models.NewValidationError("user is not a member of this project")
	}

	members := project.Members[:0]
	for _, m := range project.Members {
		if m != userID {
			members = append(members, m)
		}
	}
	project.Members = members
	project.UpdatedAt = time.Now().UTC()
	if err := s.projects.Update(project); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: MEMBER_REMOVED, Description: User %s removed from project %s", userID, id)
	return project, nil
}

// IsOwner reports whether userID owns the project. A missing project is
// reported as false, not as an error.
func (s *ProjectService) IsOwner(id, userID string) bool {
	project, err := s.projects.Get(id)
	if err != nil || project == nil {
		return false
	}
	return project.OwnerID == userID
}

// IsMember reports whether userID is a member of the project. A missing
// project is reported as false, not as an error.
func (s *ProjectService) IsMember(id, userID string) bool {
	project, err := s.projects.Get(id)
	if err != nil || project == nil {
		return false
	}
	return project.HasMember(userID)
}

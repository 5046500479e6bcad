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

const maxCommentContentLength = 1000

type CommentService struct {
	comments repositories.CommentStore
	tasks    repositories.TaskStore
}

func NewCommentService(comments repositories.CommentStore, tasks repositories.TaskStore) *CommentService {
	return &CommentService{comments: comments, tasks: tasks}
}

func (s *CommentService) AddComment(taskID, userID, content string) (*models.Comment, error) {
	task, err := s.tasks.Get(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, models.NewNotFoundError("task", taskID)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("comment content cannot be empty")
	}
	if len(content) > maxCommentContentLength {
		return nil, models.NewValidationError("comment content cannot exceed %d characters", maxCommentContentLength)
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.comments.Insert(comment); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: COMMENT_ADDED, Description: Comment %s added to task %s by user %s", comment.ID, taskID, userID)
	return comment, nil
}

func (s *CommentService) GetComment(id string) (*models.Comment, error) {
	comment, err := s.comments.Get(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, models.NewNotFoundError("comment", id)
	}
	return comment, nil
}

func (s *CommentService) GetCommentsForTask(taskID string) ([]*models.Comment, error) {
	comments, err := s.comments.ByTask(taskID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

// DeleteComment removes a comment. Only its author may do so.
func (s *CommentService) DeleteComment(id, requestingUserID string) error {
	comment, err := s.GetComment(id)
	if err != nil {
		return err
	}
	if comment.UserID != requestingUserID {
		return models.NewAuthorizationError("only the comment author can delete the comment")
	}
	if err := s.comments.Delete(id); err != nil {
		return err
	}

	logging.Logger.Infof("Event ID: COMMENT_DELETED, Description: Comment %s deleted by user %s", id, requestingUserID)
	return nil
}

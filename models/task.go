package models

import "time"

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID          string       `json:"id" bson:"_id"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	ColumnID    string       `json:"columnId" bson:"columnId"`
	ProjectID   string       `json:"projectId" bson:"projectId"`
	AssigneeID  string       `json:"assigneeId,omitempty" bson:"assigneeId,omitempty"`
	Priority    TaskPriority `json:"priority" bson:"priority"`
	Status      Status       `json:"status" bson:"status"`
	Order       int          `json:"order" bson:"order"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

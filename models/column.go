package models

// Status is the fixed board stage a column represents. A task always
// carries the status of the column it currently sits in.
type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

type Column struct {
	ID        string `json:"id" bson:"_id"`
	Name      string `json:"name" bson:"name"`
	Order     int    `json:"order" bson:"order"`
	ProjectID string `json:"projectId" bson:"projectId"`
	Status    Status `json:"status" bson:"status"`
}

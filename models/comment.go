package models

import "time"

type Comment struct {
	ID        string    `json:"id" bson:"_id"`
	TaskID    string    `json:"taskId" bson:"taskId"`
	UserID    string    `json:"userId" bson:"userId"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

package repositories

import (
	"context"
	"fmt"

	"kanban-project/board-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB-backed stores. They implement the same per-entity contracts as
// the in-memory stores, so the services and the ordering algorithm do not
// change when this backend is selected.

type MongoProjectStore struct {
	collection *mongo.Collection
}

func NewMongoProjectStore(db *mongo.Database) *MongoProjectStore {
	return &MongoProjectStore{collection: db.Collection("projects")}
}

func (s *MongoProjectStore) Insert(project *models.Project) error {
	_, err := s.collection.InsertOne(context.Background(), project)
	if err != nil {
		return fmt.Errorf("failed to insert project: %v", err)
	}
	return nil
}

func (s *MongoProjectStore) Get(id string) (*models.Project, error) {
	var project models.Project
	err := s.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %v", err)
	}
	return &project, nil
}

func (s *MongoProjectStore) Update(project *models.Project) error {
	_, err := s.collection.ReplaceOne(context.Background(), bson.M{"_id": project.ID}, project)
	if err != nil {
		return fmt.Errorf("failed to update project: %v", err)
	}
	return nil
}

func (s *MongoProjectStore) Delete(id string) error {
	_, err := s.collection.DeleteOne(context.Background(), bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}
	return nil
}

func (s *MongoProjectStore) All() ([]*models.Project, error) {
	cursor, err := s.collection.Find(context.Background(), bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %v", err)
	}
	defer cursor.Close(context.Background())

	var projects []*models.Project
	if err := cursor.All(context.Background(), &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}
	return projects, nil
}

type MongoColumnStore struct {
	collection *mongo.Collection
}

func NewMongoColumnStore(db *mongo.Database) *MongoColumnStore {
	return &MongoColumnStore{collection: db.Collection("columns")}
}

func (s *MongoColumnStore) Insert(column *models.Column) error {
	_, err := s.collection.InsertOne(context.Background(), column)
	if err != nil {
		return fmt.Errorf("failed to insert column: %v", err)
	}
	return nil
}

func (s *MongoColumnStore) Get(id string) (*models.Column, error) {
	var column models.Column
	err := s.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&column)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch column: %v", err)
	}
	return &column, nil
}

func (s *MongoColumnStore) Delete(id string) error {
	_, err := s.collection.DeleteOne(context.Background(), bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete column: %v", err)
	}
	return nil
}

func (s *MongoColumnStore) ByProject(projectID string) ([]*models.Column, error) {
	cursor, err := s.collection.Find(context.Background(), bson.M{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve columns: %v", err)
	}
	defer cursor.Close(context.Background())

	var columns []*models.Column
	if err := cursor.All(context.Background(), &columns); err != nil {
		return nil, fmt.Errorf("failed to decode columns: %v", err)
	}
	return columns, nil
}

type MongoTaskStore struct {
	collection *mongo.Collection
}

func NewMongoTaskStore(db *mongo.Database) *MongoTaskStore {
	return &MongoTaskStore{collection: db.Collection("tasks")}
}

func (s *MongoTaskStore) Insert(task *models.Task) error {
	_, err := s.collection.InsertOne(context.Background(), task)
	if err != nil {
		return fmt.Errorf("failed to insert task: %v", err)
	}
	return nil
}

func (s *MongoTaskStore) Get(id string) (*models.Task, error) {
	var task models.Task
	err := s.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task: %v", err)
	}
	return &task, nil
}

func (s *MongoTaskStore) Update(task *models.Task) error {
	_, err := s.collection.ReplaceOne(context.Background(), bson.M{"_id": task.ID}, task)
	if err != nil {
		return fmt.Errorf("failed to update task: %v", err)
	}
	return nil
}

func (s *MongoTaskStore) Delete(id string) error {
	_, err := s.collection.DeleteOne(context.Background(), bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	return nil
}

func (s *MongoTaskStore) ByColumn(columnID string) ([]*models.Task, error) {
	return s.find(bson.M{"columnId": columnID})
}

func (s *MongoTaskStore) ByProject(projectID string) ([]*models.Task, error) {
	return s.find(bson.M{"projectId": projectID})
}

func (s *MongoTaskStore) find(filter bson.M) ([]*models.Task, error) {
	cursor, err := s.collection.Find(context.Background(), filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(context.Background())

	var tasks []*models.Task
	if err := cursor.All(context.Background(), &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}
	return tasks, nil
}

type MongoCommentStore struct {
	collection *mongo.Collection
}

func NewMongoCommentStore(db *mongo.Database) *MongoCommentStore {
	return &MongoCommentStore{collection: db.Collection("comments")}
}

func (s *MongoCommentStore) Insert(comment *models.Comment) error {
	_, err := s.collection.InsertOne(context.Background(), comment)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %v", err)
	}
	return nil
}

func (s *MongoCommentStore) Get(id string) (*models.Comment, error) {
	var comment models.Comment
	err := s.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&comment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment: %v", err)
	}
	return &comment, nil
}

func (s *MongoCommentStore) Delete(id string) error {
	_, err := s.collection.DeleteOne(context.Background(), bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %v", err)
	}
	return nil
}

func (s *MongoCommentStore) ByTask(taskID string) ([]*models.Comment, error) {
	cursor, err := s.collection.Find(context.Background(), bson.M{"taskId": taskID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve comments: %v", err)
	}
	defer cursor.Close(context.Background())

	var comments []*models.Comment
	if err := cursor.All(context.Background(), &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %v", err)
	}
	return comments, nil
}

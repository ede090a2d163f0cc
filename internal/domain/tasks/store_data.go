package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/apardew63/crm-server/internal/platform/db"
)

type Store struct {
	tasks *mongo.Collection
}

func NewStore(ctx context.Context, mdb *db.Mongo) (*Store, error) {
	tasks := mdb.Collection("tasks")

	if _, err := tasks.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "dueDate", Value: 1}}},
		{Keys: bson.D{{Key: "assignees.userId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "assignedBy", Value: 1}}},
	}); err != nil {
		return nil, fmt.Errorf("create task indexes: %w", err)
	}

	return &Store{tasks: tasks}, nil
}

func (s *Store) Get(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	err := s.tasks.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func (s *Store) Insert(ctx context.Context, task *Task) error {
	task.CreatedAt = time.Now().UTC()
	task.UpdatedAt = task.CreatedAt
	_, err := s.tasks.InsertOne(ctx, task)
	return err
}

func (s *Store) Replace(ctx context.Context, task *Task) error {
	task.UpdatedAt = time.Now().UTC()
	result, err := s.tasks.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	result, err := s.tasks.DeleteOne(ctx, bson.M{"_id": taskID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context, filter Filter) ([]*Task, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.AssigneeID != "" {
		query["assignees.userId"] = filter.AssigneeID
	}
	if filter.AssignedBy != "" {
		query["assignedBy"] = filter.AssignedBy
	}
	due := bson.M{}
	if !filter.DueAfter.IsZero() {
		due["$gte"] = filter.DueAfter
	}
	if !filter.DueBefore.IsZero() {
		due["$lte"] = filter.DueBefore
	}
	if len(due) > 0 {
		query["dueDate"] = due
	}

	opts := options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit)).SetSkip(int64(filter.Offset))
	}

	cursor, err := s.tasks.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	var results []*Task
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return results, nil
}

func (s *Store) FindCreatedBetween(ctx context.Context, start, end time.Time, statuses []string) ([]*Task, error) {
	query := bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}}
	if len(statuses) > 0 {
		query["status"] = bson.M{"$in": statuses}
	}
	cursor, err := s.tasks.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	var results []*Task
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return results, nil
}

func (s *Store) FindByAssignee(ctx context.Context, userID string, start, end time.Time) ([]*Task, error) {
	query := bson.M{"assignees.userId": userID}
	if !start.IsZero() || !end.IsZero() {
		window := bson.M{}
		if !start.IsZero() {
			window["$gte"] = start
		}
		if !end.IsZero() {
			window["$lte"] = end
		}
		query["createdAt"] = window
	}
	cursor, err := s.tasks.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	var results []*Task
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return results, nil
}

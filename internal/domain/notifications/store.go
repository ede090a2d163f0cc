package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/apardew63/crm-server/internal/platform/db"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Notification struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Type      string    `bson:"type" json:"type"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Store struct {
	notifications *mongo.Collection
}

func NewStore(ctx context.Context, mdb *db.Mongo) (*Store, error) {
	notifications := mdb.Collection("notifications")

	if _, err := notifications.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "read", Value: 1}}},
	}); err != nil {
		return nil, fmt.Errorf("create notification indexes: %w", err)
	}

	return &Store{notifications: notifications}, nil
}

func (s *Store) Insert(ctx context.Context, userID, ntype, title, body string) error {
	_, err := s.notifications.InsertOne(ctx, Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	})
	return err
}

func (s *Store) List(ctx context.Context, userID string, limit, offset int) ([]Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit)).SetSkip(int64(offset))
	}
	cursor, err := s.notifications.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find notifications: %w", err)
	}
	var results []Notification
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return results, nil
}

func (s *Store) MarkRead(ctx context.Context, userID, notificationID string) error {
	result, err := s.notifications.UpdateOne(ctx,
		bson.M{"_id": notificationID, "userId": userID},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *Store) CountUnread(ctx context.Context, userID string) (int, error) {
	count, err := s.notifications.CountDocuments(ctx, bson.M{"userId": userID, "read": false})
	return int(count), err
}

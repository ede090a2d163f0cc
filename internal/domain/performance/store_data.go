package performance

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
	performances *mongo.Collection
}

func NewStore(ctx context.Context, mdb *db.Mongo) (*Store, error) {
	performances := mdb.Collection("performances")

	if _, err := performances.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "employeeId", Value: 1},
				{Key: "period", Value: 1},
				{Key: "startDate", Value: 1},
				{Key: "endDate", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "employeeId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}); err != nil {
		return nil, fmt.Errorf("create performance indexes: %w", err)
	}

	return &Store{performances: performances}, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Performance, error) {
	var record Performance
	err := s.performances.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find performance: %w", err)
	}
	return &record, nil
}

func (s *Store) Find(ctx context.Context, employeeID, period string, start, end time.Time) (*Performance, error) {
	var record Performance
	err := s.performances.FindOne(ctx, bson.M{
		"employeeId": employeeID,
		"period":     period,
		"startDate":  start,
		"endDate":    end,
	}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find performance: %w", err)
	}
	return &record, nil
}

func (s *Store) Insert(ctx context.Context, record *Performance) error {
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt
	_, err := s.performances.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSnapshot
	}
	return err
}

func (s *Store) Replace(ctx context.Context, record *Performance) error {
	record.UpdatedAt = time.Now().UTC()
	result, err := s.performances.ReplaceOne(ctx, bson.M{"_id": record.ID}, record)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrSnapshotNotFound
	}
	return nil
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]*Performance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit)).SetSkip(int64(offset))
	}
	cursor, err := s.performances.Find(ctx, bson.M{"employeeId": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find performances: %w", err)
	}
	var results []*Performance
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode performances: %w", err)
	}
	return results, nil
}

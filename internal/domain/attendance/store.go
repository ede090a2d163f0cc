package attendance

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
	attendance *mongo.Collection
}

func NewStore(ctx context.Context, mdb *db.Mongo) (*Store, error) {
	attendance := mdb.Collection("attendance")

	if _, err := attendance.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	}); err != nil {
		return nil, fmt.Errorf("create attendance indexes: %w", err)
	}

	return &Store{attendance: attendance}, nil
}

// GetDay returns the record for employee+date, or nil when absent.
func (s *Store) GetDay(ctx context.Context, employeeID, date string) (*Record, error) {
	var record Record
	err := s.attendance.FindOne(ctx, bson.M{"employeeId": employeeID, "date": date}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return &record, nil
}

func (s *Store) Create(ctx context.Context, record *Record) error {
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt
	_, err := s.attendance.InsertOne(ctx, record)
	return err
}

func (s *Store) Update(ctx context.Context, record *Record) error {
	record.UpdatedAt = time.Now().UTC()
	result, err := s.attendance.ReplaceOne(ctx, bson.M{"_id": record.ID}, record)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// FindRange returns records for the employee whose date falls inside
// [from, to] (dates are YYYY-MM-DD strings, so lexical range works).
func (s *Store) FindRange(ctx context.Context, employeeID, from, to string) ([]*Record, error) {
	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	if employeeID != "" {
		filter["employeeId"] = employeeID
	}
	cursor, err := s.attendance.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	var results []*Record
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode attendance: %w", err)
	}
	return results, nil
}

package sales

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/apardew63/crm-server/internal/platform/db"
)

type Store struct {
	calls *mongo.Collection
}

func NewStore(ctx context.Context, mdb *db.Mongo) (*Store, error) {
	calls := mdb.Collection("sales_calls")

	if _, err := calls.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "employeeId", Value: 1}, {Key: "callTime", Value: 1}}},
		{Keys: bson.D{{Key: "outcome", Value: 1}}},
	}); err != nil {
		return nil, fmt.Errorf("create sales indexes: %w", err)
	}

	return &Store{calls: calls}, nil
}

func (s *Store) Insert(ctx context.Context, call *Call) error {
	call.CreatedAt = time.Now().UTC()
	_, err := s.calls.InsertOne(ctx, call)
	return err
}

func (s *Store) FindRange(ctx context.Context, employeeID string, start, end time.Time) ([]*Call, error) {
	filter := bson.M{"callTime": bson.M{"$gte": start, "$lte": end}}
	if employeeID != "" {
		filter["employeeId"] = employeeID
	}
	cursor, err := s.calls.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "callTime", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find sales calls: %w", err)
	}
	var results []*Call
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode sales calls: %w", err)
	}
	return results, nil
}

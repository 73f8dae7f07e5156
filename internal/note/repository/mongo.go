package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jotpad/jotpad/internal/note"
	"github.com/jotpad/jotpad/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo is a MongoDB-backed repository. Notes are stored with a string
// _id assigned here rather than an ObjectID, keeping ids opaque to callers.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// index on createdAt so List can return notes in insert order
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: 1}}}
	if _, err := col.Indexes().CreateOne(context.Background(), idxModel); err != nil {
		logger.Warnf("failed to create createdAt index on %s: %v", col.Name(), err)
	}
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Insert(ctx context.Context, n *note.Note) (string, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.ReceivedAt = time.Now().UTC()
	if _, err := m.col.InsertOne(ctx, n); err != nil {
		return "", err
	}
	return n.ID, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*note.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*note.Note{}
	for cur.Next(ctx) {
		var n note.Note
		if err := cur.Decode(&n); err != nil {
			return nil, err
		}
		out = append(out, &n)
	}
	return out, cur.Err()
}

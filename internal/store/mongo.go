package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/synthra/synthra-api/internal/domain"
)

const connectTimeout = 10 * time.Second

// MongoStore implements Repository using MongoDB.
type MongoStore struct {
	client    *mongo.Client
	history   *mongo.Collection
	marketing *mongo.Collection
	users     *mongo.Collection
}

// NewMongo connects to MongoDB and returns a Mongo-backed repository.
func NewMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	return &MongoStore{
		client:    client,
		history:   db.Collection("history"),
		marketing: db.Collection("marketing"),
		users:     db.Collection("users"),
	}, nil
}

// Ping verifies database connectivity.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// CreateHistoryItem inserts a history item and re-fetches the stored document
// so the caller sees exactly what was persisted, generated id included.
func (s *MongoStore) CreateHistoryItem(ctx context.Context, item *domain.HistoryItem) (*domain.HistoryItem, error) {
	result, err := s.history.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("insert history item: %w", err)
	}

	var saved domain.HistoryItem
	if err := s.history.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&saved); err != nil {
		return nil, fmt.Errorf("fetch inserted history item: %w", err)
	}
	return &saved, nil
}

// GetHistory returns the user's history sorted by insertion order descending,
// capped at HistoryLimit.
func (s *MongoStore) GetHistory(ctx context.Context, userID string) ([]domain.HistoryItem, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(HistoryLimit)

	cursor, err := s.history.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find history: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]domain.HistoryItem, 0, HistoryLimit)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return items, nil
}

// CreateMarketingRecord appends a marketing record. No idempotency key:
// repeated fetches for the same user accumulate as an analytics log.
func (s *MongoStore) CreateMarketingRecord(ctx context.Context, rec *domain.MarketingRecord) (*domain.MarketingRecord, error) {
	result, err := s.marketing.InsertOne(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("insert marketing record: %w", err)
	}

	var saved domain.MarketingRecord
	if err := s.marketing.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&saved); err != nil {
		return nil, fmt.Errorf("fetch inserted marketing record: %w", err)
	}
	return &saved, nil
}

// GetMarketingRecord returns the most recent marketing record for the user,
// or nil if the user has none.
func (s *MongoStore) GetMarketingRecord(ctx context.Context, userID string) (*domain.MarketingRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})

	var rec domain.MarketingRecord
	err := s.marketing.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find marketing record: %w", err)
	}
	return &rec, nil
}

// UpdateUserName upserts the user's profile document with the new name and
// returns the updated document.
func (s *MongoStore) UpdateUserName(ctx context.Context, userID, name string) (*domain.User, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user domain.User
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"name": name}},
		opts,
	).Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("update user name: %w", err)
	}
	return &user, nil
}

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devlink-app/devlink-backend/internal/models"
)

const profileCollection = "profiles"

// MongoProfileStore keeps profile aggregates in MongoDB. Every embedded-array
// write is a single FindOneAndUpdate, so two concurrent mutations of the same
// profile both land.
type MongoProfileStore struct {
	db *mongo.Database
}

var _ ProfileStore = (*MongoProfileStore)(nil)

func NewMongoProfileStore(db *mongo.Database) *MongoProfileStore {
	return &MongoProfileStore{db: db}
}

// EnsureProfileIndexes creates the unique owner index (one profile per
// identity).
func EnsureProfileIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(profileCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoProfileStore) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Collection(profileCollection).FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}

func (s *MongoProfileStore) ListAll(ctx context.Context) ([]models.Profile, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.db.Collection(profileCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

func (s *MongoProfileStore) Upsert(ctx context.Context, userID string, set map[string]interface{}) (*models.Profile, error) {
	now := time.Now()

	setDoc := bson.M{"updated_at": now}
	for k, v := range set {
		setDoc[k] = v
	}

	update := bson.M{
		"$set":         setDoc,
		"$setOnInsert": bson.M{"user_id": userID, "created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var profile models.Profile
	err := s.db.Collection(profileCollection).
		FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).
		Decode(&profile)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return &profile, nil
}

func (s *MongoProfileStore) AddExperience(ctx context.Context, userID string, entry models.Experience) (*models.Profile, error) {
	return s.prepend(ctx, userID, "experience", entry)
}

func (s *MongoProfileStore) RemoveExperience(ctx context.Context, userID string, entryID primitive.ObjectID) (*models.Profile, error) {
	return s.pull(ctx, userID, "experience", entryID)
}

func (s *MongoProfileStore) AddEducation(ctx context.Context, userID string, entry models.Education) (*models.Profile, error) {
	return s.prepend(ctx, userID, "education", entry)
}

func (s *MongoProfileStore) RemoveEducation(ctx context.Context, userID string, entryID primitive.ObjectID) (*models.Profile, error) {
	return s.pull(ctx, userID, "education", entryID)
}

func (s *MongoProfileStore) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := s.db.Collection(profileCollection).DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// prepend pushes an entry at position 0 so the newest appears first.
func (s *MongoProfileStore) prepend(ctx context.Context, userID, field string, entry interface{}) (*models.Profile, error) {
	update := bson.M{
		"$push": bson.M{field: bson.M{"$each": bson.A{entry}, "$position": 0}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	return s.findAndUpdate(ctx, userID, update)
}

// pull removes the embedded entry with the given id; a no-op when absent.
func (s *MongoProfileStore) pull(ctx context.Context, userID, field string, entryID primitive.ObjectID) (*models.Profile, error) {
	update := bson.M{
		"$pull": bson.M{field: bson.M{"_id": entryID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	return s.findAndUpdate(ctx, userID, update)
}

func (s *MongoProfileStore) findAndUpdate(ctx context.Context, userID string, update bson.M) (*models.Profile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.Profile
	err := s.db.Collection(profileCollection).
		FindOneAndUpdate(ctx, bson.M{"user_id": userID}, update, opts).
		Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &profile, nil
}

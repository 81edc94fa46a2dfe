package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devlink-app/devlink-backend/internal/models"
)

const postCollection = "posts"

// MongoPostStore keeps post aggregates in MongoDB. Like and comment writes
// are guarded conditional updates: the filter encodes the precondition
// (not yet liked, liked, comment present) so interleaved requests resolve at
// the store instead of racing through read-modify-write.
type MongoPostStore struct {
	db *mongo.Database
}

var _ PostStore = (*MongoPostStore)(nil)

func NewMongoPostStore(db *mongo.Database) *MongoPostStore {
	return &MongoPostStore{db: db}
}

// EnsurePostIndexes creates the listing indexes.
func EnsurePostIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(postCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
	return err
}

func (s *MongoPostStore) Insert(ctx context.Context, post *models.Post) error {
	if _, err := s.db.Collection(postCollection).InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

func (s *MongoPostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.db.Collection(postCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return &post, nil
}

func (s *MongoPostStore) ListAll(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.db.Collection(postCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

func (s *MongoPostStore) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.db.Collection(postCollection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (s *MongoPostStore) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := s.db.Collection(postCollection).DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete posts: %w", err)
	}
	return nil
}

// AddLike prepends a like unless userID already appears in likes. Returns
// false when the guard matched no document (already liked, or post gone).
func (s *MongoPostStore) AddLike(ctx context.Context, postID primitive.ObjectID, userID string) (bool, error) {
	filter := bson.M{"_id": postID, "likes.user_id": bson.M{"$ne": userID}}
	update := bson.M{
		"$push": bson.M{"likes": bson.M{"$each": bson.A{models.Like{UserID: userID}}, "$position": 0}},
	}
	res, err := s.db.Collection(postCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to add like: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// RemoveLike pulls the caller's like. Returns false when no like was present.
func (s *MongoPostStore) RemoveLike(ctx context.Context, postID primitive.ObjectID, userID string) (bool, error) {
	filter := bson.M{"_id": postID, "likes.user_id": userID}
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user_id": userID}}}
	res, err := s.db.Collection(postCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to remove like: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// AddComment prepends the comment and returns the post-update aggregate, or
// (nil, nil) when the post is gone.
func (s *MongoPostStore) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	update := bson.M{
		"$push": bson.M{"comments": bson.M{"$each": bson.A{comment}, "$position": 0}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.db.Collection(postCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).
		Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return &post, nil
}

// RemoveComment pulls the comment with the given id. Removal is keyed on the
// comment _id alone so it can never take out a different author's entry.
// Returns false when the comment was already gone.
func (s *MongoPostStore) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": postID, "comments._id": commentID}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}
	res, err := s.db.Collection(postCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to remove comment: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

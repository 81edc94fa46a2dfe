// Package store persists identities (PostgreSQL) and the profile/post
// aggregates (MongoDB). Find methods return (nil, nil) when the record is
// absent; errors are reserved for backend failures.
package store

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlink-app/devlink-backend/internal/models"
)

// IdentityStore is the credential store.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Identity, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Identity, error)
	Create(ctx context.Context, identity *models.Identity) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// ProfileStore persists the profile aggregate. Embedded-collection writes are
// single atomic updates so concurrent mutations of the same profile cannot
// overwrite each other. Mutating methods return (nil, nil) when no profile
// exists for userID.
type ProfileStore interface {
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)
	ListAll(ctx context.Context) ([]models.Profile, error)

	// Upsert creates the profile for userID if absent, otherwise applies set
	// as a partial overwrite. Returns the post-update aggregate.
	Upsert(ctx context.Context, userID string, set map[string]interface{}) (*models.Profile, error)

	AddExperience(ctx context.Context, userID string, entry models.Experience) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID string, entryID primitive.ObjectID) (*models.Profile, error)
	AddEducation(ctx context.Context, userID string, entry models.Education) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID string, entryID primitive.ObjectID) (*models.Profile, error)

	DeleteByUserID(ctx context.Context, userID string) error
}

// PostStore persists the post aggregate. AddLike/RemoveLike/RemoveComment
// report whether the guarded update matched, so callers can distinguish
// "already liked" / "not liked" / "comment gone" without a second read.
type PostStore interface {
	Insert(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	DeleteByUserID(ctx context.Context, userID string) error

	AddLike(ctx context.Context, postID primitive.ObjectID, userID string) (bool, error)
	RemoveLike(ctx context.Context, postID primitive.ObjectID, userID string) (bool, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error)
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) (bool, error)
}

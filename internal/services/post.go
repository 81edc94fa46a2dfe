package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlink-app/devlink-backend/internal/models"
	"github.com/devlink-app/devlink-backend/internal/store"
)

const postsCacheKey = "posts:all"

// PostService owns post reads and the owner-gated post mutations: create,
// delete, like/unlike and comments.
type PostService struct {
	posts      store.PostStore
	identities store.IdentityStore
	feed       *FeedService  // optional
	cache      *CacheService // optional
}

func NewPostService(posts store.PostStore, identities store.IdentityStore, feed *FeedService, cache *CacheService) *PostService {
	return &PostService{
		posts:      posts,
		identities: identities,
		feed:       feed,
		cache:      cache,
	}
}

// Create publishes a new post. Author name and avatar are snapshotted from
// the identity at creation time.
func (s *PostService) Create(ctx context.Context, userID, text, image string) (*models.Post, error) {
	if text == "" {
		return nil, models.NewValidationError("text is required")
	}

	author, err := s.lookupAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:        primitive.NewObjectID(),
		CreatedAt: time.Now(),
		UserID:    userID,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Text:      text,
		Image:     image,
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, models.NewStoreError("failed to create post", err)
	}

	s.invalidateListing(ctx)
	if s.feed != nil {
		s.feed.Publish(ctx, FeedEvent{
			Type:   FeedEventPostCreated,
			PostID: post.ID.Hex(),
			UserID: post.UserID,
			Name:   post.Name,
			Text:   post.Text,
		})
	}
	return post, nil
}

// List returns all posts, newest first. Served from cache when available.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	var cached []models.Post
	if s.cache != nil {
		if hit, _ := s.cache.Get(ctx, postsCacheKey, &cached); hit {
			return cached, nil
		}
	}

	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, models.NewStoreError("failed to list posts", err)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, postsCacheKey, posts)
	}
	return posts, nil
}

// Get returns one post by id.
func (s *PostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	oid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, oid)
}

// Delete removes the caller's own post.
func (s *PostService) Delete(ctx context.Context, callerID, postID string) error {
	oid, err := parsePostID(postID)
	if err != nil {
		return err
	}

	post, err := s.fetch(ctx, oid)
	if err != nil {
		return err
	}
	if err := requireOwner(callerID, post.UserID); err != nil {
		return err
	}

	if err := s.posts.DeleteByID(ctx, oid); err != nil {
		return models.NewStoreError("failed to delete post", err)
	}
	s.invalidateListing(ctx)
	return nil
}

// Like adds the caller's like at the front of the likes list. At most one
// like per identity: a second like fails with a conflict.
func (s *PostService) Like(ctx context.Context, callerID, postID string) (*models.Post, error) {
	oid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	if _, err := s.fetch(ctx, oid); err != nil {
		return nil, err
	}

	applied, err := s.posts.AddLike(ctx, oid, callerID)
	if err != nil {
		return nil, models.NewStoreError("failed to like post", err)
	}
	if !applied {
		return nil, models.NewConflictError("post already liked")
	}

	s.invalidateListing(ctx)
	return s.fetch(ctx, oid)
}

// Unlike removes the caller's like. Fails with a conflict when there is no
// like to remove.
func (s *PostService) Unlike(ctx context.Context, callerID, postID string) (*models.Post, error) {
	oid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	if _, err := s.fetch(ctx, oid); err != nil {
		return nil, err
	}

	applied, err := s.posts.RemoveLike(ctx, oid, callerID)
	if err != nil {
		return nil, models.NewStoreError("failed to unlike post", err)
	}
	if !applied {
		return nil, models.NewConflictError("post has not yet been liked")
	}

	s.invalidateListing(ctx)
	return s.fetch(ctx, oid)
}

// AddComment prepends a comment to the post.
func (s *PostService) AddComment(ctx context.Context, callerID, postID, text string) (*models.Post, error) {
	if text == "" {
		return nil, models.NewValidationError("text is required")
	}

	oid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	author, err := s.lookupAuthor(ctx, callerID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		CreatedAt: time.Now(),
		UserID:    callerID,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Text:      text,
	}

	post, err := s.posts.AddComment(ctx, oid, comment)
	if err != nil {
		return nil, models.NewStoreError("failed to add comment", err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post not found")
	}

	s.invalidateListing(ctx)
	if s.feed != nil {
		s.feed.Publish(ctx, FeedEvent{
			Type:   FeedEventCommentCreated,
			PostID: post.ID.Hex(),
			UserID: callerID,
			Name:   author.Name,
			Text:   text,
		})
	}
	return post, nil
}

// RemoveComment removes the caller's own comment. Unlike the experience and
// education deletes, a missing comment id is reported as not found: the
// caller is referencing another entity's state, and silent success would hide
// a stale id.
func (s *PostService) RemoveComment(ctx context.Context, callerID, postID, commentID string) (*models.Post, error) {
	oid, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}
	commentOID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, models.NewNotFoundError("comment not found")
	}

	post, err := s.fetch(ctx, oid)
	if err != nil {
		return nil, err
	}

	comment := post.CommentByID(commentOID)
	if comment == nil {
		return nil, models.NewNotFoundError("comment not found")
	}
	if err := requireOwner(callerID, comment.UserID); err != nil {
		return nil, err
	}

	if _, err := s.posts.RemoveComment(ctx, oid, commentOID); err != nil {
		return nil, models.NewStoreError("failed to remove comment", err)
	}

	s.invalidateListing(ctx)
	return s.fetch(ctx, oid)
}

func (s *PostService) fetch(ctx context.Context, oid primitive.ObjectID) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		return nil, models.NewStoreError("failed to load post", err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post not found")
	}
	return post, nil
}

func (s *PostService) lookupAuthor(ctx context.Context, userID string) (*models.Identity, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, models.NewAuthError("invalid subject identity")
	}
	identity, err := s.identities.FindByID(ctx, id)
	if err != nil {
		return nil, models.NewStoreError("failed to load identity", err)
	}
	if identity == nil {
		return nil, models.NewNotFoundError("user not found")
	}
	return identity, nil
}

func (s *PostService) invalidateListing(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, postsCacheKey)
	}
}

// parsePostID maps an unparseable id to not found, matching the read
// endpoints: a garbage id and an unknown id are indistinguishable.
func parsePostID(postID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return primitive.NilObjectID, models.NewNotFoundError("post not found")
	}
	return oid, nil
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/devlink-app/devlink-backend/internal/models"
	"github.com/devlink-app/devlink-backend/internal/store"
	"github.com/devlink-app/devlink-backend/pkg/utils"
)

// invalidCredentials is returned for both unknown email and wrong password so
// a caller can't probe which emails are registered.
func invalidCredentials() error {
	return models.NewAuthError("invalid credentials")
}

// AuthService handles registration, login and account deletion.
type AuthService struct {
	identities store.IdentityStore
	profiles   store.ProfileStore
	posts      store.PostStore
	tokens     *TokenService
}

func NewAuthService(identities store.IdentityStore, profiles store.ProfileStore, posts store.PostStore, tokens *TokenService) *AuthService {
	return &AuthService{
		identities: identities,
		profiles:   profiles,
		posts:      posts,
		tokens:     tokens,
	}
}

// Register creates an identity and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	if name == "" {
		return "", models.NewValidationError("name is required")
	}
	if email == "" {
		return "", models.NewValidationError("email is required")
	}
	if len(password) < 6 {
		return "", models.NewValidationError("password must be at least 6 characters")
	}

	existing, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		return "", models.NewStoreError("failed to look up email", err)
	}
	if existing != nil {
		return "", models.NewConflictError("user already exists")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", models.NewStoreError("failed to hash password", err)
	}

	identity := &models.Identity{
		ID:           uuid.New(),
		CreatedAt:    time.Now(),
		Name:         name,
		Email:        email,
		Avatar:       utils.GravatarURL(email),
		PasswordHash: hash,
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		return "", models.NewStoreError("failed to create identity", err)
	}

	token, err := s.tokens.Issue(identity.ID.String())
	if err != nil {
		return "", models.NewStoreError("failed to issue token", err)
	}
	return token, nil
}

// Login verifies credentials and returns a fresh session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", models.NewValidationError("email and password are required")
	}

	identity, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		return "", models.NewStoreError("failed to look up email", err)
	}
	if identity == nil {
		return "", invalidCredentials()
	}

	valid, err := utils.VerifyPassword(password, identity.PasswordHash)
	if err != nil || !valid {
		// A malformed stored hash is a verification failure, not a crash.
		return "", invalidCredentials()
	}

	token, err := s.tokens.Issue(identity.ID.String())
	if err != nil {
		return "", models.NewStoreError("failed to issue token", err)
	}
	return token, nil
}

// CurrentIdentity returns the identity behind a verified subject id.
func (s *AuthService) CurrentIdentity(ctx context.Context, userID string) (*models.Identity, error) {
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

// DeleteAccount removes the caller's posts, profile and identity, in that
// order: content first so a half-finished delete never leaves orphaned
// documents pointing at a missing identity.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return models.NewAuthError("invalid subject identity")
	}

	if err := s.posts.DeleteByUserID(ctx, userID); err != nil {
		return models.NewStoreError("failed to delete posts", err)
	}
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return models.NewStoreError("failed to delete profile", err)
	}
	if err := s.identities.DeleteByID(ctx, id); err != nil {
		return models.NewStoreError("failed to delete identity", err)
	}
	return nil
}

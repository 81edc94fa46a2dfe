package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlink-app/devlink-backend/internal/models"
	"github.com/devlink-app/devlink-backend/internal/store/storetest"
)

func newTestAuthService(t *testing.T) (*AuthService, *storetest.IdentityStore, *storetest.ProfileStore, *storetest.PostStore) {
	t.Helper()
	identities := storetest.NewIdentityStore()
	profiles := storetest.NewProfileStore()
	posts := storetest.NewPostStore()
	return NewAuthService(identities, profiles, posts, newTestTokenService(t)), identities, profiles, posts
}

func TestRegisterIssuesToken(t *testing.T) {
	auth, identities, _, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := auth.Register(ctx, "Jane Dev", "jane@devlink.dev", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := auth.tokens.Verify(token)
	require.NoError(t, err)

	identity, err := auth.CurrentIdentity(ctx, subject)
	require.NoError(t, err)
	assert.Equal(t, "Jane Dev", identity.Name)
	assert.Equal(t, "jane@devlink.dev", identity.Email)
	assert.Contains(t, identity.Avatar, "gravatar.com")
	assert.NotEmpty(t, identity.PasswordHash)

	stored, err := identities.FindByEmail(ctx, "jane@devlink.dev")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	auth, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "", "jane@devlink.dev", "secret123")
	assert.Equal(t, models.KindValidation, models.KindOf(err))

	_, err = auth.Register(ctx, "Jane", "", "secret123")
	assert.Equal(t, models.KindValidation, models.KindOf(err))

	_, err = auth.Register(ctx, "Jane", "jane@devlink.dev", "short")
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Jane Dev", "jane@devlink.dev", "secret123")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "Other Jane", "jane@devlink.dev", "different1")
	assert.Equal(t, models.KindConflict, models.KindOf(err))
}

func TestLogin(t *testing.T) {
	auth, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Jane Dev", "jane@devlink.dev", "secret123")
	require.NoError(t, err)

	token, err := auth.Login(ctx, "jane@devlink.dev", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth, _, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "Jane Dev", "jane@devlink.dev", "secret123")
	require.NoError(t, err)

	// Wrong password and unknown email fail identically.
	_, wrongPass := auth.Login(ctx, "jane@devlink.dev", "wrong-password")
	_, unknownEmail := auth.Login(ctx, "nobody@devlink.dev", "secret123")

	require.Error(t, wrongPass)
	require.Error(t, unknownEmail)
	assert.Equal(t, models.KindUnauthenticated, models.KindOf(wrongPass))
	assert.Equal(t, wrongPass.Error(), unknownEmail.Error())
}

func TestDeleteAccountCascades(t *testing.T) {
	auth, identities, profileStore, postStore := newTestAuthService(t)
	ctx := context.Background()

	token, err := auth.Register(ctx, "Jane Dev", "jane@devlink.dev", "secret123")
	require.NoError(t, err)
	userID, err := auth.tokens.Verify(token)
	require.NoError(t, err)

	profiles := NewProfileService(profileStore, nil)
	_, err = profiles.Upsert(ctx, userID, ProfileInput{Status: "Developer", Skills: "Go"})
	require.NoError(t, err)

	posts := NewPostService(postStore, identities, nil, nil)
	_, err = posts.Create(ctx, userID, "hello", "")
	require.NoError(t, err)

	require.NoError(t, auth.DeleteAccount(ctx, userID))

	_, err = auth.CurrentIdentity(ctx, userID)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))

	profile, err := profileStore.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, profile)

	remaining, err := postStore.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

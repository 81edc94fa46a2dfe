package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlink-app/devlink-backend/internal/handlers"
	"github.com/devlink-app/devlink-backend/internal/routes"
	"github.com/devlink-app/devlink-backend/internal/services"
	"github.com/devlink-app/devlink-backend/internal/store/storetest"
)

// newTestServer wires the full router against in-memory stores, with no
// Redis, Cloudinary or feed hub behind it.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	tokens, err := services.NewTokenService("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	identities := storetest.NewIdentityStore()
	profiles := storetest.NewProfileStore()
	posts := storetest.NewPostStore()

	authService := services.NewAuthService(identities, profiles, posts, tokens)
	profileService := services.NewProfileService(profiles, nil)
	postService := services.NewPostService(posts, identities, nil, nil)

	r := chi.NewRouter()
	routes.Setup(r, routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Profile: handlers.NewProfileHandler(profileService, authService),
		Posts:   handlers.NewPostHandler(postService),
		Upload:  handlers.NewUploadHandler(nil),
		Feed:    handlers.NewFeedHandler(nil, tokens),
	}, tokens)
	return r
}

func doJSON(t *testing.T, srv http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, srv http.Handler, name, email string) string {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/users", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginMe(t *testing.T) {
	srv := newTestServer(t)

	token := registerUser(t, srv, "Jane Dev", "jane@devlink.dev")

	// Duplicate registration conflicts.
	rec := doJSON(t, srv, http.MethodPost, "/api/users", "", map[string]string{
		"name": "Jane Again", "email": "jane@devlink.dev", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Login with wrong password fails without leaking which part was wrong.
	rec = doJSON(t, srv, http.MethodPost, "/api/auth", "", map[string]string{
		"email": "jane@devlink.dev", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")

	rec = doJSON(t, srv, http.MethodPost, "/api/auth", "", map[string]string{
		"email": "jane@devlink.dev", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Token works against the identity lookup.
	rec = doJSON(t, srv, http.MethodGet, "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Jane Dev", user["name"])
	assert.NotContains(t, user, "password_hash")
}

func TestProfileLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "Jane Dev", "jane@devlink.dev")

	// No profile yet.
	rec := doJSON(t, srv, http.MethodGet, "/api/profile/me", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Mutations require auth.
	rec = doJSON(t, srv, http.MethodPost, "/api/profile", "", map[string]string{
		"status": "Developer", "skills": "go",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/profile", token, map[string]string{
		"status": "Developer", "skills": "go, redis",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decodeBody(t, rec)["profile"].(map[string]interface{})
	assert.Equal(t, []interface{}{"go", "redis"}, profile["skills"])

	rec = doJSON(t, srv, http.MethodPut, "/api/profile/experience", token, map[string]interface{}{
		"title": "Backend Engineer", "company": "DevLink", "from": "2022-01-01", "current": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile = decodeBody(t, rec)["profile"].(map[string]interface{})
	experience := profile["experience"].([]interface{})
	require.Len(t, experience, 1)
	entryID := experience[0].(map[string]interface{})["id"].(string)

	rec = doJSON(t, srv, http.MethodDelete, "/api/profile/experience/"+entryID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Public listing shows the profile without auth.
	rec = doJSON(t, srv, http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profiles := decodeBody(t, rec)["profiles"].([]interface{})
	assert.Len(t, profiles, 1)
}

func TestPostLifecycle(t *testing.T) {
	srv := newTestServer(t)
	janeToken := registerUser(t, srv, "Jane Dev", "jane@devlink.dev")
	samToken := registerUser(t, srv, "Sam Dev", "sam@devlink.dev")

	rec := doJSON(t, srv, http.MethodPost, "/api/posts", janeToken, map[string]string{
		"text": "shipping a new feature",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decodeBody(t, rec)["post"].(map[string]interface{})
	postID := post["id"].(string)
	assert.Equal(t, "Jane Dev", post["name"])

	// Second like conflicts.
	rec = doJSON(t, srv, http.MethodPut, "/api/posts/like/"+postID, samToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, srv, http.MethodPut, "/api/posts/like/"+postID, samToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/posts/comment/"+postID, samToken, map[string]string{
		"text": "congrats!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	comments := decodeBody(t, rec)["post"].(map[string]interface{})["comments"].([]interface{})
	require.Len(t, comments, 1)
	commentID := comments[0].(map[string]interface{})["id"].(string)

	// Only the comment author can remove it.
	rec = doJSON(t, srv, http.MethodDelete, "/api/posts/comment/"+postID+"/"+commentID, janeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, srv, http.MethodDelete, "/api/posts/comment/"+postID+"/"+commentID, samToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Only the post owner can delete it.
	rec = doJSON(t, srv, http.MethodDelete, "/api/posts/"+postID, samToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, srv, http.MethodDelete, "/api/posts/"+postID, janeToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/posts/"+postID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadUnavailableWithoutCloudinary(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv, "Jane Dev", "jane@devlink.dev")

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

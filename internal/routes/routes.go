package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/devlink-app/devlink-backend/internal/handlers"
	"github.com/devlink-app/devlink-backend/internal/middleware"
	"github.com/devlink-app/devlink-backend/internal/services"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler
	Posts   *handlers.PostHandler
	Upload  *handlers.UploadHandler
	Feed    *handlers.FeedHandler
}

// Setup mounts the API. Listing and single-resource reads are public;
// every mutation requires a session token.
func Setup(r *chi.Mux, h Handlers, tokens *services.TokenService) {
	auth := middleware.RequireAuth(tokens)

	// Identity routes
	r.Post("/api/users", h.Auth.Register)
	r.Post("/api/auth", h.Auth.Login)
	r.With(auth).Get("/api/auth", h.Auth.Me)

	// Profile routes
	r.Get("/api/profile", h.Profile.List)
	r.Get("/api/profile/user/{id}", h.Profile.GetByUser)
	r.With(auth).Get("/api/profile/me", h.Profile.GetMe)
	r.With(auth).Post("/api/profile", h.Profile.Upsert)
	r.With(auth).Delete("/api/profile", h.Profile.Delete)
	r.With(auth).Put("/api/profile/experience", h.Profile.AddExperience)
	r.With(auth).Delete("/api/profile/experience/{id}", h.Profile.RemoveExperience)
	r.With(auth).Put("/api/profile/education", h.Profile.AddEducation)
	r.With(auth).Delete("/api/profile/education/{id}", h.Profile.RemoveEducation)

	// Post routes
	r.Get("/api/posts", h.Posts.List)
	r.Get("/api/posts/{id}", h.Posts.Get)
	r.With(auth).Post("/api/posts", h.Posts.Create)
	r.With(auth).Delete("/api/posts/{id}", h.Posts.Delete)
	r.With(auth).Put("/api/posts/like/{id}", h.Posts.Like)
	r.With(auth).Put("/api/posts/unlike/{id}", h.Posts.Unlike)
	r.With(auth).Post("/api/posts/comment/{id}", h.Posts.AddComment)
	r.With(auth).Delete("/api/posts/comment/{id}/{commentID}", h.Posts.RemoveComment)

	// File upload
	r.With(auth).Post("/api/upload", h.Upload.Upload)

	// WebSocket feed gateway (token via header or query parameter)
	r.Get("/ws/feed", h.Feed.Feed)
}

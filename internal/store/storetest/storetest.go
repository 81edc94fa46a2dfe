// Package storetest provides in-memory store implementations for service and
// handler tests. They honor the same contracts as the real stores: (nil, nil)
// for absent records, guarded like/comment updates reporting whether they
// matched.
package storetest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlink-app/devlink-backend/internal/models"
)

// IdentityStore is an in-memory store.IdentityStore.
type IdentityStore struct {
	mu         sync.Mutex
	identities map[uuid.UUID]models.Identity
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{identities: make(map[uuid.UUID]models.Identity)}
}

func (s *IdentityStore) FindByEmail(_ context.Context, email string) (*models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.identities {
		if strings.EqualFold(id.Email, email) {
			out := id
			return &out, nil
		}
	}
	return nil, nil
}

func (s *IdentityStore) FindByID(_ context.Context, id uuid.UUID) (*models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.identities[id]
	if !ok {
		return nil, nil
	}
	out := identity
	return &out, nil
}

func (s *IdentityStore) Create(_ context.Context, identity *models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.identities {
		if strings.EqualFold(existing.Email, identity.Email) {
			return errors.New("duplicate email")
		}
	}
	s.identities[identity.ID] = *identity
	return nil
}

func (s *IdentityStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.identities, id)
	return nil
}

// ProfileStore is an in-memory store.ProfileStore.
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[string]models.Profile // keyed by user id
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string]models.Profile)}
}

func (s *ProfileStore) FindByUserID(_ context.Context, userID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	out := profile
	return &out, nil
}

func (s *ProfileStore) ListAll(_ context.Context) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (s *ProfileStore) Upsert(_ context.Context, userID string, set map[string]interface{}) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		profile = models.Profile{
			ID:        primitive.NewObjectID(),
			CreatedAt: time.Now(),
			UserID:    userID,
		}
	}
	profile.UpdatedAt = time.Now()

	for key, value := range set {
		switch key {
		case "status":
			profile.Status = value.(string)
		case "skills":
			profile.Skills = value.([]string)
		case "company":
			profile.Company = value.(string)
		case "website":
			profile.Website = value.(string)
		case "location":
			profile.Location = value.(string)
		case "bio":
			profile.Bio = value.(string)
		case "github_username":
			profile.GithubUsername = value.(string)
		case "social.youtube":
			profile.Social.Youtube = value.(string)
		case "social.twitter":
			profile.Social.Twitter = value.(string)
		case "social.facebook":
			profile.Social.Facebook = value.(string)
		case "social.linkedin":
			profile.Social.Linkedin = value.(string)
		case "social.instagram":
			profile.Social.Instagram = value.(string)
		}
	}

	s.profiles[userID] = profile
	out := profile
	return &out, nil
}

func (s *ProfileStore) AddExperience(_ context.Context, userID string, entry models.Experience) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	profile.Experience = append([]models.Experience{entry}, profile.Experience...)
	s.profiles[userID] = profile
	out := profile
	return &out, nil
}

func (s *ProfileStore) RemoveExperience(_ context.Context, userID string, entryID primitive.ObjectID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	kept := profile.Experience[:0:0]
	for _, e := range profile.Experience {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	profile.Experience = kept
	s.profiles[userID] = profile
	out := profile
	return &out, nil
}

func (s *ProfileStore) AddEducation(_ context.Context, userID string, entry models.Education) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	profile.Education = append([]models.Education{entry}, profile.Education...)
	s.profiles[userID] = profile
	out := profile
	return &out, nil
}

func (s *ProfileStore) RemoveEducation(_ context.Context, userID string, entryID primitive.ObjectID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	kept := profile.Education[:0:0]
	for _, e := range profile.Education {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	profile.Education = kept
	s.profiles[userID] = profile
	out := profile
	return &out, nil
}

func (s *ProfileStore) DeleteByUserID(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
	return nil
}

// PostStore is an in-memory store.PostStore. ListAll returns newest first.
type PostStore struct {
	mu    sync.Mutex
	posts []models.Post // newest first
}

func NewPostStore() *PostStore {
	return &PostStore{}
}

func (s *PostStore) Insert(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append([]models.Post{*post}, s.posts...)
	return nil
}

func (s *PostStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (s *PostStore) ListAll(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *PostStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *PostStore) DeleteByUserID(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.posts[:0:0]
	for _, p := range s.posts {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	s.posts = kept
	return nil
}

func (s *PostStore) AddLike(_ context.Context, postID primitive.ObjectID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		if s.posts[i].HasLikeFrom(userID) {
			return false, nil
		}
		s.posts[i].Likes = append([]models.Like{{UserID: userID}}, s.posts[i].Likes...)
		return true, nil
	}
	return false, nil
}

func (s *PostStore) RemoveLike(_ context.Context, postID primitive.ObjectID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		for j, l := range s.posts[i].Likes {
			if l.UserID == userID {
				s.posts[i].Likes = append(s.posts[i].Likes[:j], s.posts[i].Likes[j+1:]...)
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

func (s *PostStore) AddComment(_ context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		s.posts[i].Comments = append([]models.Comment{comment}, s.posts[i].Comments...)
		out := s.posts[i]
		return &out, nil
	}
	return nil, nil
}

func (s *PostStore) RemoveComment(_ context.Context, postID, commentID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		for j, c := range s.posts[i].Comments {
			if c.ID == commentID {
				s.posts[i].Comments = append(s.posts[i].Comments[:j], s.posts[i].Comments[j+1:]...)
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

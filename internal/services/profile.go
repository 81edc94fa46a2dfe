package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devlink-app/devlink-backend/internal/models"
	"github.com/devlink-app/devlink-backend/internal/store"
)

const profilesCacheKey = "profiles:all"

// ProfileInput carries the upsert fields. Empty fields are left untouched on
// an existing profile (partial merge).
type ProfileInput struct {
	Status         string `json:"status"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Skills         string `json:"skills"` // comma-delimited, normalized server-side
	GithubUsername string `json:"github_username"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// ExperienceInput carries a new work-history entry.
type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationInput carries a new education-history entry.
type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// ProfileService owns profile reads and owner-gated profile mutations. Every
// mutation addresses the aggregate by the caller's own identity, so ownership
// is enforced by construction.
type ProfileService struct {
	profiles store.ProfileStore
	cache    *CacheService // optional
}

func NewProfileService(profiles store.ProfileStore, cache *CacheService) *ProfileService {
	return &ProfileService{profiles: profiles, cache: cache}
}

// NormalizeSkills splits a comma-delimited skills string into trimmed tokens.
// Total and deterministic: no comma yields a one-element slice, blank tokens
// are dropped.
func NormalizeSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetByUserID returns the profile owned by userID.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewStoreError("failed to load profile", err)
	}
	if profile == nil {
		return nil, models.NewNotFoundError("there is no profile for this user")
	}
	return profile, nil
}

// List returns all profiles, newest first. Served from cache when available.
func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	var cached []models.Profile
	if s.cache != nil {
		if hit, _ := s.cache.Get(ctx, profilesCacheKey, &cached); hit {
			return cached, nil
		}
	}

	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, models.NewStoreError("failed to list profiles", err)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, profilesCacheKey, profiles)
	}
	return profiles, nil
}

// Upsert creates the caller's profile or partially merges the provided
// fields into it. Single read-modify-write at the store; no intermediate
// state is observable.
func (s *ProfileService) Upsert(ctx context.Context, userID string, input ProfileInput) (*models.Profile, error) {
	if input.Status == "" {
		return nil, models.NewValidationError("status is required")
	}
	if input.Skills == "" {
		return nil, models.NewValidationError("skills is required")
	}

	set := map[string]interface{}{
		"status": input.Status,
		"skills": NormalizeSkills(input.Skills),
	}
	setIfPresent := func(key, value string) {
		if value != "" {
			set[key] = value
		}
	}
	setIfPresent("company", input.Company)
	setIfPresent("website", input.Website)
	setIfPresent("location", input.Location)
	setIfPresent("bio", input.Bio)
	setIfPresent("github_username", input.GithubUsername)
	setIfPresent("social.youtube", input.Youtube)
	setIfPresent("social.twitter", input.Twitter)
	setIfPresent("social.facebook", input.Facebook)
	setIfPresent("social.linkedin", input.Linkedin)
	setIfPresent("social.instagram", input.Instagram)

	profile, err := s.profiles.Upsert(ctx, userID, set)
	if err != nil {
		return nil, models.NewStoreError("failed to upsert profile", err)
	}
	s.invalidateListing(ctx)
	return profile, nil
}

// AddExperience prepends a work-history entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, input ExperienceInput) (*models.Profile, error) {
	if input.Title == "" {
		return nil, models.NewValidationError("title is required")
	}
	if input.Company == "" {
		return nil, models.NewValidationError("company is required")
	}
	if input.From == "" {
		return nil, models.NewValidationError("from date is required")
	}

	entry := models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	}

	profile, err := s.profiles.AddExperience(ctx, userID, entry)
	if err != nil {
		return nil, models.NewStoreError("failed to add experience", err)
	}
	if profile == nil {
		return nil, models.NewNotFoundError("there is no profile for this user")
	}
	s.invalidateListing(ctx)
	return profile, nil
}

// RemoveExperience removes an entry by id. Idempotent: a missing id leaves
// the profile untouched and still succeeds.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, models.NewValidationError("invalid experience id")
	}

	profile, err := s.profiles.RemoveExperience(ctx, userID, oid)
	if err != nil {
		return nil, models.NewStoreError("failed to remove experience", err)
	}
	if profile == nil {
		return nil, models.NewNotFoundError("there is no profile for this user")
	}
	s.invalidateListing(ctx)
	return profile, nil
}

// AddEducation prepends an education entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID string, input EducationInput) (*models.Profile, error) {
	if input.School == "" {
		return nil, models.NewValidationError("school is required")
	}
	if input.Degree == "" {
		return nil, models.NewValidationError("degree is required")
	}
	if input.FieldOfStudy == "" {
		return nil, models.NewValidationError("field of study is required")
	}
	if input.From == "" {
		return nil, models.NewValidationError("from date is required")
	}

	entry := models.Education{
		ID:           primitive.NewObjectID(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	}

	profile, err := s.profiles.AddEducation(ctx, userID, entry)
	if err != nil {
		return nil, models.NewStoreError("failed to add education", err)
	}
	if profile == nil {
		return nil, models.NewNotFoundError("there is no profile for this user")
	}
	s.invalidateListing(ctx)
	return profile, nil
}

// RemoveEducation removes an entry by id, idempotently.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID string) (*models.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, models.NewValidationError("invalid education id")
	}

	profile, err := s.profiles.RemoveEducation(ctx, userID, oid)
	if err != nil {
		return nil, models.NewStoreError("failed to remove education", err)
	}
	if profile == nil {
		return nil, models.NewNotFoundError("there is no profile for this user")
	}
	s.invalidateListing(ctx)
	return profile, nil
}

func (s *ProfileService) invalidateListing(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, profilesCacheKey)
	}
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlink-app/devlink-backend/internal/models"
	"github.com/devlink-app/devlink-backend/internal/store/storetest"
)

func TestNormalizeSkills(t *testing.T) {
	assert.Equal(t, []string{"js", "go"}, NormalizeSkills("js, go"))
	assert.Equal(t, []string{"go"}, NormalizeSkills("go"))
	assert.Equal(t, []string{"go", "sql"}, NormalizeSkills("  go ,, sql , "))
	assert.Empty(t, NormalizeSkills(""))
	assert.Empty(t, NormalizeSkills(" , ,"))
}

func TestUpsertCreatesProfile(t *testing.T) {
	svc := NewProfileService(storetest.NewProfileStore(), nil)
	ctx := context.Background()

	profile, err := svc.Upsert(ctx, "user-1", ProfileInput{
		Status:   "Senior Developer",
		Skills:   "go, postgres, redis",
		Company:  "DevLink",
		Twitter:  "https://twitter.com/janedev",
		Linkedin: "https://linkedin.com/in/janedev",
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, "Senior Developer", profile.Status)
	assert.Equal(t, []string{"go", "postgres", "redis"}, profile.Skills)
	assert.Equal(t, "DevLink", profile.Company)
	assert.Equal(t, "https://twitter.com/janedev", profile.Social.Twitter)
	assert.Equal(t, "https://linkedin.com/in/janedev", profile.Social.Linkedin)
}

func TestUpsertPartialMerge(t *testing.T) {
	svc := NewProfileService(storetest.NewProfileStore(), nil)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "user-1", ProfileInput{
		Status:  "Developer",
		Skills:  "go",
		Company: "DevLink",
		Bio:     "builds things",
	})
	require.NoError(t, err)

	// Omitted fields survive the second upsert.
	profile, err := svc.Upsert(ctx, "user-1", ProfileInput{
		Status: "Staff Developer",
		Skills: "go, rust",
	})
	require.NoError(t, err)

	assert.Equal(t, "Staff Developer", profile.Status)
	assert.Equal(t, []string{"go", "rust"}, profile.Skills)
	assert.Equal(t, "DevLink", profile.Company)
	assert.Equal(t, "builds things", profile.Bio)
}

func TestUpsertValidation(t *testing.T) {
	svc := NewProfileService(storetest.NewProfileStore(), nil)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "user-1", ProfileInput{Skills: "go"})
	assert.Equal(t, models.KindValidation, models.KindOf(err))

	_, err = svc.Upsert(ctx, "user-1", ProfileInput{Status: "Developer"})
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

func TestGetByUserIDNotFound(t *testing.T) {
	svc := NewProfileService(storetest.NewProfileStore(), nil)

	_, err := svc.GetByUserID(context.Background(), "nobody")
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestAddExperiencePrepends(t *testing.T) {
	svc := NewProfileService(storetest.NewProfileStore(), nil)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "user-1", ProfileInput{Status: "Developer", Skills: "go"})
	require.NoError(t, err)

	_, err = svc.AddExperience(ctx, "user-1", ExperienceInput{
		Title: "Junior Developer", Company: "First Corp", From: "2018-01-01",
	})
	require.NoError(t, err)

	profile, err := svc.AddExperience(ctx, "user-1", ExperienceInput{
		Title: "Senior Developer", Company: "Second Corp", From: "2021-06-01", Current: true,
	})
	require.NoError(t, err)

	// Most recent entry first
	require.Len(t, profile.Experience, 2)
	assert.Equal(t, "Senior Developer", profile.Experience[0].Title)
	assert.Equal(t, "Junior Developer", profile.Experience[1].Title)
	assert.False(t, profile.Experience[0].ID.IsZero())
}

func TestAddExperienceValidation(t *testing.T) {
	svc := NewProfileService(storetest.NewProfileStore(), nil)
	ctx := context.Background()

	for _, input := range []ExperienceInput{
		{Company: "Corp", From: "2020"},
		{Title: "Dev", From: "2020"},
		{Title: "Dev", Company: "Corp"},
	} {
		_, err := svc.AddExperience(ctx, "user-1", input)
		assert.Equal(t, models.KindValidation, models.KindOf(err), "input=%+v", input)
	}
}

func TestAddExperienceWithoutProfile(t *testing.T) {
	svc := NewProfileService(storetest.NewProfileStore(), nil)

	_, err := svc.AddExperience(context.Background(), "nobody", ExperienceInput{
		Title: "Dev", Company: "Corp", From: "2020",
	})
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestRemoveExperienceIdempotent(t *testing.T) {
	svc := NewProfileService(storetest.NewProfileStore(), nil)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "user-1", ProfileInput{Status: "Developer", Skills: "go"})
	require.NoError(t, err)
	profile, err := svc.AddExperience(ctx, "user-1", ExperienceInput{
		Title: "Dev", Company: "Corp", From: "2020",
	})
	require.NoError(t, err)
	entryID := profile.Experience[0].ID.Hex()

	profile, err = svc.RemoveExperience(ctx, "user-1", entryID)
	require.NoError(t, err)
	assert.Empty(t, profile.Experience)

	// Second remove of the same id still succeeds.
	profile, err = svc.RemoveExperience(ctx, "user-1", entryID)
	require.NoError(t, err)
	assert.Empty(t, profile.Experience)
}

func TestRemoveExperienceInvalidID(t *testing.T) {
	svc := NewProfileService(storetest.NewProfileStore(), nil)

	_, err := svc.RemoveExperience(context.Background(), "user-1", "not-hex")
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

func TestAddEducationPrepends(t *testing.T) {
	svc := NewProfileService(storetest.NewProfileStore(), nil)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "user-1", ProfileInput{Status: "Developer", Skills: "go"})
	require.NoError(t, err)

	_, err = svc.AddEducation(ctx, "user-1", EducationInput{
		School: "State University", Degree: "BSc", FieldOfStudy: "CS", From: "2014",
	})
	require.NoError(t, err)

	profile, err := svc.AddEducation(ctx, "user-1", EducationInput{
		School: "Tech Institute", Degree: "MSc", FieldOfStudy: "Distributed Systems", From: "2018",
	})
	require.NoError(t, err)

	require.Len(t, profile.Education, 2)
	assert.Equal(t, "Tech Institute", profile.Education[0].School)
	assert.Equal(t, "State University", profile.Education[1].School)
}

func TestAddEducationValidation(t *testing.T) {
	svc := NewProfileService(storetest.NewProfileStore(), nil)

	_, err := svc.AddEducation(context.Background(), "user-1", EducationInput{
		School: "State University", Degree: "BSc", From: "2014",
	})
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

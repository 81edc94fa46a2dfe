package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the developer profile aggregate. Exactly one profile per
// identity, enforced by a unique index on user_id. Experience and education
// are ordered most-recent-first: new entries are prepended.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	// Owner identity id. Immutable after creation.
	UserID string `bson:"user_id" json:"user_id"`

	Status         string   `bson:"status,omitempty" json:"status,omitempty"`
	Company        string   `bson:"company,omitempty" json:"company,omitempty"`
	Website        string   `bson:"website,omitempty" json:"website,omitempty"`
	Location       string   `bson:"location,omitempty" json:"location,omitempty"`
	Bio            string   `bson:"bio,omitempty" json:"bio,omitempty"`
	Skills         []string `bson:"skills,omitempty" json:"skills,omitempty"`
	GithubUsername string   `bson:"github_username,omitempty" json:"github_username,omitempty"`

	Social Social `bson:"social,omitempty" json:"social,omitempty"`

	Experience []Experience `bson:"experience,omitempty" json:"experience"`
	Education  []Education  `bson:"education,omitempty" json:"education"`
}

// Social holds optional profile links.
type Social struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Experience is an embedded work-history entry, removable by its own id.
type Experience struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	From        string             `bson:"from" json:"from"`
	To          string             `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

// Education is an embedded education-history entry.
type Education struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"field_of_study" json:"field_of_study"`
	From         string             `bson:"from" json:"from"`
	To           string             `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is the post aggregate. Author name and avatar are denormalized onto
// the document so listings never join against the identity store. Likes are
// set-like (at most one per identity); comments are ordered
// most-recent-first.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	// Creator identity id.
	UserID string `bson:"user_id" json:"user_id"`
	Name   string `bson:"name,omitempty" json:"name,omitempty"`
	Avatar string `bson:"avatar,omitempty" json:"avatar,omitempty"`

	Text  string `bson:"text" json:"text"`
	Image string `bson:"image,omitempty" json:"image,omitempty"`

	Likes    []Like    `bson:"likes,omitempty" json:"likes"`
	Comments []Comment `bson:"comments,omitempty" json:"comments"`
}

// Like marks that one identity liked the post. No two likes on a post may
// carry the same user id.
type Like struct {
	UserID string `bson:"user_id" json:"user_id"`
}

// Comment is an embedded comment, removable only by its author.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	UserID string `bson:"user_id" json:"user_id"`
	Name   string `bson:"name,omitempty" json:"name,omitempty"`
	Avatar string `bson:"avatar,omitempty" json:"avatar,omitempty"`

	Text string `bson:"text" json:"text"`
}

// HasLikeFrom reports whether userID already appears in the post's likes.
func (p *Post) HasLikeFrom(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// CommentByID returns the embedded comment with the given id, or nil.
func (p *Post) CommentByID(id primitive.ObjectID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

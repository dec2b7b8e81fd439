package post

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a blog post with its embedded comments
type Post struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title          string             `json:"title" bson:"title"`
	Body           string             `json:"body" bson:"body"`
	AuthorUsername string             `json:"author_username" bson:"author_username"`
	Tags           []string           `json:"tags" bson:"tags"`
	CoverImage     *string            `json:"cover_image" bson:"cover_image"`
	Published      bool               `json:"published" bson:"published"`
	CreatedAt      *time.Time         `json:"created_at,omitempty" bson:"created_at,omitempty"` // nil on documents written without one
	Comments       []Comment          `json:"comments" bson:"comments"`
}

// Comment is stored inside its post; it has no id of its own
type Comment struct {
	AuthorUsername string    `json:"author_username" bson:"author_username"`
	Content        string    `json:"content" bson:"content"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// Field names used in filters and updates
const (
	FieldTags           = "tags"
	FieldAuthorUsername = "author_username"
	FieldComments       = "comments"
)

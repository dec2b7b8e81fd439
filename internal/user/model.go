package user

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents a blog author or commenter
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Bio       *string            `json:"bio" bson:"bio"`
	AvatarURL *string            `json:"avatar_url" bson:"avatar_url"`
	Website   *string            `json:"website" bson:"website"`
}

// Field names used in filters and indexes
const (
	FieldUsername = "username"
	FieldEmail    = "email"
)

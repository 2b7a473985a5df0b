package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment is immutable once created.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	AuthorID  primitive.ObjectID `bson:"authorId" json:"authorId"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	Author    *User              `bson:"-" json:"author,omitempty"` // Populated in response only
}

package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Group is a read-only category. Groups are seeded through the store,
// never through the HTTP surface.
type Group struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
}

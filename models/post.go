package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Post struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AuthorID  primitive.ObjectID  `bson:"authorId" json:"authorId"`
	GroupID   *primitive.ObjectID `bson:"groupId,omitempty" json:"groupId,omitempty"` // Optional
	Text      string              `bson:"text" json:"text"`
	Image     string              `bson:"image,omitempty" json:"image,omitempty"` // Optional, URL or storage path
	CreatedAt int64               `bson:"createdAt" json:"createdAt"`
	Author    *User               `bson:"-" json:"author,omitempty"` // Populated in response only
	Group     *Group              `bson:"-" json:"group,omitempty"`  // Populated in response only
}

package models

import "time"

// Launch is one feed entry for a product, eligible for upvotes and comments.
type Launch struct {
	ID           string        `bson:"_id" json:"id"`
	ProductID    string        `bson:"productId" json:"productId"`
	HunterID     string        `bson:"hunterId" json:"hunterId"`
	LaunchDate   time.Time     `bson:"launchDate" json:"launchDate"`
	Status       PublishStatus `bson:"status" json:"status"`
	HeroImageURL *string       `bson:"heroImageUrl" json:"heroImageUrl"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
}

// Upvote is keyed "<userId>_<launchId>" so a user can upvote a launch once.
type Upvote struct {
	ID        string    `bson:"_id" json:"id"`
	LaunchID  string    `bson:"launchId" json:"launchId"`
	UserID    string    `bson:"userId" json:"userId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Comment on a launch. ParentID is set on replies, one level deep.
type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	LaunchID  string    `bson:"launchId" json:"launchId"`
	UserID    string    `bson:"userId" json:"userId"`
	Body      string    `bson:"body" json:"body"`
	ParentID  *string   `bson:"parentId" json:"parentId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// LaunchCounts carries the engagement counters for one launch.
type LaunchCounts struct {
	Upvotes  int `json:"upvotes"`
	Comments int `json:"comments"`
}

package models

import "time"

// PublishStatus covers the lifecycle of products and launches
type PublishStatus string

const (
	StatusDraft     PublishStatus = "DRAFT"
	StatusScheduled PublishStatus = "SCHEDULED"
	StatusLive      PublishStatus = "LIVE"
	StatusArchived  PublishStatus = "ARCHIVED"
)

// MediaType distinguishes product media entries
type MediaType string

const (
	MediaImage MediaType = "IMAGE"
	MediaVideo MediaType = "VIDEO"
)

// Topic is a tag grouping products, addressed by slug.
type Topic struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Description *string   `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Product is a published maker product. Topics are denormalized as slugs.
type Product struct {
	ID          string        `bson:"_id" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Slug        string        `bson:"slug" json:"slug"`
	Tagline     string        `bson:"tagline" json:"tagline"`
	Description string        `bson:"description" json:"description"`
	WebsiteURL  string        `bson:"websiteUrl" json:"websiteUrl"`
	LogoURL     *string       `bson:"logoUrl" json:"logoUrl"`
	Status      PublishStatus `bson:"status" json:"status"`
	MakerID     string        `bson:"makerId" json:"makerId"`
	TopicSlugs  []string      `bson:"topicSlugs" json:"topicSlugs"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ProductMedia is a gallery entry attached to a product.
type ProductMedia struct {
	ID        string    `bson:"_id" json:"id"`
	ProductID string    `bson:"productId" json:"productId"`
	Type      MediaType `bson:"type" json:"type"`
	URL       string    `bson:"url" json:"url"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

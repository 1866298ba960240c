package dto

// CreateProductRequest represents a product publish request
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Tagline     string   `json:"tagline" binding:"required,max=120"`
	Description string   `json:"description"`
	WebsiteURL  string   `json:"websiteUrl" binding:"omitempty,url"`
	LogoURL     *string  `json:"logoUrl"`
	TopicSlugs  []string `json:"topicSlugs"`
	MediaURLs   []string `json:"mediaUrls"`
}

// CreateCommentRequest represents a new comment on a launch
type CreateCommentRequest struct {
	Body     string  `json:"body" binding:"required"`
	ParentID *string `json:"parentId"`
}

package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/app/repositories"
	"github.com/cphunt/backend/internal/pkg/apperrors"
)

var slugCleanRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a URL slug.
func Slugify(name string) string {
	slug := slugCleanRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(slug, "-")
}

// ProductInput carries the fields needed to publish a product.
type ProductInput struct {
	Name        string
	Tagline     string
	Description string
	WebsiteURL  string
	LogoURL     *string
	TopicSlugs  []string
	MediaURLs   []string
}

// ProductDetail joins a product with its media, launches, and maker.
type ProductDetail struct {
	Product  *models.Product       `json:"product"`
	Media    []models.ProductMedia `json:"media"`
	Launches []models.Launch       `json:"launches"`
	Maker    *models.PublicUser    `json:"maker"`
}

// ProductService handles product publishing and lookup.
type ProductService struct {
	productRepo *repositories.ProductRepository
	launchRepo  *repositories.LaunchRepository
	topicRepo   *repositories.TopicRepository
	userRepo    *repositories.UserRepository
	logger      zerolog.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo *repositories.ProductRepository, launchRepo *repositories.LaunchRepository, topicRepo *repositories.TopicRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		launchRepo:  launchRepo,
		topicRepo:   topicRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Create publishes a new product for a maker and opens its first launch.
func (s *ProductService) Create(ctx context.Context, makerID string, input ProductInput) (*ProductDetail, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("product name cannot be empty")
	}
	if strings.TrimSpace(input.Tagline) == "" {
		return nil, apperrors.NewValidationError("tagline cannot be empty")
	}

	slug := Slugify(name)
	if slug == "" {
		return nil, apperrors.NewValidationError("product name must contain letters or digits")
	}
	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrSlugTaken
	}

	topicSlugs, err := s.resolveTopics(ctx, input.TopicSlugs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug,
		Tagline:     strings.TrimSpace(input.Tagline),
		Description: strings.TrimSpace(input.Description),
		WebsiteURL:  strings.TrimSpace(input.WebsiteURL),
		LogoURL:     input.LogoURL,
		Status:      models.StatusLive,
		MakerID:     makerID,
		TopicSlugs:  topicSlugs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	media := make([]models.ProductMedia, 0, len(input.MediaURLs))
	for _, url := range input.MediaURLs {
		entry := models.ProductMedia{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			Type:      models.MediaImage,
			URL:       url,
			CreatedAt: now,
		}
		if err := s.productRepo.AddMedia(ctx, &entry); err != nil {
			return nil, err
		}
		media = append(media, entry)
	}

	launch := &models.Launch{
		ID:         uuid.NewString(),
		ProductID:  product.ID,
		HunterID:   makerID,
		LaunchDate: now,
		Status:     models.StatusLive,
		CreatedAt:  now,
	}
	if err := s.launchRepo.Create(ctx, launch); err != nil {
		return nil, err
	}
	s.logger.Info().Str("productId", product.ID).Str("slug", slug).Msg("Product published")

	maker, err := s.userRepo.GetByID(ctx, makerID)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{
		Product:  product,
		Media:    media,
		Launches: []models.Launch{*launch},
		Maker:    maker.Public(),
	}, nil
}

// GetBySlug returns a product page view.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductDetail, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.ErrProductNotFound
	}

	media, err := s.productRepo.ListMedia(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	launches, err := s.launchRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	maker, err := s.userRepo.GetByID(ctx, product.MakerID)
	if err != nil {
		return nil, err
	}

	return &ProductDetail{
		Product:  product,
		Media:    media,
		Launches: launches,
		Maker:    maker.Public(),
	}, nil
}

// ListByMaker returns a maker's products, newest first.
func (s *ProductService) ListByMaker(ctx context.Context, makerID string) ([]models.Product, error) {
	return s.productRepo.ListByMaker(ctx, makerID)
}

// TopicDetail is a topic page: the topic and the products tagged with it.
type TopicDetail struct {
	Topic    *models.Topic    `json:"topic"`
	Products []models.Product `json:"products"`
}

// GetTopic returns a topic with its products.
func (s *ProductService) GetTopic(ctx context.Context, topicSlug string, limit int) (*TopicDetail, error) {
	topic, err := s.topicRepo.GetBySlug(ctx, topicSlug)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, apperrors.ErrTopicNotFound
	}
	if limit <= 0 || limit > maxFeedLimit {
		limit = defaultFeedLimit
	}
	products, err := s.productRepo.ListByTopic(ctx, topicSlug, limit)
	if err != nil {
		return nil, err
	}
	return &TopicDetail{Topic: topic, Products: products}, nil
}

// ListByTopic returns the products tagged with a topic.
func (s *ProductService) ListByTopic(ctx context.Context, topicSlug string, limit int) ([]models.Product, error) {
	detail, err := s.GetTopic(ctx, topicSlug, limit)
	if err != nil {
		return nil, err
	}
	return detail.Products, nil
}

// ListTopics returns all topics.
func (s *ProductService) ListTopics(ctx context.Context) ([]models.Topic, error) {
	return s.topicRepo.List(ctx)
}

// resolveTopics verifies each referenced topic exists, creating unknown ones
// on the fly so maker-supplied tags never dangle.
func (s *ProductService) resolveTopics(ctx context.Context, slugs []string) ([]string, error) {
	resolved := make([]string, 0, len(slugs))
	seen := make(map[string]struct{}, len(slugs))
	for _, raw := range slugs {
		slug := Slugify(raw)
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}

		topic, err := s.topicRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if topic == nil {
			topic = &models.Topic{
				ID:        uuid.NewString(),
				Name:      strings.TrimSpace(raw),
				Slug:      slug,
				CreatedAt: time.Now().UTC(),
			}
			if err := s.topicRepo.Create(ctx, topic); err != nil {
				return nil, err
			}
		}
		resolved = append(resolved, slug)
	}
	return resolved, nil
}

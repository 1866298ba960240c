package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/app/ranking"
	"github.com/cphunt/backend/internal/app/repositories"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 100
	// countFanOutLimit bounds the concurrent count queries per feed build.
	countFanOutLimit = 8
)

// FeedItem is one ranked entry of the launch feed with its product joined in.
type FeedItem struct {
	Rank    int                 `json:"rank"`
	Launch  models.Launch       `json:"launch"`
	Product *models.Product     `json:"product"`
	Counts  models.LaunchCounts `json:"counts"`
	Score   float64             `json:"score"`
}

// FeedService assembles the ranked launch feed.
type FeedService struct {
	launchRepo     *repositories.LaunchRepository
	productRepo    *repositories.ProductRepository
	engagementRepo *repositories.EngagementRepository
	logger         zerolog.Logger
	now            func() time.Time
}

// NewFeedService creates a new FeedService
func NewFeedService(launchRepo *repositories.LaunchRepository, productRepo *repositories.ProductRepository, engagementRepo *repositories.EngagementRepository, logger zerolog.Logger) *FeedService {
	return &FeedService{
		launchRepo:     launchRepo,
		productRepo:    productRepo,
		engagementRepo: engagementRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// GetFeed returns up to limit live launches ordered by popularity score.
// topicSlug, when non-empty, keeps only launches whose product carries the
// topic; ranks are assigned after filtering.
func (s *FeedService) GetFeed(ctx context.Context, limit int, topicSlug string) ([]FeedItem, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	launches, err := s.launchRepo.ListLive(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(launches) == 0 {
		return []FeedItem{}, nil
	}

	productIDs := make([]string, 0, len(launches))
	for _, launch := range launches {
		productIDs = append(productIDs, launch.ProductID)
	}
	products, err := s.productRepo.GetManyByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	if topicSlug != "" {
		launches = filterByTopic(launches, products, topicSlug)
		if len(launches) == 0 {
			return []FeedItem{}, nil
		}
	}

	counts, err := s.engagementCounts(ctx, launches)
	if err != nil {
		return nil, err
	}

	engagements := make([]ranking.LaunchEngagement, len(launches))
	byID := make(map[string]models.Launch, len(launches))
	for i, launch := range launches {
		engagements[i] = ranking.LaunchEngagement{
			ID:         launch.ID,
			LaunchDate: launch.LaunchDate,
			Upvotes:    counts[launch.ID].Upvotes,
			Comments:   counts[launch.ID].Comments,
		}
		byID[launch.ID] = launch
	}

	ranked := ranking.RankAt(engagements, s.now())
	items := make([]FeedItem, len(ranked))
	for i, entry := range ranked {
		launch := byID[entry.Launch.ID]
		items[i] = FeedItem{
			Rank:    i + 1,
			Launch:  launch,
			Product: products[launch.ProductID],
			Counts:  models.LaunchCounts{Upvotes: entry.Launch.Upvotes, Comments: entry.Launch.Comments},
			Score:   entry.Score,
		}
	}
	return items, nil
}

func filterByTopic(launches []models.Launch, products map[string]*models.Product, topicSlug string) []models.Launch {
	kept := launches[:0]
	for _, launch := range launches {
		product := products[launch.ProductID]
		if product == nil {
			continue
		}
		for _, slug := range product.TopicSlugs {
			if slug == topicSlug {
				kept = append(kept, launch)
				break
			}
		}
	}
	return kept
}

// engagementCounts fans out the per-launch count queries concurrently.
func (s *FeedService) engagementCounts(ctx context.Context, launches []models.Launch) (map[string]models.LaunchCounts, error) {
	counts := make([]models.LaunchCounts, len(launches))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(countFanOutLimit)
	for i, launch := range launches {
		group.Go(func() error {
			c, err := s.engagementRepo.Counts(groupCtx, launch.ID)
			if err != nil {
				return err
			}
			counts[i] = *c
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]models.LaunchCounts, len(launches))
	for i, launch := range launches {
		byID[launch.ID] = counts[i]
	}
	return byID, nil
}

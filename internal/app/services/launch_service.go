package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/app/repositories"
	"github.com/cphunt/backend/internal/pkg/apperrors"
)

const (
	maxCommentLength   = 2000
	defaultCommentPage = 100
)

// LaunchDetail is one launch with its engagement counters.
type LaunchDetail struct {
	Launch  *models.Launch      `json:"launch"`
	Product *models.Product     `json:"product"`
	Counts  models.LaunchCounts `json:"counts"`
	Upvoted bool                `json:"upvoted"`
}

// LaunchService handles upvotes and comments on launches.
type LaunchService struct {
	launchRepo     *repositories.LaunchRepository
	productRepo    *repositories.ProductRepository
	engagementRepo *repositories.EngagementRepository
	logger         zerolog.Logger
}

// NewLaunchService creates a new LaunchService
func NewLaunchService(launchRepo *repositories.LaunchRepository, productRepo *repositories.ProductRepository, engagementRepo *repositories.EngagementRepository, logger zerolog.Logger) *LaunchService {
	return &LaunchService{
		launchRepo:     launchRepo,
		productRepo:    productRepo,
		engagementRepo: engagementRepo,
		logger:         logger,
	}
}

// Get returns one launch with counts. viewerID may be empty for anonymous
// requests.
func (s *LaunchService) Get(ctx context.Context, launchID, viewerID string) (*LaunchDetail, error) {
	launch, err := s.requireLaunch(ctx, launchID)
	if err != nil {
		return nil, err
	}

	counts, err := s.engagementRepo.Counts(ctx, launchID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, launch.ProductID)
	if err != nil {
		return nil, err
	}

	detail := &LaunchDetail{Launch: launch, Product: product, Counts: *counts}
	if viewerID != "" {
		if detail.Upvoted, err = s.engagementRepo.HasUpvoted(ctx, viewerID, launchID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// Upvote records a user's upvote. Repeat upvotes are accepted silently.
func (s *LaunchService) Upvote(ctx context.Context, userID, launchID string) (*models.LaunchCounts, error) {
	if _, err := s.requireLaunch(ctx, launchID); err != nil {
		return nil, err
	}
	if err := s.engagementRepo.Upvote(ctx, userID, launchID); err != nil {
		return nil, err
	}
	return s.engagementRepo.Counts(ctx, launchID)
}

// RemoveUpvote withdraws a user's upvote.
func (s *LaunchService) RemoveUpvote(ctx context.Context, userID, launchID string) (*models.LaunchCounts, error) {
	if _, err := s.requireLaunch(ctx, launchID); err != nil {
		return nil, err
	}
	if err := s.engagementRepo.RemoveUpvote(ctx, userID, launchID); err != nil {
		return nil, err
	}
	return s.engagementRepo.Counts(ctx, launchID)
}

// Comment posts a comment, optionally as a reply.
func (s *LaunchService) Comment(ctx context.Context, userID, launchID, body string, parentID *string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("comment cannot be empty")
	}
	if len(body) > maxCommentLength {
		return nil, apperrors.NewValidationError("comment is too long")
	}
	if _, err := s.requireLaunch(ctx, launchID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		LaunchID:  launchID,
		UserID:    userID,
		Body:      body,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.engagementRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// CommentThread is a top-level comment with its direct replies.
type CommentThread struct {
	models.Comment
	Replies []models.Comment `json:"replies"`
}

// Comments lists a launch's comments threaded one level deep, newest
// top-level comment first with replies in posting order.
func (s *LaunchService) Comments(ctx context.Context, launchID string, limit int) ([]CommentThread, error) {
	if _, err := s.requireLaunch(ctx, launchID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultCommentPage
	}
	comments, err := s.engagementRepo.ListComments(ctx, launchID, limit)
	if err != nil {
		return nil, err
	}
	return threadComments(comments), nil
}

// threadComments groups replies under their parents. Input arrives newest
// first; replies are reversed back into chronological order. A reply whose
// parent fell outside the page is promoted to top level.
func threadComments(comments []models.Comment) []CommentThread {
	threads := make([]CommentThread, 0, len(comments))
	index := make(map[string]int, len(comments))
	var orphans []models.Comment

	for _, comment := range comments {
		if comment.ParentID == nil {
			index[comment.ID] = len(threads)
			threads = append(threads, CommentThread{Comment: comment})
			continue
		}
		orphans = append(orphans, comment)
	}
	for i := len(orphans) - 1; i >= 0; i-- {
		reply := orphans[i]
		if at, ok := index[*reply.ParentID]; ok {
			threads[at].Replies = append(threads[at].Replies, reply)
			continue
		}
		index[reply.ID] = len(threads)
		threads = append(threads, CommentThread{Comment: reply})
	}
	return threads
}

func (s *LaunchService) requireLaunch(ctx context.Context, launchID string) (*models.Launch, error) {
	launch, err := s.launchRepo.GetByID(ctx, launchID)
	if err != nil {
		return nil, err
	}
	if launch == nil {
		return nil, apperrors.ErrLaunchNotFound
	}
	return launch, nil
}

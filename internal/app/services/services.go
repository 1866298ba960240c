package services

import (
	"github.com/rs/zerolog"

	"github.com/cphunt/backend/internal/app/repositories"
	"github.com/cphunt/backend/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService        *AuthService
	UserService        *UserService
	FeedService        *FeedService
	ProductService     *ProductService
	LaunchService      *LaunchService
	EventService       *EventService
	ApplicationService *ApplicationService
	SocialService      *SocialService
}

// NewServices wires every service to its repositories.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, logger zerolog.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(repos.UserRepository, jwtService, logger),
		UserService: NewUserService(repos.UserRepository, repos.RegistrationRepository, logger),
		FeedService: NewFeedService(repos.LaunchRepository, repos.ProductRepository, repos.EngagementRepository, logger),
		ProductService: NewProductService(
			repos.ProductRepository,
			repos.LaunchRepository,
			repos.TopicRepository,
			repos.UserRepository,
			logger,
		),
		LaunchService: NewLaunchService(repos.LaunchRepository, repos.ProductRepository, repos.EngagementRepository, logger),
		EventService: NewEventService(
			repos.RegistrationRepository,
			repos.TeammatePostRepository,
			repos.ApplicationRepository,
			repos.UserRepository,
			logger,
		),
		ApplicationService: NewApplicationService(repos.ApplicationRepository, repos.UserRepository, logger),
		SocialService: NewSocialService(
			repos.FollowRepository,
			repos.NotificationRepository,
			repos.ReportRepository,
			repos.UserRepository,
			repos.LaunchRepository,
			logger,
		),
	}
}

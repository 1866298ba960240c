package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cphunt/backend/internal/app/events"
	"github.com/cphunt/backend/internal/app/models/dto"
	"github.com/cphunt/backend/internal/app/services"
	"github.com/cphunt/backend/internal/middleware"
)

// EventController handles event pages, registration, and teammate search
type EventController struct {
	eventService *services.EventService
	userService  *services.UserService
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService, userService *services.UserService) *EventController {
	return &EventController{
		eventService: eventService,
		userService:  userService,
	}
}

// ListEvents returns the event catalog
// @Summary List events
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]events.EventConfig}
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(events.All()))
}

// GetEvent returns one event page
// @Summary Get an event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} dto.APIResponse{data=events.EventConfig}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{slug} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	event, err := c.eventService.GetEvent(ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(event))
}

// GetRegistration returns the caller's registration
// @Summary Get own event registration
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} dto.APIResponse{data=models.EventRegistration}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /events/{slug}/registration [get]
func (c *EventController) GetRegistration(ctx *gin.Context) {
	registration, err := c.eventService.GetRegistration(ctx, ctx.Param("slug"), ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(registration))
}

// Register upserts the caller's registration
// @Summary Register for an event
// @Description Creates or updates the caller's registration; omitted fields keep prior values
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param request body dto.RegisterEventRequest true "Registration form"
// @Success 200 {object} dto.APIResponse{data=models.EventRegistration}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /events/{slug}/register [post]
func (c *EventController) Register(ctx *gin.Context) {
	var request dto.RegisterEventRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.GetByID(ctx, ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	registration, err := c.eventService.Register(ctx, user, ctx.Param("slug"), services.RegistrationInput{
		ParticipationType: request.ParticipationType,
		TeamName:          request.TeamName,
		ProjectName:       request.ProjectName,
		Skills:            request.Skills,
		Bio:               request.Bio,
		TeammatePref:      request.TeammatePref,
		ReferralSource:    request.ReferralSource,
		EligibilityAgreed: request.EligibilityAgreed,
		RulesAgreed:       request.RulesAgreed,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(registration))
}

// Participants returns one page of an event's participants
// @Summary List event participants
// @Description Returns participants ordered by registration time with cursor pagination
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Param limit query int false "Page size" default(200)
// @Param cursor query string false "Cursor from a previous page"
// @Success 200 {object} dto.APIResponse{data=services.ParticipantsPage}
// @Failure 400 {object} dto.ErrorResponse "Invalid limit or cursor"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /events/{slug}/participants [get]
func (c *EventController) Participants(ctx *gin.Context) {
	limit := 0
	if limitParam := ctx.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "limit must be a positive number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		limit = parsed
	}

	page, err := c.eventService.Participants(ctx, ctx.Param("slug"), limit, ctx.Query("cursor"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(page))
}

// Stats returns an event's engagement counters
// @Summary Get event stats
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} dto.APIResponse{data=services.EventStats}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /events/{slug}/stats [get]
func (c *EventController) Stats(ctx *gin.Context) {
	stats, err := c.eventService.Stats(ctx, ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

// ListTeammatePosts lists teammate-search posts
// @Summary List teammate posts
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Param limit query int false "Maximum entries" default(100)
// @Success 200 {object} dto.APIResponse{data=[]models.TeammatePost}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /events/{slug}/teammates [get]
func (c *EventController) ListTeammatePosts(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	posts, err := c.eventService.TeammatePosts(ctx, ctx.Param("slug"), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(posts))
}

// CreateTeammatePost publishes a teammate-search post
// @Summary Post a teammate search
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param request body dto.TeammatePostRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=models.TeammatePost}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not registered for this event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /events/{slug}/teammates [post]
func (c *EventController) CreateTeammatePost(ctx *gin.Context) {
	var request dto.TeammatePostRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid post data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.eventService.PostTeammateSearch(ctx, ctx.GetString(middleware.ContextUserID), ctx.Param("slug"), services.TeammatePostInput{
		ParticipationType: request.ParticipationType,
		LookingFor:        request.LookingFor,
		Message:           request.Message,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(post))
}

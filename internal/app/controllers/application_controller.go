package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/app/models/dto"
	"github.com/cphunt/backend/internal/app/services"
	"github.com/cphunt/backend/internal/middleware"
)

// ApplicationController handles event application operations. Every route
// requires an event registration: unregistered callers get 403.
type ApplicationController struct {
	applicationService *services.ApplicationService
	eventService       *services.EventService
	userService        *services.UserService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, eventService *services.EventService, userService *services.UserService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		eventService:       eventService,
		userService:        userService,
	}
}

// requireRegisteredUser loads the caller and verifies they registered for the
// event before any application access.
func (c *ApplicationController) requireRegisteredUser(ctx *gin.Context) (*models.User, bool) {
	user, err := c.userService.GetByID(ctx, ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}

	registration, err := c.eventService.GetRegistration(ctx, ctx.Param("slug"), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	if registration == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeNotRegistered, "Not registered for this event. Register first.")
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return user, true
}

// GetApplication returns the caller's application
// @Summary Get own event application
// @Description Returns the application with freshly derived team statuses, or null when none exists
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} dto.APIResponse{data=models.EventApplication}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not registered for this event"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /events/{slug}/application [get]
func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	user, ok := c.requireRegisteredUser(ctx)
	if !ok {
		return
	}

	application, err := c.applicationService.GetByUser(ctx, ctx.Param("slug"), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if application == nil {
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil))
		return
	}

	// Statuses are derived, never authoritative: recompute for display.
	refreshed, err := c.applicationService.RefreshTeamStatuses(ctx, application.TeamMembers)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	application.TeamMembers = refreshed
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(application))
}

// SaveDraft saves the application draft
// @Summary Save an application draft
// @Description Replaces team members and sections wholesale; submitted status survives
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param request body dto.SaveDraftRequest true "Draft content"
// @Success 200 {object} dto.APIResponse{data=models.EventApplication}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not registered for this event"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /events/{slug}/application [post]
func (c *ApplicationController) SaveDraft(ctx *gin.Context) {
	user, ok := c.requireRegisteredUser(ctx)
	if !ok {
		return
	}

	var request dto.SaveDraftRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid draft data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	application, err := c.applicationService.UpsertDraft(ctx, ctx.Param("slug"), user.ID, dto.ToTeamMembers(request.TeamMembers), request.Sections)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(application))
}

// Submit moves the application to submitted
// @Summary Submit an application
// @Description Submits the team's application; members with resolved but incomplete profiles block submission
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "No draft or team incomplete"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not registered for this event"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /events/{slug}/application/submit [post]
func (c *ApplicationController) Submit(ctx *gin.Context) {
	user, ok := c.requireRegisteredUser(ctx)
	if !ok {
		return
	}

	ownerID, err := c.applicationService.ResolveOwnerID(ctx, ctx.Param("slug"), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.applicationService.Submit(ctx, ctx.Param("slug"), ownerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{OK: true}))
}

// AddTeamMember adds an email to the team roster
// @Summary Add a team member
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param request body dto.AddTeamMemberRequest true "Member email"
// @Success 200 {object} dto.APIResponse{data=dto.AddTeamMemberResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid email or already added"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not registered for this event"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /events/{slug}/application/team [post]
func (c *ApplicationController) AddTeamMember(ctx *gin.Context) {
	user, ok := c.requireRegisteredUser(ctx)
	if !ok {
		return
	}

	var request dto.AddTeamMemberRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid member data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	ownerID, err := c.applicationService.ResolveOwnerID(ctx, ctx.Param("slug"), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	member, err := c.applicationService.AddTeamMember(ctx, ctx.Param("slug"), ownerID, request.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.AddTeamMemberResponse{OK: true, Member: *member}))
}

// RemoveTeamMember drops an email from the roster
// @Summary Remove a team member
// @Description Removes the email from the roster; unknown emails are a silent no-op
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param email query string true "Member email"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing email"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not registered for this event"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /events/{slug}/application/team [delete]
func (c *ApplicationController) RemoveTeamMember(ctx *gin.Context) {
	user, ok := c.requireRegisteredUser(ctx)
	if !ok {
		return
	}

	email := ctx.Query("email")
	if email == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing email query parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	ownerID, err := c.applicationService.ResolveOwnerID(ctx, ctx.Param("slug"), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.applicationService.RemoveTeamMember(ctx, ctx.Param("slug"), ownerID, email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{OK: true}))
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cphunt/backend/internal/app/models/dto"
	"github.com/cphunt/backend/internal/app/services"
	"github.com/cphunt/backend/internal/middleware"
)

// SocialController handles follows, notifications, and launch reports
type SocialController struct {
	socialService *services.SocialService
}

// NewSocialController creates a new SocialController
func NewSocialController(socialService *services.SocialService) *SocialController {
	return &SocialController{socialService: socialService}
}

// Follow records the caller following another user
// @Summary Follow a user
// @Description Records the follow and returns the followee's follower count; repeating is a no-op
// @Tags social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FollowRequest true "User to follow"
// @Success 200 {object} dto.APIResponse{data=dto.FollowResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /follow [post]
func (c *SocialController) Follow(ctx *gin.Context) {
	var request dto.FollowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid follow data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	followers, err := c.socialService.Follow(ctx, ctx.GetString(middleware.ContextUserID), request.FolloweeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FollowResponse{Followers: followers}))
}

// Notifications lists the caller's notifications
// @Summary List notifications
// @Description Returns the caller's notifications, newest first
// @Tags social
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Notification}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /notifications [get]
func (c *SocialController) Notifications(ctx *gin.Context) {
	notifications, err := c.socialService.Notifications(ctx, ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notifications))
}

// Report files a complaint about a launch
// @Summary Report a launch
// @Tags social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReportRequest true "Report details"
// @Success 201 {object} dto.APIResponse{data=dto.ReportResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid report data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Launch not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /reports [post]
func (c *SocialController) Report(ctx *gin.Context) {
	var request dto.ReportRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid report data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	id, err := c.socialService.Report(ctx, ctx.GetString(middleware.ContextUserID), request.LaunchID, request.Reason, request.Details)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.ReportResponse{ID: id}))
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cphunt/backend/internal/app/models/dto"
	"github.com/cphunt/backend/internal/app/services"
	"github.com/cphunt/backend/internal/middleware"
)

// LaunchController handles launch engagement operations
type LaunchController struct {
	launchService *services.LaunchService
}

// NewLaunchController creates a new LaunchController
func NewLaunchController(launchService *services.LaunchService) *LaunchController {
	return &LaunchController{launchService: launchService}
}

// GetLaunch returns one launch with counts
// @Summary Get a launch
// @Tags launches
// @Produce json
// @Param id path string true "Launch id"
// @Success 200 {object} dto.APIResponse{data=services.LaunchDetail}
// @Failure 404 {object} dto.ErrorResponse "Launch not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /launches/{id} [get]
func (c *LaunchController) GetLaunch(ctx *gin.Context) {
	detail, err := c.launchService.Get(ctx, ctx.Param("id"), ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(detail))
}

// Upvote records the caller's upvote
// @Summary Upvote a launch
// @Description Records the caller's upvote; repeating is a no-op
// @Tags launches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Launch id"
// @Success 200 {object} dto.APIResponse{data=models.LaunchCounts}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Launch not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /launches/{id}/upvote [post]
func (c *LaunchController) Upvote(ctx *gin.Context) {
	counts, err := c.launchService.Upvote(ctx, ctx.GetString(middleware.ContextUserID), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(counts))
}

// RemoveUpvote withdraws the caller's upvote
// @Summary Remove an upvote
// @Tags launches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Launch id"
// @Success 200 {object} dto.APIResponse{data=models.LaunchCounts}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Launch not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /launches/{id}/upvote [delete]
func (c *LaunchController) RemoveUpvote(ctx *gin.Context) {
	counts, err := c.launchService.RemoveUpvote(ctx, ctx.GetString(middleware.ContextUserID), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(counts))
}

// CreateComment posts a comment
// @Summary Comment on a launch
// @Tags launches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Launch id"
// @Param request body dto.CreateCommentRequest true "Comment body"
// @Success 201 {object} dto.APIResponse{data=models.Comment}
// @Failure 400 {object} dto.ErrorResponse "Invalid comment"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Launch not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /launches/{id}/comments [post]
func (c *LaunchController) CreateComment(ctx *gin.Context) {
	var request dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid comment data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	comment, err := c.launchService.Comment(ctx, ctx.GetString(middleware.ContextUserID), ctx.Param("id"), request.Body, request.ParentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(comment))
}

// ListComments lists a launch's comments threaded one level deep
// @Summary List comments on a launch
// @Tags launches
// @Produce json
// @Param id path string true "Launch id"
// @Param limit query int false "Maximum entries" default(100)
// @Success 200 {object} dto.APIResponse{data=[]services.CommentThread}
// @Failure 404 {object} dto.ErrorResponse "Launch not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /launches/{id}/comments [get]
func (c *LaunchController) ListComments(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	comments, err := c.launchService.Comments(ctx, ctx.Param("id"), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(comments))
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cphunt/backend/internal/app/models/dto"
	"github.com/cphunt/backend/internal/app/services"
	"github.com/cphunt/backend/internal/middleware"
)

// FeedController serves the ranked launch feed
type FeedController struct {
	feedService *services.FeedService
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService *services.FeedService) *FeedController {
	return &FeedController{feedService: feedService}
}

// GetFeed returns the ranked launch feed
// @Summary Get the launch feed
// @Description Returns live launches ordered by popularity score
// @Tags feed
// @Produce json
// @Param limit query int false "Maximum entries" default(50)
// @Param topic query string false "Keep only launches tagged with this topic slug"
// @Success 200 {object} dto.APIResponse{data=[]services.FeedItem}
// @Failure 400 {object} dto.ErrorResponse "Invalid limit"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /feed [get]
func (c *FeedController) GetFeed(ctx *gin.Context) {
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

	items, err := c.feedService.GetFeed(ctx, limit, ctx.Query("topic"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(items))
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cphunt/backend/internal/app/models/dto"
	"github.com/cphunt/backend/internal/app/services"
	"github.com/cphunt/backend/internal/middleware"
)

// ProfileController handles user profile operations
type ProfileController struct {
	userService    *services.UserService
	productService *services.ProductService
}

// NewProfileController creates a new ProfileController
func NewProfileController(userService *services.UserService, productService *services.ProductService) *ProfileController {
	return &ProfileController{
		userService:    userService,
		productService: productService,
	}
}

// GetProfile returns the caller's profile
// @Summary Get own profile
// @Description Returns the authenticated user's profile including the hackathon completeness flag
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	user, err := c.userService.GetByID(ctx, ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewProfileResponse(user)))
}

// UpdateProfile applies a partial profile update
// @Summary Update own profile
// @Description Updates the given profile fields and fans the display snapshot out onto event registrations
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	var request dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profile data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.UpdateProfile(ctx, ctx.GetString(middleware.ContextUserID), services.ProfileUpdateInput{
		Name:        request.Name,
		Bio:         request.Bio,
		AvatarURL:   request.AvatarURL,
		Experience:  request.Experience,
		LinkedInURL: request.LinkedInURL,
		XURL:        request.XURL,
		GitHubURL:   request.GitHubURL,
		WebsiteURL:  request.WebsiteURL,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewProfileResponse(user)))
}

// GetUserByUsername returns a public profile
// @Summary Get a user's public profile
// @Tags profile
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /users/{username} [get]
func (c *ProfileController) GetUserByUsername(ctx *gin.Context) {
	user, err := c.userService.GetByUsername(ctx, ctx.Param("username"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user)))
}

// ListUserProducts returns the products a user has made
// @Summary List a user's products
// @Tags profile
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.APIResponse{data=[]models.Product}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /users/{username}/products [get]
func (c *ProfileController) ListUserProducts(ctx *gin.Context) {
	user, err := c.userService.GetByUsername(ctx, ctx.Param("username"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	products, err := c.productService.ListByMaker(ctx, user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(products))
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cphunt/backend/internal/app/models/dto"
	"github.com/cphunt/backend/internal/app/services"
	"github.com/cphunt/backend/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles account creation
// @Summary Register a new account
// @Description Creates an account and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email or username already in use"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.authService.Register(ctx, services.RegisterInput{
		Email:    request.Email,
		Username: request.Username,
		Password: request.Password,
		Name:     request.Name,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(c.authResponse(result)))
}

// Login handles credential verification
// @Summary Log in
// @Description Verifies credentials and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.authService.Login(ctx, request.Email, request.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.authResponse(result)))
}

func (c *AuthController) authResponse(result *services.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: result.Token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(result.ExpiresIn),
		},
		User: dto.NewUserResponse(result.User),
	}
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cphunt/backend/internal/app/models/dto"
	"github.com/cphunt/backend/internal/app/services"
	"github.com/cphunt/backend/internal/middleware"
)

// ProductController handles product and topic operations
type ProductController struct {
	productService *services.ProductService
}

// NewProductController creates a new ProductController
func NewProductController(productService *services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// CreateProduct publishes a product
// @Summary Publish a product
// @Description Creates a product with its media and opens its first launch
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProductRequest true "Product information"
// @Success 201 {object} dto.APIResponse{data=services.ProductDetail}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Slug already in use"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /products [post]
func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var request dto.CreateProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid product data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	detail, err := c.productService.Create(ctx, ctx.GetString(middleware.ContextUserID), services.ProductInput{
		Name:        request.Name,
		Tagline:     request.Tagline,
		Description: request.Description,
		WebsiteURL:  request.WebsiteURL,
		LogoURL:     request.LogoURL,
		TopicSlugs:  request.TopicSlugs,
		MediaURLs:   request.MediaURLs,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(detail))
}

// GetProduct returns a product page
// @Summary Get a product by slug
// @Tags products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} dto.APIResponse{data=services.ProductDetail}
// @Failure 404 {object} dto.ErrorResponse "Product not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /products/{slug} [get]
func (c *ProductController) GetProduct(ctx *gin.Context) {
	detail, err := c.productService.GetBySlug(ctx, ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(detail))
}

// ListTopics returns all topics
// @Summary List topics
// @Tags topics
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Topic}
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /topics [get]
func (c *ProductController) ListTopics(ctx *gin.Context) {
	topics, err := c.productService.ListTopics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(topics))
}

// GetTopic returns a topic page
// @Summary Get a topic with its products
// @Tags topics
// @Produce json
// @Param slug path string true "Topic slug"
// @Param limit query int false "Maximum products" default(50)
// @Success 200 {object} dto.APIResponse{data=services.TopicDetail}
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /topics/{slug} [get]
func (c *ProductController) GetTopic(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	detail, err := c.productService.GetTopic(ctx, ctx.Param("slug"), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(detail))
}

// ListTopicProducts returns the products tagged with a topic
// @Summary List products in a topic
// @Tags topics
// @Produce json
// @Param slug path string true "Topic slug"
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {object} dto.APIResponse{data=[]models.Product}
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /topics/{slug}/products [get]
func (c *ProductController) ListTopicProducts(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	products, err := c.productService.ListByTopic(ctx, ctx.Param("slug"), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(products))
}

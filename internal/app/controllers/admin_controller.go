package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cphunt/backend/internal/app/models/dto"
	"github.com/cphunt/backend/internal/app/services"
	"github.com/cphunt/backend/internal/db"
	"github.com/cphunt/backend/internal/middleware"
)

// AdminController exposes data overview, moderation, and schema migration
// operations to administrators.
type AdminController struct {
	migrator     *db.Migrator
	eventService *services.EventService
}

// NewAdminController creates a new AdminController
func NewAdminController(migrator *db.Migrator, eventService *services.EventService) *AdminController {
	return &AdminController{
		migrator:     migrator,
		eventService: eventService,
	}
}

// ListEventApplications returns every application for an event
// @Summary List an event's applications
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Success 200 {object} dto.APIResponse{data=[]models.EventApplication}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /admin/events/{slug}/applications [get]
func (c *AdminController) ListEventApplications(ctx *gin.Context) {
	applications, err := c.eventService.Applications(ctx, ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applications))
}

// Overview reports document counts per logical collection
// @Summary Get the admin data overview
// @Description Returns the effective document count for every collection, taking the generation with data
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /admin/overview [get]
func (c *AdminController) Overview(ctx *gin.Context) {
	reports, _, err := c.migrator.Status(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	counts := make(map[string]int64, len(reports))
	for _, report := range reports {
		// The versioned generation owns the data once populated.
		n := report.VersionedCount
		if n == 0 {
			n = report.LegacyCount
		}
		counts[report.Key] = n
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"counts": counts}))
}

// SchemaStatus reports per-collection migration progress
// @Summary Get schema migration status
// @Description Compares document counts between legacy and versioned collections
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /admin/schema/status [get]
func (c *AdminController) SchemaStatus(ctx *gin.Context) {
	reports, meta, err := c.migrator.Status(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{
		"collections": reports,
		"meta":        meta,
	}))
}

// RunMigration copies legacy collections into the versioned generation
// @Summary Run the schema migration
// @Description Copies every legacy collection into its versioned counterpart and records the result
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 503 {object} dto.ErrorResponse "Store unavailable"
// @Router /admin/schema/migrate [post]
func (c *AdminController) RunMigration(ctx *gin.Context) {
	meta, err := c.migrator.Run(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(meta))
}

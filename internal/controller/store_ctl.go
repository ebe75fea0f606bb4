package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/middleware"
	"store_rating_v1/internal/service"
)

// ==================== StoreController ====================

// StoreController store catalogue endpoints
type StoreController struct {
	storeService  *service.StoreService
	ratingService *service.RatingService
}

// NewStoreController creates the store controller
func NewStoreController(storeService *service.StoreService, ratingService *service.RatingService) *StoreController {
	return &StoreController{storeService: storeService, ratingService: ratingService}
}

// List stores with rating aggregates
// @Summary List stores
// @Description userRating is included for callers with role user
// @Tags Stores
// @Produce json
// @Security BearerAuth
// @Param name query string false "name contains"
// @Param address query string false "address contains"
// @Param sortBy query string false "sort key" Enums(name, email, address, createdAt, averageRating, totalRatings)
// @Param sortOrder query string false "direction" Enums(asc, desc)
// @Success 200 {array} dto.StoreWithRatingInfo
// @Router /stores [get]
func (c *StoreController) List(ctx *gin.Context) {
	var q dto.StoreListQuery
	if !bindQuery(ctx, &q) {
		return
	}

	stores, err := c.storeService.List(ctx.Request.Context(), middleware.CurrentUser(ctx), &q)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stores)
}

// Get one store with rating aggregates
// @Summary Get store
// @Tags Stores
// @Produce json
// @Security BearerAuth
// @Param id path int true "store id"
// @Success 200 {object} dto.StoreWithRatingInfo
// @Failure 404 {object} dto.ErrorResponse
// @Router /stores/{id} [get]
func (c *StoreController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	store, err := c.storeService.Get(ctx.Request.Context(), middleware.CurrentUser(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, store)
}

// Create a store
// @Summary Create store
// @Tags Stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStoreRequest true "store"
// @Success 201 {object} dto.StoreInfo
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /stores [post]
func (c *StoreController) Create(ctx *gin.Context) {
	var req dto.CreateStoreRequest
	if !bindJSON(ctx, &req) {
		return
	}

	store, err := c.storeService.Create(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, store)
}

// Update a store
// @Summary Update store
// @Tags Stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "store id"
// @Param request body dto.UpdateStoreRequest true "fields to change"
// @Success 200 {object} dto.StoreInfo
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /stores/{id} [put]
func (c *StoreController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateStoreRequest
	if !bindJSON(ctx, &req) {
		return
	}

	store, err := c.storeService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, store)
}

// Delete a store and its ratings
// @Summary Delete store
// @Tags Stores
// @Produce json
// @Security BearerAuth
// @Param id path int true "store id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stores/{id} [delete]
func (c *StoreController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.storeService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Store deleted successfully"})
}

// Ratings of one store; store owners only see their own store
// @Summary List store ratings
// @Tags Stores
// @Produce json
// @Security BearerAuth
// @Param id path int true "store id"
// @Success 200 {array} dto.RatingInfo
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /stores/{id}/ratings [get]
func (c *StoreController) Ratings(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	ratings, err := c.ratingService.ListByStore(ctx.Request.Context(), middleware.CurrentUser(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ratings)
}

// Dashboard of the caller's store
// @Summary Store owner dashboard
// @Tags Stores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StoreDashboardResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /store-dashboard [get]
func (c *StoreController) Dashboard(ctx *gin.Context) {
	dash, err := c.storeService.Dashboard(ctx.Request.Context(), middleware.CurrentUser(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dash)
}

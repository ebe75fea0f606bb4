package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/middleware"
	"store_rating_v1/internal/service"
)

// ==================== RatingController ====================

// RatingController rating endpoints
type RatingController struct {
	ratingService *service.RatingService
}

// NewRatingController creates the rating controller
func NewRatingController(ratingService *service.RatingService) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// List every rating with rater and store
// @Summary List ratings
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.RatingInfo
// @Failure 403 {object} dto.ErrorResponse
// @Router /ratings [get]
func (c *RatingController) List(ctx *gin.Context) {
	ratings, err := c.ratingService.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ratings)
}

// Create the caller's rating of a store
// @Summary Rate store
// @Tags Ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRatingRequest true "rating"
// @Success 201 {object} dto.RatingInfo
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /ratings [post]
func (c *RatingController) Create(ctx *gin.Context) {
	var req dto.CreateRatingRequest
	if !bindJSON(ctx, &req) {
		return
	}

	rating, err := c.ratingService.Create(ctx.Request.Context(), middleware.CurrentUser(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, rating)
}

// Update the caller's rating of a store
// @Summary Re-rate store
// @Tags Ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param storeId path int true "store id"
// @Param request body dto.UpdateRatingRequest true "rating"
// @Success 200 {object} dto.RatingInfo
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /ratings/{storeId} [put]
func (c *RatingController) Update(ctx *gin.Context) {
	storeID, ok := pathID(ctx, "storeId")
	if !ok {
		return
	}
	var req dto.UpdateRatingRequest
	if !bindJSON(ctx, &req) {
		return
	}

	rating, err := c.ratingService.Update(ctx.Request.Context(), middleware.CurrentUser(ctx), storeID, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rating)
}

// Delete a rating
// @Summary Delete rating
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "rating id"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /ratings/{id} [delete]
func (c *RatingController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ratingService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Rating deleted successfully"})
}

package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/artisell/artisell-backend/internal/app/service"
	apperrors "github.com/artisell/artisell-backend/internal/errors"
	"github.com/artisell/artisell-backend/internal/middleware"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
	}
}

type AddFavoriteRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetFavorites returns the user's favorited artworks
// GET /api/v1/favorites
func (ctrl *FavoriteController) GetFavorites(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to favorites", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	favorites, err := ctrl.favoriteService.GetUserFavorites(userID)
	if err != nil {
		log.Error("Failed to fetch favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// AddFavorite favorites an artwork
// POST /api/v1/favorites
func (ctrl *FavoriteController) AddFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to add favorite", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add favorite request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.favoriteService.AddFavorite(userID, req.ProductID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for favorite", map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Artwork not found")
			return
		}
		log.Error("Failed to add favorite", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add favorite")
		return
	}

	log.Info("Favorite added", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Artwork added to favorites",
	})
}

// RemoveFavorite unfavorites an artwork
// DELETE /api/v1/favorites/:product_id
func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to remove favorite", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid artwork ID")
		return
	}

	if err := ctrl.favoriteService.RemoveFavorite(userID, productID); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			log.Warn("Favorite not found for removal", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Artwork is not in your favorites")
			return
		}
		log.Error("Failed to remove favorite", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "remove favorite")
		return
	}

	log.Info("Favorite removed", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Artwork removed from favorites",
	})
}

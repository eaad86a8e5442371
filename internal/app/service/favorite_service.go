package service

import (
	"errors"

	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/internal/app/repository"
	"github.com/artisell/artisell-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

type FavoriteService interface {
	GetUserFavorites(userID uint) ([]model.Favorite, error)
	AddFavorite(userID, productID uint) error
	RemoveFavorite(userID, productID uint) error
	IsFavorite(userID, productID uint) (bool, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	productRepo repository.ProductRepository,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

func (s *favoriteService) GetUserFavorites(userID uint) ([]model.Favorite, error) {
	logger.Debug("Fetching user favorites", map[string]interface{}{
		"user_id": userID,
	})

	favorites, err := s.favoriteRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User favorites fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(favorites),
	})
	return favorites, nil
}

func (s *favoriteService) AddFavorite(userID, productID uint) error {
	logger.Info("Adding favorite", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add favorite: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product for favorite", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	existing, err := s.favoriteRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing favorite", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	// Adding twice is a no-op.
	if existing != nil {
		logger.Debug("Favorite already exists", map[string]interface{}{
			"favorite_id": existing.ID,
		})
		return nil
	}

	favorite := &model.Favorite{
		UserID:    userID,
		ProductID: productID,
	}

	if err := s.favoriteRepo.Create(favorite); err != nil {
		logger.Error("Failed to create favorite", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	logger.Info("Favorite added successfully", map[string]interface{}{
		"favorite_id": favorite.ID,
	})
	return nil
}

func (s *favoriteService) RemoveFavorite(userID, productID uint) error {
	logger.Info("Removing favorite", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if _, err := s.favoriteRepo.FindByUserAndProduct(userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Favorite not found for removal", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return ErrFavoriteNotFound
		}
		logger.Error("Failed to fetch favorite for removal", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	if err := s.favoriteRepo.DeleteByUserAndProduct(userID, productID); err != nil {
		logger.Error("Failed to delete favorite", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	logger.Info("Favorite removed", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})
	return nil
}

func (s *favoriteService) IsFavorite(userID, productID uint) (bool, error) {
	_, err := s.favoriteRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

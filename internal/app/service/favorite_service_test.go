package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/internal/app/repository"
	"github.com/artisell/artisell-backend/internal/db"
)

func setupFavoriteServiceTest(t *testing.T) (FavoriteService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	favoriteRepo := repository.NewFavoriteRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	favoriteService := NewFavoriteService(favoriteRepo, productRepo)

	user := &model.User{
		Email:        "collector@example.com",
		PasswordHash: "hash",
		Name:         "Collector",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Title:   "Tribal Patterns",
		Artist:  "Ana Diaz",
		Price:   decimal.NewFromInt(15000),
		Region:  "Mindanao",
		Medium:  "Mixed Media",
		InStock: true,
	}
	testDB.Create(product)

	return favoriteService, user, product, testDB
}

func TestFavoriteService_AddFavorite(t *testing.T) {
	favoriteService, user, product, _ := setupFavoriteServiceTest(t)

	err := favoriteService.AddFavorite(user.ID, product.ID)
	assert.NoError(t, err)

	favorites, err := favoriteService.GetUserFavorites(user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, product.ID, favorites[0].ProductID)
	assert.Equal(t, "Tribal Patterns", favorites[0].Product.Title)
}

func TestFavoriteService_AddFavorite_Idempotent(t *testing.T) {
	favoriteService, user, product, _ := setupFavoriteServiceTest(t)

	require.NoError(t, favoriteService.AddFavorite(user.ID, product.ID))
	require.NoError(t, favoriteService.AddFavorite(user.ID, product.ID))

	favorites, err := favoriteService.GetUserFavorites(user.ID)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}

func TestFavoriteService_AddFavorite_ProductNotFound(t *testing.T) {
	favoriteService, user, _, _ := setupFavoriteServiceTest(t)

	err := favoriteService.AddFavorite(user.ID, 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFavoriteService_RemoveFavorite(t *testing.T) {
	favoriteService, user, product, _ := setupFavoriteServiceTest(t)

	require.NoError(t, favoriteService.AddFavorite(user.ID, product.ID))

	err := favoriteService.RemoveFavorite(user.ID, product.ID)
	assert.NoError(t, err)

	favorites, err := favoriteService.GetUserFavorites(user.ID)
	require.NoError(t, err)
	assert.Len(t, favorites, 0)
}

func TestFavoriteService_RemoveFavorite_NotFound(t *testing.T) {
	favoriteService, user, product, _ := setupFavoriteServiceTest(t)

	err := favoriteService.RemoveFavorite(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestFavoriteService_IsFavorite(t *testing.T) {
	favoriteService, user, product, _ := setupFavoriteServiceTest(t)

	isFav, err := favoriteService.IsFavorite(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, isFav)

	require.NoError(t, favoriteService.AddFavorite(user.ID, product.ID))

	isFav, err = favoriteService.IsFavorite(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, isFav)
}

package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/artisell/artisell-backend/config"
	"github.com/artisell/artisell-backend/internal/app/controller"
	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/internal/app/repository"
	"github.com/artisell/artisell-backend/internal/app/service"
	"github.com/artisell/artisell-backend/internal/db"
	"github.com/artisell/artisell-backend/internal/middleware"
)

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	jwtConfig := config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}

	userRepo := repository.NewUserRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	favoriteRepo := repository.NewFavoriteRepository(testDB)

	authService := service.NewAuthService(userRepo, jwtConfig.Secret, jwtConfig.AccessTokenExpiry, jwtConfig.RefreshTokenExpiry)
	productService := service.NewProductService(productRepo)
	checkoutCfg := config.CheckoutConfig{
		ShippingFee: decimal.NewFromInt(250),
		TaxRate:     decimal.NewFromFloat(0.12),
	}
	cartService := service.NewCartService(cartRepo, productRepo, checkoutCfg)
	checkoutService := service.NewCheckoutService(orderRepo, cartRepo, testDB, checkoutCfg)
	orderService := service.NewOrderService(orderRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo)

	authController := controller.NewAuthController(authService, jwtConfig)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService, checkoutService, cartService)
	favoriteController := controller.NewFavoriteController(favoriteService)

	authMiddleware := middleware.NewAuthMiddleware(jwtConfig.Secret)

	router := gin.New()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", authMiddleware.Authenticate(), authController.GetMe)
	}

	products := router.Group("/api/v1/products")
	{
		products.GET("", productController.GetAllProducts)
		products.GET("/featured", productController.GetFeaturedProducts)
		products.GET("/:id", productController.GetProductByID)
		products.POST("", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), productController.CreateProduct)
	}

	cart := router.Group("/api/v1/cart")
	cart.Use(authMiddleware.Authenticate())
	{
		cart.GET("", cartController.GetCart)
		cart.POST("", cartController.AddToCart)
		cart.PUT("/:product_id", cartController.UpdateCartItem)
		cart.DELETE("/:product_id", cartController.RemoveFromCart)
	}

	orders := router.Group("/api/v1/orders")
	orders.Use(authMiddleware.Authenticate())
	{
		orders.GET("", orderController.GetOrders)
		orders.GET("/:id", orderController.GetOrderByID)
		orders.POST("", orderController.Checkout)
	}

	favorites := router.Group("/api/v1/favorites")
	favorites.Use(authMiddleware.Authenticate())
	{
		favorites.GET("", favoriteController.GetFavorites)
		favorites.POST("", favoriteController.AddFavorite)
		favorites.DELETE("/:product_id", favoriteController.RemoveFavorite)
	}

	return &TestServer{
		Router: router,
		DB:     testDB,
	}
}

func TestCompleteBuyerJourney(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	// 1. Register a new buyer
	t.Log("Step 1: Register buyer")
	registerReq := map[string]string{
		"email":    "buyer@example.com",
		"password": "password123",
		"name":     "Test Buyer",
		"phone":    "09171234567",
	}
	body, _ := json.Marshal(registerReq)
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var registerResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &registerResp)
	accessToken := registerResp["access_token"].(string)

	// 2. Seed the catalog directly
	t.Log("Step 2: Seed artwork")
	artwork := &model.Product{
		Title:      "Banaue Rice Terraces",
		Artist:     "Maria Santos",
		Price:      decimal.NewFromInt(18500),
		Region:     "Luzon",
		Medium:     "Oil on Canvas",
		IsFeatured: true,
		InStock:    true,
	}
	ts.DB.Create(artwork)

	// 3. Browse the catalog
	t.Log("Step 3: Browse catalog")
	req = httptest.NewRequest("GET", "/api/v1/products", nil)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var productsResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &productsResp)
	assert.Equal(t, float64(1), productsResp["count"])

	// 4. Add the artwork to the cart
	t.Log("Step 4: Add to cart")
	addToCartReq := map[string]interface{}{
		"product_id": artwork.ID,
		"quantity":   2,
	}
	body, _ = json.Marshal(addToCartReq)
	req = httptest.NewRequest("POST", "/api/v1/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	// 5. View the cart with totals
	t.Log("Step 5: View cart")
	req = httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var cartResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &cartResp)
	cartItems := cartResp["cart_items"].([]interface{})
	assert.Len(t, cartItems, 1)

	totals := cartResp["totals"].(map[string]interface{})
	assert.Equal(t, "37000", totals["subtotal"])
	assert.Equal(t, "250", totals["shipping"])
	assert.Equal(t, "4440", totals["tax"])
	assert.Equal(t, "41690", totals["total"])

	// 6. Check out
	t.Log("Step 6: Checkout")
	checkoutReq := map[string]string{
		"full_name":      "Test Buyer",
		"email":          "buyer@example.com",
		"phone":          "09171234567",
		"address":        "123 Rizal Street",
		"city":           "Quezon City",
		"region":         "Metro Manila",
		"postal_code":    "1100",
		"payment_method": "gcash",
	}
	body, _ = json.Marshal(checkoutReq)
	req = httptest.NewRequest("POST", "/api/v1/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var orderResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &orderResp)
	order := orderResp["order"].(map[string]interface{})
	assert.Equal(t, "processing", order["status"])
	assert.NotEmpty(t, order["order_number"])
	assert.Equal(t, "41690", order["total"])

	// 7. View order history
	t.Log("Step 7: View order history")
	req = httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var ordersResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &ordersResp)
	orders := ordersResp["orders"].([]interface{})
	assert.Len(t, orders, 1)

	// 8. Cart is empty after checkout
	t.Log("Step 8: Verify cart is empty")
	req = httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	json.Unmarshal(w.Body.Bytes(), &cartResp)
	cartItems = cartResp["cart_items"].([]interface{})
	assert.Len(t, cartItems, 0)
}

func TestFavoritesFlow(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	registerReq := map[string]string{
		"email":    "collector@example.com",
		"password": "password123",
		"name":     "Collector",
	}
	body, _ := json.Marshal(registerReq)
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var registerResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &registerResp)
	accessToken := registerResp["access_token"].(string)

	artwork := &model.Product{
		Title:   "Tribal Patterns",
		Artist:  "Ana Diaz",
		Price:   decimal.NewFromInt(15000),
		Region:  "Mindanao",
		Medium:  "Weaving",
		InStock: true,
	}
	ts.DB.Create(artwork)

	// Favorite the artwork
	body, _ = json.Marshal(map[string]interface{}{"product_id": artwork.ID})
	req = httptest.NewRequest("POST", "/api/v1/favorites", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// List favorites
	req = httptest.NewRequest("GET", "/api/v1/favorites", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var favResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &favResp)
	favorites := favResp["favorites"].([]interface{})
	assert.Len(t, favorites, 1)

	// Unfavorite
	req = httptest.NewRequest("DELETE", "/api/v1/favorites/1", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticationFlow(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	registerReq := map[string]string{
		"email":    "test@example.com",
		"password": "password123",
		"name":     "Test User",
		"phone":    "09170001111",
	}
	body, _ := json.Marshal(registerReq)
	req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var registerResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &registerResp)
	accessToken := registerResp["access_token"].(string)

	loginReq := map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}
	body, _ = json.Marshal(loginReq)
	req = httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w = httptest.NewRecorder()

	ts.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var meResp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &meResp)
	user := meResp["user"].(map[string]interface{})
	assert.Equal(t, "test@example.com", user["email"])
	assert.Equal(t, "Test User", user["name"])
}

func TestUnauthorizedAccess(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	protectedRoutes := []string{
		"/api/v1/auth/me",
		"/api/v1/cart",
		"/api/v1/orders",
		"/api/v1/favorites",
	}

	for _, route := range protectedRoutes {
		t.Run(route, func(t *testing.T) {
			req := httptest.NewRequest("GET", route, nil)
			w := httptest.NewRecorder()

			ts.Router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

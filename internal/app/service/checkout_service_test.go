package service

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/artisell/artisell-backend/internal/app/model"
	"github.com/artisell/artisell-backend/internal/app/repository"
	"github.com/artisell/artisell-backend/internal/db"
)

func setupCheckoutServiceTest(t *testing.T) (CheckoutService, CartService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo, testCheckoutConfig())
	checkoutService := NewCheckoutService(orderRepo, cartRepo, testDB, testCheckoutConfig())

	user := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Name:         "Test Buyer",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Title:   "Banaue Rice Terraces",
		Artist:  "Miguel Cruz",
		Price:   decimal.NewFromInt(18500),
		Region:  "Luzon",
		InStock: true,
	}
	testDB.Create(product)

	return checkoutService, cartService, user, product, testDB
}

func testCheckoutInfo() CheckoutInfo {
	return CheckoutInfo{
		FullName:      "Test Buyer",
		Email:         "buyer@example.com",
		Phone:         "09171234567",
		Address:       "123 Rizal Street",
		City:          "Quezon City",
		Region:        "Metro Manila",
		PostalCode:    "1100",
		PaymentMethod: model.PaymentGCash,
	}
}

func TestCheckoutService_PlaceOrder_Success(t *testing.T) {
	checkoutService, cartService, user, product, _ := setupCheckoutServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 2))

	order, err := checkoutService.PlaceOrder(user.ID, testCheckoutInfo())
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)
	assert.Equal(t, model.PaymentGCash, order.PaymentMethod)
	assert.Regexp(t, regexp.MustCompile(`^ART-[0-9A-F]{8}-\d{4}$`), order.OrderNumber)

	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, product.ID, order.OrderItems[0].ProductID)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)
	assert.True(t, order.OrderItems[0].Price.Equal(product.Price))

	subtotal := decimal.NewFromInt(37000)
	assert.True(t, order.Subtotal.Equal(subtotal), "subtotal %s", order.Subtotal)
	assert.True(t, order.Shipping.Equal(decimal.NewFromInt(250)))
	assert.True(t, order.Tax.Equal(decimal.NewFromInt(4440)), "tax %s", order.Tax)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(41690)), "total %s", order.Total)
}

func TestCheckoutService_PlaceOrder_LeavesCartIntact(t *testing.T) {
	checkoutService, cartService, user, product, _ := setupCheckoutServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 1))

	_, err := checkoutService.PlaceOrder(user.ID, testCheckoutInfo())
	require.NoError(t, err)

	// Clearing the cart is the caller's job, not the checkout's.
	items, _, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCheckoutService_PlaceOrder_MissingUser(t *testing.T) {
	checkoutService, _, _, _, _ := setupCheckoutServiceTest(t)

	// A zero user ID is an auth failure in its own right, not an empty cart
	order, err := checkoutService.PlaceOrder(0, testCheckoutInfo())
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.NotErrorIs(t, err, ErrCartEmpty)
	assert.Nil(t, order)
}

func TestCheckoutService_PlaceOrder_EmptyCart(t *testing.T) {
	checkoutService, _, user, _, _ := setupCheckoutServiceTest(t)

	order, err := checkoutService.PlaceOrder(user.ID, testCheckoutInfo())
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Nil(t, order)
}

func TestCheckoutService_PlaceOrder_InvalidPaymentMethod(t *testing.T) {
	checkoutService, cartService, user, product, _ := setupCheckoutServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 1))

	info := testCheckoutInfo()
	info.PaymentMethod = "bitcoin"

	order, err := checkoutService.PlaceOrder(user.ID, info)
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	assert.Nil(t, order)
}

func TestCheckoutService_PlaceOrder_ProductWentOutOfStock(t *testing.T) {
	checkoutService, cartService, user, product, testDB := setupCheckoutServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 1))

	// Product sells out between add-to-cart and checkout
	testDB.Model(&model.Product{}).Where("id = ?", product.ID).Update("in_stock", false)

	order, err := checkoutService.PlaceOrder(user.ID, testCheckoutInfo())
	assert.ErrorIs(t, err, ErrProductOutOfStock)
	assert.Nil(t, order)

	var count int64
	testDB.Model(&model.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutService_PlaceOrder_ProductDeleted(t *testing.T) {
	checkoutService, cartService, user, product, testDB := setupCheckoutServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 1))

	testDB.Unscoped().Delete(&model.Product{}, product.ID)

	order, err := checkoutService.PlaceOrder(user.ID, testCheckoutInfo())
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, order)
}

func TestCheckoutService_PlaceOrder_RepricesFromCurrentProduct(t *testing.T) {
	checkoutService, cartService, user, product, testDB := setupCheckoutServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 1))

	// Price changes after the item was added to the cart
	testDB.Model(&model.Product{}).Where("id = ?", product.ID).Update("price", decimal.NewFromInt(20000))

	order, err := checkoutService.PlaceOrder(user.ID, testCheckoutInfo())
	require.NoError(t, err)

	require.Len(t, order.OrderItems, 1)
	assert.True(t, order.OrderItems[0].Price.Equal(decimal.NewFromInt(20000)))
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(20000)))
}

func TestCheckoutService_PlaceOrder_Atomicity(t *testing.T) {
	checkoutService, cartService, user, product, testDB := setupCheckoutServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 1))

	// Force the item insert to fail mid-transaction
	require.NoError(t, testDB.Migrator().DropTable(&model.OrderItem{}))

	order, err := checkoutService.PlaceOrder(user.ID, testCheckoutInfo())
	assert.Error(t, err)
	assert.Nil(t, order)

	// The order row must not survive the failed item insert
	var count int64
	testDB.Model(&model.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutService_PlaceOrder_DistinctOrderNumbers(t *testing.T) {
	checkoutService, cartService, user, product, _ := setupCheckoutServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 1))
	first, err := checkoutService.PlaceOrder(user.ID, testCheckoutInfo())
	require.NoError(t, err)

	second, err := checkoutService.PlaceOrder(user.ID, testCheckoutInfo())
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
}

func TestCheckoutService_PlaceOrder_OrderNumberCollisionRetries(t *testing.T) {
	svc, cartService, user, product, _ := setupCheckoutServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 1))
	first, err := svc.PlaceOrder(user.ID, testCheckoutInfo())
	require.NoError(t, err)

	// First generation collides with the existing order, the retry succeeds
	impl := svc.(*checkoutService)
	numbers := []string{first.OrderNumber, "ART-0A1B2C3D-5678"}
	impl.generateOrderNumber = func() string {
		next := numbers[0]
		if len(numbers) > 1 {
			numbers = numbers[1:]
		}
		return next
	}

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 1))
	second, err := svc.PlaceOrder(user.ID, testCheckoutInfo())
	require.NoError(t, err)
	assert.Equal(t, "ART-0A1B2C3D-5678", second.OrderNumber)
}

func TestCheckoutService_PlaceOrder_OrderNumberCollisionExhausted(t *testing.T) {
	svc, cartService, user, product, testDB := setupCheckoutServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 1))
	first, err := svc.PlaceOrder(user.ID, testCheckoutInfo())
	require.NoError(t, err)

	// Every regeneration keeps producing the taken number
	impl := svc.(*checkoutService)
	impl.generateOrderNumber = func() string {
		return first.OrderNumber
	}

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 1))
	order, err := svc.PlaceOrder(user.ID, testCheckoutInfo())
	assert.ErrorIs(t, err, ErrOrderFailed)
	assert.Nil(t, order)

	var count int64
	testDB.Model(&model.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCheckoutService_PlaceOrder_MultipleItems(t *testing.T) {
	checkoutService, cartService, user, product, testDB := setupCheckoutServiceTest(t)

	second := &model.Product{
		Title:   "Tarsier Portrait",
		Artist:  "Elena Gomez",
		Price:   decimal.NewFromInt(7500),
		Region:  "Visayas",
		InStock: true,
	}
	testDB.Create(second)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, 1))
	require.NoError(t, cartService.AddToCart(user.ID, second.ID, 2))

	order, err := checkoutService.PlaceOrder(user.ID, testCheckoutInfo())
	require.NoError(t, err)
	require.Len(t, order.OrderItems, 2)

	// 18500 + 2*7500 = 33500
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(33500)), "subtotal %s", order.Subtotal)
	assert.True(t, order.Total.Equal(order.Subtotal.Add(order.Shipping).Add(order.Tax)))
}

package services_test

import (
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/storage"

	"github.com/stretchr/testify/assert"
)

func newViewService(store *storage.MemoryStore) *services.ViewService {
	users := repositories.NewStorageUserStore(store)
	reviews := repositories.NewStorageReviewLog(store)
	return services.NewViewService(users, reviews, catalog.New())
}

func TestViewService_Products(t *testing.T) {
	views := newViewService(storage.NewMemoryStore())

	cards := views.Products()
	assert.Len(t, cards, 4)
	assert.Equal(t, "p2", cards[1].ID)
	assert.Equal(t, "Smart Watch", cards[1].Name)
	assert.Equal(t, 2999, cards[1].Price)
	assert.Equal(t, "assets/images/smartwatch.jpg", cards[1].Image)
}

func TestViewService_WishlistStates(t *testing.T) {
	store := storage.NewMemoryStore()
	views := newViewService(store)

	// No session and empty wishlist are distinct states with distinct
	// wording.
	view, err := views.Wishlist()
	assert.NoError(t, err)
	assert.Equal(t, services.MsgWishlistNoSession, view.Message)
	assert.Empty(t, view.Items)

	_, users := seedSession(t, store)
	view, err = views.Wishlist()
	assert.NoError(t, err)
	assert.Equal(t, services.MsgWishlistEmpty, view.Message)

	current, err := users.Current()
	assert.NoError(t, err)
	current.Wishlist = append(current.Wishlist, "p3")
	assert.NoError(t, users.Upsert(current))

	view, err = views.Wishlist()
	assert.NoError(t, err)
	assert.Empty(t, view.Message)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "Mechanical Keyboard", view.Items[0].Name)
}

func TestViewService_OrdersStates(t *testing.T) {
	store := storage.NewMemoryStore()
	views := newViewService(store)

	view, err := views.Orders()
	assert.NoError(t, err)
	assert.Equal(t, services.MsgOrdersNoSession, view.Message)

	_, users := seedSession(t, store)
	view, err = views.Orders()
	assert.NoError(t, err)
	assert.Equal(t, services.MsgOrdersEmpty, view.Message)

	actions := services.NewActionService(users, catalog.New(), nil)
	_, err = actions.PlaceOrder("p1")
	assert.NoError(t, err)

	view, err = views.Orders()
	assert.NoError(t, err)
	assert.Empty(t, view.Message)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "Wireless Headphones", view.Items[0].Name)
	assert.NotEmpty(t, view.Items[0].OrderID)
	assert.NotEmpty(t, view.Items[0].Date)
}

func TestViewService_ReviewsGlobal(t *testing.T) {
	store := storage.NewMemoryStore()
	views := newViewService(store)

	// Reviews are session-independent: readable with no user logged in.
	view, err := views.Reviews()
	assert.NoError(t, err)
	assert.Equal(t, services.MsgReviewsEmpty, view.Message)

	feedback := services.NewFeedbackService(
		repositories.NewStorageSupportLog(store),
		repositories.NewStorageReviewLog(store),
		nil,
	)
	assert.NoError(t, feedback.SubmitReview("p1", "Great sound"))

	view, err = views.Reviews()
	assert.NoError(t, err)
	assert.Empty(t, view.Message)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "p1", view.Items[0].ProductID)
	assert.Equal(t, "Great sound", view.Items[0].Review)
}

// seedSession registers and logs in a user over the given store.
func seedSession(t *testing.T, store *storage.MemoryStore) (*services.AuthService, repositories.UserStore) {
	t.Helper()
	users := repositories.NewStorageUserStore(store)
	auth := services.NewAuthService(users)
	_, err := auth.Register(services.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Phone:    "1234567890",
		Password: "password123",
		Confirm:  "password123",
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if _, err := auth.Login("test@example.com", "password123"); err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	return auth, users
}

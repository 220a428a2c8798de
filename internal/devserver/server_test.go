package devserver

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tayyabfareed009/Ecommerce-Application/internal/api"
	"github.com/tayyabfareed009/Ecommerce-Application/internal/cart"
	"github.com/tayyabfareed009/Ecommerce-Application/internal/domain"
	"github.com/tayyabfareed009/Ecommerce-Application/internal/service"
	"github.com/tayyabfareed009/Ecommerce-Application/internal/session"
)

// startServer spins up the dev server and returns a client wired to it
// through a real session store, the same way shopctl is assembled.
func startServer(t *testing.T) (*api.Client, session.Store) {
	t.Helper()
	store := NewStore()
	srv := httptest.NewServer(New(store, slog.Default()).Handler())
	t.Cleanup(srv.Close)

	sessions := session.NewMemoryStore()
	client := api.New(srv.URL, api.WithTokenSource(session.TokenSource{Store: sessions}))
	return client, sessions
}

func signupAndLogin(t *testing.T, client *api.Client, sessions session.Store, role string) {
	t.Helper()
	ctx := context.Background()
	auth := service.NewAuthService(client, sessions)

	require.NoError(t, auth.Signup(ctx, api.SignupRequest{
		Name: "Jo", Email: "jo@example.com", Password: "pw", Role: role, Address: "12 High St",
	}))
	sess, err := auth.Login(ctx, "jo@example.com", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
}

func seedProduct(t *testing.T, client *api.Client, name, price string) domain.Product {
	t.Helper()
	p, err := client.CreateProduct(context.Background(), domain.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: 100,
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	return p
}

func TestEndToEnd_CartFlow(t *testing.T) {
	ctx := context.Background()
	client, sessions := startServer(t)
	signupAndLogin(t, client, sessions, service.RoleCustomer)

	mug := seedProduct(t, client, "Mug", "10")
	pen := seedProduct(t, client, "Pen", "5")

	require.NoError(t, client.AddToCart(ctx, mug.ID, 2))
	require.NoError(t, client.AddToCart(ctx, pen.ID, 3))
	// Same product again merges instead of duplicating.
	require.NoError(t, client.AddToCart(ctx, pen.ID, 1))

	manager := cart.NewManager(client, cart.AutoConfirm)
	require.NoError(t, manager.Load(ctx))

	items := manager.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 4, items[1].Quantity)
	assert.True(t, manager.Total().Equal(decimal.RequireFromString("40")), "got %s", manager.Total())

	// Quantity floor travels through the real stack: setting zero removes.
	require.NoError(t, manager.SetQuantity(ctx, items[1].ID, 0))
	require.Len(t, manager.Items(), 1)
	require.NoError(t, manager.Load(ctx))
	require.Len(t, manager.Items(), 1, "server agrees the line is gone")

	require.NoError(t, manager.SetQuantity(ctx, items[0].ID, 5))
	assert.True(t, manager.Total().Equal(decimal.RequireFromString("50")))

	orderID, err := manager.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, orderID)
	assert.Empty(t, manager.Items())

	// Order placement cleared the server-side cart too.
	require.NoError(t, manager.Load(ctx))
	assert.Empty(t, manager.Items())
	assert.Equal(t, cart.StateEmpty, manager.State())

	orders, err := client.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
	assert.Equal(t, domain.StatusPending, orders[0].Status)
	assert.True(t, orders[0].TotalAmount.Equal(decimal.RequireFromString("50")))
}

func TestEndToEnd_UnauthenticatedCartIsRejected(t *testing.T) {
	ctx := context.Background()
	client, _ := startServer(t)

	// No login: the client refuses before the wire.
	_, err := client.FetchCart(ctx)
	require.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestEndToEnd_BogusTokenRejected(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(New(NewStore(), slog.Default()).Handler())
	t.Cleanup(srv.Close)
	client := api.New(srv.URL, api.WithTokenSource(api.StaticToken("nope")))

	_, err := client.FetchCart(ctx)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestEndToEnd_EmptyOrderRejectedByServer(t *testing.T) {
	ctx := context.Background()
	client, sessions := startServer(t)
	signupAndLogin(t, client, sessions, service.RoleCustomer)

	_, err := client.PlaceOrder(ctx, domain.OrderRequest{TotalAmount: decimal.Zero})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "empty")
}

func TestEndToEnd_SellerOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	client, sessions := startServer(t)
	signupAndLogin(t, client, sessions, service.RoleShopkeeper)

	mug := seedProduct(t, client, "Mug", "10")
	require.NoError(t, client.AddToCart(ctx, mug.ID, 1))

	manager := cart.NewManager(client, cart.AutoConfirm)
	require.NoError(t, manager.Load(ctx))
	orderID, err := manager.PlaceOrder(ctx)
	require.NoError(t, err)

	orderSvc := service.NewOrderService(client)
	require.NoError(t, orderSvc.UpdateStatus(ctx, orderID, "Shipped"))

	order, err := orderSvc.Details(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, order.Status)

	stats, err := orderSvc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 0, stats.PendingOrders)

	require.NoError(t, orderSvc.Delete(ctx, orderID))
	_, err = orderSvc.Details(ctx, orderID)
	require.Error(t, err)
}

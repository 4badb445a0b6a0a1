package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/electroshop/internal/models"
	"github.com/Skotchmaster/electroshop/internal/repo"
	"github.com/Skotchmaster/electroshop/internal/search"
	"github.com/Skotchmaster/electroshop/internal/transport"
	"github.com/Skotchmaster/electroshop/pkg/db"
	"github.com/Skotchmaster/electroshop/pkg/tokens"
)

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, _ string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) count(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, t := range p.topics {
		if t == topic {
			n++
		}
	}
	return n
}

type env struct {
	repo      *repo.GormRepo
	auth      *AuthService
	catalog   *CatalogService
	cart      *CartService
	orders    *OrderService
	favorites *FavoritesService
	reviews   *ReviewService
	admin     *AdminService
	events    *recordingPublisher
}

func newEnv(t *testing.T) *env {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := repo.New(gdb)
	require.NoError(t, r.Migrate(context.Background()))

	pub := &recordingPublisher{}
	return &env{
		repo:      r,
		auth:      &AuthService{Repo: r, Tokens: tokens.NewService([]byte("svc-secret"), time.Hour)},
		catalog:   &CatalogService{Repo: r, Events: pub},
		cart:      &CartService{Repo: r, Events: pub},
		orders:    &OrderService{Repo: r, Events: pub},
		favorites: &FavoritesService{Repo: r},
		reviews:   &ReviewService{Repo: r},
		admin:     &AdminService{Repo: r},
		events:    pub,
	}
}

func (e *env) product(t *testing.T, name, price string) *models.Product {
	t.Helper()
	p, err := e.catalog.CreateProduct(context.Background(), transport.CreateProductRequest{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		Brand:       "Sony",
		Category:    "Electronics",
		Image:       "/img/" + name + ".png",
	})
	require.NoError(t, err)
	return p
}

func (e *env) user(t *testing.T, username string) uuid.UUID {
	t.Helper()
	res, err := e.auth.Register(context.Background(), username, username+"@example.com", "secret1")
	require.NoError(t, err)
	return res.UserID
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	reg, err := e.auth.Register(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleUser, reg.Role)
	assert.NotEmpty(t, reg.Token)

	claims, err := e.auth.Tokens.Verify(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID.String(), claims.Subject)

	for _, login := range []string{"alice", "alice@example.com"} {
		res, err := e.auth.Login(ctx, login, "secret1")
		require.NoError(t, err)
		assert.Equal(t, reg.UserID, res.UserID)
	}

	_, err = e.auth.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = e.auth.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = e.auth.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuth_RegisterValidationAndConflicts(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	e.user(t, "alice")

	tests := []struct {
		name                      string
		username, email, password string
		want                      error
	}{
		{name: "missing username", username: "", email: "x@example.com", password: "secret1", want: ErrValidation},
		{name: "short password", username: "bob", email: "bob@example.com", password: "123", want: ErrValidation},
		{name: "bad email", username: "bob", email: "not-an-email", password: "secret1", want: ErrValidation},
		{name: "duplicate username", username: "alice", email: "new@example.com", password: "secret1", want: ErrConflict},
		{name: "duplicate email", username: "alice2", email: "alice@example.com", password: "secret1", want: ErrConflict},
		{name: "case differs", username: "Alice", email: "Alice@example.com", password: "secret1", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.auth.Register(ctx, tt.username, tt.email, tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuth_EnsureAdminAndCurrentRole(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	changed, err := e.auth.EnsureAdmin(ctx, "root", "root@example.com", "rootpass")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = e.auth.EnsureAdmin(ctx, "root", "root@example.com", "rootpass")
	require.NoError(t, err)
	assert.False(t, changed)

	res, err := e.auth.Login(ctx, "root", "rootpass")
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleAdmin, res.Role)

	role, found, err := e.auth.CurrentRole(ctx, res.UserID.String())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, tokens.RoleAdmin, role)

	_, found, err = e.auth.CurrentRole(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = e.auth.CurrentRole(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAuth_EnsureAdminPromotesExistingUser(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	id := e.user(t, "boss")

	changed, err := e.auth.EnsureAdmin(ctx, "boss", "boss@example.com", "whatever")
	require.NoError(t, err)
	assert.True(t, changed)

	role, _, err := e.auth.CurrentRole(ctx, id.String())
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleAdmin, role)
}

func TestCart_AddMergesQuantities(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	userID := uuid.New()
	p := e.product(t, "headphones", "50")

	_, err := e.cart.AddItem(ctx, userID, p.ID, 2)
	require.NoError(t, err)
	cart, err := e.cart.AddItem(ctx, userID, p.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 2, e.events.count("cart_events"))
}

func TestCart_AddValidation(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	p := e.product(t, "headphones", "50")

	_, err := e.cart.AddItem(ctx, uuid.New(), p.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.cart.AddItem(ctx, uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCart_QuantityBound(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	userID := uuid.New()
	p := e.product(t, "headphones", "50")

	_, err := e.cart.AddItem(ctx, userID, p.ID, math.MaxInt)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.cart.AddItem(ctx, userID, p.ID, MaxLineQuantity)
	require.NoError(t, err)
	_, err = e.cart.AddItem(ctx, userID, p.ID, 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.cart.UpdateQuantity(ctx, userID, p.ID, MaxLineQuantity+1)
	assert.ErrorIs(t, err, ErrValidation)

	cart, err := e.cart.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, MaxLineQuantity, cart.Items[0].Quantity)
}

func TestCart_RemoveAndUpdate(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	userID := uuid.New()
	a := e.product(t, "a", "1")
	b := e.product(t, "b", "2")

	_, err := e.cart.RemoveItem(ctx, userID, a.ID)
	assert.ErrorIs(t, err, ErrCartNotFound)
	_, err = e.cart.UpdateQuantity(ctx, userID, a.ID, 1)
	assert.ErrorIs(t, err, ErrCartNotFound)

	_, err = e.cart.AddItem(ctx, userID, a.ID, 1)
	require.NoError(t, err)

	_, err = e.cart.UpdateQuantity(ctx, userID, b.ID, 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.cart.UpdateQuantity(ctx, userID, a.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	cart, err := e.cart.UpdateQuantity(ctx, userID, a.ID, 7)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, 7, cart.Items[0].Quantity)

	cart, err = e.cart.RemoveItem(ctx, userID, b.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	cart, err = e.cart.RemoveItem(ctx, userID, a.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCart_GetCreatesLazily(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	cart, err := e.cart.GetCart(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, cart.ID)
	assert.Empty(t, cart.Items)
}

func TestCart_DeletedProductShowsAsNil(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	userID := uuid.New()
	p := e.product(t, "gone", "10")

	_, err := e.cart.AddItem(ctx, userID, p.ID, 1)
	require.NoError(t, err)
	require.NoError(t, e.catalog.DeleteProduct(ctx, p.ID))

	cart, err := e.cart.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Nil(t, cart.Items[0].Product)

	_, err = e.orders.CreateOrder(ctx, userID, "street 1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrder_CreateFromCart(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	userID := uuid.New()
	p1 := e.product(t, "tv", "499.99")
	p2 := e.product(t, "cable", "9.50")

	_, err := e.orders.CreateOrder(ctx, userID, "street 1")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.cart.AddItem(ctx, userID, p1.ID, 1)
	require.NoError(t, err)
	_, err = e.cart.AddItem(ctx, userID, p2.ID, 3)
	require.NoError(t, err)

	_, err = e.orders.CreateOrder(ctx, userID, "  ")
	assert.ErrorIs(t, err, ErrValidation)

	order, err := e.orders.CreateOrder(ctx, userID, "street 1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, decimal.RequireFromString("528.49").Equal(order.TotalAmount), order.TotalAmount.String())
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 1, e.events.count("order_events"))

	cart, err := e.cart.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = e.orders.CreateOrder(ctx, userID, "street 1")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrder_PriceIsSnapshotted(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	userID := uuid.New()
	p := e.product(t, "tv", "100")

	_, err := e.cart.AddItem(ctx, userID, p.ID, 2)
	require.NoError(t, err)
	order, err := e.orders.CreateOrder(ctx, userID, "street 1")
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(999)
	_, err = e.catalog.UpdateProduct(ctx, p.ID, transport.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)

	stored, err := e.orders.GetOrderByID(ctx, order.ID, userID, tokens.RoleUser)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(stored.TotalAmount))
	require.Len(t, stored.Items, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(stored.Items[0].Price))
}

func TestOrder_GetByIDAccess(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	owner := uuid.New()
	p := e.product(t, "tv", "100")

	_, err := e.cart.AddItem(ctx, owner, p.ID, 1)
	require.NoError(t, err)
	order, err := e.orders.CreateOrder(ctx, owner, "street 1")
	require.NoError(t, err)

	_, err = e.orders.GetOrderByID(ctx, order.ID, owner, tokens.RoleUser)
	assert.NoError(t, err)

	_, err = e.orders.GetOrderByID(ctx, order.ID, uuid.New(), tokens.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = e.orders.GetOrderByID(ctx, order.ID, uuid.New(), tokens.RoleAdmin)
	assert.NoError(t, err)

	_, err = e.orders.GetOrderByID(ctx, uuid.New(), owner, tokens.RoleUser)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrder_UpdateStatus(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	owner := uuid.New()
	p := e.product(t, "tv", "100")

	_, err := e.cart.AddItem(ctx, owner, p.ID, 1)
	require.NoError(t, err)
	order, err := e.orders.CreateOrder(ctx, owner, "street 1")
	require.NoError(t, err)

	_, err = e.orders.UpdateStatus(ctx, order.ID, "shipped", tokens.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = e.orders.UpdateStatus(ctx, order.ID, "lost", tokens.RoleAdmin)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.orders.UpdateStatus(ctx, uuid.New(), "shipped", tokens.RoleAdmin)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	updated, err := e.orders.UpdateStatus(ctx, order.ID, "delivered", tokens.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	updated, err = e.orders.UpdateStatus(ctx, order.ID, "pending", tokens.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, updated.Status)
}

func TestFavorites_TogglePairRestoresState(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	userID := e.user(t, "alice")
	p := e.product(t, "tv", "100")

	added, err := e.favorites.Toggle(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.True(t, added)

	list, err := e.favorites.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)

	added, err = e.favorites.Toggle(ctx, userID, p.ID)
	require.NoError(t, err)
	assert.False(t, added)

	list, err = e.favorites.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFavorites_NotFound(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	userID := e.user(t, "alice")
	p := e.product(t, "tv", "100")

	_, err := e.favorites.Toggle(ctx, uuid.New(), p.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = e.favorites.Toggle(ctx, userID, uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = e.favorites.List(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestReviews(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	userID := e.user(t, "alice")
	p := e.product(t, "tv", "100")

	_, err := e.reviews.Create(ctx, userID, p.ID, 6, "too good")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = e.reviews.Create(ctx, userID, uuid.New(), 5, "ghost")
	assert.ErrorIs(t, err, ErrProductNotFound)

	review, err := e.reviews.Create(ctx, userID, p.ID, 4, "solid")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, review.ID)

	list, err := e.reviews.ListForProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].User)
	assert.Equal(t, "alice", list[0].User.Username)
	assert.Equal(t, 4, list[0].Rating)
}

func TestAdmin_ListUsersWithFavorites(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	alice := e.user(t, "alice")
	e.user(t, "bob")
	p := e.product(t, "tv", "100")

	_, err := e.favorites.Toggle(ctx, alice, p.ID)
	require.NoError(t, err)

	users, err := e.admin.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	byName := map[string]transport.AdminUser{}
	for _, u := range users {
		byName[u.Username] = u
	}
	require.Len(t, byName["alice"].Favorites, 1)
	assert.Equal(t, "tv", byName["alice"].Favorites[0].Name)
	assert.Empty(t, byName["bob"].Favorites)
}

func TestCatalog_ListDefaultsAndBrandOverride(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	for i := 0; i < 11; i++ {
		e.product(t, "p"+string(rune('a'+i)), "10")
	}
	_, err := e.catalog.CreateProduct(ctx, transport.CreateProductRequest{
		Name: "iphone", Description: "phone", Price: decimal.NewFromInt(999),
		Brand: "Apple", Category: "Electronics", Image: "/img/iphone.png",
	})
	require.NoError(t, err)

	page, err := e.catalog.ListProducts(ctx, ListParams{})
	require.NoError(t, err)
	assert.Len(t, page.Products, 9)
	assert.Equal(t, 1, page.CurrentPage)
	assert.EqualValues(t, 12, page.TotalProducts)
	assert.EqualValues(t, 2, page.TotalPages)

	page, err = e.catalog.ListProducts(ctx, ListParams{Brands: []string{"Sony"}, Brand: "Apple"})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "iphone", page.Products[0].Name)
}

func TestCatalog_CreateAndUpdateValidation(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.catalog.CreateProduct(ctx, transport.CreateProductRequest{
		Name: "x", Description: "x", Brand: "x", Category: "x", Image: "x", Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, ErrValidation)

	p := e.product(t, "tv", "100")
	neg := decimal.NewFromInt(-5)
	_, err = e.catalog.UpdateProduct(ctx, p.ID, transport.UpdateProductRequest{Price: &neg})
	assert.ErrorIs(t, err, ErrValidation)

	name := "smart tv"
	updated, err := e.catalog.UpdateProduct(ctx, p.ID, transport.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "smart tv", updated.Name)
	assert.Equal(t, p.Description, updated.Description)

	_, err = e.catalog.UpdateProduct(ctx, uuid.New(), transport.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, e.catalog.DeleteProduct(ctx, uuid.New()), ErrProductNotFound)
	_, err = e.catalog.GetProduct(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

type fakeIndex struct {
	mu      sync.Mutex
	indexed map[uuid.UUID]bool
	deleted []string
	results []models.Product
	err     error
}

func (f *fakeIndex) IndexProduct(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indexed == nil {
		f.indexed = map[uuid.UUID]bool{}
	}
	f.indexed[p.ID] = true
	return nil
}

func (f *fakeIndex) DeleteProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, search.Query) ([]models.Product, error) {
	return f.results, f.err
}

func TestCatalog_SearchUsesIndexAndFallsBack(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	idx := &fakeIndex{results: []models.Product{{Name: "from index"}}}
	e.catalog.Index = idx

	p := e.product(t, "OLED TV", "1500")
	assert.True(t, idx.indexed[p.ID])

	items, err := e.catalog.Search(ctx, SearchParams{Query: "tv"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "from index", items[0].Name)

	idx.err = errors.New("cluster red")
	items, err = e.catalog.Search(ctx, SearchParams{Query: "oled"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "OLED TV", items[0].Name)

	require.NoError(t, e.catalog.DeleteProduct(ctx, p.ID))
	assert.Equal(t, []string{p.ID.String()}, idx.deleted)
}

func TestCatalog_SearchPriceBounds(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	e.product(t, "cheap", "10")
	e.product(t, "mid", "100")
	e.product(t, "pricey", "1000")

	min, max := decimal.NewFromInt(50), decimal.NewFromInt(500)
	items, err := e.catalog.Search(ctx, SearchParams{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "mid", items[0].Name)

	_, err = e.catalog.Search(ctx, SearchParams{MinPrice: &max, MaxPrice: &min})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalog_Reindex(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.product(t, "a", "1")
	e.product(t, "b", "2")

	idx := &fakeIndex{}
	e.catalog.Index = idx
	n, err := e.catalog.Reindex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, idx.indexed, 2)
}

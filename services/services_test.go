package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-store-cli/database"
	"pizza-store-cli/database/dbtest"
	"pizza-store-cli/models"
	"pizza-store-cli/repository"
	"pizza-store-cli/services"
)

type fixture struct {
	gw      *database.Gateway
	auth    *services.AuthService
	profile *services.ProfileService
	menu    *services.MenuService
	stores  *services.StoreService
	orders  *services.OrderService
	admin   *services.UserAdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gw := dbtest.New(t)
	log := nullLogger()
	users := repository.NewUsers(gw)
	return &fixture{
		gw:      gw,
		auth:    services.NewAuthService(users, log),
		profile: services.NewProfileService(users, log),
		menu:    services.NewMenuService(users, repository.NewItems(gw), log),
		stores:  services.NewStoreService(repository.NewStores(gw)),
		orders:  services.NewOrderService(users, repository.NewOrders(gw), log),
		admin:   services.NewUserAdminService(users, log),
	}
}

func (f *fixture) seedUser(t *testing.T, login string, role models.UserRole) {
	t.Helper()
	dbtest.Seed(t, f.gw, &models.User{Login: login, Password: "pw", Role: role, FavoriteItems: "cheese", PhoneNum: "555-0100"})
}

func (f *fixture) count(t *testing.T, table string) int64 {
	t.Helper()
	n, err := f.gw.ScalarCount(context.Background(), "SELECT COUNT(*) FROM "+table)
	require.NoError(t, err)
	return n
}

func TestRegisterLimits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   services.RegisterRequest
		field string
	}{
		{"blank login", services.RegisterRequest{Login: "  ", Password: "pw", PhoneNum: "1"}, "login"},
		{"long login", services.RegisterRequest{Login: strings.Repeat("a", 51), Password: "pw", PhoneNum: "1"}, "login"},
		{"blank password", services.RegisterRequest{Login: "bob", Password: "", PhoneNum: "1"}, "password"},
		{"long password", services.RegisterRequest{Login: "bob", Password: strings.Repeat("p", 31), PhoneNum: "1"}, "password"},
		{"blank phone", services.RegisterRequest{Login: "bob", Password: "pw", PhoneNum: " "}, "phoneNum"},
		{"long phone", services.RegisterRequest{Login: "bob", Password: "pw", PhoneNum: strings.Repeat("5", 21)}, "phoneNum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.auth.Register(ctx, tt.req)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Zero(t, f.count(t, "users"))

	require.NoError(t, f.auth.Register(ctx, services.RegisterRequest{
		Login: strings.Repeat("a", 50), Password: strings.Repeat("p", 30), PhoneNum: strings.Repeat("5", 20),
	}))
	u, err := f.profile.View(ctx, strings.Repeat("a", 50))
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, u.Role)
	assert.NotEqual(t, strings.Repeat("p", 30), u.Password)

	assert.ErrorIs(t, f.auth.Register(ctx, services.RegisterRequest{
		Login: strings.Repeat("a", 50), Password: "pw", PhoneNum: "1",
	}), models.ErrDuplicateLogin)
}

func TestValidateField(t *testing.T) {
	f := newFixture(t)
	assert.NoError(t, f.auth.ValidateField("login", "alice"))
	assert.Error(t, f.auth.ValidateField("password", strings.Repeat("p", 31)))
	assert.Error(t, f.auth.ValidateField("phoneNum", ""))
	assert.NoError(t, f.auth.ValidateField("favoriteItems", ""))

	assert.NoError(t, f.auth.ValidateField("login", strings.Repeat("a", 50)+" "))
	assert.NoError(t, f.auth.ValidateField("phoneNum", " "+strings.Repeat("5", 20)))
	assert.Error(t, f.auth.ValidateField("login", strings.Repeat("a", 51)))
}

func TestMultibytePasswordAtLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	password := strings.Repeat("密", 30)
	require.Greater(t, len(password), 72)

	require.NoError(t, f.auth.ValidateField("password", password))
	require.NoError(t, f.auth.Register(ctx, services.RegisterRequest{
		Login: "mei", Password: password, PhoneNum: "555-0142",
	}))

	identity, err := f.auth.Login(ctx, "mei", password)
	require.NoError(t, err)
	assert.Equal(t, "mei", identity)

	_, err = f.auth.Login(ctx, "mei", strings.Repeat("密", 29)+"蜜")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	newPassword := strings.Repeat("ü", 30)
	require.NoError(t, f.profile.Update(ctx, "mei", services.ProfileChanges{Password: newPassword}))
	_, err = f.auth.Login(ctx, "mei", newPassword)
	assert.NoError(t, err)
}

func TestLoginUpgradesLegacyRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "alice", models.RoleCustomer)

	_, err := f.auth.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	identity, err := f.auth.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", identity)

	u, err := f.profile.View(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.Password, "$2"))

	_, err = f.auth.Login(ctx, "alice", "pw")
	assert.NoError(t, err)
}

func TestProfileRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "alice", models.RoleCustomer)

	before, err := f.profile.ForEdit(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, f.profile.Update(ctx, "alice", services.ProfileChanges{PhoneNum: "555-0199"}))

	after, err := f.profile.View(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "555-0199", after.PhoneNum)
	assert.Equal(t, before.Password, after.Password)
	assert.Equal(t, before.FavoriteItems, after.FavoriteItems)

	assert.ErrorIs(t, f.profile.Update(ctx, "alice", services.ProfileChanges{}), models.ErrNoOp)
}

func TestFavoriteItemsAreStoredVerbatim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	payload := "'; DROP TABLE Users; --"

	require.NoError(t, f.auth.Register(ctx, services.RegisterRequest{
		Login: "mallory", Password: "pw", FavoriteItems: payload, PhoneNum: "555",
	}))
	u, err := f.profile.View(ctx, "mallory")
	require.NoError(t, err)
	assert.Equal(t, payload, u.FavoriteItems)

	require.NoError(t, f.profile.Update(ctx, "mallory", services.ProfileChanges{FavoriteItems: "x' OR '1'='1"}))
	u, err = f.profile.View(ctx, "mallory")
	require.NoError(t, err)
	assert.Equal(t, "x' OR '1'='1", u.FavoriteItems)
	assert.EqualValues(t, 1, f.count(t, "users"))
}

func TestManagerAddsVeggieSupreme(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "boss", models.RoleManager)

	_, err := f.menu.List(ctx)
	assert.ErrorIs(t, err, models.ErrNoRecords)

	_, err = f.menu.AddItem(ctx, "boss", services.NewItem{
		ItemName: "Veggie Supreme", Ingredients: "pepper,onion", TypeOfItem: "entree", Price: "9.50", Description: "fresh veggies",
	})
	require.NoError(t, err)

	items, err := f.menu.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.Item{
		ItemName: "Veggie Supreme", Ingredients: "pepper,onion", TypeOfItem: "entree", Price: 9.5, Description: "fresh veggies",
	}, items[0])

	_, err = f.menu.AddItem(ctx, "boss", services.NewItem{
		ItemName: "Veggie Supreme", Ingredients: "x", TypeOfItem: "x", Price: "1", Description: "x",
	})
	assert.ErrorIs(t, err, models.ErrDuplicateItem)

	require.NoError(t, f.menu.UpdateItem(ctx, "boss", "Veggie Supreme", services.ItemChanges{Price: "10.25", Description: "with olives"}))
	item, err := f.menu.ItemForEdit(ctx, "boss", "Veggie Supreme")
	require.NoError(t, err)
	assert.Equal(t, 10.25, item.Price)
	assert.Equal(t, "with olives", item.Description)
	assert.Equal(t, "pepper,onion", item.Ingredients)
}

func TestNonManagerCannotChangeMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "cust", models.RoleCustomer)
	dbtest.Seed(t, f.gw, &models.Item{ItemName: "Cheese", Ingredients: "cheese", TypeOfItem: "entree", Price: 8, Description: "plain"})

	_, err := f.menu.ForEdit(ctx, "cust")
	assert.ErrorIs(t, err, models.ErrAccessDenied)
	_, err = f.menu.AddItem(ctx, "cust", services.NewItem{
		ItemName: "Hawaiian", Ingredients: "ham", TypeOfItem: "entree", Price: "11", Description: "pineapple",
	})
	assert.ErrorIs(t, err, models.ErrAccessDenied)
	assert.ErrorIs(t, f.menu.UpdateItem(ctx, "cust", "Cheese", services.ItemChanges{Price: "0"}), models.ErrAccessDenied)

	assert.EqualValues(t, 1, f.count(t, "items"))
	items, err := f.menu.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8.0, items[0].Price)
}

func TestDeniedUserUpdateLeavesRowUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "alice", models.RoleCustomer)
	f.seedUser(t, "driver", models.RoleDriver)

	before, err := f.profile.View(ctx, "alice")
	require.NoError(t, err)

	err = f.admin.Update(ctx, "driver", "alice", services.UserChanges{Role: "manager", PhoneNum: "1"})
	assert.ErrorIs(t, err, models.ErrAccessDenied)

	after, err := f.profile.View(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestManagerUpdatesUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "boss", models.RoleManager)
	f.seedUser(t, "alice", models.RoleCustomer)

	_, err := f.admin.ForEdit(ctx, "boss", "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = f.admin.Update(ctx, "boss", "alice", services.UserChanges{Role: "chef"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)

	require.NoError(t, f.admin.Update(ctx, "boss", "alice", services.UserChanges{Role: " Driver ", Password: "newpw"}))
	u, err := f.admin.ForEdit(ctx, "boss", "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDriver, u.Role)
	assert.Equal(t, "cheese", u.FavoriteItems)

	_, err = f.auth.Login(ctx, "alice", "newpw")
	assert.NoError(t, err)

	assert.ErrorIs(t, f.admin.Update(ctx, "boss", "alice", services.UserChanges{Role: "driver"}), models.ErrNoOp)
}

func TestDriverDeliversOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "driver", models.RoleDriver)
	dbtest.Seed(t, f.gw, dbtest.Order(1, "alice", models.StatusIncomplete))

	order, nexts, err := f.orders.ForStatusUpdate(ctx, "driver", "1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusIncomplete, order.OrderStatus)
	assert.Equal(t, []models.OrderStatus{models.StatusDelivered}, nexts)

	require.NoError(t, f.orders.UpdateStatus(ctx, "driver", "1", "delivered"))
	info, err := f.orders.Info(ctx, "driver", "1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, info.Order.OrderStatus)

	assert.ErrorIs(t, f.orders.UpdateStatus(ctx, "driver", "42", "delivered"), models.ErrNotFound)
	assert.EqualValues(t, 1, f.count(t, "foodorder"))
}

func TestOrderViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "alice", models.RoleCustomer)
	f.seedUser(t, "bob", models.RoleCustomer)
	f.seedUser(t, "boss", models.RoleManager)
	for i := 1; i <= 7; i++ {
		o := dbtest.Order(i, "alice", models.StatusComplete)
		o.OrderTimestamp = o.OrderTimestamp.AddDate(0, 0, i)
		dbtest.Seed(t, f.gw, o)
	}
	dbtest.Seed(t, f.gw, &models.ItemInOrder{OrderID: 3, ItemName: "Cheese", Quantity: 2})

	all, err := f.orders.History(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 7, all.Len())

	recent, err := f.orders.Recent(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 5, recent.Len())
	assert.Equal(t, "7", recent.Records[0][0])

	_, err = f.orders.History(ctx, "bob")
	assert.ErrorIs(t, err, models.ErrNoRecords)

	info, err := f.orders.Info(ctx, "alice", "3")
	require.NoError(t, err)
	require.Len(t, info.Lines, 1)
	assert.Equal(t, 2, info.Lines[0].Quantity)

	_, err = f.orders.Info(ctx, "bob", "3")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = f.orders.Info(ctx, "boss", "3")
	assert.NoError(t, err)

	_, err = f.orders.Info(ctx, "alice", "three")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "orderID", verr.Field)
}

func TestStoresList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.stores.List(ctx)
	assert.ErrorIs(t, err, models.ErrNoRecords)

	dbtest.Seed(t, f.gw, &models.Store{StoreID: 1, Address: "1 Main", City: "Irvine", State: "CA", IsOpen: "yes"})
	stores, err := f.stores.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 1)
}

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-store-cli/database/dbtest"
	"pizza-store-cli/models"
	"pizza-store-cli/repository"
)

func TestUsers(t *testing.T) {
	gw := dbtest.New(t)
	ctx := context.Background()
	users := repository.NewUsers(gw)

	require.NoError(t, users.Create(ctx, &models.User{
		Login: "alice", Password: "hash", Role: models.RoleDriver, FavoriteItems: "pepperoni", PhoneNum: "555-0100",
	}))
	assert.ErrorIs(t, users.Create(ctx, &models.User{Login: "alice", Password: "x", Role: models.RoleCustomer}),
		models.ErrDuplicateLogin)

	ok, err := users.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	role, err := users.RoleOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDriver, role)

	_, err = users.RoleOf(ctx, "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)

	n, err := users.Update(ctx, "alice", map[string]any{"phonenum": "555-0199"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	u, err := users.FindByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "555-0199", u.PhoneNum)
	assert.Equal(t, "pepperoni", u.FavoriteItems)

	_, err = users.FindByLogin(ctx, "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRoleOfNormalizesPadding(t *testing.T) {
	gw := dbtest.New(t)
	ctx := context.Background()
	_, err := gw.Exec(ctx, "INSERT INTO users (login, password, role) VALUES (?, ?, ?)", "bob", "pw", "Manager   ")
	require.NoError(t, err)

	role, err := repository.NewUsers(gw).RoleOf(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, role)
}

func TestItems(t *testing.T) {
	gw := dbtest.New(t)
	ctx := context.Background()
	items := repository.NewItems(gw)

	list, err := items.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	item := &models.Item{ItemName: "Veggie Supreme", Ingredients: "pepper,onion", TypeOfItem: "entree", Price: 9.5, Description: "fresh veggies"}
	require.NoError(t, items.Create(ctx, item))
	assert.ErrorIs(t, items.Create(ctx, item), models.ErrDuplicateItem)

	_, err = items.Update(ctx, "Veggie Supreme", map[string]any{"price": 10.25})
	require.NoError(t, err)

	got, err := items.FindByName(ctx, "Veggie Supreme")
	require.NoError(t, err)
	assert.Equal(t, 10.25, got.Price)
	assert.Equal(t, "fresh veggies", got.Description)

	_, err = items.FindByName(ctx, "Hawaiian")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStores(t *testing.T) {
	gw := dbtest.New(t)
	score := 4.5
	dbtest.Seed(t, gw,
		&models.Store{StoreID: 2, Address: "2 Elm", City: "Riverside", State: "CA", IsOpen: "no"},
		&models.Store{StoreID: 1, Address: "1 Main", City: "Irvine", State: "CA", IsOpen: "yes", ReviewScore: &score},
	)

	stores, err := repository.NewStores(gw).List(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, 1, stores[0].StoreID)
	require.NotNil(t, stores[0].ReviewScore)
	assert.Nil(t, stores[1].ReviewScore)
}

func TestOrders(t *testing.T) {
	gw := dbtest.New(t)
	ctx := context.Background()
	orders := repository.NewOrders(gw)

	older := dbtest.Order(1, "alice", models.StatusComplete)
	newer := dbtest.Order(2, "alice", models.StatusIncomplete)
	newer.OrderTimestamp = older.OrderTimestamp.Add(time.Hour)
	dbtest.Seed(t, gw, older, newer, dbtest.Order(3, "bob", models.StatusIncomplete),
		&models.ItemInOrder{OrderID: 2, ItemName: "Garlic Knots", Quantity: 2},
		&models.ItemInOrder{OrderID: 2, ItemName: "Cheese", Quantity: 1},
	)

	n, err := orders.UpdateStatus(ctx, 2, models.StatusDelivered)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	o, err := orders.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, o.OrderStatus)

	_, err = orders.FindByID(ctx, 99)
	assert.ErrorIs(t, err, models.ErrNotFound)

	n, err = orders.UpdateStatus(ctx, 99, models.StatusDelivered)
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := orders.History(ctx, "alice", 0)
	require.NoError(t, err)
	require.Equal(t, 2, all.Len())
	assert.Equal(t, "2", all.Records[0][0])

	recent, err := orders.History(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, recent.Len())

	lines, err := orders.Lines(ctx, 2)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Cheese", lines[0].ItemName)
}

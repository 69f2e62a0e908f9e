package repository

import (
	"context"
	"testing"

	"tinyshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_BeginTx(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NotNil(t, tx)

	assert.NoError(t, tx.Rollback(ctx))
}

func TestOrderRepository_CreateOrderWithItems(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	user := seedUser(t, pool, "buyer@example.com")
	a := seedProduct(t, pool, "A", "10.00")
	b := seedProduct(t, pool, "B", "5.00")

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	order := &model.Order{UserID: user.ID, Total: decimal.RequireFromString("35.00")}
	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	assert.NotZero(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())

	items := []model.OrderItem{
		{OrderID: order.ID, ProductID: a.ID, Quantity: 2, UnitPrice: a.Price, LineTotal: decimal.RequireFromString("20.00")},
		{OrderID: order.ID, ProductID: b.ID, Quantity: 3, UnitPrice: b.Price, LineTotal: decimal.RequireFromString("15.00")},
	}
	require.NoError(t, repo.CreateOrderItems(ctx, tx, items))
	assert.NotZero(t, items[0].ID)
	assert.NotZero(t, items[1].ID)
	assert.NotEqual(t, items[0].ID, items[1].ID)

	require.NoError(t, tx.Commit(ctx))

	got, gotItems, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.UserID)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(35)))

	require.Len(t, gotItems, 2)
	assert.Equal(t, a.ID, gotItems[0].ProductID)
	assert.Equal(t, 2, gotItems[0].Quantity)
	assert.True(t, gotItems[0].UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, gotItems[1].LineTotal.Equal(decimal.NewFromInt(15)))
}

func TestOrderRepository_ItemFailureRollsBackOrder(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	user := seedUser(t, pool, "buyer@example.com")
	a := seedProduct(t, pool, "A", "10.00")

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	order := &model.Order{UserID: user.ID, Total: decimal.RequireFromString("10.00")}
	require.NoError(t, repo.CreateOrder(ctx, tx, order))

	items := []model.OrderItem{
		{OrderID: order.ID, ProductID: a.ID, Quantity: 1, UnitPrice: a.Price, LineTotal: a.Price},
		{OrderID: order.ID, ProductID: 9999, Quantity: 1, UnitPrice: a.Price, LineTotal: a.Price},
	}
	err = repo.CreateOrderItems(ctx, tx, items)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create order item")

	require.NoError(t, tx.Rollback(ctx))

	got, _, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM order_items").Scan(&count))
	assert.Zero(t, count)
}

func TestOrderRepository_CreateOrderUnknownUser(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	err = repo.CreateOrder(ctx, tx, &model.Order{UserID: 4242, Total: decimal.Zero})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create order")
}

func TestOrderRepository_CreateOrderItemsEmpty(t *testing.T) {
	repo := NewOrderRepository(nil, zerolog.Nop())

	err := repo.CreateOrderItems(context.Background(), nil, nil)
	assert.NoError(t, err)
}

func TestOrderRepository_GetByIDNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())

	order, items, err := repo.GetByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Nil(t, items)
}

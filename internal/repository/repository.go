package repository

import (
	"context"

	"tinyshop/internal/model"

	"github.com/jackc/pgx/v5"
)

// Transactor starts database transactions.
type Transactor interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a user and fills in its ID and CreatedAt.
	// Returns model.ErrEmailTaken if the email is already registered.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email, case-insensitively. Returns nil if absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID. Returns nil if absent.
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	Transactor

	// GetAll retrieves every product ordered by ID.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil if absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByIDs retrieves the products matching ids. Unknown IDs are absent
	// from the result.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	// LockByIDs is GetByIDs inside tx, holding share locks on the returned
	// rows until tx ends so their prices cannot change underneath it.
	LockByIDs(ctx context.Context, tx pgx.Tx, ids []int64) ([]model.Product, error)

	// Create inserts a product and fills in its ID and CreatedAt.
	Create(ctx context.Context, product *model.Product) error

	// CreateMany inserts products within the provided transaction.
	CreateMany(ctx context.Context, tx pgx.Tx, products []model.Product) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	Transactor

	// CreateOrder inserts the order header within tx and fills in its ID and CreatedAt.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts order items within tx and fills in their IDs.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items. Returns nil if absent.
	GetByID(ctx context.Context, id int64) (*model.Order, []model.OrderItem, error)
}

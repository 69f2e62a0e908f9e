package service

import (
	"context"

	"tinyshop/internal/model"
)

// AuthService defines operations for account registration and login.
type AuthService interface {
	// Validate checks an email and plaintext password against the stored hash.
	// Unknown email and wrong password both return model.ErrInvalidCredentials.
	Validate(ctx context.Context, email, password string) (*model.Identity, error)

	// Login validates credentials and issues an access token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)

	// Register creates a new user with a hashed password.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
}

// ProductService defines operations for product management.
type ProductService interface {
	// GetAll retrieves all products.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create adds a product to the catalogue.
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder prices the requested lines at current catalogue prices and
	// persists the order and its items in a single transaction.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order by its ID with all items.
	GetByID(ctx context.Context, id int64) (*model.OrderResponse, error)
}

// TokenIssuer mints access tokens for authenticated identities.
type TokenIssuer interface {
	Issue(id model.Identity) (string, error)
}

// PasswordHasher hashes and compares passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
	// CompareDummy spends the same work as Compare and always fails.
	CompareDummy(plain string) bool
}

// LoginLimiter throttles repeated failed logins per email.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// Recorder receives workflow events for instrumentation.
type Recorder interface {
	OrderCreated(lines, dropped int)
	LoginAttempt(result string)
}

type nopRecorder struct{}

func (nopRecorder) OrderCreated(int, int) {}
func (nopRecorder) LoginAttempt(string)   {}

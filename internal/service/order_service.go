package service

import (
	"context"
	"fmt"

	"tinyshop/internal/model"
	"tinyshop/internal/pricing"
	"tinyshop/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	recorder    Recorder
	logger      zerolog.Logger
}

// NewOrderService creates a new order service. recorder may be nil.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	recorder Recorder,
	logger zerolog.Logger,
) OrderService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		recorder:    recorder,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder prices and persists an order. Requested products missing from
// the catalogue are dropped from the order rather than failing it. Prices are
// read under a share lock in the same transaction that writes the order, so
// the stored totals match the prices the order was priced at.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (_ *model.OrderResponse, err error) {
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", req.UserID).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if user == nil {
		s.logger.Debug().Int64("user_id", req.UserID).Msg("user not found")
		return nil, model.ErrUserNotFound
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	products, err := s.productRepo.LockByIDs(ctx, tx, pricing.ProductIDs(req.Products))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up product prices")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	quote := pricing.Price(req.Products, pricing.NewCatalog(products))
	if quote.GrandTotal.GreaterThan(model.MaxOrderTotal) {
		s.logger.Warn().
			Int64("user_id", req.UserID).
			Str("total", quote.GrandTotal.String()).
			Msg("order total exceeds maximum")
		return nil, model.ErrOrderTotalTooLarge
	}
	if len(quote.Dropped) > 0 {
		s.logger.Warn().
			Int64("user_id", req.UserID).
			Ints64("dropped_product_ids", quote.Dropped).
			Msg("dropping order lines for unknown products")
	}

	order := &model.Order{
		UserID: req.UserID,
		Total:  quote.GrandTotal,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Int64("user_id", req.UserID).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]model.OrderItem, len(quote.Lines))
	for i, line := range quote.Lines {
		items[i] = model.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Int64("order_id", order.ID).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.recorder.OrderCreated(len(items), len(quote.Dropped))

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("user_id", order.UserID).
		Int("item_count", len(items)).
		Str("total", order.Total.String()).
		Msg("order created successfully")

	return &model.OrderResponse{
		ID:     order.ID,
		UserID: order.UserID,
		Total:  order.Total,
		Items:  items,
	}, nil
}

// GetByID retrieves an order by its ID with all items.
func (s *orderService) GetByID(ctx context.Context, id int64) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Int64("order_id", id).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	if items == nil {
		items = []model.OrderItem{}
	}

	return &model.OrderResponse{
		ID:     order.ID,
		UserID: order.UserID,
		Total:  order.Total,
		Items:  items,
	}, nil
}

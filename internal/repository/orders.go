package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sendbackhq/sendback/internal/common"
	"github.com/sendbackhq/sendback/internal/entity"
)

// OrderRepository is the persistence surface the handlers depend on.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	List(ctx context.Context) ([]entity.Order, error)
	GetByID(ctx context.Context, id uint) (*entity.Order, error)
	ListItems(ctx context.Context, orderID uint) ([]entity.LineItem, error)
	// MissingItemIDs returns the subset of ids that do NOT belong to the order.
	MissingItemIDs(ctx context.Context, orderID uint, ids []uint) ([]uint, error)
}

type orderRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewOrderRepository(db *gorm.DB, logger *zap.Logger) OrderRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orderRepository{db: db, logger: logger}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		r.logger.Error("order.create failed", zap.Error(err))
		return common.WrapError(err, "create order")
	}
	return nil
}

// List returns orders newest-first by identity.
func (r *orderRepository) List(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&orders).Error; err != nil {
		r.logger.Error("order.list failed", zap.Error(err))
		return nil, common.WrapError(err, "list orders")
	}
	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NotFoundError("no such order")
	}
	if err != nil {
		r.logger.Error("order.get failed", zap.Uint("id", id), zap.Error(err))
		return nil, common.WrapError(err, "get order")
	}
	return &order, nil
}

// ListItems returns an order's line items in insertion order.
func (r *orderRepository) ListItems(ctx context.Context, orderID uint) ([]entity.LineItem, error) {
	var items []entity.LineItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		r.logger.Error("order.items failed", zap.Uint("order_id", orderID), zap.Error(err))
		return nil, common.WrapError(err, "list items")
	}
	return items, nil
}

func (r *orderRepository) MissingItemIDs(ctx context.Context, orderID uint, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var owned []uint
	err := r.db.WithContext(ctx).
		Model(&entity.LineItem{}).
		Where("order_id = ? AND id IN ?", orderID, ids).
		Pluck("id", &owned).Error
	if err != nil {
		r.logger.Error("order.item_ownership failed", zap.Uint("order_id", orderID), zap.Error(err))
		return nil, common.WrapError(err, "check item ownership")
	}
	ownedSet := make(map[uint]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}
	var missing []uint
	for _, id := range ids {
		if _, ok := ownedSet[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

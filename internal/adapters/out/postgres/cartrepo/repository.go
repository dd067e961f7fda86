package cartrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new cart to the database.
func (r *GormCartRepository) Add(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update replaces the stored state of an existing cart. Line items can be
// added, changed, and removed between updates, so the child rows are replaced
// wholesale rather than merged.
func (r *GormCartRepository) Update(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CartDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"restaurant_id":  dto.RestaurantID,
			"coupon_code":    dto.CouponCode,
			"coupon_kind":    dto.CouponKind,
			"coupon_value":   dto.CouponValue,
			"coupon_minimum": dto.CouponMinimum,
			"updated_at":     dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).Delete(&CartItemDTO{}, "cart_id = ?", dto.ID).Error; err != nil {
		return err
	}
	if len(dto.Items) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByCustomer retrieves the customer's cart with its line items.
func (r *GormCartRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id")
		}).
		First(&dto, "customer_id = ?", customerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", customerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a cart and its line items. Used on successful checkout and
// by the abandoned-cart cleanup job.
func (r *GormCartRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&CartItemDTO{}, "cart_id = ?", id.Bytes()).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&CartDTO{}, "id = ?", id.Bytes()).Error
}

// DeleteIdleSince removes carts untouched since the cutoff and returns how
// many were removed.
func (r *GormCartRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	err := r.db.WithContext(ctx).
		Where("cart_id IN (?)",
			r.db.Model(&CartDTO{}).Select("id").Where("updated_at < ?", cutoff)).
		Delete(&CartItemDTO{}).Error
	if err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).Delete(&CartDTO{}, "updated_at < ?", cutoff)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

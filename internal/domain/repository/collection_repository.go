package repository

import (
	"context"

	"tradebinder/internal/domain/entity"
)

type CollectionRepository interface {
	Create(ctx context.Context, item *entity.CollectionItem) error
	GetByID(ctx context.Context, id string) (*entity.CollectionItem, error)
	Update(ctx context.Context, item *entity.CollectionItem) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.CollectionItem, int64, error)

	// ListTradeable returns the user's items eligible as matcher candidates
	// (tradeable and not wishlist entries), in stored order.
	ListTradeable(ctx context.Context, userID string) ([]*entity.CollectionItem, error)
}

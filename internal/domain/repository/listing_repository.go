package repository

import (
	"context"

	"tradebinder/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Listing, int64, error)

	// ListActiveByGame returns active listings for a game, excluding those
	// owned by excludeOwnerID. This is the candidate feed for the ranker.
	ListActiveByGame(ctx context.Context, game string, excludeOwnerID string, limit, offset int) ([]*entity.Listing, int64, error)
}

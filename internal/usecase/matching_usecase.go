package usecase

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"tradebinder/internal/domain/entity"
	"tradebinder/internal/domain/repository"
	"tradebinder/internal/domain/service"
	"tradebinder/internal/infrastructure/metrics"
	"tradebinder/pkg/errors"
	"tradebinder/pkg/logger"
)

type MatchingUseCase struct {
	listingRepo    repository.ListingRepository
	collectionRepo repository.CollectionRepository
	cache          *lru.Cache
	browseLimit    int
}

func NewMatchingUseCase(
	listingRepo repository.ListingRepository,
	collectionRepo repository.CollectionRepository,
	cacheSize int,
	browseLimit int,
) *MatchingUseCase {
	cache, _ := lru.New(cacheSize)

	return &MatchingUseCase{
		listingRepo:    listingRepo,
		collectionRepo: collectionRepo,
		cache:          cache,
		browseLimit:    browseLimit,
	}
}

// FindOpportunities ranks other users' active listings in the same game
// against the caller's listing. Results are cached per listing until a
// listing write invalidates them; ranking itself never fails visibly, the
// worst case is an empty list.
func (uc *MatchingUseCase) FindOpportunities(ctx context.Context, userID, listingID string) ([]service.TradeOpportunity, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != userID {
		return nil, errors.NotOwner(nil)
	}

	if cached, ok := uc.cache.Get(listingID); ok {
		metrics.RankCache.WithLabelValues("hit").Inc()
		return cached.([]service.TradeOpportunity), nil
	}
	metrics.RankCache.WithLabelValues("miss").Inc()

	candidates, _, err := uc.listingRepo.ListActiveByGame(ctx, listing.Game, userID, uc.browseLimit, 0)
	if err != nil {
		logger.Warn("Opportunity candidate fetch failed for listing %s: %v", listingID, err)
		return []service.TradeOpportunity{}, nil
	}

	opportunities := service.RankOpportunities(listing, candidates, time.Now())
	metrics.RankRuns.Inc()

	uc.cache.Add(listingID, opportunities)

	return opportunities, nil
}

// QuickMatch auto-selects items from the caller's collection that satisfy the
// counterpart listing's wants, for a one-tap offer.
func (uc *MatchingUseCase) QuickMatch(ctx context.Context, userID, listingID string) ([]*entity.CollectionItem, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID == userID {
		return nil, errors.InvalidOfferer("Cannot quick-match against your own listing", nil)
	}
	if listing.Status != entity.ListingStatusActive {
		return nil, errors.InvalidListing("Listing is not active", nil)
	}

	items, err := uc.collectionRepo.ListTradeable(ctx, userID)
	if err != nil {
		logger.Warn("Quick-match collection fetch failed for user %s: %v", userID, err)
		return []*entity.CollectionItem{}, nil
	}

	return service.SelectQuickMatch(listing.TradeWants, items), nil
}

// InvalidateListing drops any cached ranking involving the listing. Rankings
// of other listings that referenced this one as a candidate age out via LRU
// churn; stale candidates are tolerated for display.
func (uc *MatchingUseCase) InvalidateListing(listingID string) {
	uc.cache.Remove(listingID)
}

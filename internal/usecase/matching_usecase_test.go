package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebinder/internal/domain/entity"
	"tradebinder/pkg/errors"
)

type matchingFixture struct {
	uc             *MatchingUseCase
	listingRepo    *stubListingRepo
	collectionRepo *stubCollectionRepo
	mine           *entity.Listing
}

func newMatchingFixture(t *testing.T) *matchingFixture {
	t.Helper()

	listingRepo := newStubListingRepo()
	collectionRepo := newStubCollectionRepo()

	mine := &entity.Listing{
		ID:         "mine",
		OwnerID:    "alice",
		Game:       "pokemon",
		Items:      []entity.ListingItem{{CardID: "sv4-6", Condition: entity.ConditionNearMint}},
		TradeWants: []entity.TradeWant{{Kind: entity.WantSpecificCard, CardID: "sv4-25"}},
		Status:     entity.ListingStatusActive,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, listingRepo.Create(context.Background(), mine))

	return &matchingFixture{
		uc:             NewMatchingUseCase(listingRepo, collectionRepo, 16, 200),
		listingRepo:    listingRepo,
		collectionRepo: collectionRepo,
		mine:           mine,
	}
}

func (f *matchingFixture) addCandidate(t *testing.T, id, ownerID, cardID string) {
	t.Helper()
	require.NoError(t, f.listingRepo.Create(context.Background(), &entity.Listing{
		ID:        id,
		OwnerID:   ownerID,
		Game:      "pokemon",
		Items:     []entity.ListingItem{{CardID: cardID, Condition: entity.ConditionNearMint}},
		Status:    entity.ListingStatusActive,
		CreatedAt: time.Now(),
	}))
}

func TestFindOpportunitiesOnlyOwner(t *testing.T) {
	f := newMatchingFixture(t)

	_, err := f.uc.FindOpportunities(context.Background(), "bob", "mine")
	assert.True(t, errors.Is(err, errors.CodeNotOwner), "got %v", err)
}

func TestFindOpportunitiesRanksCandidates(t *testing.T) {
	f := newMatchingFixture(t)
	f.addCandidate(t, "hit", "bob", "sv4-25")
	f.addCandidate(t, "miss", "carol", "swsh1-1")

	opportunities, err := f.uc.FindOpportunities(context.Background(), "alice", "mine")
	require.NoError(t, err)
	require.Len(t, opportunities, 1)
	assert.Equal(t, "hit", opportunities[0].Listing.ID)
}

func TestFindOpportunitiesCachesUntilInvalidated(t *testing.T) {
	f := newMatchingFixture(t)
	f.addCandidate(t, "hit", "bob", "sv4-25")

	first, err := f.uc.FindOpportunities(context.Background(), "alice", "mine")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A new candidate does not appear until the cache entry is dropped.
	f.addCandidate(t, "hit2", "carol", "sv4-25")

	cached, err := f.uc.FindOpportunities(context.Background(), "alice", "mine")
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	f.uc.InvalidateListing("mine")

	fresh, err := f.uc.FindOpportunities(context.Background(), "alice", "mine")
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestFindOpportunitiesCandidateFetchFailureReturnsEmpty(t *testing.T) {
	f := newMatchingFixture(t)
	f.listingRepo.listErr = errors.Internal("backend down", nil)

	opportunities, err := f.uc.FindOpportunities(context.Background(), "alice", "mine")
	require.NoError(t, err)
	assert.Empty(t, opportunities)
}

func TestQuickMatchSelectsFromCallerCollection(t *testing.T) {
	f := newMatchingFixture(t)

	theirs := &entity.Listing{
		ID:      "theirs",
		OwnerID: "bob",
		Game:    "pokemon",
		Items:   []entity.ListingItem{{CardID: "sv4-25"}},
		TradeWants: []entity.TradeWant{
			{Kind: entity.WantSpecificCard, CardID: "sv4-6"},
		},
		Status: entity.ListingStatusActive,
	}
	require.NoError(t, f.listingRepo.Create(context.Background(), theirs))

	require.NoError(t, f.collectionRepo.Create(context.Background(), &entity.CollectionItem{
		ID: "i1", UserID: "alice", CardID: "sv4-6", IsTradeable: true,
	}))
	require.NoError(t, f.collectionRepo.Create(context.Background(), &entity.CollectionItem{
		ID: "locked", UserID: "alice", CardID: "sv4-6", IsTradeable: false,
	}))

	picks, err := f.uc.QuickMatch(context.Background(), "alice", "theirs")
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, "i1", picks[0].ID)
}

func TestQuickMatchRejectsOwnAndInactiveListings(t *testing.T) {
	f := newMatchingFixture(t)

	_, err := f.uc.QuickMatch(context.Background(), "alice", "mine")
	assert.True(t, errors.Is(err, errors.CodeInvalidOfferer), "own listing: %v", err)

	expired := &entity.Listing{
		ID:      "expired",
		OwnerID: "bob",
		Game:    "pokemon",
		Status:  entity.ListingStatusExpired,
	}
	require.NoError(t, f.listingRepo.Create(context.Background(), expired))

	_, err = f.uc.QuickMatch(context.Background(), "alice", "expired")
	assert.True(t, errors.Is(err, errors.CodeInvalidListing), "expired listing: %v", err)
}

package usecase

import (
	"context"
	"time"

	"tradebinder/internal/domain/entity"
	"tradebinder/internal/domain/repository"
	"tradebinder/pkg/errors"
	"tradebinder/pkg/utils"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	invalidator RankInvalidator
}

// RankInvalidator drops cached opportunity rankings when a listing changes.
type RankInvalidator interface {
	InvalidateListing(listingID string)
}

func NewListingUseCase(listingRepo repository.ListingRepository, invalidator RankInvalidator) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		invalidator: invalidator,
	}
}

type CreateListingInput struct {
	Game          string
	Title         string
	Items         []entity.ListingItem
	TradeWants    []entity.TradeWant
	AcceptsCash   bool
	AcceptsTrades bool
	CashAmount    float64
	TotalValue    float64
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, ownerID string, input CreateListingInput) (*entity.Listing, error) {
	if len(input.Items) == 0 {
		return nil, errors.BadRequest("Listing must contain at least one item", nil)
	}

	// Wants with kinds this engine does not understand are dropped rather
	// than stored; the matcher would treat them as non-matching anyway.
	wants := make([]entity.TradeWant, 0, len(input.TradeWants))
	for _, want := range input.TradeWants {
		if want.KnownKind() {
			wants = append(wants, want)
		}
	}

	listing := &entity.Listing{
		OwnerID:       ownerID,
		Game:          input.Game,
		Title:         input.Title,
		Items:         input.Items,
		TradeWants:    wants,
		AcceptsCash:   input.AcceptsCash,
		AcceptsTrades: input.AcceptsTrades,
		CashAmount:    input.CashAmount,
		TotalValue:    input.TotalValue,
		Status:        entity.ListingStatusActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	uc.invalidator.InvalidateListing(listing.ID)

	return listing, nil
}

func (uc *ListingUseCase) GetListing(ctx context.Context, listingID string) (*entity.Listing, error) {
	return uc.listingRepo.GetByID(ctx, listingID)
}

func (uc *ListingUseCase) ListMyListings(ctx context.Context, ownerID, status string, page, limit int) ([]*entity.Listing, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.listingRepo.ListByOwnerID(ctx, ownerID, status, pagination.PageSize, pagination.Offset)
}

func (uc *ListingUseCase) BrowseListings(ctx context.Context, userID, game string, page, limit int) ([]*entity.Listing, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.listingRepo.ListActiveByGame(ctx, game, userID, pagination.PageSize, pagination.Offset)
}

type UpdateListingInput struct {
	Title      string
	Items      []entity.ListingItem
	TradeWants []entity.TradeWant
	CashAmount float64
	TotalValue float64
}

func (uc *ListingUseCase) UpdateListing(ctx context.Context, ownerID, listingID string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != ownerID {
		return nil, errors.NotOwner(nil)
	}
	if listing.Status != entity.ListingStatusActive {
		return nil, errors.InvalidListing("Only active listings can be edited", nil)
	}
	if len(input.Items) == 0 {
		return nil, errors.BadRequest("Listing must contain at least one item", nil)
	}

	listing.Title = input.Title
	listing.Items = input.Items
	listing.CashAmount = input.CashAmount
	listing.TotalValue = input.TotalValue
	listing.TradeWants = listing.TradeWants[:0]
	for _, want := range input.TradeWants {
		if want.KnownKind() {
			listing.TradeWants = append(listing.TradeWants, want)
		}
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	uc.invalidator.InvalidateListing(listing.ID)

	return listing, nil
}

func (uc *ListingUseCase) CompleteListing(ctx context.Context, ownerID, listingID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != ownerID {
		return nil, errors.NotOwner(nil)
	}
	if !listing.CanTransitionTo(entity.ListingStatusCompleted) {
		return nil, errors.InvalidListing("Listing cannot be completed from its current status", nil)
	}

	listing.Status = entity.ListingStatusCompleted
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	uc.invalidator.InvalidateListing(listing.ID)

	return listing, nil
}

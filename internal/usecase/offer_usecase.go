package usecase

import (
	"context"
	"time"

	"tradebinder/internal/domain/entity"
	"tradebinder/internal/domain/repository"
	"tradebinder/internal/infrastructure/metrics"
	ws "tradebinder/internal/infrastructure/websocket"
	"tradebinder/pkg/errors"
	"tradebinder/pkg/logger"
	"tradebinder/pkg/utils"
)

type OfferUseCase struct {
	offerRepo      repository.OfferRepository
	listingRepo    repository.ListingRepository
	collectionRepo repository.CollectionRepository
	invalidator    RankInvalidator
	wsManager      *ws.Manager
}

func NewOfferUseCase(
	offerRepo repository.OfferRepository,
	listingRepo repository.ListingRepository,
	collectionRepo repository.CollectionRepository,
	invalidator RankInvalidator,
	wsManager *ws.Manager,
) *OfferUseCase {
	return &OfferUseCase{
		offerRepo:      offerRepo,
		listingRepo:    listingRepo,
		collectionRepo: collectionRepo,
		invalidator:    invalidator,
		wsManager:      wsManager,
	}
}

type CreateOfferInput struct {
	ListingID         string
	CollectionItemIDs []string
	CashAmount        float64
	Message           string
	ParentOfferID     string
}

func (uc *OfferUseCase) CreateOffer(ctx context.Context, offererID string, input CreateOfferInput) (*entity.Offer, error) {
	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != entity.ListingStatusActive {
		return nil, errors.InvalidListing("Listing is not active", nil)
	}
	if listing.OwnerID == offererID {
		return nil, errors.InvalidOfferer("Cannot make an offer on your own listing", nil)
	}
	if len(input.CollectionItemIDs) == 0 && input.CashAmount <= 0 {
		return nil, errors.BadRequest("Offer must include items or cash", nil)
	}
	if len(input.CollectionItemIDs) == 0 && !listing.AcceptsCash {
		return nil, errors.BadRequest("Listing does not accept cash-only offers", nil)
	}

	// Snapshot collection items into offer items so the offer stays auditable
	// even if the collection changes afterwards.
	items := make([]entity.OfferItem, 0, len(input.CollectionItemIDs))
	for _, itemID := range input.CollectionItemIDs {
		item, err := uc.collectionRepo.GetByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if item.UserID != offererID {
			return nil, errors.Forbidden("Cannot offer items you do not own", nil)
		}
		if !item.Eligible() {
			return nil, errors.BadRequest("Item is not tradeable", nil)
		}
		items = append(items, entity.OfferItem{
			CollectionItemID: item.ID,
			CardID:           item.CardID,
			Name:             item.Name,
			SetCode:          item.SetCode,
			Number:           item.Number,
			Condition:        item.Condition,
			Quantity:         1,
		})
	}

	offer := &entity.Offer{
		ListingID:     input.ListingID,
		OffererID:     offererID,
		Items:         items,
		CashAmount:    input.CashAmount,
		Message:       input.Message,
		ParentOfferID: input.ParentOfferID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := uc.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	metrics.Offers.WithLabelValues("created").Inc()

	uc.wsManager.PublishEvent([]string{listing.OwnerID}, ws.Event{
		Type:      "offer_created",
		ListingID: listing.ID,
		Payload:   offer,
	})

	return offer, nil
}

func (uc *OfferUseCase) GetOffer(ctx context.Context, userID, offerID string) (*entity.Offer, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, offer.ListingID)
	if err != nil {
		return nil, err
	}
	if offer.OffererID != userID && listing.OwnerID != userID {
		return nil, errors.Forbidden("You don't have permission to view this offer", nil)
	}

	return offer, nil
}

func (uc *OfferUseCase) ListOffersForListing(ctx context.Context, userID, listingID, status string) ([]*entity.Offer, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != userID {
		return nil, errors.NotOwner(nil)
	}

	return uc.offerRepo.ListByListingID(ctx, listingID, status)
}

func (uc *OfferUseCase) ListMyOffers(ctx context.Context, offererID string, page, limit int) ([]*entity.Offer, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.offerRepo.ListByOffererID(ctx, offererID, pagination.PageSize, pagination.Offset)
}

// AcceptOffer resolves the whole listing in one atomic unit: the target offer
// becomes accepted, every sibling pending offer becomes declined, a match and
// conversation are created and the listing moves to matched. Of two
// concurrent accepts exactly one returns a result; the other gets
// OFFER_NOT_PENDING.
func (uc *OfferUseCase) AcceptOffer(ctx context.Context, ownerID, offerID string) (*repository.AcceptOfferResult, error) {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	result, err := uc.offerRepo.AcceptOffer(ctx, offerID, offer.ListingID, ownerID)
	if err != nil {
		return nil, err
	}

	metrics.Offers.WithLabelValues("accepted").Inc()
	uc.invalidator.InvalidateListing(offer.ListingID)

	uc.wsManager.PublishEvent([]string{ownerID, offer.OffererID}, ws.Event{
		Type:           "offer_accepted",
		ConversationID: result.ConversationID,
		ListingID:      offer.ListingID,
		Payload:        result,
	})

	return result, nil
}

func (uc *OfferUseCase) DeclineOffer(ctx context.Context, ownerID, offerID string) error {
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return err
	}

	if err := uc.offerRepo.DeclineOffer(ctx, offerID, ownerID); err != nil {
		return err
	}

	metrics.Offers.WithLabelValues("declined").Inc()

	uc.wsManager.PublishEvent([]string{offer.OffererID}, ws.Event{
		Type:      "offer_declined",
		ListingID: offer.ListingID,
		Payload:   map[string]string{"offer_id": offerID},
	})

	return nil
}

func (uc *OfferUseCase) WithdrawOffer(ctx context.Context, offererID, offerID string) error {
	if err := uc.offerRepo.WithdrawOffer(ctx, offerID, offererID); err != nil {
		return err
	}

	metrics.Offers.WithLabelValues("withdrawn").Inc()

	return nil
}

// ExpireListing withdraws every pending offer and expires the listing
// atomically, then notifies the offerers.
func (uc *OfferUseCase) ExpireListing(ctx context.Context, ownerID, listingID string) error {
	pending, err := uc.offerRepo.ListByListingID(ctx, listingID, entity.OfferStatusPending)
	if err != nil {
		logger.Warn("Could not list pending offers before expiry of %s: %v", listingID, err)
	}

	if err := uc.offerRepo.ExpireListing(ctx, listingID, ownerID); err != nil {
		return err
	}

	uc.invalidator.InvalidateListing(listingID)

	for _, offer := range pending {
		uc.wsManager.PublishEvent([]string{offer.OffererID}, ws.Event{
			Type:      "listing_expired",
			ListingID: listingID,
			Payload:   map[string]string{"offer_id": offer.ID},
		})
	}

	return nil
}

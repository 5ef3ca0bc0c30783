package repository

import (
	"context"

	"tradebinder/internal/domain/entity"
)

// AcceptOfferResult carries the ids minted when an offer is accepted.
type AcceptOfferResult struct {
	MatchID        string `json:"match_id"`
	ConversationID string `json:"conversation_id"`
}

// OfferRepository is the transaction boundary of the negotiation engine.
// Accept, Decline, Withdraw and ExpireListing must each be atomic: all of
// their effects commit together or none do, and of two concurrent accepts on
// the same listing exactly one wins while the loser sees OFFER_NOT_PENDING.
type OfferRepository interface {
	// Create persists a pending offer. When offer.ParentOfferID is set, the
	// parent's status moves to countered in the same transaction.
	Create(ctx context.Context, offer *entity.Offer) error

	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	ListByListingID(ctx context.Context, listingID string, status string) ([]*entity.Offer, error)
	ListByOffererID(ctx context.Context, offererID string, limit, offset int) ([]*entity.Offer, int64, error)

	// AcceptOffer, as one unit: sets the target offer accepted, declines all
	// sibling pending offers on the listing, creates a match and a
	// conversation, and moves the listing to matched. Fails with
	// OFFER_NOT_PENDING if the offer has already been resolved and NOT_OWNER
	// if ownerID does not own the listing.
	AcceptOffer(ctx context.Context, offerID, listingID, ownerID string) (*AcceptOfferResult, error)

	// DeclineOffer sets a single pending offer to declined. Only the listing
	// owner may decline.
	DeclineOffer(ctx context.Context, offerID, ownerID string) error

	// WithdrawOffer lets the offerer retract their own pending offer.
	WithdrawOffer(ctx context.Context, offerID, offererID string) error

	// ExpireListing moves the listing to expired and withdraws every pending
	// offer on it atomically.
	ExpireListing(ctx context.Context, listingID, ownerID string) error
}

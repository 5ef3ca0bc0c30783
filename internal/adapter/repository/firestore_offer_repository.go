package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tradebinder/internal/domain/entity"
	"tradebinder/internal/domain/repository"
	"tradebinder/pkg/errors"
)

type firestoreOfferRepository struct {
	client *firestore.Client
}

func NewFirestoreOfferRepository(client *firestore.Client) repository.OfferRepository {
	return &firestoreOfferRepository{
		client: client,
	}
}

func (r *firestoreOfferRepository) Create(ctx context.Context, offer *entity.Offer) error {
	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}

	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now
	offer.Status = entity.OfferStatusPending

	offerRef := r.client.Collection("offers").Doc(offer.ID)

	if offer.ParentOfferID == "" {
		if _, err := offerRef.Set(ctx, offer); err != nil {
			return errors.Internal("Failed to create offer", err)
		}
		return nil
	}

	// A counter-offer marks its parent countered in the same transaction so
	// the chain never shows two live offers.
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		parentRef := r.client.Collection("offers").Doc(offer.ParentOfferID)
		parentDoc, err := tx.Get(parentRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Parent offer", err)
			}
			return err
		}

		var parent entity.Offer
		if err := parentDoc.DataTo(&parent); err != nil {
			return err
		}
		if parent.ListingID != offer.ListingID {
			return errors.BadRequest("Parent offer belongs to a different listing", nil)
		}
		if parent.Status != entity.OfferStatusPending {
			return errors.OfferNotPending(nil)
		}

		if err := tx.Update(parentRef, []firestore.Update{
			{Path: "status", Value: entity.OfferStatusCountered},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}

		return tx.Set(offerRef, offer)
	})
	if err != nil {
		if errors.Is(err, errors.CodeOfferNotPending) || errors.Is(err, "NOT_FOUND") || errors.Is(err, "BAD_REQUEST") {
			return err
		}
		return errors.Internal("Failed to create counter-offer", err)
	}

	return nil
}

func (r *firestoreOfferRepository) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	doc, err := r.client.Collection("offers").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Offer", err)
		}
		return nil, errors.Internal("Failed to get offer", err)
	}

	var offer entity.Offer
	if err := doc.DataTo(&offer); err != nil {
		return nil, errors.Internal("Failed to parse offer data", err)
	}

	return &offer, nil
}

func (r *firestoreOfferRepository) ListByListingID(ctx context.Context, listingID string, offerStatus string) ([]*entity.Offer, error) {
	query := r.client.Collection("offers").Where("listingId", "==", listingID)
	if offerStatus != "" {
		query = query.Where("status", "==", offerStatus)
	}

	iter := query.OrderBy("createdAt", firestore.Asc).Documents(ctx)
	var offers []*entity.Offer

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate offers", err)
		}

		var offer entity.Offer
		if err := doc.DataTo(&offer); err != nil {
			return nil, errors.Internal("Failed to parse offer data", err)
		}
		offers = append(offers, &offer)
	}

	return offers, nil
}

func (r *firestoreOfferRepository) ListByOffererID(ctx context.Context, offererID string, limit, offset int) ([]*entity.Offer, int64, error) {
	query := r.client.Collection("offers").
		Where("offererId", "==", offererID).
		OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count offers", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var offers []*entity.Offer

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate offers", err)
		}

		var offer entity.Offer
		if err := doc.DataTo(&offer); err != nil {
			return nil, 0, errors.Internal("Failed to parse offer data", err)
		}
		offers = append(offers, &offer)
	}

	return offers, total, nil
}

// AcceptOffer runs the whole accept as one Firestore transaction. Firestore
// serializes transactions touching the same documents, so of two concurrent
// accepts on a listing one commits and the other retries, re-reads the offer
// as no longer pending and fails with OFFER_NOT_PENDING.
func (r *firestoreOfferRepository) AcceptOffer(ctx context.Context, offerID, listingID, ownerID string) (*repository.AcceptOfferResult, error) {
	matchID := uuid.New().String()
	conversationID := uuid.New().String()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// All reads first: Firestore requires reads before writes in a tx.
		offerRef := r.client.Collection("offers").Doc(offerID)
		offerDoc, err := tx.Get(offerRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Offer", err)
			}
			return err
		}

		var offer entity.Offer
		if err := offerDoc.DataTo(&offer); err != nil {
			return err
		}
		if offer.ListingID != listingID {
			return errors.BadRequest("Offer does not belong to this listing", nil)
		}
		if offer.Status != entity.OfferStatusPending {
			return errors.OfferNotPending(nil)
		}

		listingRef := r.client.Collection("listings").Doc(listingID)
		listingDoc, err := tx.Get(listingRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Listing", err)
			}
			return err
		}

		var listing entity.Listing
		if err := listingDoc.DataTo(&listing); err != nil {
			return err
		}
		if listing.OwnerID != ownerID {
			return errors.NotOwner(nil)
		}
		if listing.Status != entity.ListingStatusActive {
			return errors.InvalidListing("Listing is not active", nil)
		}

		siblingsQuery := r.client.Collection("offers").
			Where("listingId", "==", listingID).
			Where("status", "==", entity.OfferStatusPending)
		siblings, err := tx.Documents(siblingsQuery).GetAll()
		if err != nil {
			return err
		}

		now := time.Now()

		if err := tx.Update(offerRef, []firestore.Update{
			{Path: "status", Value: entity.OfferStatusAccepted},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}

		for _, sibling := range siblings {
			if sibling.Ref.ID == offerID {
				continue
			}
			if err := tx.Update(sibling.Ref, []firestore.Update{
				{Path: "status", Value: entity.OfferStatusDeclined},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}

		match := &entity.Match{
			ID:             matchID,
			ListingID:      listingID,
			OfferID:        offerID,
			OwnerID:        ownerID,
			OffererID:      offer.OffererID,
			ConversationID: conversationID,
			CreatedAt:      now,
		}
		if err := tx.Set(r.client.Collection("matches").Doc(matchID), match); err != nil {
			return err
		}

		conversation := &entity.Conversation{
			ID:                conversationID,
			Participants:      []string{ownerID, offer.OffererID},
			ListingID:         listingID,
			MatchID:           matchID,
			NegotiationStatus: entity.NegotiationChatting,
			LastMessageAt:     now,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := tx.Set(r.client.Collection("conversations").Doc(conversationID), conversation); err != nil {
			return err
		}

		return tx.Update(listingRef, []firestore.Update{
			{Path: "status", Value: entity.ListingStatusMatched},
			{Path: "updatedAt", Value: now},
		})
	})
	if err != nil {
		if isAppError(err) {
			return nil, err
		}
		return nil, errors.Internal("Failed to accept offer", err)
	}

	return &repository.AcceptOfferResult{
		MatchID:        matchID,
		ConversationID: conversationID,
	}, nil
}

func (r *firestoreOfferRepository) DeclineOffer(ctx context.Context, offerID, ownerID string) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		offerRef := r.client.Collection("offers").Doc(offerID)
		offerDoc, err := tx.Get(offerRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Offer", err)
			}
			return err
		}

		var offer entity.Offer
		if err := offerDoc.DataTo(&offer); err != nil {
			return err
		}

		listingDoc, err := tx.Get(r.client.Collection("listings").Doc(offer.ListingID))
		if err != nil {
			return err
		}
		var listing entity.Listing
		if err := listingDoc.DataTo(&listing); err != nil {
			return err
		}
		if listing.OwnerID != ownerID {
			return errors.NotOwner(nil)
		}
		if offer.Status != entity.OfferStatusPending {
			return errors.OfferNotPending(nil)
		}

		return tx.Update(offerRef, []firestore.Update{
			{Path: "status", Value: entity.OfferStatusDeclined},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		if isAppError(err) {
			return err
		}
		return errors.Internal("Failed to decline offer", err)
	}

	return nil
}

func (r *firestoreOfferRepository) WithdrawOffer(ctx context.Context, offerID, offererID string) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		offerRef := r.client.Collection("offers").Doc(offerID)
		offerDoc, err := tx.Get(offerRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Offer", err)
			}
			return err
		}

		var offer entity.Offer
		if err := offerDoc.DataTo(&offer); err != nil {
			return err
		}
		if offer.OffererID != offererID {
			return errors.Forbidden("Only the offerer may withdraw an offer", nil)
		}
		if offer.Status != entity.OfferStatusPending {
			return errors.OfferNotPending(nil)
		}

		return tx.Update(offerRef, []firestore.Update{
			{Path: "status", Value: entity.OfferStatusWithdrawn},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		if isAppError(err) {
			return err
		}
		return errors.Internal("Failed to withdraw offer", err)
	}

	return nil
}

func (r *firestoreOfferRepository) ExpireListing(ctx context.Context, listingID, ownerID string) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		listingRef := r.client.Collection("listings").Doc(listingID)
		listingDoc, err := tx.Get(listingRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Listing", err)
			}
			return err
		}

		var listing entity.Listing
		if err := listingDoc.DataTo(&listing); err != nil {
			return err
		}
		if listing.OwnerID != ownerID {
			return errors.NotOwner(nil)
		}
		if listing.Status != entity.ListingStatusActive {
			return errors.InvalidListing("Listing is not active", nil)
		}

		pendingQuery := r.client.Collection("offers").
			Where("listingId", "==", listingID).
			Where("status", "==", entity.OfferStatusPending)
		pending, err := tx.Documents(pendingQuery).GetAll()
		if err != nil {
			return err
		}

		now := time.Now()

		for _, doc := range pending {
			if err := tx.Update(doc.Ref, []firestore.Update{
				{Path: "status", Value: entity.OfferStatusWithdrawn},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}

		return tx.Update(listingRef, []firestore.Update{
			{Path: "status", Value: entity.ListingStatusExpired},
			{Path: "updatedAt", Value: now},
		})
	})
	if err != nil {
		if isAppError(err) {
			return err
		}
		return errors.Internal("Failed to expire listing", err)
	}

	return nil
}

func isAppError(err error) bool {
	for _, code := range []string{
		errors.CodeOfferNotPending,
		errors.CodeInvalidListing,
		errors.CodeNotOwner,
		"NOT_FOUND",
		"BAD_REQUEST",
		"FORBIDDEN",
	} {
		if errors.Is(err, code) {
			return true
		}
	}
	return false
}

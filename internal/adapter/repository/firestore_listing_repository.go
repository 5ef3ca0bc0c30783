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

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}

	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection("listings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}

	return &listing, nil
}

func (r *firestoreListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listing.UpdatedAt = time.Now()

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.Internal("Failed to update listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.client.Collection("listings").Where("ownerId", "==", ownerID)

	if status != "" {
		query = query.Where("status", "==", status)
	}

	return r.collect(ctx, query.OrderBy("createdAt", firestore.Desc), limit, offset, "")
}

func (r *firestoreListingRepository) ListActiveByGame(ctx context.Context, game string, excludeOwnerID string, limit, offset int) ([]*entity.Listing, int64, error) {
	query := r.client.Collection("listings").
		Where("game", "==", game).
		Where("status", "==", entity.ListingStatusActive).
		OrderBy("createdAt", firestore.Desc)

	// Firestore has no inequality-on-second-field here, so the owner
	// exclusion happens client-side during collection.
	return r.collect(ctx, query, limit, offset, excludeOwnerID)
}

func (r *firestoreListingRepository) collect(ctx context.Context, query firestore.Query, limit, offset int, excludeOwnerID string) ([]*entity.Listing, int64, error) {
	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count listings", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var listings []*entity.Listing

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate listings", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return nil, 0, errors.Internal("Failed to parse listing data", err)
		}
		if excludeOwnerID != "" && listing.OwnerID == excludeOwnerID {
			total--
			continue
		}
		listings = append(listings, &listing)
	}

	return listings, total, nil
}

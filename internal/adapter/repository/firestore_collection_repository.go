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

type firestoreCollectionRepository struct {
	client *firestore.Client
}

func NewFirestoreCollectionRepository(client *firestore.Client) repository.CollectionRepository {
	return &firestoreCollectionRepository{
		client: client,
	}
}

func (r *firestoreCollectionRepository) Create(ctx context.Context, item *entity.CollectionItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.client.Collection("collections").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to create collection item", err)
	}

	return nil
}

func (r *firestoreCollectionRepository) GetByID(ctx context.Context, id string) (*entity.CollectionItem, error) {
	doc, err := r.client.Collection("collections").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Collection item", err)
		}
		return nil, errors.Internal("Failed to get collection item", err)
	}

	var item entity.CollectionItem
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse collection item data", err)
	}

	return &item, nil
}

func (r *firestoreCollectionRepository) Update(ctx context.Context, item *entity.CollectionItem) error {
	item.UpdatedAt = time.Now()

	_, err := r.client.Collection("collections").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to update collection item", err)
	}

	return nil
}

func (r *firestoreCollectionRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.CollectionItem, int64, error) {
	query := r.client.Collection("collections").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Asc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count collection items", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var items []*entity.CollectionItem

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate collection items", err)
		}

		var item entity.CollectionItem
		if err := doc.DataTo(&item); err != nil {
			return nil, 0, errors.Internal("Failed to parse collection item data", err)
		}
		items = append(items, &item)
	}

	return items, total, nil
}

func (r *firestoreCollectionRepository) ListTradeable(ctx context.Context, userID string) ([]*entity.CollectionItem, error) {
	query := r.client.Collection("collections").
		Where("userId", "==", userID).
		Where("isTradeable", "==", true).
		Where("isWishlist", "==", false).
		OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	var items []*entity.CollectionItem

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate tradeable items", err)
		}

		var item entity.CollectionItem
		if err := doc.DataTo(&item); err != nil {
			return nil, errors.Internal("Failed to parse collection item data", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

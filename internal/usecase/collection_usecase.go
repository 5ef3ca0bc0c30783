package usecase

import (
	"context"
	"time"

	"tradebinder/internal/domain/entity"
	"tradebinder/internal/domain/repository"
	"tradebinder/pkg/errors"
	"tradebinder/pkg/utils"
)

type CollectionUseCase struct {
	collectionRepo repository.CollectionRepository
}

func NewCollectionUseCase(collectionRepo repository.CollectionRepository) *CollectionUseCase {
	return &CollectionUseCase{
		collectionRepo: collectionRepo,
	}
}

type AddCollectionItemInput struct {
	CardID         string
	Name           string
	SetCode        string
	Number         string
	Condition      entity.Condition
	Quantity       int
	IsSealed       bool
	ProductType    string
	GradingCompany string
	GradingScore   string
	IsTradeable    bool
	IsWishlist     bool
}

func (uc *CollectionUseCase) AddItem(ctx context.Context, userID string, input AddCollectionItemInput) (*entity.CollectionItem, error) {
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	item := &entity.CollectionItem{
		UserID:         userID,
		CardID:         input.CardID,
		Name:           input.Name,
		SetCode:        input.SetCode,
		Number:         input.Number,
		Condition:      input.Condition,
		Quantity:       input.Quantity,
		IsSealed:       input.IsSealed,
		ProductType:    input.ProductType,
		GradingCompany: input.GradingCompany,
		GradingScore:   input.GradingScore,
		IsTradeable:    input.IsTradeable,
		IsWishlist:     input.IsWishlist,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := uc.collectionRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (uc *CollectionUseCase) ListItems(ctx context.Context, userID string, page, limit int) ([]*entity.CollectionItem, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.collectionRepo.ListByUserID(ctx, userID, pagination.PageSize, pagination.Offset)
}

func (uc *CollectionUseCase) SetTradeable(ctx context.Context, userID, itemID string, tradeable bool) (*entity.CollectionItem, error) {
	item, err := uc.collectionRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, errors.Forbidden("Cannot modify another user's collection", nil)
	}

	item.IsTradeable = tradeable
	if err := uc.collectionRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

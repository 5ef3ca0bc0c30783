package handler

import (
	"github.com/labstack/echo/v4"

	"tradebinder/internal/domain/entity"
	"tradebinder/internal/usecase"
	"tradebinder/pkg/response"
	"tradebinder/pkg/utils"
)

type CollectionHandler struct {
	collectionUseCase *usecase.CollectionUseCase
}

func NewCollectionHandler(collectionUseCase *usecase.CollectionUseCase) *CollectionHandler {
	return &CollectionHandler{
		collectionUseCase: collectionUseCase,
	}
}

type addCollectionItemRequest struct {
	CardID         string `json:"card_id" validate:"required"`
	Name           string `json:"name" validate:"required"`
	SetCode        string `json:"set_code"`
	Number         string `json:"number"`
	Condition      string `json:"condition" validate:"omitempty,oneof=nm lp mp hp dmg"`
	Quantity       int    `json:"quantity"`
	IsSealed       bool   `json:"is_sealed"`
	ProductType    string `json:"product_type"`
	GradingCompany string `json:"grading_company"`
	GradingScore   string `json:"grading_score"`
	IsTradeable    bool   `json:"is_tradeable"`
	IsWishlist     bool   `json:"is_wishlist"`
}

func (h *CollectionHandler) AddItem(c echo.Context) error {
	var req addCollectionItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	item, err := h.collectionUseCase.AddItem(c.Request().Context(), userID, usecase.AddCollectionItemInput{
		CardID:         req.CardID,
		Name:           req.Name,
		SetCode:        req.SetCode,
		Number:         req.Number,
		Condition:      entity.Condition(req.Condition),
		Quantity:       req.Quantity,
		IsSealed:       req.IsSealed,
		ProductType:    req.ProductType,
		GradingCompany: req.GradingCompany,
		GradingScore:   req.GradingScore,
		IsTradeable:    req.IsTradeable,
		IsWishlist:     req.IsWishlist,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *CollectionHandler) ListItems(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	items, total, err := h.collectionUseCase.ListItems(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

type setTradeableRequest struct {
	IsTradeable bool `json:"is_tradeable"`
}

func (h *CollectionHandler) SetTradeable(c echo.Context) error {
	var req setTradeableRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	item, err := h.collectionUseCase.SetTradeable(c.Request().Context(), userID, c.Param("id"), req.IsTradeable)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

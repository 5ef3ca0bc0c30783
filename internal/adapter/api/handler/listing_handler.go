package handler

import (
	"github.com/labstack/echo/v4"

	"tradebinder/internal/domain/entity"
	"tradebinder/internal/usecase"
	"tradebinder/pkg/response"
	"tradebinder/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
	offerUseCase   *usecase.OfferUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase, offerUseCase *usecase.OfferUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
		offerUseCase:   offerUseCase,
	}
}

type listingItemRequest struct {
	CardID      string   `json:"card_id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	SetCode     string   `json:"set_code"`
	Number      string   `json:"number"`
	Condition   string   `json:"condition" validate:"required,oneof=nm lp mp hp dmg"`
	MarketPrice *float64 `json:"market_price,omitempty"`
	Quantity    int      `json:"quantity" validate:"min=1"`
}

type createListingRequest struct {
	Game          string               `json:"game" validate:"required"`
	Title         string               `json:"title" validate:"required"`
	Items         []listingItemRequest `json:"items" validate:"required,min=1,dive"`
	TradeWants    []entity.TradeWant   `json:"trade_wants"`
	AcceptsCash   bool                 `json:"accepts_cash"`
	AcceptsTrades bool                 `json:"accepts_trades"`
	CashAmount    float64              `json:"cash_amount"`
	TotalValue    float64              `json:"total_value"`
}

func toListingItems(reqs []listingItemRequest) []entity.ListingItem {
	items := make([]entity.ListingItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, entity.ListingItem{
			CardID:      r.CardID,
			Name:        r.Name,
			SetCode:     r.SetCode,
			Number:      r.Number,
			Condition:   entity.Condition(r.Condition),
			MarketPrice: r.MarketPrice,
			Quantity:    r.Quantity,
		})
	}
	return items
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), userID, usecase.CreateListingInput{
		Game:          req.Game,
		Title:         req.Title,
		Items:         toListingItems(req.Items),
		TradeWants:    req.TradeWants,
		AcceptsCash:   req.AcceptsCash,
		AcceptsTrades: req.AcceptsTrades,
		CashAmount:    req.CashAmount,
		TotalValue:    req.TotalValue,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListMyListings(c.Request().Context(), userID, c.QueryParam("status"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) BrowseListings(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.BrowseListings(c.Request().Context(), userID, c.QueryParam("game"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

type updateListingRequest struct {
	Title      string               `json:"title" validate:"required"`
	Items      []listingItemRequest `json:"items" validate:"required,min=1,dive"`
	TradeWants []entity.TradeWant   `json:"trade_wants"`
	CashAmount float64              `json:"cash_amount"`
	TotalValue float64              `json:"total_value"`
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), userID, c.Param("id"), usecase.UpdateListingInput{
		Title:      req.Title,
		Items:      toListingItems(req.Items),
		TradeWants: req.TradeWants,
		CashAmount: req.CashAmount,
		TotalValue: req.TotalValue,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) CompleteListing(c echo.Context) error {
	userID := c.Get("uid").(string)

	listing, err := h.listingUseCase.CompleteListing(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ExpireListing(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.offerUseCase.ExpireListing(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": entity.ListingStatusExpired})
}

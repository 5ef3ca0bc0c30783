package handler

import (
	"github.com/labstack/echo/v4"

	"tradebinder/internal/usecase"
	"tradebinder/pkg/response"
	"tradebinder/pkg/utils"
)

type OfferHandler struct {
	offerUseCase *usecase.OfferUseCase
}

func NewOfferHandler(offerUseCase *usecase.OfferUseCase) *OfferHandler {
	return &OfferHandler{
		offerUseCase: offerUseCase,
	}
}

type createOfferRequest struct {
	ListingID         string   `json:"listing_id" validate:"required"`
	CollectionItemIDs []string `json:"collection_item_ids"`
	CashAmount        float64  `json:"cash_amount" validate:"min=0"`
	Message           string   `json:"message"`
	ParentOfferID     string   `json:"parent_offer_id"`
}

func (h *OfferHandler) CreateOffer(c echo.Context) error {
	var req createOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	offer, err := h.offerUseCase.CreateOffer(c.Request().Context(), userID, usecase.CreateOfferInput{
		ListingID:         req.ListingID,
		CollectionItemIDs: req.CollectionItemIDs,
		CashAmount:        req.CashAmount,
		Message:           req.Message,
		ParentOfferID:     req.ParentOfferID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, offer)
}

func (h *OfferHandler) GetOffer(c echo.Context) error {
	userID := c.Get("uid").(string)

	offer, err := h.offerUseCase.GetOffer(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offer)
}

func (h *OfferHandler) ListOffersForListing(c echo.Context) error {
	userID := c.Get("uid").(string)

	offers, err := h.offerUseCase.ListOffersForListing(c.Request().Context(), userID, c.Param("id"), c.QueryParam("status"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offers)
}

func (h *OfferHandler) ListMyOffers(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	offers, total, err := h.offerUseCase.ListMyOffers(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, offers, total, pagination.Page, pagination.PageSize)
}

func (h *OfferHandler) AcceptOffer(c echo.Context) error {
	userID := c.Get("uid").(string)

	result, err := h.offerUseCase.AcceptOffer(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *OfferHandler) DeclineOffer(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.offerUseCase.DeclineOffer(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "declined"})
}

func (h *OfferHandler) WithdrawOffer(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.offerUseCase.WithdrawOffer(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "withdrawn"})
}

package handler

import (
	"github.com/labstack/echo/v4"

	"tradebinder/internal/usecase"
	"tradebinder/pkg/response"
)

type MatchingHandler struct {
	matchingUseCase *usecase.MatchingUseCase
}

func NewMatchingHandler(matchingUseCase *usecase.MatchingUseCase) *MatchingHandler {
	return &MatchingHandler{
		matchingUseCase: matchingUseCase,
	}
}

// FindOpportunities returns ranked trade opportunities for one of the
// caller's listings.
func (h *MatchingHandler) FindOpportunities(c echo.Context) error {
	userID := c.Get("uid").(string)

	opportunities, err := h.matchingUseCase.FindOpportunities(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, opportunities)
}

// QuickMatch returns collection items of the caller that satisfy the wants of
// the listing in the path, ready to prefill an offer.
func (h *MatchingHandler) QuickMatch(c echo.Context) error {
	userID := c.Get("uid").(string)

	items, err := h.matchingUseCase.QuickMatch(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}

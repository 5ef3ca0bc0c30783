package handler

import (
	"github.com/labstack/echo/v4"

	"tradebinder/internal/domain/entity"
	"tradebinder/internal/usecase"
	"tradebinder/pkg/response"
	"tradebinder/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type startConversationRequest struct {
	RecipientID    string `json:"recipient_id" validate:"required"`
	ListingID      string `json:"listing_id"`
	InitialMessage string `json:"initial_message"`
}

func (h *ChatHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	conversation, err := h.chatUseCase.StartConversation(c.Request().Context(), userID, usecase.StartConversationInput{
		RecipientID:    req.RecipientID,
		ListingID:      req.ListingID,
		InitialMessage: req.InitialMessage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conversation)
}

func (h *ChatHandler) GetConversations(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	conversations, total, err := h.chatUseCase.GetConversations(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, conversations, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) GetConversation(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversation, err := h.chatUseCase.GetConversation(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.GetMessages(c.Request().Context(), userID, c.Param("id"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

type sendMessageRequest struct {
	Type           string                        `json:"type" validate:"required,oneof=text image card_offer card_offer_response meetup_proposal meetup_response"`
	Content        string                        `json:"content"`
	Offer          *entity.CardOfferPayload      `json:"offer,omitempty"`
	OfferResponse  *entity.OfferResponsePayload  `json:"offer_response,omitempty"`
	Meetup         *entity.MeetupProposalPayload `json:"meetup,omitempty"`
	MeetupResponse *entity.MeetupResponsePayload `json:"meetup_response,omitempty"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, usecase.SendMessageInput{
		ConversationID: c.Param("id"),
		Type:           entity.MessageType(req.Type),
		Content:        req.Content,
		Offer:          req.Offer,
		OfferResponse:  req.OfferResponse,
		Meetup:         req.Meetup,
		MeetupResponse: req.MeetupResponse,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) CompleteTrade(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversation, err := h.chatUseCase.CompleteTrade(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

func (h *ChatHandler) CancelNegotiation(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversation, err := h.chatUseCase.CancelNegotiation(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversation)
}

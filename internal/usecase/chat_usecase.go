package usecase

import (
	"context"

	"tradebinder/internal/domain/entity"
	"tradebinder/internal/domain/repository"
	"tradebinder/internal/domain/service"
	"tradebinder/internal/infrastructure/metrics"
	ws "tradebinder/internal/infrastructure/websocket"
	"tradebinder/pkg/errors"
	"tradebinder/pkg/utils"
)

type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	listingRepo      repository.ListingRepository
	wsManager        *ws.Manager
}

func NewChatUseCase(
	conversationRepo repository.ConversationRepository,
	listingRepo repository.ListingRepository,
	wsManager *ws.Manager,
) *ChatUseCase {
	return &ChatUseCase{
		conversationRepo: conversationRepo,
		listingRepo:      listingRepo,
		wsManager:        wsManager,
	}
}

type StartConversationInput struct {
	RecipientID    string
	ListingID      string
	InitialMessage string
}

// StartConversation opens a chatting-state conversation before any offer
// exists, e.g. to ask about a listing.
func (uc *ChatUseCase) StartConversation(ctx context.Context, userID string, input StartConversationInput) (*entity.Conversation, error) {
	if input.RecipientID == userID {
		return nil, errors.BadRequest("Cannot start a conversation with yourself", nil)
	}

	conversation := &entity.Conversation{
		Participants:      []string{userID, input.RecipientID},
		ListingID:         input.ListingID,
		NegotiationStatus: entity.NegotiationChatting,
	}

	if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	if input.InitialMessage != "" {
		message := &entity.Message{
			ConversationID: conversation.ID,
			SenderID:       userID,
			Type:           entity.MessageText,
			Content:        input.InitialMessage,
		}
		if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
			return nil, err
		}
	}

	return conversation, nil
}

func (uc *ChatUseCase) GetConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You don't have access to this conversation", nil)
	}
	return conversation, nil
}

func (uc *ChatUseCase) GetConversations(ctx context.Context, userID string, page, limit int) ([]*entity.Conversation, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.conversationRepo.ListByUserID(ctx, userID, pagination.PageSize, pagination.Offset)
}

func (uc *ChatUseCase) GetMessages(ctx context.Context, userID, conversationID string, page, limit int) ([]*entity.Message, int64, error) {
	if _, err := uc.GetConversation(ctx, userID, conversationID); err != nil {
		return nil, 0, err
	}

	pagination := utils.NewPaginationParams(page, limit)
	return uc.conversationRepo.ListMessages(ctx, conversationID, pagination.PageSize, pagination.Offset)
}

type SendMessageInput struct {
	ConversationID string
	Type           entity.MessageType
	Content        string
	Offer          *entity.CardOfferPayload
	OfferResponse  *entity.OfferResponsePayload
	Meetup         *entity.MeetupProposalPayload
	MeetupResponse *entity.MeetupResponsePayload
}

// SendMessage appends a message to the conversation's event log. A
// negotiation-relevant message recomputes the negotiation status and both are
// committed together; a text, image or system message never advances state.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID string, input SendMessageInput) (*entity.Message, error) {
	conversation, err := uc.GetConversation(ctx, userID, input.ConversationID)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Type:           input.Type,
		Content:        input.Content,
		Offer:          input.Offer,
		OfferResponse:  input.OfferResponse,
		Meetup:         input.Meetup,
		MeetupResponse: input.MeetupResponse,
		ReadBy:         []string{userID},
	}

	if err := uc.validatePayload(ctx, conversation, message); err != nil {
		return nil, err
	}

	event, relevant := service.EventForMessage(message)
	if !relevant {
		if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
			return nil, err
		}
		conversation.LastMessage = message.Content
		conversation.LastMessageAt = message.CreatedAt
		if err := uc.conversationRepo.Update(ctx, conversation); err != nil {
			return nil, err
		}
		uc.publishMessage(conversation, message)
		return message, nil
	}

	if event.Kind == service.EventOfferDeclined && conversation.ListingID != "" {
		listing, err := uc.listingRepo.GetByID(ctx, conversation.ListingID)
		if err == nil && listing.Status == entity.ListingStatusExpired {
			event.ListingWithdrawn = true
		}
	}

	next, ok := service.NextNegotiationStatus(conversation.NegotiationStatus, event)
	if !ok {
		return nil, errors.Conflict("INVALID_TRANSITION", "Message is not valid in the current negotiation state", nil)
	}

	if err := uc.conversationRepo.AppendNegotiationMessage(ctx, message, next); err != nil {
		return nil, err
	}
	metrics.Negotiations.WithLabelValues(string(next)).Inc()

	conversation.NegotiationStatus = next
	uc.publishMessage(conversation, message)

	return message, nil
}

// CompleteTrade finishes a meetup-confirmed negotiation: the conversation
// moves to completed and the matched listing to its terminal completed state.
func (uc *ChatUseCase) CompleteTrade(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.GetConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	next, ok := service.NextNegotiationStatus(conversation.NegotiationStatus, service.NegotiationEvent{Kind: service.EventTradeCompleted})
	if !ok {
		return nil, errors.Conflict("INVALID_TRANSITION", "Trade can only be completed after the meetup is confirmed", nil)
	}

	message := &entity.Message{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Type:           entity.MessageSystem,
		Content:        "Trade completed",
	}
	if err := uc.conversationRepo.AppendNegotiationMessage(ctx, message, next); err != nil {
		return nil, err
	}
	metrics.Negotiations.WithLabelValues(string(next)).Inc()
	conversation.NegotiationStatus = next

	if conversation.ListingID != "" {
		listing, err := uc.listingRepo.GetByID(ctx, conversation.ListingID)
		if err == nil && listing.CanTransitionTo(entity.ListingStatusCompleted) {
			listing.Status = entity.ListingStatusCompleted
			if err := uc.listingRepo.Update(ctx, listing); err != nil {
				return nil, err
			}
		}
	}

	uc.publishMessage(conversation, message)

	return conversation, nil
}

// CancelNegotiation cancels from any non-terminal state.
func (uc *ChatUseCase) CancelNegotiation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.GetConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	next, ok := service.NextNegotiationStatus(conversation.NegotiationStatus, service.NegotiationEvent{Kind: service.EventCancelled})
	if !ok {
		return nil, errors.Conflict("INVALID_TRANSITION", "Negotiation is already finished", nil)
	}

	message := &entity.Message{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Type:           entity.MessageSystem,
		Content:        "Negotiation cancelled",
	}
	if err := uc.conversationRepo.AppendNegotiationMessage(ctx, message, next); err != nil {
		return nil, err
	}
	metrics.Negotiations.WithLabelValues(string(next)).Inc()
	conversation.NegotiationStatus = next

	uc.publishMessage(conversation, message)

	return conversation, nil
}

func (uc *ChatUseCase) validatePayload(ctx context.Context, conversation *entity.Conversation, message *entity.Message) error {
	switch message.Type {
	case entity.MessageCardOffer:
		if message.Offer == nil {
			return errors.BadRequest("card_offer message requires an offer payload", nil)
		}

	case entity.MessageOfferResponse:
		if message.OfferResponse == nil {
			return errors.BadRequest("card_offer_response message requires a response payload", nil)
		}
		referenced, err := uc.conversationRepo.GetMessageByID(ctx, conversation.ID, message.OfferResponse.OfferMessageID)
		if err != nil {
			return err
		}
		if referenced.Type != entity.MessageCardOffer {
			return errors.BadRequest("Referenced message is not a card offer", nil)
		}
		if referenced.SenderID == message.SenderID {
			return errors.BadRequest("Cannot respond to your own offer", nil)
		}

	case entity.MessageMeetupProposal:
		if message.Meetup == nil {
			return errors.BadRequest("meetup_proposal message requires a meetup payload", nil)
		}

	case entity.MessageMeetupResponse:
		if message.MeetupResponse == nil {
			return errors.BadRequest("meetup_response message requires a response payload", nil)
		}
		referenced, err := uc.conversationRepo.GetMessageByID(ctx, conversation.ID, message.MeetupResponse.ProposalMessageID)
		if err != nil {
			return err
		}
		if referenced.Type != entity.MessageMeetupProposal {
			return errors.BadRequest("Referenced message is not a meetup proposal", nil)
		}
		if referenced.SenderID == message.SenderID {
			return errors.BadRequest("Cannot respond to your own proposal", nil)
		}
	}

	return nil
}

func (uc *ChatUseCase) publishMessage(conversation *entity.Conversation, message *entity.Message) {
	uc.wsManager.PublishEvent(conversation.Participants, ws.Event{
		Type:           "message",
		ConversationID: conversation.ID,
		Payload: map[string]interface{}{
			"message":            message,
			"negotiation_status": conversation.NegotiationStatus,
		},
	})
}

package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebinder/internal/domain/entity"
	ws "tradebinder/internal/infrastructure/websocket"
	"tradebinder/pkg/errors"
)

type chatFixture struct {
	uc               *ChatUseCase
	conversationRepo *stubConversationRepo
	listingRepo      *stubListingRepo
	conversation     *entity.Conversation
}

func newChatFixture(t *testing.T, status entity.NegotiationStatus) *chatFixture {
	t.Helper()

	conversationRepo := newStubConversationRepo()
	listingRepo := newStubListingRepo()

	listing := &entity.Listing{
		ID:      "listing-1",
		OwnerID: "owner",
		Game:    "pokemon",
		Items:   []entity.ListingItem{{CardID: "sv4-6"}},
		Status:  entity.ListingStatusMatched,
	}
	require.NoError(t, listingRepo.Create(context.Background(), listing))

	conversation := &entity.Conversation{
		ID:                "conv-1",
		Participants:      []string{"owner", "offerer"},
		ListingID:         listing.ID,
		NegotiationStatus: status,
	}
	require.NoError(t, conversationRepo.Create(context.Background(), conversation))

	uc := NewChatUseCase(conversationRepo, listingRepo, ws.NewManager())

	return &chatFixture{
		uc:               uc,
		conversationRepo: conversationRepo,
		listingRepo:      listingRepo,
		conversation:     conversation,
	}
}

func (f *chatFixture) status(t *testing.T) entity.NegotiationStatus {
	t.Helper()
	conversation, err := f.conversationRepo.GetByID(context.Background(), f.conversation.ID)
	require.NoError(t, err)
	return conversation.NegotiationStatus
}

func TestSendMessageTextDoesNotAdvanceState(t *testing.T) {
	f := newChatFixture(t, entity.NegotiationOfferPending)

	_, err := f.uc.SendMessage(context.Background(), "owner", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageText,
		Content:        "still thinking about it",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.NegotiationOfferPending, f.status(t))
}

func TestSendMessageCardOfferAdvancesToPending(t *testing.T) {
	f := newChatFixture(t, entity.NegotiationChatting)

	msg, err := f.uc.SendMessage(context.Background(), "offerer", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageCardOffer,
		Offer:          &entity.CardOfferPayload{OfferingItems: []entity.OfferItem{{CardID: "sv4-25"}}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)

	assert.Equal(t, entity.NegotiationOfferPending, f.status(t))
}

func TestSendMessageCardOfferRequiresPayload(t *testing.T) {
	f := newChatFixture(t, entity.NegotiationChatting)

	_, err := f.uc.SendMessage(context.Background(), "offerer", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageCardOffer,
	})
	assert.Error(t, err)
	assert.Equal(t, entity.NegotiationChatting, f.status(t))
}

func TestSendMessageFullNegotiationFlow(t *testing.T) {
	f := newChatFixture(t, entity.NegotiationChatting)
	ctx := context.Background()

	offerMsg, err := f.uc.SendMessage(ctx, "offerer", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageCardOffer,
		Offer:          &entity.CardOfferPayload{OfferingItems: []entity.OfferItem{{CardID: "sv4-25"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationOfferPending, f.status(t))

	_, err = f.uc.SendMessage(ctx, "owner", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageOfferResponse,
		OfferResponse:  &entity.OfferResponsePayload{OfferMessageID: offerMsg.ID, Action: entity.ResponseAccepted},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationOfferAccepted, f.status(t))

	meetupMsg, err := f.uc.SendMessage(ctx, "owner", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageMeetupProposal,
		Meetup:         &entity.MeetupProposalPayload{Location: "card shop", Time: time.Now().Add(48 * time.Hour)},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationMeetupProposed, f.status(t))

	_, err = f.uc.SendMessage(ctx, "offerer", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageMeetupResponse,
		MeetupResponse: &entity.MeetupResponsePayload{ProposalMessageID: meetupMsg.ID, Action: entity.ResponseAccepted},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationMeetupConfirmed, f.status(t))

	conversation, err := f.uc.CompleteTrade(ctx, "owner", f.conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationCompleted, conversation.NegotiationStatus)

	listing, err := f.listingRepo.GetByID(ctx, "listing-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusCompleted, listing.Status)
}

func TestSendMessageDeclineReturnsToChatting(t *testing.T) {
	f := newChatFixture(t, entity.NegotiationChatting)
	ctx := context.Background()

	offerMsg, err := f.uc.SendMessage(ctx, "offerer", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageCardOffer,
		Offer:          &entity.CardOfferPayload{OfferingItems: []entity.OfferItem{{CardID: "sv4-25"}}},
	})
	require.NoError(t, err)

	_, err = f.uc.SendMessage(ctx, "owner", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageOfferResponse,
		OfferResponse:  &entity.OfferResponsePayload{OfferMessageID: offerMsg.ID, Action: entity.ResponseDeclined},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationChatting, f.status(t))
}

func TestSendMessageDeclineOnExpiredListingCancels(t *testing.T) {
	f := newChatFixture(t, entity.NegotiationChatting)
	ctx := context.Background()

	offerMsg, err := f.uc.SendMessage(ctx, "offerer", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageCardOffer,
		Offer:          &entity.CardOfferPayload{OfferingItems: []entity.OfferItem{{CardID: "sv4-25"}}},
	})
	require.NoError(t, err)

	listing, err := f.listingRepo.GetByID(ctx, "listing-1")
	require.NoError(t, err)
	listing.Status = entity.ListingStatusExpired
	require.NoError(t, f.listingRepo.Update(ctx, listing))

	_, err = f.uc.SendMessage(ctx, "owner", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageOfferResponse,
		OfferResponse:  &entity.OfferResponsePayload{OfferMessageID: offerMsg.ID, Action: entity.ResponseDeclined},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationCancelled, f.status(t))
}

func TestSendMessageCannotRespondToOwnOffer(t *testing.T) {
	f := newChatFixture(t, entity.NegotiationChatting)
	ctx := context.Background()

	offerMsg, err := f.uc.SendMessage(ctx, "offerer", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageCardOffer,
		Offer:          &entity.CardOfferPayload{OfferingItems: []entity.OfferItem{{CardID: "sv4-25"}}},
	})
	require.NoError(t, err)

	_, err = f.uc.SendMessage(ctx, "offerer", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageOfferResponse,
		OfferResponse:  &entity.OfferResponsePayload{OfferMessageID: offerMsg.ID, Action: entity.ResponseAccepted},
	})
	assert.Error(t, err)
	assert.Equal(t, entity.NegotiationOfferPending, f.status(t))
}

func TestSendMessageInvalidTransitionRejected(t *testing.T) {
	f := newChatFixture(t, entity.NegotiationChatting)

	// A meetup proposal before any offer was accepted is out of order.
	_, err := f.uc.SendMessage(context.Background(), "owner", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageMeetupProposal,
		Meetup:         &entity.MeetupProposalPayload{Location: "card shop", Time: time.Now()},
	})
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"), "got %v", err)
	assert.Equal(t, entity.NegotiationChatting, f.status(t))
}

func TestSendMessageNonParticipantRejected(t *testing.T) {
	f := newChatFixture(t, entity.NegotiationChatting)

	_, err := f.uc.SendMessage(context.Background(), "stranger", SendMessageInput{
		ConversationID: f.conversation.ID,
		Type:           entity.MessageText,
		Content:        "hello",
	})
	assert.Error(t, err)
}

func TestCompleteTradeRequiresMeetupConfirmed(t *testing.T) {
	f := newChatFixture(t, entity.NegotiationOfferAccepted)

	_, err := f.uc.CompleteTrade(context.Background(), "owner", f.conversation.ID)
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"), "got %v", err)
}

func TestCancelNegotiation(t *testing.T) {
	f := newChatFixture(t, entity.NegotiationOfferAccepted)

	conversation, err := f.uc.CancelNegotiation(context.Background(), "offerer", f.conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationCancelled, conversation.NegotiationStatus)

	// Terminal; nothing further goes through.
	_, err = f.uc.CancelNegotiation(context.Background(), "offerer", f.conversation.ID)
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"), "got %v", err)
}

func TestStartConversation(t *testing.T) {
	f := newChatFixture(t, entity.NegotiationChatting)

	conversation, err := f.uc.StartConversation(context.Background(), "alice", StartConversationInput{
		RecipientID:    "bob",
		ListingID:      "listing-1",
		InitialMessage: "is this still available?",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NegotiationChatting, conversation.NegotiationStatus)
	assert.True(t, conversation.HasParticipant("alice"))
	assert.True(t, conversation.HasParticipant("bob"))

	messages, _, err := f.uc.GetMessages(context.Background(), "alice", conversation.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, entity.MessageText, messages[0].Type)

	_, err = f.uc.StartConversation(context.Background(), "alice", StartConversationInput{RecipientID: "alice"})
	assert.Error(t, err)
}

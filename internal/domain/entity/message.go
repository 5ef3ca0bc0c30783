package entity

import "time"

// MessageType tags the message union. Only the four negotiation-relevant
// types ever advance a conversation's negotiation status.
type MessageType string

const (
	MessageText           MessageType = "text"
	MessageImage          MessageType = "image"
	MessageCardOffer      MessageType = "card_offer"
	MessageOfferResponse  MessageType = "card_offer_response"
	MessageMeetupProposal MessageType = "meetup_proposal"
	MessageMeetupResponse MessageType = "meetup_response"
	MessageSystem         MessageType = "system"
)

const (
	ResponseAccepted = "accepted"
	ResponseDeclined = "declined"
)

// CashDirection says which side the cash in a card offer flows from.
const (
	CashFromSender    = "from_sender"
	CashFromRecipient = "from_recipient"
)

type CardOfferPayload struct {
	OfferID         string      `json:"offer_id,omitempty" firestore:"offerId,omitempty"`
	OfferingItems   []OfferItem `json:"offering_items" firestore:"offeringItems"`
	RequestingItems []OfferItem `json:"requesting_items,omitempty" firestore:"requestingItems,omitempty"`
	CashAmount      float64     `json:"cash_amount" firestore:"cashAmount"`
	CashDirection   string      `json:"cash_direction,omitempty" firestore:"cashDirection,omitempty"`
	Notes           string      `json:"notes,omitempty" firestore:"notes,omitempty"`
}

type OfferResponsePayload struct {
	OfferMessageID string `json:"offer_message_id" firestore:"offerMessageId"`
	Action         string `json:"action" firestore:"action"`
}

type MeetupProposalPayload struct {
	Location string    `json:"location" firestore:"location"`
	Time     time.Time `json:"time" firestore:"time"`
	Note     string    `json:"note,omitempty" firestore:"note,omitempty"`
}

type MeetupResponsePayload struct {
	ProposalMessageID string `json:"proposal_message_id" firestore:"proposalMessageId"`
	Action            string `json:"action" firestore:"action"`
}

// Message is append-only and ordered by CreatedAt; messages are the event log
// that drives negotiation-status transitions. Exactly one payload pointer is
// set for the typed variants.
type Message struct {
	ID             string                 `json:"id" firestore:"id"`
	ConversationID string                 `json:"conversation_id" firestore:"conversationId"`
	SenderID       string                 `json:"sender_id" firestore:"senderId"`
	Type           MessageType            `json:"type" firestore:"type"`
	Content        string                 `json:"content,omitempty" firestore:"content,omitempty"`
	Offer          *CardOfferPayload      `json:"offer,omitempty" firestore:"offer,omitempty"`
	OfferResponse  *OfferResponsePayload  `json:"offer_response,omitempty" firestore:"offerResponse,omitempty"`
	Meetup         *MeetupProposalPayload `json:"meetup,omitempty" firestore:"meetup,omitempty"`
	MeetupResponse *MeetupResponsePayload `json:"meetup_response,omitempty" firestore:"meetupResponse,omitempty"`
	ReadBy         []string               `json:"read_by" firestore:"readBy"`
	CreatedAt      time.Time              `json:"created_at" firestore:"createdAt"`
}

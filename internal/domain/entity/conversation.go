package entity

import "time"

// NegotiationStatus is the conversation-level summary of where a trade
// stands. It is advanced only by negotiation-relevant message events; the
// conversation row is authoritative for reads.
type NegotiationStatus string

const (
	NegotiationChatting        NegotiationStatus = "chatting"
	NegotiationOfferPending    NegotiationStatus = "offer_pending"
	NegotiationOfferAccepted   NegotiationStatus = "offer_accepted"
	NegotiationMeetupProposed  NegotiationStatus = "meetup_proposed"
	NegotiationMeetupConfirmed NegotiationStatus = "meetup_confirmed"
	NegotiationCompleted       NegotiationStatus = "completed"
	NegotiationCancelled       NegotiationStatus = "cancelled"
)

type Conversation struct {
	ID                string            `json:"id" firestore:"id"`
	Participants      []string          `json:"participants" firestore:"participants"`
	ListingID         string            `json:"listing_id,omitempty" firestore:"listingId,omitempty"`
	MatchID           string            `json:"match_id,omitempty" firestore:"matchId,omitempty"`
	NegotiationStatus NegotiationStatus `json:"negotiation_status" firestore:"negotiationStatus"`
	LastMessage       string            `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt     time.Time         `json:"last_message_at" firestore:"lastMessageAt"`
	CreatedAt         time.Time         `json:"created_at" firestore:"createdAt"`
	UpdatedAt         time.Time         `json:"updated_at" firestore:"updatedAt"`
}

// HasParticipant reports whether userID takes part in the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

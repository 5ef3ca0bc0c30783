package entity

import "time"

// Match is created exactly once per accepted offer and links the two parties
// to the conversation where the negotiation continues.
type Match struct {
	ID             string    `json:"id" firestore:"id"`
	ListingID      string    `json:"listing_id" firestore:"listingId"`
	OfferID        string    `json:"offer_id" firestore:"offerId"`
	OwnerID        string    `json:"owner_id" firestore:"ownerId"`
	OffererID      string    `json:"offerer_id" firestore:"offererId"`
	ConversationID string    `json:"conversation_id" firestore:"conversationId"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}

package entity

import "time"

const (
	OfferStatusPending   = "pending"
	OfferStatusAccepted  = "accepted"
	OfferStatusDeclined  = "declined"
	OfferStatusCountered = "countered"
	OfferStatusWithdrawn = "withdrawn"
)

// OfferItem mirrors ListingItem with a back-reference to the collection item
// it came from. Items are frozen once the offer is accepted, for audit.
type OfferItem struct {
	CollectionItemID string    `json:"collection_item_id" firestore:"collectionItemId"`
	CardID           string    `json:"card_id" firestore:"cardId"`
	Name             string    `json:"name" firestore:"name"`
	SetCode          string    `json:"set_code" firestore:"setCode"`
	Number           string    `json:"number" firestore:"number"`
	Condition        Condition `json:"condition" firestore:"condition"`
	MarketPrice      *float64  `json:"market_price,omitempty" firestore:"marketPrice,omitempty"`
	Quantity         int       `json:"quantity" firestore:"quantity"`
}

type Offer struct {
	ID            string      `json:"id" firestore:"id"`
	ListingID     string      `json:"listing_id" firestore:"listingId"`
	OffererID     string      `json:"offerer_id" firestore:"offererId"`
	Items         []OfferItem `json:"items" firestore:"items"`
	CashAmount    float64     `json:"cash_amount" firestore:"cashAmount"`
	Message       string      `json:"message,omitempty" firestore:"message,omitempty"`
	Status        string      `json:"status" firestore:"status"`
	ParentOfferID string      `json:"parent_offer_id,omitempty" firestore:"parentOfferId,omitempty"`
	CreatedAt     time.Time   `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time   `json:"updated_at" firestore:"updatedAt"`
}

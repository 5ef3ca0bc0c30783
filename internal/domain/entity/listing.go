package entity

import (
	"time"
)

const (
	ListingStatusActive    = "active"
	ListingStatusMatched   = "matched"
	ListingStatusCompleted = "completed"
	ListingStatusExpired   = "expired"
)

// Condition is a card's physical condition, ordered nm > lp > mp > hp > dmg.
type Condition string

const (
	ConditionNearMint         Condition = "nm"
	ConditionLightlyPlayed    Condition = "lp"
	ConditionModeratelyPlayed Condition = "mp"
	ConditionHeavilyPlayed    Condition = "hp"
	ConditionDamaged          Condition = "dmg"
)

var conditionRanks = map[Condition]int{
	ConditionNearMint:         5,
	ConditionLightlyPlayed:    4,
	ConditionModeratelyPlayed: 3,
	ConditionHeavilyPlayed:    2,
	ConditionDamaged:          1,
}

// ConditionRank returns the fixed rank for a condition, 0 for unknown values.
func ConditionRank(c Condition) int {
	return conditionRanks[c]
}

type ListingItem struct {
	CardID      string    `json:"card_id" firestore:"cardId"`
	Name        string    `json:"name" firestore:"name"`
	SetCode     string    `json:"set_code" firestore:"setCode"`
	Number      string    `json:"number" firestore:"number"`
	Condition   Condition `json:"condition" firestore:"condition"`
	MarketPrice *float64  `json:"market_price,omitempty" firestore:"marketPrice,omitempty"`
	Quantity    int       `json:"quantity" firestore:"quantity"`
}

type Listing struct {
	ID            string        `json:"id" firestore:"id"`
	OwnerID       string        `json:"owner_id" firestore:"ownerId"`
	Game          string        `json:"game" firestore:"game"`
	Title         string        `json:"title" firestore:"title"`
	Items         []ListingItem `json:"items" firestore:"items"`
	TradeWants    []TradeWant   `json:"trade_wants" firestore:"tradeWants"`
	AcceptsCash   bool          `json:"accepts_cash" firestore:"acceptsCash"`
	AcceptsTrades bool          `json:"accepts_trades" firestore:"acceptsTrades"`
	CashAmount    float64       `json:"cash_amount" firestore:"cashAmount"`
	TotalValue    float64       `json:"total_value" firestore:"totalValue"`
	Status        string        `json:"status" firestore:"status"`
	CreatedAt     time.Time     `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time     `json:"updated_at" firestore:"updatedAt"`
}

// CanTransitionTo enforces active -> matched -> completed, with expired as a
// terminal branch off active.
func (l *Listing) CanTransitionTo(status string) bool {
	switch l.Status {
	case ListingStatusActive:
		return status == ListingStatusMatched || status == ListingStatusExpired
	case ListingStatusMatched:
		return status == ListingStatusCompleted
	default:
		return false
	}
}

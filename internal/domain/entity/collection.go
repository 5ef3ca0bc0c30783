package entity

import "time"

// CollectionItem is a physical card (or sealed product) a user owns.
type CollectionItem struct {
	ID             string    `json:"id" firestore:"id"`
	UserID         string    `json:"user_id" firestore:"userId"`
	CardID         string    `json:"card_id" firestore:"cardId"`
	Name           string    `json:"name" firestore:"name"`
	SetCode        string    `json:"set_code" firestore:"setCode"`
	Number         string    `json:"number" firestore:"number"`
	Condition      Condition `json:"condition" firestore:"condition"`
	Quantity       int       `json:"quantity" firestore:"quantity"`
	IsSealed       bool      `json:"is_sealed" firestore:"isSealed"`
	ProductType    string    `json:"product_type,omitempty" firestore:"productType,omitempty"`
	GradingCompany string    `json:"grading_company,omitempty" firestore:"gradingCompany,omitempty"`
	GradingScore   string    `json:"grading_score,omitempty" firestore:"gradingScore,omitempty"`
	IsTradeable    bool      `json:"is_tradeable" firestore:"isTradeable"`
	IsWishlist     bool      `json:"is_wishlist" firestore:"isWishlist"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Eligible reports whether the item may be offered in a trade.
func (i *CollectionItem) Eligible() bool {
	return i.IsTradeable && !i.IsWishlist
}

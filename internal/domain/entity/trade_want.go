package entity

import (
	"encoding/json"
)

// WantKind discriminates the TradeWant union. Adding a kind here forces a
// decision in the matcher's switch rather than a silent no-op.
type WantKind string

const (
	WantSpecificCard WantKind = "specific_card"
	WantSealed       WantKind = "sealed"
	WantSlab         WantKind = "slab"
	WantRawCards     WantKind = "raw_cards"
	WantCash         WantKind = "cash"
	WantOpenToOffers WantKind = "open_to_offers"
	WantCustom       WantKind = "custom"
)

// TradeWant describes one thing a listing owner is looking for. Which fields
// are meaningful depends on Kind; zero values mean "no filter".
type TradeWant struct {
	Kind WantKind `json:"kind" firestore:"kind"`

	// specific_card
	CardID   string `json:"card_id,omitempty" firestore:"cardId,omitempty"`
	CardName string `json:"card_name,omitempty" firestore:"cardName,omitempty"`

	// sealed
	ProductType string `json:"product_type,omitempty" firestore:"productType,omitempty"`

	// slab
	GradingCompany string  `json:"grading_company,omitempty" firestore:"gradingCompany,omitempty"`
	MinGrade       float64 `json:"min_grade,omitempty" firestore:"minGrade,omitempty"`

	// raw_cards
	MinCondition Condition `json:"min_condition,omitempty" firestore:"minCondition,omitempty"`

	// cash (informational only, never item-matchable)
	MinAmount float64 `json:"min_amount,omitempty" firestore:"minAmount,omitempty"`

	// custom (free text, never system-matchable)
	Label string `json:"label,omitempty" firestore:"label,omitempty"`
}

var knownWantKinds = map[WantKind]bool{
	WantSpecificCard: true,
	WantSealed:       true,
	WantSlab:         true,
	WantRawCards:     true,
	WantCash:         true,
	WantOpenToOffers: true,
	WantCustom:       true,
}

// KnownKind reports whether the want carries a kind the engine understands.
func (w TradeWant) KnownKind() bool {
	return knownWantKinds[w.Kind]
}

// ParseTradeWants decodes a JSON array of trade wants, dropping malformed
// entries and entries with unknown kinds instead of failing the whole parse.
// Stored wants come from older clients, so tolerance here is a storage
// boundary contract, not a convenience.
func ParseTradeWants(data []byte) []TradeWant {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	wants := make([]TradeWant, 0, len(raw))
	for _, entry := range raw {
		var want TradeWant
		if err := json.Unmarshal(entry, &want); err != nil {
			continue
		}
		if !want.KnownKind() {
			continue
		}
		wants = append(wants, want)
	}
	return wants
}

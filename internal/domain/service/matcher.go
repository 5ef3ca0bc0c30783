package service

import (
	"strconv"
	"strings"

	"tradebinder/internal/domain/entity"
)

// MatchesCollectionItem reports whether a collection item satisfies a trade
// want. Pure; total for any well-formed input. Garbled grading scores are
// treated as grade 0, unknown want kinds match nothing.
func MatchesCollectionItem(want entity.TradeWant, item *entity.CollectionItem) bool {
	switch want.Kind {
	case entity.WantSpecificCard:
		return item.CardID == want.CardID

	case entity.WantSealed:
		if !item.IsSealed {
			return false
		}
		return want.ProductType == "" || want.ProductType == item.ProductType

	case entity.WantSlab:
		if item.GradingCompany == "" {
			return false
		}
		if want.GradingCompany != "" && want.GradingCompany != item.GradingCompany {
			return false
		}
		if want.MinGrade > 0 {
			return gradeOf(item.GradingScore) >= want.MinGrade
		}
		return true

	case entity.WantRawCards:
		if item.IsSealed || item.GradingCompany != "" {
			return false
		}
		if want.MinCondition == "" {
			return true
		}
		return entity.ConditionRank(item.Condition) >= entity.ConditionRank(want.MinCondition)

	case entity.WantOpenToOffers:
		return true

	case entity.WantCash, entity.WantCustom:
		// Informational wants, never matchable against physical items.
		return false
	}

	return false
}

// MatchesListingItem reports whether a listing item satisfies a trade want.
// Listing items carry no sealed or grading metadata, so sealed and slab wants
// can never be satisfied here; only the collection path (quick-match) can
// satisfy them. This asymmetry is intentional and load-bearing for ranking.
func MatchesListingItem(want entity.TradeWant, item *entity.ListingItem) bool {
	switch want.Kind {
	case entity.WantSpecificCard:
		return item.CardID == want.CardID

	case entity.WantRawCards:
		if want.MinCondition == "" {
			return true
		}
		return entity.ConditionRank(item.Condition) >= entity.ConditionRank(want.MinCondition)

	case entity.WantOpenToOffers:
		return true

	case entity.WantSealed, entity.WantSlab:
		return false

	case entity.WantCash, entity.WantCustom:
		return false
	}

	return false
}

func gradeOf(score string) float64 {
	grade, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
	if err != nil {
		return 0
	}
	return grade
}

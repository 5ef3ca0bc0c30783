package service

import (
	"tradebinder/internal/domain/entity"
)

// SelectQuickMatch picks collection items that satisfy the counterpart's
// wants, for a one-tap counter-offer. Greedy: wants are walked in order, each
// want claims the first not-yet-selected item that satisfies it, and each item
// is selected at most once even if it satisfies several wants. No attempt is
// made to balance value or minimize item count.
func SelectQuickMatch(wants []entity.TradeWant, collection []*entity.CollectionItem) []*entity.CollectionItem {
	selected := make(map[string]bool)
	var picks []*entity.CollectionItem

	for _, want := range wants {
		for _, item := range collection {
			if selected[item.ID] {
				continue
			}
			if !item.Eligible() {
				continue
			}
			if MatchesCollectionItem(want, item) {
				selected[item.ID] = true
				picks = append(picks, item)
				break
			}
		}
	}

	return picks
}

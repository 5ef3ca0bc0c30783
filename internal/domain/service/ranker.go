package service

import (
	"sort"
	"time"

	"tradebinder/internal/domain/entity"
)

const (
	MatchTypeMutual           = "mutual"
	MatchTypeHasWhatYouWant   = "has_what_you_want"
	MatchTypeWantsWhatYouHave = "wants_what_you_have"
)

const (
	matchPoints   = 5.0
	mutualBonus   = 3.0
	sameGameBonus = 2.0
	recencyWindow = 7 * 24 * time.Hour
)

// TradeOpportunity is one ranked candidate listing.
type TradeOpportunity struct {
	Listing        *entity.Listing `json:"listing"`
	OwnerID        string          `json:"owner_id"`
	MatchType      string          `json:"match_type"`
	MatchedCardIDs []string        `json:"matched_card_ids"`
	Score          float64         `json:"score"`
}

// RankOpportunities scores candidate listings against mine and returns them
// best-first. Candidates owned by the same user are skipped; candidates with
// no directional match in either direction are dropped. The sort is stable so
// equal scores keep encounter order.
//
// The score is a simple additive heuristic, not a value balancer; callers
// must not read trade fairness into it.
func RankOpportunities(mine *entity.Listing, candidates []*entity.Listing, now time.Time) []TradeOpportunity {
	opportunities := make([]TradeOpportunity, 0, len(candidates))

	for _, candidate := range candidates {
		if candidate.OwnerID == mine.OwnerID {
			continue
		}

		var forward, reverse float64
		seen := make(map[string]bool)
		var matchedIDs []string

		for _, want := range mine.TradeWants {
			for i := range candidate.Items {
				item := &candidate.Items[i]
				if !MatchesListingItem(want, item) {
					continue
				}
				forward += matchPoints
				if !seen[item.CardID] {
					seen[item.CardID] = true
					matchedIDs = append(matchedIDs, item.CardID)
				}
			}
		}

		for _, want := range candidate.TradeWants {
			for i := range mine.Items {
				if MatchesListingItem(want, &mine.Items[i]) {
					reverse += matchPoints
				}
			}
		}

		if forward == 0 && reverse == 0 {
			continue
		}

		matchType := MatchTypeWantsWhatYouHave
		if forward > 0 && reverse > 0 {
			matchType = MatchTypeMutual
		} else if forward > 0 {
			matchType = MatchTypeHasWhatYouWant
		}

		score := forward + reverse
		if matchType == MatchTypeMutual {
			score += mutualBonus
		}
		if candidate.Game == mine.Game {
			score += sameGameBonus
		}
		score += recencyBonus(candidate.CreatedAt, now)

		opportunities = append(opportunities, TradeOpportunity{
			Listing:        candidate,
			OwnerID:        candidate.OwnerID,
			MatchType:      matchType,
			MatchedCardIDs: matchedIDs,
			Score:          score,
		})
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].Score > opportunities[j].Score
	})

	return opportunities
}

// recencyBonus is 1 at age zero falling linearly to 0 at the window edge.
// Always clamped to [0,1]; listings older than the window contribute nothing,
// never a negative amount.
func recencyBonus(createdAt, now time.Time) float64 {
	age := now.Sub(createdAt)
	if age < 0 {
		age = 0
	}
	if age >= recencyWindow {
		return 0
	}
	return 1 - float64(age)/float64(recencyWindow)
}

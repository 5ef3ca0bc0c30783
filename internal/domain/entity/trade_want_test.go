package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTradeWantsDropsMalformedEntries(t *testing.T) {
	data := []byte(`[
		{"kind": "specific_card", "card_id": "sv4-25"},
		{"kind": "hologram_only"},
		"not an object",
		{"kind": "raw_cards", "min_condition": "lp"}
	]`)

	wants := ParseTradeWants(data)
	require.Len(t, wants, 2)
	assert.Equal(t, WantSpecificCard, wants[0].Kind)
	assert.Equal(t, "sv4-25", wants[0].CardID)
	assert.Equal(t, WantRawCards, wants[1].Kind)
	assert.Equal(t, ConditionLightlyPlayed, wants[1].MinCondition)
}

func TestParseTradeWantsInvalidArray(t *testing.T) {
	assert.Nil(t, ParseTradeWants([]byte(`{"kind": "sealed"}`)))
	assert.Nil(t, ParseTradeWants([]byte(`not json`)))
	assert.Empty(t, ParseTradeWants([]byte(`[]`)))
}

func TestConditionRank(t *testing.T) {
	assert.Equal(t, 5, ConditionRank(ConditionNearMint))
	assert.Equal(t, 4, ConditionRank(ConditionLightlyPlayed))
	assert.Equal(t, 3, ConditionRank(ConditionModeratelyPlayed))
	assert.Equal(t, 2, ConditionRank(ConditionHeavilyPlayed))
	assert.Equal(t, 1, ConditionRank(ConditionDamaged))
	assert.Equal(t, 0, ConditionRank("mint"))
	assert.Equal(t, 0, ConditionRank(""))
}

func TestListingCanTransitionTo(t *testing.T) {
	active := &Listing{Status: ListingStatusActive}
	assert.True(t, active.CanTransitionTo(ListingStatusMatched))
	assert.True(t, active.CanTransitionTo(ListingStatusExpired))
	assert.False(t, active.CanTransitionTo(ListingStatusCompleted))

	matched := &Listing{Status: ListingStatusMatched}
	assert.True(t, matched.CanTransitionTo(ListingStatusCompleted))
	assert.False(t, matched.CanTransitionTo(ListingStatusExpired))

	for _, terminal := range []string{ListingStatusCompleted, ListingStatusExpired} {
		l := &Listing{Status: terminal}
		assert.False(t, l.CanTransitionTo(ListingStatusActive))
		assert.False(t, l.CanTransitionTo(ListingStatusMatched))
	}
}

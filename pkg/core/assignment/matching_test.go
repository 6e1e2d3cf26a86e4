package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionFamily(t *testing.T) {
	tests := []struct {
		position string
		expected Family
	}{
		{"Dealer", FamilyDealer},
		{"  dealer ", FamilyDealer},
		{"Poker Dealer", FamilyPoker},
		{"Blackjack Dealer", FamilyBlackjack},
		{"Roulette Dealer", FamilyRoulette},
		{"Craps Dealer", FamilyCraps},
		{"Baccarat Dealer", FamilyBaccarat},
		{"Party Host", FamilyHost},
		{"Bartender", FamilyBar},
		{"Mixology Station", FamilyBar},
		{"Dealer Captain", FamilyOpen},
		{"Photographer", FamilyOpen},
	}

	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			assert.Equal(t, tt.expected, PositionFamily(tt.position))
		})
	}
}

func TestSkillFamilies(t *testing.T) {
	assert.ElementsMatch(t, []Family{FamilyDealer, FamilyBlackjack}, SkillFamilies("Blackjack Dealer"))
	assert.ElementsMatch(t, []Family{FamilyPoker, FamilyCraps}, SkillFamilies("poker/craps"))
	assert.ElementsMatch(t, []Family{FamilyBar}, SkillFamilies("Mixology"))
	assert.Empty(t, SkillFamilies("Juggling"))
}

func TestQualifies(t *testing.T) {
	tests := []struct {
		name     string
		position string
		skills   []string
		expected bool
	}{
		{"poker skill for poker position", "Poker Dealer", []string{"Poker"}, true},
		{"case insensitive", "POKER DEALER", []string{"texas hold'em POKER"}, true},
		{"blackjack skill for poker position", "Poker Dealer", []string{"Blackjack"}, false},
		{"generic dealer skill not enough for blackjack", "Blackjack Dealer", []string{"Dealer"}, false},
		{"generic dealer accepts generic skill", "Dealer", []string{"dealer"}, true},
		{"generic dealer accepts craps", "Dealer", []string{"Craps"}, true},
		{"generic dealer accepts baccarat", "dealer", []string{"Baccarat"}, true},
		{"generic dealer rejects host", "Dealer", []string{"Host"}, false},
		{"host position", "Event Host", []string{"Hosting", "Greeter"}, true},
		{"bartender from mixology skill", "Bartender", []string{"Mixology"}, true},
		{"bartender from bartender skill", "Bartender", []string{"Bartender"}, true},
		{"bartender rejects dealer", "Bartender", []string{"Roulette"}, false},
		{"unknown position open to all", "Photographer", nil, true},
		{"no skills for family position", "Roulette Dealer", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Qualifies(tt.position, tt.skills))
		})
	}
}

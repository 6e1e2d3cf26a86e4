package assignment

import (
	"slices"
	"strings"
)

// Family groups positions and skills that can fill each other
type Family string

const (
	FamilyOpen      Family = ""
	FamilyDealer    Family = "dealer"
	FamilyPoker     Family = "poker"
	FamilyBlackjack Family = "blackjack"
	FamilyRoulette  Family = "roulette"
	FamilyCraps     Family = "craps"
	FamilyBaccarat  Family = "baccarat"
	FamilyHost      Family = "host"
	FamilyBar       Family = "bar"
)

// genericDealerPosition is matched exactly (case-insensitive), not as a substring
const genericDealerPosition = "dealer"

type familyKeyword struct {
	keyword string
	family  Family
}

// positionKeywords is checked in order; the first keyword contained in the
// lower-cased position name decides its family.
var positionKeywords = []familyKeyword{
	{"poker", FamilyPoker},
	{"blackjack", FamilyBlackjack},
	{"roulette", FamilyRoulette},
	{"craps", FamilyCraps},
	{"baccarat", FamilyBaccarat},
	{"host", FamilyHost},
	{"bartender", FamilyBar},
	{"mixology", FamilyBar},
}

// skillKeywords tags a free-text skill with every family whose keyword it contains
var skillKeywords = append([]familyKeyword{{"dealer", FamilyDealer}}, positionKeywords...)

// dealerFamilies are the skill families that satisfy the generic "Dealer" position
var dealerFamilies = map[Family]bool{
	FamilyDealer:    true,
	FamilyPoker:     true,
	FamilyBlackjack: true,
	FamilyRoulette:  true,
	FamilyCraps:     true,
	FamilyBaccarat:  true,
}

// PositionFamily classifies a position name. The generic "Dealer" position is
// FamilyDealer; names without a known keyword are FamilyOpen.
func PositionFamily(position string) Family {
	name := strings.ToLower(strings.TrimSpace(position))
	// Exact match only; "Poker Dealer" is poker
	if name == genericDealerPosition {
		return FamilyDealer
	}
	// First keyword wins
	for _, fk := range positionKeywords {
		if strings.Contains(name, fk.keyword) {
			return fk.family
		}
	}
	return FamilyOpen
}

// SkillFamilies returns every family a free-text skill tag belongs to
func SkillFamilies(skill string) []Family {
	tag := strings.ToLower(skill)
	var families []Family
	for _, fk := range skillKeywords {
		if strings.Contains(tag, fk.keyword) && !slices.Contains(families, fk.family) {
			families = append(families, fk.family)
		}
	}
	return families
}

// Qualifies reports whether a worker with the given skills may be offered the position.
// Open positions accept everyone; the generic "Dealer" accepts any dealer-family
// skill; every other family requires a skill of the same family.
func Qualifies(position string, skills []string) bool {
	family := PositionFamily(position)
	if family == FamilyOpen {
		return true
	}

	// Any one matching skill is enough
	for _, skill := range skills {
		for _, sf := range SkillFamilies(skill) {
			// Generic dealer accepts any dealer family
			if family == FamilyDealer {
				if dealerFamilies[sf] {
					return true
				}
				continue
			}
			if sf == family {
				return true
			}
		}
	}
	return false
}

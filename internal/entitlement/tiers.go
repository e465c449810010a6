// Package entitlement computes prices, upgrade deltas, renewal discounts and
// usage quotas from a subscription tier and a pricing region. Everything here
// is a pure function over the fixed pricing configuration.
package entitlement

import "math"

// Tier is a subscription level gating feature quotas and pricing.
// Tiers are strictly ordered: Starter < Pro < Elite.
type Tier string

const (
	TierStarter Tier = "Starter"
	TierPro     Tier = "Pro"
	TierElite   Tier = "Elite"
)

// rank returns the ordering position of a tier. Unknown tiers rank lowest.
func (t Tier) rank() int {
	switch t {
	case TierPro:
		return 1
	case TierElite:
		return 2
	default:
		return 0
	}
}

// Less reports whether t is strictly below other in the tier ordering.
func (t Tier) Less(other Tier) bool {
	return t.rank() < other.rank()
}

// Valid reports whether t is one of the defined tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierStarter, TierPro, TierElite:
		return true
	}
	return false
}

// renewalDiscount is the fraction of the full tier price charged on renewal.
const renewalDiscount = 0.8

// TemplateQuota returns the number of CV templates a tier may generate.
func TemplateQuota(tier Tier) int {
	switch tier {
	case TierElite:
		return 5
	case TierPro:
		return 3
	default:
		return 1
	}
}

// AttemptsRemaining returns how many CV generation attempts are left for a
// tier given the attempts already used. Never negative.
func AttemptsRemaining(tier Tier, attemptsUsed int) int {
	remaining := TemplateQuota(tier) - attemptsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// UpgradeCost returns the absolute price difference between the target and
// the current tier in the given region. It is defined only for forward
// upgrades; ok is false for lateral or backward directions.
func UpgradeCost(current, target Tier, region string) (cost int, ok bool) {
	if !current.Less(target) {
		return 0, false
	}
	prices := PriceTable(region)
	return prices.For(target) - prices.For(current), true
}

// RenewalCost returns the discounted renewal price for the candidate's
// current tier, rounded half-up to the nearest whole currency unit.
func RenewalCost(tier Tier, region string) int {
	base := PriceTable(region).For(tier)
	return int(math.Round(float64(base) * renewalDiscount))
}

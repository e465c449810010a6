package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateQuota(t *testing.T) {
	assert.Equal(t, 1, TemplateQuota(TierStarter))
	assert.Equal(t, 3, TemplateQuota(TierPro))
	assert.Equal(t, 5, TemplateQuota(TierElite))
	// Unknown tiers fall back to the most restrictive quota.
	assert.Equal(t, 1, TemplateQuota(Tier("Platinum")))
}

func TestAttemptsRemaining(t *testing.T) {
	// Starter with nothing used has exactly one attempt.
	assert.Equal(t, 1, AttemptsRemaining(TierStarter, 0))

	assert.Equal(t, 2, AttemptsRemaining(TierPro, 1))
	assert.Equal(t, 0, AttemptsRemaining(TierElite, 5))
}

func TestAttemptsRemaining_NeverNegative(t *testing.T) {
	for _, tier := range []Tier{TierStarter, TierPro, TierElite} {
		for used := 0; used <= 10; used++ {
			got := AttemptsRemaining(tier, used)
			assert.GreaterOrEqual(t, got, 0)
			if used <= TemplateQuota(tier) {
				assert.Equal(t, TemplateQuota(tier)-used, got)
			}
		}
	}
}

func TestUpgradeCost(t *testing.T) {
	cost, ok := UpgradeCost(TierStarter, TierElite, "UK")
	require.True(t, ok)
	assert.Equal(t, 90, cost) // 129 - 39

	cost, ok = UpgradeCost(TierStarter, TierPro, "UK")
	require.True(t, ok)
	assert.Equal(t, 40, cost)

	cost, ok = UpgradeCost(TierPro, TierElite, "India")
	require.True(t, ok)
	assert.Equal(t, 5000, cost)
}

func TestUpgradeCost_UndefinedDirections(t *testing.T) {
	_, ok := UpgradeCost(TierElite, TierStarter, "UK")
	assert.False(t, ok)
	_, ok = UpgradeCost(TierPro, TierPro, "UK")
	assert.False(t, ok)
	_, ok = UpgradeCost(TierElite, TierPro, "USA")
	assert.False(t, ok)
}

func TestRenewalCost(t *testing.T) {
	// 79 * 0.8 = 63.2, rounded half-up to 63.
	assert.Equal(t, 63, RenewalCost(TierPro, "UK"))
	// 39 * 0.8 = 31.2 -> 31
	assert.Equal(t, 31, RenewalCost(TierStarter, "UK"))
	// 159 * 0.8 = 127.2 -> 127
	assert.Equal(t, 127, RenewalCost(TierElite, "Global"))
	// 3999 * 0.8 = 3199.2 -> 3199
	assert.Equal(t, 3199, RenewalCost(TierStarter, "India"))
}

func TestPriceTable_UnknownRegionFallsBack(t *testing.T) {
	assert.Equal(t, PriceTable("Global"), PriceTable("Atlantis"))
	assert.Equal(t, "£", PriceTable("UK").Symbol)
	assert.Equal(t, 119, PriceTable("Canada").For(TierPro))
}

func TestTierOrdering(t *testing.T) {
	assert.True(t, TierStarter.Less(TierPro))
	assert.True(t, TierPro.Less(TierElite))
	assert.False(t, TierElite.Less(TierStarter))
	assert.False(t, TierPro.Less(TierPro))
}

package entitlement

// DefaultRegion is the fallback pricing region for unknown region keys.
const DefaultRegion = "Global"

// Prices holds the three absolute price points for a region along with its
// currency symbol. Currencies in this model have no fractional sub-units.
type Prices struct {
	Symbol  string `json:"symbol"`
	Starter int    `json:"starter"`
	Pro     int    `json:"pro"`
	Elite   int    `json:"elite"`
}

// For returns the price point for the given tier.
func (p Prices) For(tier Tier) int {
	switch tier {
	case TierElite:
		return p.Elite
	case TierPro:
		return p.Pro
	default:
		return p.Starter
	}
}

// regionalPrices is the fixed per-region pricing configuration.
var regionalPrices = map[string]Prices{
	"UK":     {Symbol: "£", Starter: 39, Pro: 79, Elite: 129},
	"USA":    {Symbol: "$", Starter: 49, Pro: 99, Elite: 159},
	"Europe": {Symbol: "€", Starter: 45, Pro: 89, Elite: 145},
	"India":  {Symbol: "₹", Starter: 3999, Pro: 7999, Elite: 12999},
	"Canada": {Symbol: "C$", Starter: 59, Pro: 119, Elite: 189},
	"Global": {Symbol: "$", Starter: 49, Pro: 99, Elite: 159},
}

// PriceTable returns the price points and currency symbol for a region.
// Unknown regions fall back to the Global table.
func PriceTable(region string) Prices {
	if p, ok := regionalPrices[region]; ok {
		return p
	}
	return regionalPrices[DefaultRegion]
}

// Regions lists the known pricing regions.
func Regions() []string {
	return []string{"UK", "USA", "Europe", "India", "Canada", "Global"}
}

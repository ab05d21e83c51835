package shipping

// CartLine is one entry of the buyer's cart as sent by the storefront.
type CartLine struct {
	ProductID int64
	Quantity  int
}

// Destination is where the cart would ship to. Country is ISO-3166 alpha-2
// and is the only field the resolver requires; postal code and city are
// carried for future postal-level pricing.
type Destination struct {
	Country    string
	PostalCode string
	City       string
}

// ProductWeight is the catalog's unit weight for a product. Known is false
// when the catalog has no weight on record, in which case the aggregator
// substitutes DefaultUnitWeightKg. Dimensions are read from the catalog but
// not used yet (reserved for volumetric weight).
type ProductWeight struct {
	WeightKg float64
	Known    bool
	WidthCm  float64
	HeightCm float64
	DepthCm  float64
}

// Carrier is a shipping carrier as configured in the back office.
type Carrier struct {
	ID       int64
	Code     string
	Name     string
	Active   bool
	LogoPath string
}

// RateBand prices a weight range for one carrier within one zone.
// Boundaries are inclusive on both ends.
type RateBand struct {
	Carrier        Carrier
	MinWeightGrams int
	MaxWeightGrams int
	Price          float64
}

// Zone groups destination countries under a common set of rate bands.
type Zone struct {
	ID        int64
	Name      string
	Countries map[string]struct{}
	Active    bool
	Bands     []RateBand
}

// Contains reports whether the zone covers the given country code.
func (z Zone) Contains(country string) bool {
	_, ok := z.Countries[country]
	return ok
}

// Quote is one shipping offer presented to the buyer.
type Quote struct {
	CarrierID    int64
	CarrierCode  string
	CarrierName  string
	Price        float64
	DeliveryDays int
	LogoPath     string
}

// Result is the outcome of one rate calculation. ZoneName is empty when no
// configured zone matched (including the fallback path).
type Result struct {
	Quotes        []Quote
	TotalWeightKg float64
	ZoneName      string
}

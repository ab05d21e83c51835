package shipping

import "math"

// Static fallback pricing used when no configured zone or band covers the
// request. It exists so the storefront never shows "no shipping available"
// for the main markets just because admin configuration is incomplete. The
// prices are deliberately slightly pessimistic since they are not verified
// against carrier contracts.
//
// The tables are ordinary zones evaluated by the exact same band matching
// and dedup code as database-backed zones, so boundary inclusivity and
// per-carrier dedup hold on both paths.

// Top tiers are open-ended: anything above the last threshold gets the top
// price rather than no quote at all.
const unboundedGrams = math.MaxInt

// Negative IDs keep the code-defined carriers out of the database ID space
// while per-carrier dedup still keys on the ID.
var fallbackColissimo = Carrier{ID: -1, Code: "colissimo", Name: "Colissimo", Active: true}
var fallbackChronopost = Carrier{ID: -2, Code: "chronopost", Name: "Chronopost", Active: true}
var fallbackColissimoIntl = Carrier{ID: -3, Code: "colissimo_intl", Name: "Colissimo International", Active: true}

var fallbackZones = []Zone{
	{
		Name:      "fallback-domestic",
		Active:    true,
		Countries: countrySet("FR"),
		Bands: []RateBand{
			{Carrier: fallbackColissimo, MinWeightGrams: 0, MaxWeightGrams: 250, Price: 4.95},
			{Carrier: fallbackColissimo, MinWeightGrams: 251, MaxWeightGrams: 500, Price: 5.95},
			{Carrier: fallbackColissimo, MinWeightGrams: 501, MaxWeightGrams: 1000, Price: 7.35},
			{Carrier: fallbackColissimo, MinWeightGrams: 1001, MaxWeightGrams: 2000, Price: 8.55},
			{Carrier: fallbackColissimo, MinWeightGrams: 2001, MaxWeightGrams: unboundedGrams, Price: 12.55},
		},
	},
	{
		Name:      "fallback-europe",
		Active:    true,
		Countries: countrySet("BE", "DE", "ES", "IT", "LU", "NL", "PT", "AT", "IE", "GB", "CH"),
		Bands: []RateBand{
			{Carrier: fallbackChronopost, MinWeightGrams: 0, MaxWeightGrams: 250, Price: 13.90},
			{Carrier: fallbackChronopost, MinWeightGrams: 251, MaxWeightGrams: 500, Price: 15.50},
			{Carrier: fallbackChronopost, MinWeightGrams: 501, MaxWeightGrams: 1000, Price: 18.90},
			{Carrier: fallbackChronopost, MinWeightGrams: 1001, MaxWeightGrams: 2000, Price: 22.50},
			{Carrier: fallbackChronopost, MinWeightGrams: 2001, MaxWeightGrams: unboundedGrams, Price: 29.90},

			{Carrier: fallbackColissimoIntl, MinWeightGrams: 0, MaxWeightGrams: 250, Price: 8.45},
			{Carrier: fallbackColissimoIntl, MinWeightGrams: 251, MaxWeightGrams: 500, Price: 10.15},
			{Carrier: fallbackColissimoIntl, MinWeightGrams: 501, MaxWeightGrams: 1000, Price: 12.65},
			{Carrier: fallbackColissimoIntl, MinWeightGrams: 1001, MaxWeightGrams: 2000, Price: 15.25},
			{Carrier: fallbackColissimoIntl, MinWeightGrams: 2001, MaxWeightGrams: unboundedGrams, Price: 21.15},
		},
	},
}

func countrySet(codes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

package shipping

import (
	"context"
	"strings"
)

// WeightStore returns catalog unit weights for a batch of product IDs.
// Missing products are simply absent from the map.
type WeightStore interface {
	Weights(ctx context.Context, productIDs []int64) (map[int64]ProductWeight, error)
}

// RateStore returns the active shipping zones with their rate bands and
// carriers eager-loaded, ordered by ascending zone ID.
type RateStore interface {
	ActiveZones(ctx context.Context) ([]Zone, error)
}

// Resolver turns (cart, destination) into a list of shipping quotes.
// It is stateless; every call is a pure function of its inputs and the
// current store contents.
type Resolver struct {
	weights WeightStore
	rates   RateStore
}

func NewResolver(weights WeightStore, rates RateStore) *Resolver {
	return &Resolver{weights: weights, rates: rates}
}

// Resolve computes shipping quotes for the cart and destination.
//
// Incomplete input (empty cart, missing country) returns an empty result
// without touching the stores. Business non-matches (no zone, no band)
// degrade to the static fallback tables. Only store failures return an
// error; the computed weight is still reported when it is known so the
// caller can show "weight known, rates unavailable".
func (r *Resolver) Resolve(ctx context.Context, lines []CartLine, dest Destination) (Result, error) {
	country := strings.ToUpper(strings.TrimSpace(dest.Country))
	if len(lines) == 0 || country == "" {
		return Result{Quotes: []Quote{}}, nil
	}

	weights, err := r.weights.Weights(ctx, productIDs(lines))
	if err != nil {
		return Result{Quotes: []Quote{}}, err
	}
	totalKg := TotalWeightKg(lines, weights)
	grams := Grams(totalKg)

	zones, err := r.rates.ActiveZones(ctx)
	if err != nil {
		return Result{Quotes: []Quote{}, TotalWeightKg: totalKg}, err
	}

	res := Result{Quotes: []Quote{}, TotalWeightKg: totalKg}
	if zone, ok := matchZone(zones, country); ok {
		res.ZoneName = zone.Name
		res.Quotes = quotesForZone(zone, grams)
	}
	if len(res.Quotes) == 0 {
		// Fallback tables never report a zone name: the storefront only
		// advertises a named zone when its configured rates actually
		// produced a quote. That holds even when a zone matched but none
		// of its bands covered the weight.
		res.ZoneName = ""
		if zone, ok := matchZone(fallbackZones, country); ok {
			res.Quotes = quotesForZone(zone, grams)
		}
	}
	return res, nil
}

// matchZone returns the first active zone covering the country. Zones arrive
// ordered by ascending ID, so a country placed in two active zones resolves
// deterministically to the lower-id one.
func matchZone(zones []Zone, country string) (Zone, bool) {
	for _, z := range zones {
		if z.Active && z.Contains(country) {
			return z, true
		}
	}
	return Zone{}, false
}

// quotesForZone selects the bands covering the weight and keeps the cheapest
// band per carrier. Band boundaries are inclusive on both ends; overlapping
// bands for one carrier are expected (promotional pricing) and resolve to
// the lowest price, first seen winning equal-price ties.
func quotesForZone(zone Zone, grams int) []Quote {
	cheapest := make(map[int64]RateBand)
	order := make([]int64, 0, 4)
	for _, band := range zone.Bands {
		if !band.Carrier.Active {
			continue
		}
		if grams < band.MinWeightGrams || grams > band.MaxWeightGrams {
			continue
		}
		cur, seen := cheapest[band.Carrier.ID]
		if !seen {
			cheapest[band.Carrier.ID] = band
			order = append(order, band.Carrier.ID)
			continue
		}
		if band.Price < cur.Price {
			cheapest[band.Carrier.ID] = band
		}
	}

	quotes := make([]Quote, 0, len(order))
	for _, id := range order {
		b := cheapest[id]
		quotes = append(quotes, Quote{
			CarrierID:    b.Carrier.ID,
			CarrierCode:  b.Carrier.Code,
			CarrierName:  b.Carrier.Name,
			Price:        b.Price,
			DeliveryDays: DeliveryDays(b.Carrier.Code),
			LogoPath:     b.Carrier.LogoPath,
		})
	}
	return quotes
}

func productIDs(lines []CartLine) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}

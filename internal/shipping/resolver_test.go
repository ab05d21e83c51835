package shipping

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWeightStore struct {
	weights map[int64]ProductWeight
	calls   int
	err     error
}

func (f *fakeWeightStore) Weights(ctx context.Context, ids []int64) (map[int64]ProductWeight, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[int64]ProductWeight, len(ids))
	for _, id := range ids {
		if w, ok := f.weights[id]; ok {
			out[id] = w
		}
	}
	return out, nil
}

type fakeRateStore struct {
	zones []Zone
	calls int
	err   error
}

func (f *fakeRateStore) ActiveZones(ctx context.Context) ([]Zone, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.zones, nil
}

var colissimo = Carrier{ID: 1, Code: "colissimo", Name: "Colissimo", Active: true, LogoPath: "/img/carriers/colissimo.png"}
var chronopost = Carrier{ID: 2, Code: "chronopost", Name: "Chronopost", Active: true, LogoPath: "/img/carriers/chronopost.png"}

func franceZone(bands ...RateBand) Zone {
	return Zone{ID: 1, Name: "France", Countries: countrySet("FR"), Active: true, Bands: bands}
}

func newTestResolver(weights map[int64]ProductWeight, zones []Zone) (*Resolver, *fakeWeightStore, *fakeRateStore) {
	ws := &fakeWeightStore{weights: weights}
	rs := &fakeRateStore{zones: zones}
	return NewResolver(ws, rs), ws, rs
}

func TestResolveEmptyCartShortCircuits(t *testing.T) {
	r, ws, rs := newTestResolver(nil, nil)
	res, err := r.Resolve(context.Background(), nil, Destination{Country: "FR"})
	require.NoError(t, err)
	assert.Empty(t, res.Quotes)
	assert.Zero(t, res.TotalWeightKg)
	assert.Zero(t, ws.calls, "weight store must not be queried")
	assert.Zero(t, rs.calls, "rate store must not be queried")
}

func TestResolveMissingCountryShortCircuits(t *testing.T) {
	r, ws, rs := newTestResolver(nil, nil)
	res, err := r.Resolve(context.Background(), []CartLine{{ProductID: 1, Quantity: 1}}, Destination{Country: "  "})
	require.NoError(t, err)
	assert.Empty(t, res.Quotes)
	assert.Zero(t, res.TotalWeightKg)
	assert.Zero(t, ws.calls)
	assert.Zero(t, rs.calls)
}

func TestResolveDomesticLightPackage(t *testing.T) {
	weights := map[int64]ProductWeight{10: {WeightKg: 0.2, Known: true}}
	zone := franceZone(RateBand{Carrier: colissimo, MinWeightGrams: 0, MaxWeightGrams: 250, Price: 4.95})
	r, _, _ := newTestResolver(weights, []Zone{zone})

	res, err := r.Resolve(context.Background(), []CartLine{{ProductID: 10, Quantity: 1}}, Destination{Country: "FR"})
	require.NoError(t, err)
	require.Len(t, res.Quotes, 1)
	assert.Equal(t, "France", res.ZoneName)
	assert.Equal(t, "colissimo", res.Quotes[0].CarrierCode)
	assert.InDelta(t, 4.95, res.Quotes[0].Price, 1e-9)
	assert.Equal(t, 2, res.Quotes[0].DeliveryDays)
	assert.InDelta(t, 0.2, res.TotalWeightKg, 1e-9)
}

func TestResolveBandBoundariesInclusive(t *testing.T) {
	weights := map[int64]ProductWeight{10: {WeightKg: 0.25, Known: true}}
	zone := franceZone(
		RateBand{Carrier: colissimo, MinWeightGrams: 0, MaxWeightGrams: 250, Price: 4.95},
		RateBand{Carrier: chronopost, MinWeightGrams: 250, MaxWeightGrams: 500, Price: 9.90},
	)
	r, _, _ := newTestResolver(weights, []Zone{zone})

	// 250 g sits on colissimo's max and chronopost's min; both must match.
	res, err := r.Resolve(context.Background(), []CartLine{{ProductID: 10, Quantity: 1}}, Destination{Country: "FR"})
	require.NoError(t, err)
	require.Len(t, res.Quotes, 2)
	assert.InDelta(t, 4.95, res.Quotes[0].Price, 1e-9)
	assert.InDelta(t, 9.90, res.Quotes[1].Price, 1e-9)
}

func TestResolveDedupCheapestPerCarrier(t *testing.T) {
	weights := map[int64]ProductWeight{10: {WeightKg: 0.3, Known: true}}
	zone := franceZone(
		RateBand{Carrier: colissimo, MinWeightGrams: 0, MaxWeightGrams: 1000, Price: 7.00},
		RateBand{Carrier: colissimo, MinWeightGrams: 0, MaxWeightGrams: 500, Price: 5.00},
	)
	r, _, _ := newTestResolver(weights, []Zone{zone})

	res, err := r.Resolve(context.Background(), []CartLine{{ProductID: 10, Quantity: 1}}, Destination{Country: "FR"})
	require.NoError(t, err)
	require.Len(t, res.Quotes, 1)
	assert.InDelta(t, 5.00, res.Quotes[0].Price, 1e-9)
}

func TestResolveInactiveCarrierExcluded(t *testing.T) {
	dead := Carrier{ID: 3, Code: "defunct", Name: "Defunct", Active: false}
	weights := map[int64]ProductWeight{10: {WeightKg: 0.3, Known: true}}
	zone := franceZone(
		RateBand{Carrier: dead, MinWeightGrams: 0, MaxWeightGrams: 1000, Price: 1.00},
		RateBand{Carrier: colissimo, MinWeightGrams: 0, MaxWeightGrams: 1000, Price: 7.00},
	)
	r, _, _ := newTestResolver(weights, []Zone{zone})

	res, err := r.Resolve(context.Background(), []CartLine{{ProductID: 10, Quantity: 1}}, Destination{Country: "FR"})
	require.NoError(t, err)
	require.Len(t, res.Quotes, 1)
	assert.Equal(t, "colissimo", res.Quotes[0].CarrierCode)
}

func TestResolveZoneContainment(t *testing.T) {
	weights := map[int64]ProductWeight{10: {WeightKg: 0.3, Known: true}}
	zone := Zone{ID: 1, Name: "Benelux", Countries: countrySet("BE", "NL", "LU"), Active: true,
		Bands: []RateBand{{Carrier: colissimo, MinWeightGrams: 0, MaxWeightGrams: 1000, Price: 8.00}}}
	inactive := Zone{ID: 2, Name: "Dormant", Countries: countrySet("JP"), Active: false,
		Bands: []RateBand{{Carrier: colissimo, MinWeightGrams: 0, MaxWeightGrams: 1000, Price: 1.00}}}
	r, _, _ := newTestResolver(weights, []Zone{zone, inactive})

	res, err := r.Resolve(context.Background(), []CartLine{{ProductID: 10, Quantity: 1}}, Destination{Country: "BE"})
	require.NoError(t, err)
	assert.Equal(t, "Benelux", res.ZoneName)
	require.Len(t, res.Quotes, 1)

	// JP only appears in an inactive zone and is not in the fallback list.
	res, err = r.Resolve(context.Background(), []CartLine{{ProductID: 10, Quantity: 1}}, Destination{Country: "JP"})
	require.NoError(t, err)
	assert.Empty(t, res.Quotes)
	assert.Empty(t, res.ZoneName)
}

func TestResolveOverlappingZonesLowestIDWins(t *testing.T) {
	weights := map[int64]ProductWeight{10: {WeightKg: 0.3, Known: true}}
	older := Zone{ID: 1, Name: "Europe", Countries: countrySet("BE"), Active: true,
		Bands: []RateBand{{Carrier: colissimo, MinWeightGrams: 0, MaxWeightGrams: 1000, Price: 8.00}}}
	newer := Zone{ID: 2, Name: "Benelux", Countries: countrySet("BE"), Active: true,
		Bands: []RateBand{{Carrier: chronopost, MinWeightGrams: 0, MaxWeightGrams: 1000, Price: 12.00}}}
	r, _, _ := newTestResolver(weights, []Zone{older, newer})

	res, err := r.Resolve(context.Background(), []CartLine{{ProductID: 10, Quantity: 1}}, Destination{Country: "BE"})
	require.NoError(t, err)
	assert.Equal(t, "Europe", res.ZoneName)
	require.Len(t, res.Quotes, 1)
	assert.Equal(t, "colissimo", res.Quotes[0].CarrierCode)
}

func TestResolveLowercaseCountryNormalized(t *testing.T) {
	weights := map[int64]ProductWeight{10: {WeightKg: 0.2, Known: true}}
	zone := franceZone(RateBand{Carrier: colissimo, MinWeightGrams: 0, MaxWeightGrams: 250, Price: 4.95})
	r, _, _ := newTestResolver(weights, []Zone{zone})

	res, err := r.Resolve(context.Background(), []CartLine{{ProductID: 10, Quantity: 1}}, Destination{Country: "fr"})
	require.NoError(t, err)
	require.Len(t, res.Quotes, 1)
}

func TestResolveZoneMatchedButNoBandFallsBack(t *testing.T) {
	// The zone covers FR but its only band stops at 100 g; the domestic
	// fallback ladder must take over.
	weights := map[int64]ProductWeight{10: {WeightKg: 1.5, Known: true}}
	zone := franceZone(RateBand{Carrier: chronopost, MinWeightGrams: 0, MaxWeightGrams: 100, Price: 9.00})
	r, _, _ := newTestResolver(weights, []Zone{zone})

	res, err := r.Resolve(context.Background(), []CartLine{{ProductID: 10, Quantity: 1}}, Destination{Country: "FR"})
	require.NoError(t, err)
	require.Len(t, res.Quotes, 1)
	assert.Equal(t, "colissimo", res.Quotes[0].CarrierCode)
	assert.InDelta(t, 8.55, res.Quotes[0].Price, 1e-9)
	assert.Empty(t, res.ZoneName, "fallback quotes must not advertise the unmatched zone")
}

func TestResolveIdempotent(t *testing.T) {
	weights := map[int64]ProductWeight{10: {WeightKg: 0.2, Known: true}, 11: {}}
	zone := franceZone(
		RateBand{Carrier: colissimo, MinWeightGrams: 0, MaxWeightGrams: 2000, Price: 6.50},
		RateBand{Carrier: chronopost, MinWeightGrams: 0, MaxWeightGrams: 2000, Price: 11.00},
	)
	r, _, _ := newTestResolver(weights, []Zone{zone})
	lines := []CartLine{{ProductID: 10, Quantity: 2}, {ProductID: 11, Quantity: 1}}

	first, err := r.Resolve(context.Background(), lines, Destination{Country: "FR"})
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), lines, Destination{Country: "FR"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveWeightStoreFailure(t *testing.T) {
	r, ws, _ := newTestResolver(nil, nil)
	ws.err = errors.New("catalog down")
	res, err := r.Resolve(context.Background(), []CartLine{{ProductID: 1, Quantity: 1}}, Destination{Country: "FR"})
	require.Error(t, err)
	assert.Empty(t, res.Quotes)
	assert.Zero(t, res.TotalWeightKg)
}

func TestResolveRateStoreFailureReportsWeight(t *testing.T) {
	weights := map[int64]ProductWeight{10: {WeightKg: 0.8, Known: true}}
	r, _, rs := newTestResolver(weights, nil)
	rs.err = errors.New("store down")
	res, err := r.Resolve(context.Background(), []CartLine{{ProductID: 10, Quantity: 1}}, Destination{Country: "FR"})
	require.Error(t, err)
	assert.Empty(t, res.Quotes)
	assert.InDelta(t, 0.8, res.TotalWeightKg, 1e-9)
}

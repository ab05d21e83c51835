package store

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"shiprates/internal/shipping"
)

// Postgres implements the resolver's read-only stores on top of the shop
// database. Zones, rates and carriers are owned by the back-office CRUD;
// this layer never writes.
type Postgres struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// ActiveZones loads every active zone with its rate bands and carriers in a
// single round trip, ordered by ascending zone id. The country list column
// is parsed here, once, so the resolver only ever sees a typed set; a zone
// whose list cannot be parsed matches nothing but does not fail the load.
func (p *Postgres) ActiveZones(ctx context.Context) ([]shipping.Zone, error) {
	rows, err := p.db.Query(ctx, `
		SELECT z.id, z.name, z.countries,
		       r.min_weight_grams, r.max_weight_grams, r.price,
		       c.id, c.code, c.name, c.is_active, c.logo_path
		FROM shipping_zones z
		LEFT JOIN shipping_rates r ON r.zone_id = z.id
		LEFT JOIN carriers c ON c.id = r.carrier_id
		WHERE z.is_active
		ORDER BY z.id, r.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []shipping.Zone
	index := make(map[int64]int)
	for rows.Next() {
		var (
			zoneID    int64
			zoneName  string
			countries string
			minG      *int
			maxG      *int
			price     *float64
			carrierID *int64
			code      *string
			name      *string
			active    *bool
			logo      *string
		)
		if err := rows.Scan(&zoneID, &zoneName, &countries,
			&minG, &maxG, &price,
			&carrierID, &code, &name, &active, &logo); err != nil {
			return nil, err
		}
		i, ok := index[zoneID]
		if !ok {
			set, perr := ParseCountryList(countries)
			if perr != nil {
				log.Printf("zone %d (%s): unparseable country list, zone will match nothing: %v", zoneID, zoneName, perr)
			}
			zones = append(zones, shipping.Zone{
				ID:        zoneID,
				Name:      zoneName,
				Countries: set,
				Active:    true,
			})
			i = len(zones) - 1
			index[zoneID] = i
		}
		// LEFT JOIN: a zone without rates yields one row of NULL bands.
		if minG == nil || maxG == nil || price == nil || carrierID == nil {
			continue
		}
		band := shipping.RateBand{
			MinWeightGrams: *minG,
			MaxWeightGrams: *maxG,
			Price:          *price,
			Carrier: shipping.Carrier{
				ID:     *carrierID,
				Code:   deref(code),
				Name:   deref(name),
				Active: active != nil && *active,
			},
		}
		if logo != nil {
			band.Carrier.LogoPath = *logo
		}
		zones[i].Bands = append(zones[i].Bands, band)
	}
	return zones, rows.Err()
}

// Weights fetches unit weights for a batch of product ids in one query.
// Products with no recorded weight come back with Known=false.
func (p *Postgres) Weights(ctx context.Context, ids []int64) (map[int64]shipping.ProductWeight, error) {
	out := make(map[int64]shipping.ProductWeight, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := p.db.Query(ctx, `
		SELECT id, weight_kg, width_cm, height_cm, depth_cm
		FROM products
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id     int64
			weight *float64
			width  *float64
			height *float64
			depth  *float64
		)
		if err := rows.Scan(&id, &weight, &width, &height, &depth); err != nil {
			return nil, err
		}
		w := shipping.ProductWeight{}
		if weight != nil {
			w.WeightKg = *weight
			w.Known = true
		}
		if width != nil {
			w.WidthCm = *width
		}
		if height != nil {
			w.HeightCm = *height
		}
		if depth != nil {
			w.DepthCm = *depth
		}
		out[id] = w
	}
	return out, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

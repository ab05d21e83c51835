package server

import (
	"encoding/json"
	"math"
	"strings"

	"shiprates/internal/shipping"
)

// normalizeCalculateRequest maps the storefront's calculate payload into
// cart lines and a destination. The endpoint is hit as the buyer types, so
// the parse is deliberately forgiving: unparseable JSON, a non-array items
// field, or a non-object destination all degrade to empty values, which the
// resolver treats as "not enough information yet".
//
// Two shapes are accepted:
//
//	{"items": [...], "destination": {"country": "FR", ...}}
//	{"items": [...], "country": "FR"}
func normalizeCalculateRequest(body []byte) ([]shipping.CartLine, shipping.Destination) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, shipping.Destination{}
	}

	var lines []shipping.CartLine
	if items, ok := payload["items"].([]any); ok {
		for _, raw := range items {
			item, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			id, ok := toInt(getAny(item, []string{"id", "product_id", "productId"}))
			if !ok || id <= 0 {
				continue
			}
			qty := 1
			if q, ok := toQuantity(getAny(item, []string{"quantity", "qty"})); ok {
				qty = q
			}
			if qty <= 0 {
				continue
			}
			lines = append(lines, shipping.CartLine{ProductID: id, Quantity: qty})
		}
	}

	dest := shipping.Destination{}
	if d, ok := payload["destination"].(map[string]any); ok {
		dest.Country = getString(d, []string{"country", "countryCode", "country_code"})
		dest.PostalCode = getString(d, []string{"postalCode", "postal_code", "zip"})
		dest.City = getString(d, []string{"city"})
	}
	if dest.Country == "" {
		// Bare shorthand used by the cart widget.
		dest.Country = getString(payload, []string{"country"})
	}
	return lines, dest
}

// getString returns the first non-empty string from the candidate keys.
func getString(m map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// getAny returns the first non-nil value from the candidate keys.
func getAny(m map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// toInt coerces the loosely typed values JSON decoding produces. Strings are
// accepted because some storefront forms post numeric fields as text.
// Non-integral numbers are rejected: a fractional product id identifies
// nothing.
func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case string:
		var n json.Number = json.Number(strings.TrimSpace(t))
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

// toQuantity coerces a cart quantity. Fractional values round up rather than
// truncate so a sloppy client can never under-count shippable weight.
func toQuantity(v any) (int, bool) {
	if i, ok := toInt(v); ok {
		return int(i), true
	}
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		var n json.Number = json.Number(strings.TrimSpace(t))
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	return int(math.Ceil(f)), true
}

package shipping

import "strings"

// Delivery-day classes by carrier code. The estimate is code-driven, not
// stored per band: express services deliver next day, tracked standard in
// two days, anything unrecognized gets a conservative four.
const (
	deliveryDaysExpress  = 1
	deliveryDaysTracked  = 2
	deliveryDaysStandard = 4
)

var expressCodes = map[string]struct{}{
	"chronopost":  {},
	"chrono13":    {},
	"dhl":         {},
	"ups_express": {},
}

var trackedCodes = map[string]struct{}{
	"colissimo":      {},
	"colissimo_intl": {},
	"mondial_relay":  {},
	"ups":            {},
}

// DeliveryDays estimates transit time for a carrier code.
func DeliveryDays(carrierCode string) int {
	code := strings.ToLower(strings.TrimSpace(carrierCode))
	if _, ok := expressCodes[code]; ok {
		return deliveryDaysExpress
	}
	if _, ok := trackedCodes[code]; ok {
		return deliveryDaysTracked
	}
	return deliveryDaysStandard
}

package shipping

import "math"

// DefaultUnitWeightKg is assumed for any product the catalog has no weight
// for. An unweighted item must never make shipping free.
const DefaultUnitWeightKg = 0.5

// TotalWeightKg sums the shippable weight of the cart. Unknown unit weights
// degrade to DefaultUnitWeightKg rather than failing the calculation.
func TotalWeightKg(lines []CartLine, weights map[int64]ProductWeight) float64 {
	var total float64
	for _, line := range lines {
		unit := DefaultUnitWeightKg
		if w, ok := weights[line.ProductID]; ok && w.Known && w.WeightKg > 0 {
			unit = w.WeightKg
		}
		total += unit * float64(line.Quantity)
	}
	return total
}

// Grams converts a weight in kilograms to integer grams, rounding up.
// Rate bands are defined on gram boundaries; rounding down could select a
// cheaper band than the physical weight justifies.
func Grams(kg float64) int {
	return int(math.Ceil(kg * 1000))
}

package utils

import (
	"fmt"
	"math"
)

const binaryUnitStep = 1024.0

var binaryUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}

// FormatBinarySize converts a byte count into a 1024-based unit string with one decimal place.
// The last unit is used once the list is exhausted, whatever the remaining magnitude.
func FormatBinarySize(bytes int64) string {
	value := float64(bytes)
	unitIndex := 0
	for math.Abs(value) >= binaryUnitStep && unitIndex < len(binaryUnits)-1 {
		value /= binaryUnitStep
		unitIndex++
	}
	return fmt.Sprintf("%.1f%s", value, binaryUnits[unitIndex])
}

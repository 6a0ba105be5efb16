package wellness

import (
	"fmt"
	"math"

	"github.com/julianstephens/wellness/internal/constants"
)

// QuickAmount returns the nth one-tap hydration amount, counting from 1
func QuickAmount(n int) (int, error) {
	if n < 1 || n > len(constants.QuickAmountsML) {
		return 0, fmt.Errorf("quick amount must be between 1 and %d", len(constants.QuickAmountsML))
	}
	return constants.QuickAmountsML[n-1], nil
}

// ClampCustomAmount rounds ml to the nearest step and keeps it inside the
// custom amount range.
func ClampCustomAmount(ml int) int {
	step := float64(constants.CustomAmountStepML)
	rounded := int(math.Round(float64(ml)/step) * step)
	return max(constants.MinCustomAmountML, min(constants.MaxCustomAmountML, rounded))
}

package report

import "github.com/dd0wney/liquigraph/pkg/sim"

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// maxSparkWidth keeps long runs readable on one terminal line.
const maxSparkWidth = 60

// DynamicsSparkline renders per-round payment rates as a sparkline on an
// absolute 0..1 scale, so lines from different runs compare directly.
// Runs longer than 60 rounds are bucketed down to 60 cells.
func DynamicsSparkline(history []sim.RoundResult) string {
	values := make([]float64, len(history))
	for i, rr := range history {
		values[i] = rr.PaymentRate()
	}
	return sparkline(values, maxSparkWidth)
}

func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	if width <= 0 || width > len(values) {
		width = len(values)
	}

	cells := make([]float64, width)
	if width == len(values) {
		copy(cells, values)
	} else {
		// Average each bucket of rounds into one cell.
		per := float64(len(values)) / float64(width)
		for i := range cells {
			lo := int(float64(i) * per)
			hi := int(float64(i+1) * per)
			if hi <= lo {
				hi = lo + 1
			}
			if hi > len(values) {
				hi = len(values)
			}
			var sum float64
			for _, v := range values[lo:hi] {
				sum += v
			}
			cells[i] = sum / float64(hi-lo)
		}
	}

	runes := make([]rune, width)
	for i, v := range cells {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		idx := int(v * float64(len(sparkRunes)))
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		runes[i] = sparkRunes[idx]
	}
	return string(runes)
}

package report

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatBRL renders v as Brazilian reais, e.g. "R$ 31.500,00".
func FormatBRL(v float64) string {
	if v < 0 {
		return "-R$ " + humanize.FormatFloat("#.###,##", -v)
	}
	return "R$ " + humanize.FormatFloat("#.###,##", v)
}

// GrowthPct returns the relative change from prev to cur in percent, rounded
// to one decimal. A prev below 1 is treated as 1.
func GrowthPct(cur, prev float64) float64 {
	pct := math.Round((cur-prev)/math.Max(prev, 1)*1000) / 10
	if pct == 0 {
		return 0 // drop negative zero
	}
	return pct
}

// FormatGrowth renders a growth percentage with one decimal and a leading
// "+" when positive.
func FormatGrowth(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', 1, 64)
	if pct > 0 {
		return "+" + s
	}
	return s
}

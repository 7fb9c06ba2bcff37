package cycle

import "math"

// Clinically normal ranges used for regularity scoring.
const (
	NormalCycleMin  = 21
	NormalCycleMax  = 35
	NormalPeriodMin = 3
	NormalPeriodMax = 7
)

// CycleLengths returns the day gaps between chronologically adjacent period
// starts. Fewer than two records yield an empty slice; this is the canonical
// definition of one cycle used everywhere else in the package.
func CycleLengths(history []PeriodRecord) []int {
	if len(history) < 2 {
		return nil
	}
	sorted := sortedByStart(history)
	lengths := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		lengths = append(lengths, daysBetween(sorted[i-1].StartDate, sorted[i].StartDate))
	}
	return lengths
}

// Averages computes the round-half-up mean cycle and period lengths.
// okCycle is false below two records, okPeriod below one; the corresponding
// value is zero and callers keep their previous setting.
func Averages(history []PeriodRecord) (cycleLen, periodLen int, okCycle, okPeriod bool) {
	if lengths := CycleLengths(history); len(lengths) > 0 {
		sum := 0
		for _, l := range lengths {
			sum += l
		}
		cycleLen = roundHalfUp(float64(sum) / float64(len(lengths)))
		okCycle = true
	}
	if len(history) > 0 {
		sum := 0
		for _, r := range history {
			sum += r.DurationDays
		}
		periodLen = roundHalfUp(float64(sum) / float64(len(history)))
		okPeriod = true
	}
	return cycleLen, periodLen, okCycle, okPeriod
}

// CycleRegularityScore is the percentage of cycle lengths inside the normal
// 21-35 day band, 0 when fewer than two records exist.
func CycleRegularityScore(history []PeriodRecord) int {
	lengths := CycleLengths(history)
	if len(lengths) == 0 {
		return 0
	}
	normal := 0
	for _, l := range lengths {
		if l >= NormalCycleMin && l <= NormalCycleMax {
			normal++
		}
	}
	return roundHalfUp(float64(normal) / float64(len(lengths)) * 100)
}

// PeriodDurationRegularityScore is the percentage of period durations inside
// the normal 3-7 day band, 0 on empty history.
func PeriodDurationRegularityScore(history []PeriodRecord) int {
	if len(history) == 0 {
		return 0
	}
	normal := 0
	for _, r := range history {
		if r.DurationDays >= NormalPeriodMin && r.DurationDays <= NormalPeriodMax {
			normal++
		}
	}
	return roundHalfUp(float64(normal) / float64(len(history)) * 100)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

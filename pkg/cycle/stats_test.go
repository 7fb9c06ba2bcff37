package cycle

import (
	"testing"
	"time"
)

func TestCycleLengths(t *testing.T) {
	history := []PeriodRecord{
		{StartDate: date(2024, time.July, 8), DurationDays: 5},
		{StartDate: date(2024, time.June, 10), DurationDays: 5},
		{StartDate: date(2024, time.August, 6), DurationDays: 4},
	}

	lengths := CycleLengths(history)
	if len(lengths) != len(history)-1 {
		t.Fatalf("expected %d lengths, got %d", len(history)-1, len(lengths))
	}
	if lengths[0] != 28 || lengths[1] != 29 {
		t.Errorf("expected [28 29], got %v", lengths)
	}
}

func TestCycleLengthsRequiresTwoRecords(t *testing.T) {
	if lengths := CycleLengths(nil); len(lengths) != 0 {
		t.Errorf("expected empty lengths for nil history, got %v", lengths)
	}
	one := []PeriodRecord{{StartDate: date(2024, time.June, 10), DurationDays: 5}}
	if lengths := CycleLengths(one); len(lengths) != 0 {
		t.Errorf("expected empty lengths for single record, got %v", lengths)
	}
}

func TestAverages(t *testing.T) {
	history := []PeriodRecord{
		{StartDate: date(2024, time.June, 10), DurationDays: 5},
		{StartDate: date(2024, time.July, 8), DurationDays: 5},
	}

	cycleLen, periodLen, okCycle, okPeriod := Averages(history)
	if !okCycle || !okPeriod {
		t.Fatalf("expected both averages available, got okCycle=%v okPeriod=%v", okCycle, okPeriod)
	}
	if cycleLen != 28 {
		t.Errorf("expected average cycle length 28, got %d", cycleLen)
	}
	if periodLen != 5 {
		t.Errorf("expected average period length 5, got %d", periodLen)
	}
}

func TestAveragesRoundHalfUp(t *testing.T) {
	// Gaps of 28 and 29 days mean 28.5, which must round up to 29.
	history := []PeriodRecord{
		{StartDate: date(2024, time.June, 10), DurationDays: 4},
		{StartDate: date(2024, time.July, 8), DurationDays: 5},
		{StartDate: date(2024, time.August, 6), DurationDays: 5},
	}

	cycleLen, periodLen, _, _ := Averages(history)
	if cycleLen != 29 {
		t.Errorf("expected cycle average 29 from mean 28.5, got %d", cycleLen)
	}
	// Durations 4,5,5 mean 4.67 -> 5.
	if periodLen != 5 {
		t.Errorf("expected period average 5, got %d", periodLen)
	}
}

func TestAveragesWithSparseHistory(t *testing.T) {
	cycleLen, periodLen, okCycle, okPeriod := Averages(nil)
	if okCycle || okPeriod || cycleLen != 0 || periodLen != 0 {
		t.Errorf("expected zero averages for empty history, got %d/%d %v/%v", cycleLen, periodLen, okCycle, okPeriod)
	}

	one := []PeriodRecord{{StartDate: date(2024, time.June, 10), DurationDays: 6}}
	cycleLen, periodLen, okCycle, okPeriod = Averages(one)
	if okCycle {
		t.Error("expected no cycle average for single record")
	}
	if !okPeriod || periodLen != 6 {
		t.Errorf("expected period average 6, got %d (ok=%v)", periodLen, okPeriod)
	}
	_ = cycleLen
}

func TestCycleRegularityScore(t *testing.T) {
	tests := []struct {
		name   string
		starts []time.Time
		want   int
	}{
		{"no records", nil, 0},
		{
			"all normal",
			[]time.Time{date(2024, time.May, 1), date(2024, time.May, 29), date(2024, time.June, 26)},
			100,
		},
		{
			"one long cycle of three",
			[]time.Time{date(2024, time.January, 1), date(2024, time.January, 29), date(2024, time.February, 26), date(2024, time.April, 10)},
			67,
		},
		{
			"all out of range",
			[]time.Time{date(2024, time.January, 1), date(2024, time.March, 1)},
			0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var history []PeriodRecord
			for _, s := range tc.starts {
				history = append(history, PeriodRecord{StartDate: s, DurationDays: 5})
			}
			if got := CycleRegularityScore(history); got != tc.want {
				t.Errorf("CycleRegularityScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPeriodDurationRegularityScore(t *testing.T) {
	tests := []struct {
		name      string
		durations []int
		want      int
	}{
		{"empty", nil, 0},
		{"all normal", []int{3, 5, 7}, 100},
		{"half normal", []int{2, 5, 9, 4}, 50},
		{"none normal", []int{1, 2}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var history []PeriodRecord
			for i, d := range tc.durations {
				history = append(history, PeriodRecord{
					StartDate:    date(2024, time.January, 1).AddDate(0, 0, i*28),
					DurationDays: d,
				})
			}
			if got := PeriodDurationRegularityScore(history); got != tc.want {
				t.Errorf("PeriodDurationRegularityScore = %d, want %d", got, tc.want)
			}
		})
	}
}

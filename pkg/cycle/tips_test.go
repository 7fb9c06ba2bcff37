package cycle

import (
	"strings"
	"testing"
)

func TestDailyTipPriorities(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{
			"no data",
			Snapshot{},
			"Track your period",
		},
		{
			"period day one",
			Snapshot{HasData: true, OnPeriod: true, PeriodDay: 1, PeriodLength: 5},
			"started today",
		},
		{
			"period last day",
			Snapshot{HasData: true, OnPeriod: true, PeriodDay: 5, PeriodLength: 5},
			"Last day",
		},
		{
			"period first half",
			Snapshot{HasData: true, OnPeriod: true, PeriodDay: 2, PeriodLength: 5},
			"Rest, iron-rich food",
		},
		{
			"period second half",
			Snapshot{HasData: true, OnPeriod: true, PeriodDay: 4, PeriodLength: 6},
			"heaviest days",
		},
		{
			"fertile window",
			Snapshot{HasData: true, Fertility: FertilityHigh, DaysUntilNextPeriod: 14, DaysUntilOvulation: 1},
			"fertile window",
		},
		{
			"approaching period",
			Snapshot{HasData: true, Fertility: FertilityLow, DaysUntilNextPeriod: 3, DaysUntilOvulation: -11},
			"coming soon",
		},
		{
			"approaching ovulation",
			Snapshot{HasData: true, Fertility: FertilityMedium, DaysUntilNextPeriod: 18, DaysUntilOvulation: 4},
			"Ovulation is approaching",
		},
		{
			"follicular",
			Snapshot{HasData: true, Fertility: FertilityLow, DaysUntilNextPeriod: 20, DaysUntilOvulation: 6},
			"follicular phase",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DailyTip(tc.snap)
			if !strings.Contains(got, tc.want) {
				t.Errorf("DailyTip = %q, want it to contain %q", got, tc.want)
			}
		})
	}
}

func TestDailyTipOnPeriodBeatsFertileWindow(t *testing.T) {
	snap := Snapshot{
		HasData:      true,
		OnPeriod:     true,
		PeriodDay:    2,
		PeriodLength: 5,
		Fertility:    FertilityHigh,
	}
	if got := DailyTip(snap); !strings.Contains(got, "period") {
		t.Errorf("on-period tip must win over window tips, got %q", got)
	}
}

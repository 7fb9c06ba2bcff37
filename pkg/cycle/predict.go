package cycle

import "time"

// Default settings applied until enough history exists to compute averages.
const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

// Ovulation is assumed a fixed luteal phase before the next period start.
const lutealPhaseDays = 14

// Settings holds the per-user averages that drive predictions.
type Settings struct {
	AverageCycleLength  int
	AveragePeriodLength int
}

func DefaultSettings() Settings {
	return Settings{
		AverageCycleLength:  DefaultCycleLength,
		AveragePeriodLength: DefaultPeriodLength,
	}
}

// Fertility describes how close today is to predicted ovulation.
type Fertility string

const (
	FertilityHigh   Fertility = "High"
	FertilityMedium Fertility = "Medium"
	FertilityLow    Fertility = "Low"
)

// Snapshot is the derived "today" view of a user's cycle. When HasData is
// false every other field is zero.
type Snapshot struct {
	HasData bool

	// CurrentCycleDay counts from the most recent period start, 1-based.
	CurrentCycleDay int

	// DaysUntilNextPeriod is clamped to zero once the projection is overdue.
	DaysUntilNextPeriod int

	// DaysUntilOvulation is signed; negative means ovulation has passed.
	DaysUntilOvulation int

	Fertility Fertility

	OnPeriod              bool
	PeriodDay             int
	PeriodLength          int
	PeriodProgressPercent int
}

// ComputeSnapshot derives the current cycle state from history and settings.
// today may carry a time component; only its calendar date is used.
func ComputeSnapshot(history []PeriodRecord, settings Settings, today time.Time) Snapshot {
	last, ok := Latest(history)
	if !ok {
		return Snapshot{}
	}

	today = Date(today)
	lastStart := Date(last.StartDate)

	nextPeriodStart := lastStart.AddDate(0, 0, settings.AverageCycleLength)
	daysUntilNext := daysBetween(today, nextPeriodStart)
	if daysUntilNext < 0 {
		daysUntilNext = 0
	}

	ovulationDate := nextPeriodStart.AddDate(0, 0, -lutealPhaseDays)
	daysUntilOvulation := daysBetween(today, ovulationDate)

	snap := Snapshot{
		HasData:             true,
		CurrentCycleDay:     daysBetween(lastStart, today) + 1,
		DaysUntilNextPeriod: daysUntilNext,
		DaysUntilOvulation:  daysUntilOvulation,
		Fertility:           fertilityFor(daysUntilOvulation),
		PeriodLength:        last.DurationDays,
	}

	periodEnd := Date(last.EndDate())
	if !today.Before(lastStart) && !today.After(periodEnd) {
		snap.OnPeriod = true
		snap.PeriodDay = daysBetween(lastStart, today) + 1
		progress := roundHalfUp(float64(snap.PeriodDay) / float64(last.DurationDays) * 100)
		if progress > 100 {
			progress = 100
		}
		snap.PeriodProgressPercent = progress
	}
	return snap
}

func fertilityFor(daysUntilOvulation int) Fertility {
	switch {
	case daysUntilOvulation >= -2 && daysUntilOvulation <= 2:
		return FertilityHigh
	case daysUntilOvulation >= -5 && daysUntilOvulation <= 5:
		return FertilityMedium
	default:
		return FertilityLow
	}
}

// PredictedPeriodStarts projects count future period start dates, each a full
// average cycle apart, beginning one cycle after the last recorded start.
func PredictedPeriodStarts(history []PeriodRecord, settings Settings, count int) []time.Time {
	last, ok := Latest(history)
	if !ok || count <= 0 {
		return nil
	}
	starts := make([]time.Time, 0, count)
	for i := 1; i <= count; i++ {
		starts = append(starts, Date(last.StartDate).AddDate(0, 0, settings.AverageCycleLength*i))
	}
	return starts
}

// PredictedOvulationDates projects ovulation for each predicted period start.
func PredictedOvulationDates(history []PeriodRecord, settings Settings, count int) []time.Time {
	starts := PredictedPeriodStarts(history, settings, count)
	dates := make([]time.Time, 0, len(starts))
	for _, s := range starts {
		dates = append(dates, s.AddDate(0, 0, -lutealPhaseDays))
	}
	return dates
}

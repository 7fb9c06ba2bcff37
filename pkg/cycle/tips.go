package cycle

// DailyTip picks a short wellbeing message for the snapshot. On-period states
// win over window states, mirroring how the statistics screen prioritizes them.
func DailyTip(snap Snapshot) string {
	if !snap.HasData {
		return "Track your period to get personalized tips and predictions."
	}

	if snap.OnPeriod {
		switch {
		case snap.PeriodDay == 1:
			return "Your period started today. Stay hydrated, keep warm, and take it easy."
		case snap.PeriodDay >= snap.PeriodLength:
			return "Last day of your period. Energy levels usually start climbing from here."
		case snap.PeriodDay*2 <= snap.PeriodLength:
			return "You're on your period. Rest, iron-rich food, and warmth all help right now."
		default:
			return "The heaviest days are usually behind you. Gentle movement can ease cramps."
		}
	}

	if snap.Fertility == FertilityHigh {
		return "You're in your fertile window. This is the best time to conceive if you're trying."
	}

	if snap.DaysUntilNextPeriod <= 5 {
		return "Your period is coming soon. You might notice PMS symptoms like bloating or mood changes."
	}

	if snap.Fertility == FertilityMedium && snap.DaysUntilOvulation > 0 {
		return "Ovulation is approaching. Some people notice more energy around this time."
	}

	return "You're in the follicular phase. A good window for exercise and focused work."
}

package scheduling

// NextStatus derives the lifecycle state from the counters after they were updated for outcome.
// Rules are checked in order: AGAIN, mastery, archival, otherwise active.
func (p Profile) NextStatus(outcome Outcome, repetitions, intervalDays, correctReviews, totalReviews int) Status {
	if outcome == OutcomeAgain {
		return StatusPending
	}

	acc, reviewed := accuracy(correctReviews, totalReviews)
	if reviewed &&
		repetitions >= p.MasteryRepetitions &&
		intervalDays >= p.MasteryIntervalDays &&
		acc >= p.MasteryAccuracy {
		return StatusMastered
	}
	if reviewed &&
		totalReviews >= p.ArchiveReviewThreshold &&
		acc < p.ArchiveAccuracy {
		return StatusArchived
	}
	return StatusActive
}

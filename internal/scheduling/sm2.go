package scheduling

import "math"

// NextInterval computes the next interval in days and the next ease factor for an outcome.
// Out-of-range inputs are clamped first, and both results are always within bounds.
// The caller owns the repetition counter: it resets to 0 on AGAIN.
func (p Profile) NextInterval(interval int, ease float64, repetitions int, outcome Outcome) (int, float64) {
	interval = max(interval, 1)
	repetitions = max(repetitions, 0)
	ease = p.clampEase(ease)

	newInterval := interval
	newEase := ease

	switch outcome {
	case OutcomeAgain:
		newEase = ease - p.EaseStepAgain
		newInterval = int(math.Floor(float64(interval) * p.AgainMultiplier))

	case OutcomeHard:
		newEase = ease - p.EaseStepHard
		newInterval = int(math.Floor(float64(interval) * p.HardMultiplier))

	case OutcomeGood:
		switch repetitions {
		case 0:
			newInterval = p.FirstGoodInterval
		case 1:
			newInterval = p.SecondGoodInterval
		default:
			newInterval = int(math.Round(float64(interval) * ease))
		}

	case OutcomeEasy:
		newEase = ease + p.EaseStepEasy
		if repetitions == 0 {
			newInterval = p.FirstEasyInterval
		} else {
			newInterval = int(math.Round(float64(interval) * ease * p.EasyBonus))
		}
	}

	return max(newInterval, 1), p.clampEase(newEase)
}

func (p Profile) clampEase(ease float64) float64 {
	if math.IsNaN(ease) {
		return p.InitialEase
	}
	return math.Min(p.MaxEase, math.Max(p.MinEase, ease))
}

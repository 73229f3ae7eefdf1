package scheduling

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_NextInterval(t *testing.T) {
	tests := []struct {
		name         string
		interval     int
		ease         float64
		repetitions  int
		outcome      Outcome
		wantInterval int
		wantEase     float64
	}{
		{
			name:         "good on a mature item multiplies by ease",
			interval:     6,
			ease:         2.5,
			repetitions:  2,
			outcome:      OutcomeGood,
			wantInterval: 15,
			wantEase:     2.5,
		},
		{
			name:         "first good review",
			interval:     1,
			ease:         2.5,
			repetitions:  0,
			outcome:      OutcomeGood,
			wantInterval: 1,
			wantEase:     2.5,
		},
		{
			name:         "second good review jumps to six days",
			interval:     1,
			ease:         2.5,
			repetitions:  1,
			outcome:      OutcomeGood,
			wantInterval: 6,
			wantEase:     2.5,
		},
		{
			name:         "again collapses a short interval to one day",
			interval:     6,
			ease:         2.5,
			repetitions:  2,
			outcome:      OutcomeAgain,
			wantInterval: 1,
			wantEase:     2.3,
		},
		{
			name:         "again keeps a fifth of a long interval",
			interval:     35,
			ease:         2.5,
			repetitions:  6,
			outcome:      OutcomeAgain,
			wantInterval: 7,
			wantEase:     2.3,
		},
		{
			name:         "hard shrinks the interval",
			interval:     7,
			ease:         2.5,
			repetitions:  3,
			outcome:      OutcomeHard,
			wantInterval: 4,
			wantEase:     2.35,
		},
		{
			name:         "hard on a one day interval stays at one",
			interval:     1,
			ease:         2.5,
			repetitions:  0,
			outcome:      OutcomeHard,
			wantInterval: 1,
			wantEase:     2.35,
		},
		{
			name:         "first easy review",
			interval:     1,
			ease:         2.5,
			repetitions:  0,
			outcome:      OutcomeEasy,
			wantInterval: 4,
			wantEase:     2.65,
		},
		{
			name:         "easy applies the bonus",
			interval:     4,
			ease:         2.5,
			repetitions:  2,
			outcome:      OutcomeEasy,
			wantInterval: 13,
			wantEase:     2.65,
		},
		{
			name:         "easy is capped at max ease",
			interval:     1,
			ease:         2.95,
			repetitions:  0,
			outcome:      OutcomeEasy,
			wantInterval: 4,
			wantEase:     3.0,
		},
		{
			name:         "again is floored at min ease",
			interval:     1,
			ease:         1.3,
			repetitions:  0,
			outcome:      OutcomeAgain,
			wantInterval: 1,
			wantEase:     1.3,
		},
		{
			name:         "corrupt ease above max is clamped before use",
			interval:     10,
			ease:         5.0,
			repetitions:  2,
			outcome:      OutcomeGood,
			wantInterval: 30,
			wantEase:     3.0,
		},
		{
			name:         "corrupt ease below min is clamped before use",
			interval:     10,
			ease:         0.5,
			repetitions:  2,
			outcome:      OutcomeGood,
			wantInterval: 13,
			wantEase:     1.3,
		},
		{
			name:         "zero interval is treated as one day",
			interval:     0,
			ease:         2.5,
			repetitions:  2,
			outcome:      OutcomeGood,
			wantInterval: 3,
			wantEase:     2.5,
		},
		{
			name:         "negative repetitions are treated as zero",
			interval:     3,
			ease:         2.5,
			repetitions:  -4,
			outcome:      OutcomeGood,
			wantInterval: 1,
			wantEase:     2.5,
		},
		{
			name:         "NaN ease falls back to the initial ease",
			interval:     2,
			ease:         math.NaN(),
			repetitions:  2,
			outcome:      OutcomeGood,
			wantInterval: 5,
			wantEase:     2.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotInterval, gotEase := StandardProfile.NextInterval(tt.interval, tt.ease, tt.repetitions, tt.outcome)
			assert.Equal(t, tt.wantInterval, gotInterval)
			assert.InDelta(t, tt.wantEase, gotEase, 1e-9)
		})
	}
}

func TestProfile_NextInterval_AgainResetsShortIntervals(t *testing.T) {
	for interval := 1; interval < 10; interval++ {
		for _, ease := range []float64{1.3, 1.45, 2.0, 2.5, 3.0} {
			gotInterval, gotEase := StandardProfile.NextInterval(interval, ease, 3, OutcomeAgain)
			assert.Equal(t, 1, gotInterval, "interval %d ease %v", interval, ease)
			assert.InDelta(t, math.Max(StandardProfile.MinEase, ease-0.2), gotEase, 1e-9)
		}
	}
}

func TestProfile_NextInterval_EaseStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, name := range BuiltinProfileNames() {
		profile, _ := BuiltinProfile(name)
		t.Run(name, func(t *testing.T) {
			for run := 0; run < 200; run++ {
				interval, ease, repetitions := 1, profile.InitialEase, 0
				for step := 0; step < 40; step++ {
					outcome := Outcomes[rng.Intn(len(Outcomes))]
					interval, ease = profile.NextInterval(interval, ease, repetitions, outcome)
					if outcome == OutcomeAgain {
						repetitions = 0
					} else {
						repetitions++
					}

					assert.GreaterOrEqual(t, ease, profile.MinEase)
					assert.LessOrEqual(t, ease, profile.MaxEase)
					assert.GreaterOrEqual(t, interval, 1)
				}
			}
		})
	}
}

func TestProfile_NextInterval_RepeatedGoodIsNonDecreasing(t *testing.T) {
	for _, ease := range []float64{1.3, 1.7, 2.0, 2.5, 3.0} {
		interval := 1
		var intervals []int
		for repetitions := 0; repetitions < 12; repetitions++ {
			interval, ease = StandardProfile.NextInterval(interval, ease, repetitions, OutcomeGood)
			intervals = append(intervals, interval)
		}

		for i := 2; i < len(intervals); i++ {
			assert.GreaterOrEqual(t, intervals[i], intervals[i-1], "ease %v intervals %v", ease, intervals)
		}
	}
}

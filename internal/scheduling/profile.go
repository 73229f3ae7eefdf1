package scheduling

import "sort"

const (
	ProfileStandard = "standard"
	ProfileExamCram = "exam-cram"
	ProfileMedical  = "medical"
)

// Profile holds every tunable constant of the scheduler. One profile is active per deployment.
type Profile struct {
	InitialEase float64 `mapstructure:"initial_ease" yaml:"initial_ease" validate:"gtefield=MinEase,ltefield=MaxEase"`
	MinEase     float64 `mapstructure:"min_ease" yaml:"min_ease" validate:"gte=1"`
	MaxEase     float64 `mapstructure:"max_ease" yaml:"max_ease" validate:"gtfield=MinEase"`

	EaseStepAgain float64 `mapstructure:"ease_step_again" yaml:"ease_step_again" validate:"gte=0"`
	EaseStepHard  float64 `mapstructure:"ease_step_hard" yaml:"ease_step_hard" validate:"gte=0"`
	EaseStepEasy  float64 `mapstructure:"ease_step_easy" yaml:"ease_step_easy" validate:"gte=0"`

	AgainMultiplier float64 `mapstructure:"again_multiplier" yaml:"again_multiplier" validate:"gte=0,lte=1"`
	HardMultiplier  float64 `mapstructure:"hard_multiplier" yaml:"hard_multiplier" validate:"gt=0,lte=1"`
	EasyBonus       float64 `mapstructure:"easy_bonus" yaml:"easy_bonus" validate:"gte=1"`

	FirstGoodInterval  int `mapstructure:"first_good_interval" yaml:"first_good_interval" validate:"gte=1"`
	SecondGoodInterval int `mapstructure:"second_good_interval" yaml:"second_good_interval" validate:"gte=1"`
	FirstEasyInterval  int `mapstructure:"first_easy_interval" yaml:"first_easy_interval" validate:"gte=1"`

	MasteryRepetitions  int     `mapstructure:"mastery_repetitions" yaml:"mastery_repetitions" validate:"gte=1"`
	MasteryIntervalDays int     `mapstructure:"mastery_interval_days" yaml:"mastery_interval_days" validate:"gte=1"`
	MasteryAccuracy     float64 `mapstructure:"mastery_accuracy" yaml:"mastery_accuracy" validate:"gt=0,lte=1"`

	ArchiveReviewThreshold int     `mapstructure:"archive_review_threshold" yaml:"archive_review_threshold" validate:"gte=1"`
	ArchiveAccuracy        float64 `mapstructure:"archive_accuracy" yaml:"archive_accuracy" validate:"gte=0,lte=1"`
}

// StandardProfile is the canonical SM-2 variant.
var StandardProfile = Profile{
	InitialEase:            2.5,
	MinEase:                1.3,
	MaxEase:                3.0,
	EaseStepAgain:          0.2,
	EaseStepHard:           0.15,
	EaseStepEasy:           0.15,
	AgainMultiplier:        0.2,
	HardMultiplier:         0.6,
	EasyBonus:              1.3,
	FirstGoodInterval:      1,
	SecondGoodInterval:     6,
	FirstEasyInterval:      4,
	MasteryRepetitions:     5,
	MasteryIntervalDays:    30,
	MasteryAccuracy:        0.8,
	ArchiveReviewThreshold: 10,
	ArchiveAccuracy:        0.3,
}

// ExamCramProfile keeps intervals short and graduates items quickly.
var ExamCramProfile = Profile{
	InitialEase:            2.0,
	MinEase:                1.5,
	MaxEase:                2.5,
	EaseStepAgain:          0.2,
	EaseStepHard:           0.15,
	EaseStepEasy:           0.05,
	AgainMultiplier:        0.3,
	HardMultiplier:         0.7,
	EasyBonus:              1.2,
	FirstGoodInterval:      1,
	SecondGoodInterval:     1,
	FirstEasyInterval:      2,
	MasteryRepetitions:     3,
	MasteryIntervalDays:    7,
	MasteryAccuracy:        0.8,
	ArchiveReviewThreshold: 10,
	ArchiveAccuracy:        0.3,
}

// MedicalProfile is more conservative and requires longer retention before mastery.
var MedicalProfile = Profile{
	InitialEase:            2.3,
	MinEase:                1.2,
	MaxEase:                2.8,
	EaseStepAgain:          0.2,
	EaseStepHard:           0.15,
	EaseStepEasy:           0.08,
	AgainMultiplier:        0.15,
	HardMultiplier:         0.5,
	EasyBonus:              1.25,
	FirstGoodInterval:      1,
	SecondGoodInterval:     4,
	FirstEasyInterval:      4,
	MasteryRepetitions:     6,
	MasteryIntervalDays:    45,
	MasteryAccuracy:        0.8,
	ArchiveReviewThreshold: 10,
	ArchiveAccuracy:        0.3,
}

var builtinProfiles = map[string]Profile{
	ProfileStandard: StandardProfile,
	ProfileExamCram: ExamCramProfile,
	ProfileMedical:  MedicalProfile,
}

// BuiltinProfile returns the named built-in profile.
func BuiltinProfile(name string) (Profile, bool) {
	p, ok := builtinProfiles[name]
	return p, ok
}

// BuiltinProfileNames returns the names of the built-in profiles in sorted order.
func BuiltinProfileNames() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

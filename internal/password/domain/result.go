package domain

const (
	MinScore = 0
	MaxScore = 5
)

// GenerationResult is produced by the remote service only.
type GenerationResult struct {
	Password      string
	StrengthScore int
}

type Feedback struct {
	Warning     string   `json:"warning"`
	Suggestions []string `json:"suggestions"`
}

// CheckResult is the assessment returned for a checked password.
type CheckResult struct {
	Score           int      `json:"score"`
	Feedback        Feedback `json:"feedback"`
	TimeToCrack     string   `json:"time_to_crack"`
	HasBeenBreached bool     `json:"has_been_breached"`
}

// ValidScore reports whether s lies in the 0..5 strength range.
func ValidScore(s int) bool {
	return s >= MinScore && s <= MaxScore
}

var strengthLabels = [...]string{
	"Very Weak",
	"Weak",
	"Fair",
	"Good",
	"Strong",
	"Very Strong",
}

// StrengthLabel names a score. Anything above the range reads as the
// strongest label and anything below as the weakest.
func StrengthLabel(score int) string {
	switch {
	case score <= MinScore:
		return strengthLabels[0]
	case score >= MaxScore:
		return strengthLabels[MaxScore]
	default:
		return strengthLabels[score]
	}
}

// Package scoring holds the fixed point rule applied to every prediction.
package scoring

// Point values. They are policy, not configuration.
const (
	ExactPoints   = 3
	OutcomePoints = 1
	MissPoints    = 0
)

// Predictions and results are bounded to this many goals per side.
const (
	MinGoals = 0
	MaxGoals = 20
)

// ValidGoals reports whether n is an acceptable goal count.
func ValidGoals(n int) bool {
	return n >= MinGoals && n <= MaxGoals
}

// Outcome is the three-way result of a match or a prediction.
type Outcome int

// Outcomes.
const (
	HomeWin Outcome = iota + 1
	Draw
	AwayWin
)

func (o Outcome) String() string {
	switch o {
	case HomeWin:
		return "home_win"
	case Draw:
		return "draw"
	case AwayWin:
		return "away_win"
	default:
		return "unknown"
	}
}

// Score is a pair of goal counts.
type Score struct {
	Home int
	Away int
}

// Outcome classifies the score.
func (s Score) Outcome() Outcome {
	switch {
	case s.Home > s.Away:
		return HomeWin
	case s.Home < s.Away:
		return AwayWin
	default:
		return Draw
	}
}

// Result is a match result as stored: goals stay nil until known.
type Result struct {
	HomeGoals *int
	AwayGoals *int
	Finalized bool
}

// Final returns the final score, or false when the match cannot be scored yet.
func (r Result) Final() (Score, bool) {
	if !r.Finalized || r.HomeGoals == nil || r.AwayGoals == nil {
		return Score{}, false
	}
	return Score{Home: *r.HomeGoals, Away: *r.AwayGoals}, true
}

// Points scores a predicted score against a match result.
func Points(result Result, predicted Score) int {
	actual, ok := result.Final()
	if !ok {
		return MissPoints
	}
	if predicted == actual {
		return ExactPoints
	}
	if predicted.Outcome() == actual.Outcome() {
		return OutcomePoints
	}
	return MissPoints
}

// IsCorrect reports whether points count as a correct pick.
func IsCorrect(points int) bool {
	return points != MissPoints
}

// IsExact reports whether points come from an exact score.
func IsExact(points int) bool {
	return points == ExactPoints
}

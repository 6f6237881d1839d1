package model

import (
	"sort"
	"time"
)

// Recommendation codes produced by Diagnose.
const (
	RecommendNoActiveRound    = "NO_ACTIVE_ROUND"
	RecommendMultipleActive   = "MULTIPLE_ACTIVE_ROUNDS"
	RecommendActiveNotStarted = "ACTIVE_ROUND_NOT_STARTED"
	RecommendActiveOpen       = "ACTIVE_ROUND_OPEN"
	RecommendActiveEnded      = "ACTIVE_ROUND_ENDED"
)

// Diagnosis summarizes the active-round situation at a point in time.
type Diagnosis struct {
	CheckedAt       time.Time     `json:"checked_at"`
	TotalRounds     int           `json:"total_rounds"`
	ActiveRounds    []RoundStatus `json:"active_rounds"`
	FutureRounds    []int         `json:"future_rounds"`
	InWindowRounds  []int         `json:"in_window_rounds"`
	PastRounds      []int         `json:"past_rounds"`
	Recommendation  string        `json:"recommendation"`
	Message         string        `json:"message"`
	SuggestedNumber *int          `json:"suggested_number,omitempty"`
}

// Diagnose inspects every round at now and recommends what an operator should do.
func Diagnose(rounds []Round, now time.Time) Diagnosis {
	sorted := sortedByNumber(rounds)
	d := Diagnosis{
		CheckedAt:      now,
		TotalRounds:    len(sorted),
		ActiveRounds:   []RoundStatus{},
		FutureRounds:   []int{},
		InWindowRounds: []int{},
		PastRounds:     []int{},
	}

	var active []Round
	for _, r := range sorted {
		switch {
		case now.Before(r.StartsAt):
			d.FutureRounds = append(d.FutureRounds, r.Number)
		case r.Contains(now):
			d.InWindowRounds = append(d.InWindowRounds, r.Number)
		default:
			d.PastRounds = append(d.PastRounds, r.Number)
		}
		if r.Active {
			active = append(active, r)
			d.ActiveRounds = append(d.ActiveRounds, NewRoundStatus(r, now))
		}
	}

	switch len(active) {
	case 0:
		d.Recommendation = RecommendNoActiveRound
		d.Message = "no round is active, predictions are closed everywhere"
		if next, ok := nextCandidate(sorted, now); ok {
			d.SuggestedNumber = &next.Number
			d.Message = "no round is active, consider activating the suggested round"
		}
	case 1:
		r := active[0]
		switch r.Status(now) {
		case StatusFuture:
			d.Recommendation = RecommendActiveNotStarted
			d.Message = "the active round has not started yet"
		case StatusCurrent:
			d.Recommendation = RecommendActiveOpen
			d.Message = "the active round is open for predictions"
		default:
			d.Recommendation = RecommendActiveEnded
			d.Message = "the active round has ended"
			if next, ok := nextCandidate(sorted, now); ok && next.Number != r.Number {
				d.SuggestedNumber = &next.Number
				d.Message = "the active round has ended, consider activating the suggested round"
			}
		}
	default:
		keep, _ := PickKeeper(active, now)
		d.Recommendation = RecommendMultipleActive
		d.Message = "more than one round is active, run the repair to keep only the suggested round"
		d.SuggestedNumber = &keep.Number
	}

	return d
}

// PickKeeper chooses which of several active rounds stays active: the
// lowest-numbered one whose window contains now, else the lowest-numbered one
// still in the future, else the highest-numbered one. It returns false only
// when active is empty.
func PickKeeper(active []Round, now time.Time) (Round, bool) {
	if len(active) == 0 {
		return Round{}, false
	}
	sorted := sortedByNumber(active)
	for _, r := range sorted {
		if r.Contains(now) {
			return r, true
		}
	}
	for _, r := range sorted {
		if now.Before(r.StartsAt) {
			return r, true
		}
	}
	return sorted[len(sorted)-1], true
}

// nextCandidate suggests a round to activate: the one open now, else the next
// one to start.
func nextCandidate(sorted []Round, now time.Time) (Round, bool) {
	for _, r := range sorted {
		if r.Contains(now) {
			return r, true
		}
	}
	for _, r := range sorted {
		if now.Before(r.StartsAt) {
			return r, true
		}
	}
	return Round{}, false
}

func sortedByNumber(rounds []Round) []Round {
	out := make([]Round, len(rounds))
	copy(out, rounds)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

package model

import (
	"sort"

	"github.com/festy23/futamigo/internal/scoring"
)

// Contender is a participant eligible for the leaderboard.
type Contender struct {
	ID          uint
	DisplayName string
}

// ScoredPick is a prediction on a finalized match, with the round it belongs to.
type ScoredPick struct {
	ParticipantID uint
	RoundNumber   int
	PredictedHome int
	PredictedAway int
	HomeGoals     *int
	AwayGoals     *int
	Finalized     bool
}

// Points scores the pick with the fixed rule.
func (p ScoredPick) Points() int {
	return scoring.Points(
		scoring.Result{HomeGoals: p.HomeGoals, AwayGoals: p.AwayGoals, Finalized: p.Finalized},
		scoring.Score{Home: p.PredictedHome, Away: p.PredictedAway},
	)
}

// Standing is the tally of one contender before ranking.
type Standing struct {
	ParticipantID    uint   `json:"participant_id"`
	DisplayName      string `json:"display_name"`
	Points           int    `json:"points"`
	Correct          int    `json:"correct"`
	Exact            int    `json:"exact"`
	LastRoundBalance int    `json:"last_round_balance"`
}

// Ranked is a standing with its position.
type Ranked struct {
	Standing
	Position int `json:"position"`
}

// Tally sums the picks of every contender. Picks of anyone else are ignored.
// refRound is the number of the latest round with a finalized match; nil
// leaves every balance at zero.
func Tally(contenders []Contender, picks []ScoredPick, refRound *int) []Standing {
	index := make(map[uint]int, len(contenders))
	standings := make([]Standing, len(contenders))
	for i, c := range contenders {
		index[c.ID] = i
		standings[i] = Standing{ParticipantID: c.ID, DisplayName: c.DisplayName}
	}

	for _, p := range picks {
		i, ok := index[p.ParticipantID]
		if !ok {
			continue
		}
		pts := p.Points()
		s := &standings[i]
		s.Points += pts
		if scoring.IsCorrect(pts) {
			s.Correct++
		}
		if scoring.IsExact(pts) {
			s.Exact++
		}
		if refRound != nil && p.RoundNumber == *refRound {
			s.LastRoundBalance += pts
		}
	}
	return standings
}

// Rank orders standings by points, then correct picks, then participant id,
// and numbers them 1..N. Tied standings still get distinct positions.
func Rank(standings []Standing) []Ranked {
	sorted := make([]Standing, len(standings))
	copy(sorted, standings)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Correct != b.Correct {
			return a.Correct > b.Correct
		}
		return a.ParticipantID < b.ParticipantID
	})

	ranked := make([]Ranked, len(sorted))
	for i, s := range sorted {
		ranked[i] = Ranked{Standing: s, Position: i + 1}
	}
	return ranked
}

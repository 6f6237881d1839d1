// Package testutil opens throwaway sqlite databases and seeds pool fixtures
// for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	matchModel "github.com/festy23/futamigo/internal/match/model"
	participantModel "github.com/festy23/futamigo/internal/participant/model"
	predictionModel "github.com/festy23/futamigo/internal/prediction/model"
	roundModel "github.com/festy23/futamigo/internal/round/model"
	"github.com/festy23/futamigo/internal/schema"
	teamModel "github.com/festy23/futamigo/internal/team/model"
)

// NewDB returns an in-memory sqlite database with every table. The pool is
// capped at one connection so all statements see the same database; code
// running inside a transaction must only use the transaction handle.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(schema.Models()...))
	return db
}

// Fixtures seeds rows with fake but valid data.
type Fixtures struct {
	t     testing.TB
	db    *gorm.DB
	faker *gofakeit.Faker
	seq   int
}

// NewFixtures creates a seeded fixture builder.
func NewFixtures(t testing.TB, db *gorm.DB) *Fixtures {
	t.Helper()
	return &Fixtures{t: t, db: db, faker: gofakeit.New(42)}
}

func (f *Fixtures) next() int {
	f.seq++
	return f.seq
}

// Team inserts a team with a unique name and code.
func (f *Fixtures) Team() *teamModel.Team {
	f.t.Helper()
	n := f.next()
	team := &teamModel.Team{
		Name:      fmt.Sprintf("%s %d", f.faker.City(), n),
		Code:      fmt.Sprintf("T%02d", n%100),
		CreatedAt: time.Now(),
	}
	require.NoError(f.t, f.db.Create(team).Error)
	return team
}

// Round inserts round number spanning [start, end].
func (f *Fixtures) Round(number int, start, end time.Time, active bool) *roundModel.Round {
	f.t.Helper()
	now := time.Now()
	r := &roundModel.Round{
		Number:    number,
		Name:      fmt.Sprintf("Rodada %d", number),
		StartsAt:  start,
		EndsAt:    end,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(f.t, f.db.Create(r).Error)
	return r
}

// Match inserts a fixture between two new teams.
func (f *Fixtures) Match(round *roundModel.Round) *matchModel.Match {
	f.t.Helper()
	home, away := f.Team(), f.Team()
	now := time.Now()
	m := &matchModel.Match{
		RoundID:    round.ID,
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		KickoffAt:  round.StartsAt.Add(time.Hour),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(f.t, f.db.Create(m).Error)
	return m
}

// Finalize stores a final score on m.
func (f *Fixtures) Finalize(m *matchModel.Match, home, away int) {
	f.t.Helper()
	m.HomeGoals = &home
	m.AwayGoals = &away
	m.Finalized = true
	require.NoError(f.t, f.db.Save(m).Error)
}

// ParticipantOption customizes Participant.
type ParticipantOption func(*participantModel.Participant)

// Invisible hides the participant from the leaderboard.
func Invisible() ParticipantOption {
	return func(p *participantModel.Participant) { p.Invisible = true }
}

// Inactive deactivates the participant.
func Inactive() ParticipantOption {
	return func(p *participantModel.Participant) { p.Active = false }
}

// Admin grants admin rights.
func Admin() ParticipantOption {
	return func(p *participantModel.Participant) { p.Admin = true }
}

// WithPasswordHash sets a precomputed bcrypt hash.
func WithPasswordHash(hash string) ParticipantOption {
	return func(p *participantModel.Participant) { p.PasswordHash = hash }
}

// Participant inserts an active, visible participant.
func (f *Fixtures) Participant(opts ...ParticipantOption) *participantModel.Participant {
	f.t.Helper()
	n := f.next()
	now := time.Now()
	p := &participantModel.Participant{
		Username:     fmt.Sprintf("%s%d", f.faker.Username(), n),
		PasswordHash: "x",
		DisplayName:  f.faker.FirstName(),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(f.t, f.db.Create(p).Error)
	return p
}

// Predict stores a prediction of p for m.
func (f *Fixtures) Predict(p *participantModel.Participant, m *matchModel.Match, home, away int) *predictionModel.Prediction {
	f.t.Helper()
	now := time.Now()
	pred := &predictionModel.Prediction{
		ParticipantID: p.ID,
		MatchID:       m.ID,
		HomeGoals:     home,
		AwayGoals:     away,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(f.t, f.db.Create(pred).Error)
	return pred
}

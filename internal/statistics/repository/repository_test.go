package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/statistics/model"
	"github.com/festy23/futamigo/internal/testutil"
)

func TestRepository_EmptyDatabase(t *testing.T) {
	ctx := context.Background()
	repo := New(testutil.NewDB(t), zap.NewNop().Sugar())

	totals, err := repo.GetTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Totals{}, *totals)

	picks, err := repo.ListFinalizedPicks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, picks)
	assert.Empty(t, picks)

	rounds, err := repo.GetRoundsStatistics(ctx)
	require.NoError(t, err)
	assert.NotNil(t, rounds)
	assert.Empty(t, rounds)
}

func TestRepository_WithPool(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := New(db, zap.NewNop().Sugar())
	fx := testutil.NewFixtures(t, db)

	start := time.Date(2025, time.May, 3, 16, 0, 0, 0, time.UTC)
	ana, bia := fx.Participant(), fx.Participant()
	cid := fx.Participant(testutil.Inactive())
	r1 := fx.Round(1, start, start.Add(72*time.Hour), true)
	fx.Round(2, start.Add(96*time.Hour), start.Add(168*time.Hour), false)
	m1, m2 := fx.Match(r1), fx.Match(r1)
	fx.Finalize(m1, 2, 1)
	fx.Predict(ana, m1, 2, 1)
	fx.Predict(bia, m1, 1, 0)
	fx.Predict(cid, m1, 0, 2)
	fx.Predict(ana, m2, 1, 1)

	t.Run("totals", func(t *testing.T) {
		totals, err := repo.GetTotals(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), totals.ActiveParticipants)
		assert.Equal(t, int64(2), totals.Rounds)
		assert.Equal(t, int64(1), totals.FinalizedMatches)
		assert.Equal(t, int64(4), totals.Predictions)
	})

	t.Run("finalized picks", func(t *testing.T) {
		picks, err := repo.ListFinalizedPicks(ctx)
		require.NoError(t, err)
		require.Len(t, picks, 3)
		for _, pick := range picks {
			assert.Equal(t, 2, pick.HomeGoals)
			assert.Equal(t, 1, pick.AwayGoals)
		}
	})

	t.Run("rounds", func(t *testing.T) {
		rounds, err := repo.GetRoundsStatistics(ctx)
		require.NoError(t, err)
		require.Len(t, rounds, 2)

		assert.Equal(t, 1, rounds[0].Number)
		assert.Equal(t, 2, rounds[0].Matches)
		assert.Equal(t, 1, rounds[0].FinalizedMatches)
		assert.Equal(t, 4, rounds[0].Predictions)
		assert.Equal(t, 3, rounds[0].Participants)

		assert.Equal(t, 2, rounds[1].Number)
		assert.Zero(t, rounds[1].Matches)
		assert.Zero(t, rounds[1].Predictions)
	})
}

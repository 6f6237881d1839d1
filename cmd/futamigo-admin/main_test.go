package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/database"
	leaderboardModel "github.com/festy23/futamigo/internal/leaderboard/model"
	participantModel "github.com/festy23/futamigo/internal/participant/model"
	roundModel "github.com/festy23/futamigo/internal/round/model"
	"github.com/festy23/futamigo/internal/testutil"
)

func fileOpener(t *testing.T) opener {
	t.Helper()
	cfg := database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "pool.db"),
		Pool:   database.DefaultPoolConfig(),
	}
	return func(ctx context.Context) (*gorm.DB, error) {
		return database.Open(ctx, cfg, zap.NewNop().Sugar())
	}
}

func run(t *testing.T, open opener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := newApp(open, zap.NewNop().Sugar())
	a.Writer = &out
	a.ErrWriter = &out
	err := a.Run(append([]string{"futamigo-admin"}, args...))
	return out.String(), err
}

func TestAdmin_Commands(t *testing.T) {
	open := fileOpener(t)

	out, err := run(t, open, "migrate", "up")
	require.NoError(t, err)
	var status migrationStatus
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, migrationStatus{Direction: "up", Driver: "sqlite"}, status)

	db, err := open(context.Background())
	require.NoError(t, err)
	// Seed the legacy state the write path no longer allows.
	require.NoError(t, db.Exec("DROP INDEX rounds_single_active_idx").Error)
	now := time.Now().UTC()
	fx := testutil.NewFixtures(t, db)
	past := fx.Round(1, now.Add(-240*time.Hour), now.Add(-168*time.Hour), true)
	fx.Round(2, now.Add(-time.Hour), now.Add(48*time.Hour), true)
	p := fx.Participant()
	m := fx.Match(past)
	fx.Finalize(m, 1, 0)
	fx.Predict(p, m, 2, 0)
	require.NoError(t, database.Close(db))

	t.Run("diagnose", func(t *testing.T) {
		out, err := run(t, open, "rounds", "diagnose")
		require.NoError(t, err)

		var d roundModel.Diagnosis
		require.NoError(t, json.Unmarshal([]byte(out), &d))
		assert.Equal(t, roundModel.RecommendMultipleActive, d.Recommendation)
		assert.Len(t, d.ActiveRounds, 2)
	})

	t.Run("repair dry run", func(t *testing.T) {
		out, err := run(t, open, "rounds", "repair", "--dry-run")
		require.NoError(t, err)

		var res roundModel.RepairResult
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.True(t, res.DryRun)
		assert.Equal(t, []int{1}, res.Deactivated)
	})

	t.Run("repair", func(t *testing.T) {
		out, err := run(t, open, "rounds", "repair")
		require.NoError(t, err)

		var res roundModel.RepairResult
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.False(t, res.DryRun)
		require.NotNil(t, res.Kept)
		assert.Equal(t, 2, res.Kept.Number)
		assert.Equal(t, []int{1}, res.Deactivated)

		out, err = run(t, open, "rounds", "diagnose")
		require.NoError(t, err)
		var d roundModel.Diagnosis
		require.NoError(t, json.Unmarshal([]byte(out), &d))
		assert.Equal(t, roundModel.RecommendActiveOpen, d.Recommendation)
	})

	t.Run("leaderboard recompute", func(t *testing.T) {
		out, err := run(t, open, "leaderboard", "recompute")
		require.NoError(t, err)

		var resp leaderboardModel.RecomputeResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		require.Len(t, resp.Entries, 1)
		assert.Equal(t, 1, resp.Entries[0].Points)
		require.NotNil(t, resp.ReferenceRound)
		assert.Equal(t, 1, *resp.ReferenceRound)
	})

	t.Run("promote and revoke admin", func(t *testing.T) {
		require.False(t, p.Admin)

		out, err := run(t, open, "participants", "promote", "--username", p.Username)
		require.NoError(t, err)
		var promoted participantModel.Participant
		require.NoError(t, json.Unmarshal([]byte(out), &promoted))
		assert.Equal(t, p.ID, promoted.ID)
		assert.True(t, promoted.Admin)
		assert.NotContains(t, out, "password")

		out, err = run(t, open, "participants", "promote", "--username", p.Username, "--revoke")
		require.NoError(t, err)
		var revoked participantModel.Participant
		require.NoError(t, json.Unmarshal([]byte(out), &revoked))
		assert.False(t, revoked.Admin)
	})

	t.Run("promote unknown participant", func(t *testing.T) {
		_, err := run(t, open, "participants", "promote", "--username", "ninguem")
		assert.ErrorIs(t, err, participantModel.ErrParticipantNotFound)
	})

	t.Run("promote requires username", func(t *testing.T) {
		_, err := run(t, open, "participants", "promote")
		assert.Error(t, err)
	})

	t.Run("rollback needs postgres", func(t *testing.T) {
		_, err := run(t, open, "migrate", "down", "--steps", "1")
		assert.Error(t, err)
	})
}

func TestAdmin_OpenFailure(t *testing.T) {
	failing := func(context.Context) (*gorm.DB, error) {
		return nil, assert.AnError
	}

	_, err := run(t, failing, "leaderboard", "recompute")

	assert.ErrorIs(t, err, assert.AnError)
}

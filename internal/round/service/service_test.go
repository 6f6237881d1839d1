package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/futamigo/internal/metrics"
	roundModel "github.com/festy23/futamigo/internal/round/model"
	"github.com/festy23/futamigo/internal/round/repository"
	fixtures "github.com/festy23/futamigo/internal/testutil"
)

var now = time.Date(2025, time.June, 15, 18, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, round *roundModel.Round) error {
	return m.Called(ctx, round).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uint) (*roundModel.Round, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*roundModel.Round), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]roundModel.Round, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]roundModel.Round), args.Error(1)
}

func (m *mockRepository) ListActive(ctx context.Context) ([]roundModel.Round, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]roundModel.Round), args.Error(1)
}

func (m *mockRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockRepository) DeactivateAllExcept(ctx context.Context, keepID uint) ([]int, error) {
	args := m.Called(ctx, keepID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

var _ repository.Repository = (*mockRepository)(nil)

func newDBService(t *testing.T) (Service, *gorm.DB, *metrics.Metrics) {
	t.Helper()
	db := fixtures.NewDB(t)
	logger := zap.NewNop().Sugar()
	m := metrics.New()
	svc := New(repository.New(db, logger), db, logger, m, WithClock(func() time.Time { return now }))
	return svc, db, m
}

func activeNumbers(t *testing.T, db *gorm.DB) []int {
	t.Helper()
	var numbers []int
	require.NoError(t, db.Model(&roundModel.Round{}).Where("active = ?", true).Order("number").Pluck("number", &numbers).Error)
	return numbers
}

func TestService_CreateRound(t *testing.T) {
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		svc, _, _ := newDBService(t)

		_, err := svc.CreateRound(ctx, &roundModel.CreateRoundRequest{Number: 0, StartsAt: now, EndsAt: now.Add(day)})
		assert.ErrorIs(t, err, roundModel.ErrInvalidNumber)

		_, err = svc.CreateRound(ctx, &roundModel.CreateRoundRequest{Number: 39, StartsAt: now, EndsAt: now.Add(day)})
		assert.ErrorIs(t, err, roundModel.ErrInvalidNumber)

		_, err = svc.CreateRound(ctx, &roundModel.CreateRoundRequest{Number: 1, StartsAt: now, EndsAt: now})
		assert.ErrorIs(t, err, roundModel.ErrInvalidWindow)
	})

	t.Run("active round replaces the previous active one", func(t *testing.T) {
		svc, db, m := newDBService(t)

		first, err := svc.CreateRound(ctx, &roundModel.CreateRoundRequest{
			Number: 1, Name: " Rodada 1 ", StartsAt: now.Add(-day), EndsAt: now.Add(day), Active: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Rodada 1", first.Name)
		assert.Equal(t, roundModel.StatusCurrent, first.Status)

		second, err := svc.CreateRound(ctx, &roundModel.CreateRoundRequest{
			Number: 2, StartsAt: now.Add(2 * day), EndsAt: now.Add(5 * day), Active: true,
		})
		require.NoError(t, err)
		assert.Equal(t, roundModel.StatusFuture, second.Status)

		assert.Equal(t, []int{2}, activeNumbers(t, db))
		assert.Equal(t, 2.0, testutil.ToFloat64(m.RoundActivations))
	})

	t.Run("duplicate number", func(t *testing.T) {
		svc, _, _ := newDBService(t)
		req := &roundModel.CreateRoundRequest{Number: 7, StartsAt: now, EndsAt: now.Add(day)}

		_, err := svc.CreateRound(ctx, req)
		require.NoError(t, err)
		_, err = svc.CreateRound(ctx, req)
		assert.ErrorIs(t, err, roundModel.ErrRoundExists)
	})
}

func TestService_ActivateRound(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps a single active round", func(t *testing.T) {
		svc, db, _ := newDBService(t)
		fx := fixtures.NewFixtures(t, db)
		fx.Round(1, now.Add(-10*day), now.Add(-4*day), true)
		r2 := fx.Round(2, now.Add(-day), now.Add(5*day), false)

		rs, err := svc.ActivateRound(ctx, r2.ID)
		require.NoError(t, err)
		assert.True(t, rs.Active)
		assert.True(t, rs.AcceptsPredictions)
		assert.Equal(t, []int{2}, activeNumbers(t, db))
	})

	t.Run("activating the active round is a no-op", func(t *testing.T) {
		svc, db, _ := newDBService(t)
		r := fixtures.NewFixtures(t, db).Round(4, now.Add(-day), now.Add(day), true)

		_, err := svc.ActivateRound(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{4}, activeNumbers(t, db))
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := newDBService(t)

		_, err := svc.ActivateRound(ctx, 42)
		assert.ErrorIs(t, err, roundModel.ErrRoundNotFound)
	})
}

func TestService_DeactivateRound(t *testing.T) {
	ctx := context.Background()
	svc, db, _ := newDBService(t)
	r := fixtures.NewFixtures(t, db).Round(4, now.Add(-day), now.Add(day), true)

	rs, err := svc.DeactivateRound(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, roundModel.StatusClosed, rs.Status)
	assert.Empty(t, activeNumbers(t, db))

	_, err = svc.DeactivateRound(ctx, 99)
	assert.ErrorIs(t, err, roundModel.ErrRoundNotFound)
}

func TestService_RepairActiveRounds(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, db *gorm.DB) {
		t.Helper()
		require.NoError(t, db.Exec("DROP INDEX rounds_single_active_idx").Error)
		fx := fixtures.NewFixtures(t, db)
		fx.Round(1, now.Add(-20*day), now.Add(-14*day), true)
		fx.Round(2, now.Add(-2*day), now.Add(3*day), true)
		fx.Round(3, now.Add(5*day), now.Add(10*day), true)
	}

	t.Run("dry run changes nothing", func(t *testing.T) {
		svc, db, _ := newDBService(t)
		seed(t, db)

		res, err := svc.RepairActiveRounds(ctx, true)
		require.NoError(t, err)
		require.NotNil(t, res.Kept)
		assert.Equal(t, 2, res.Kept.Number)
		assert.Equal(t, []int{1, 3}, res.Deactivated)
		assert.True(t, res.DryRun)
		assert.Equal(t, []int{1, 2, 3}, activeNumbers(t, db))
	})

	t.Run("keeps the round containing now", func(t *testing.T) {
		svc, db, _ := newDBService(t)
		seed(t, db)

		res, err := svc.RepairActiveRounds(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Kept.Number)
		assert.Equal(t, []int{1, 3}, res.Deactivated)
		assert.Equal(t, []int{2}, activeNumbers(t, db))
	})

	t.Run("nothing to repair", func(t *testing.T) {
		svc, db, _ := newDBService(t)
		fixtures.NewFixtures(t, db).Round(1, now.Add(-day), now.Add(day), true)

		res, err := svc.RepairActiveRounds(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Kept.Number)
		assert.Empty(t, res.Deactivated)
	})

	t.Run("no active round", func(t *testing.T) {
		svc, _, _ := newDBService(t)

		res, err := svc.RepairActiveRounds(ctx, false)
		require.NoError(t, err)
		assert.Nil(t, res.Kept)
	})
}

func TestService_CurrentRound(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	clock := WithClock(func() time.Time { return now })

	t.Run("no active round", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("ListActive", mock.Anything).Return([]roundModel.Round{}, nil)
		svc := New(repo, nil, logger, metrics.New(), clock)

		resp, err := svc.CurrentRound(ctx)
		require.NoError(t, err)
		assert.Nil(t, resp.Round)
	})

	t.Run("active round with status", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("ListActive", mock.Anything).Return([]roundModel.Round{
			{ID: 9, Number: 9, StartsAt: now.Add(-day), EndsAt: now.Add(day), Active: true},
		}, nil)
		svc := New(repo, nil, logger, metrics.New(), clock)

		resp, err := svc.CurrentRound(ctx)
		require.NoError(t, err)
		require.NotNil(t, resp.Round)
		assert.Equal(t, roundModel.StatusCurrent, resp.Round.Status)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("ListActive", mock.Anything).Return(nil, errors.New("db down"))
		svc := New(repo, nil, logger, metrics.New(), clock)

		_, err := svc.CurrentRound(ctx)
		assert.EqualError(t, err, "db down")
	})
}

func TestService_ListAndDiagnose(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	rounds := []roundModel.Round{
		{ID: 1, Number: 1, StartsAt: now.Add(-10 * day), EndsAt: now.Add(-5 * day), Active: true},
		{ID: 2, Number: 2, StartsAt: now.Add(-day), EndsAt: now.Add(day)},
	}
	repo.On("List", mock.Anything).Return(rounds, nil)
	svc := New(repo, nil, zap.NewNop().Sugar(), metrics.New(), WithClock(func() time.Time { return now }))

	list, err := svc.ListRounds(ctx)
	require.NoError(t, err)
	require.Len(t, list.Rounds, 2)
	assert.Equal(t, roundModel.StatusClosed, list.Rounds[0].Status)
	assert.Equal(t, roundModel.StatusClosed, list.Rounds[1].Status)

	d, err := svc.DiagnoseRounds(ctx)
	require.NoError(t, err)
	assert.Equal(t, roundModel.RecommendActiveEnded, d.Recommendation)
	require.NotNil(t, d.SuggestedNumber)
	assert.Equal(t, 2, *d.SuggestedNumber)
}

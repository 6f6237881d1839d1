package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/futamigo/internal/statistics/model"
	"github.com/festy23/futamigo/internal/testutil"
)

func TestRegisterRoutes(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	start := time.Date(2025, time.May, 3, 16, 0, 0, 0, time.UTC)
	p := fx.Participant()
	m := fx.Match(fx.Round(1, start, start.Add(72*time.Hour), false))
	fx.Finalize(m, 1, 1)
	fx.Predict(p, m, 1, 1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, db, zap.NewNop().Sugar())

	t.Run("pool statistics", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/statistics", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp model.PoolStatisticsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Statistics.ExactHits)
		assert.Equal(t, 100.0, resp.Statistics.HitRate)
	})

	t.Run("rounds statistics", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/statistics/rounds", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp model.RoundsStatisticsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, 1, resp.Rounds[0].Participants)
	})
}

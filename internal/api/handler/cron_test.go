package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/keyword-intel-api/infrastructure/repository"
	"github.com/vfg2006/keyword-intel-api/internal/api/handler/router"
	"github.com/vfg2006/keyword-intel-api/internal/config"
	"github.com/vfg2006/keyword-intel-api/internal/scheduler"
)

func newCronTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.SessionCleanup.CronSchedule = "*/15 * * * *"
	cfg.SessionCleanup.TTLMinutes = 240
	cfg.SessionCleanup.Enabled = true

	cleanupService := scheduler.NewSessionCleanupService(repository.NewReportSessionRepository(), cfg)

	return router.New(
		router.WithRoutes(CronJobs(cleanupService)...),
	)
}

func TestRunCronJob(t *testing.T) {
	rt := newCronTestServer(t)

	t.Run("dispara a varredura de sessão", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/cron/session-cleanup/run", nil)
		recorder := httptest.NewRecorder()
		rt.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "session-cleanup", response.Type)
	})

	t.Run("tipo desconhecido devolve 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/cron/desconhecido/run", nil)
		recorder := httptest.NewRecorder()
		rt.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusBadRequest, recorder.Code)

		var apiErr struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &apiErr))
		assert.Equal(t, "VAL_001", apiErr.Code)
	})
}

func TestGetCronStatus(t *testing.T) {
	rt := newCronTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
	recorder := httptest.NewRecorder()
	rt.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	status, ok := response["session-cleanup"]
	require.True(t, ok)
	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, float64(240), status["ttl_minutes"])
}

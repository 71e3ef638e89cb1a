package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/keyword-intel-api/infrastructure/repository"
	"github.com/vfg2006/keyword-intel-api/internal/config"
	"github.com/vfg2006/keyword-intel-api/internal/domain"
)

func newCleanupFixture(t *testing.T, ttlMinutes int) (*SessionCleanupService, *repository.InMemorySessionRepository) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SessionCleanup.CronSchedule = "*/15 * * * *"
	cfg.SessionCleanup.TTLMinutes = ttlMinutes
	cfg.SessionCleanup.Enabled = true

	repo := repository.NewReportSessionRepository()
	return NewSessionCleanupService(repo, cfg), repo
}

func saveAgedSession(t *testing.T, repo *repository.InMemorySessionRepository, age time.Duration) {
	t.Helper()

	session, err := repo.Save(domain.Dataset{{SearchTerm: "buy shoes"}}, []string{"loja.csv"}, nil)
	require.NoError(t, err)
	session.LastActivity = time.Now().Add(-age)
}

func TestSessionCleanupService_RunCleanup(t *testing.T) {
	t.Run("sessão ociosa além do TTL é descartada", func(t *testing.T) {
		service, repo := newCleanupFixture(t, 240)
		saveAgedSession(t, repo, 241*time.Minute)

		cleared := service.runCleanup(time.Now())

		assert.True(t, cleared)
		_, ok := repo.LastActivity()
		assert.False(t, ok)
	})

	t.Run("sessão ativa dentro do TTL é preservada", func(t *testing.T) {
		service, repo := newCleanupFixture(t, 240)
		saveAgedSession(t, repo, 10*time.Minute)

		cleared := service.runCleanup(time.Now())

		assert.False(t, cleared)
		_, ok := repo.LastActivity()
		assert.True(t, ok)
	})

	t.Run("sem sessão a varredura não faz nada", func(t *testing.T) {
		service, _ := newCleanupFixture(t, 240)

		assert.False(t, service.runCleanup(time.Now()))
	})

	t.Run("a varredura não conta como atividade da sessão", func(t *testing.T) {
		service, repo := newCleanupFixture(t, 240)
		saveAgedSession(t, repo, 100*time.Minute)

		before, ok := repo.LastActivity()
		require.True(t, ok)

		service.runCleanup(time.Now())

		after, ok := repo.LastActivity()
		require.True(t, ok)
		assert.Equal(t, before, after)
	})
}

func TestSessionCleanupService_GetStatus(t *testing.T) {
	service, repo := newCleanupFixture(t, 240)
	saveAgedSession(t, repo, 300*time.Minute)

	status := service.GetStatus()
	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, 240, status["ttl_minutes"])
	assert.Equal(t, false, status["last_run_cleared"])

	service.runCleanup(time.Now())

	status = service.GetStatus()
	assert.Equal(t, true, status["last_run_cleared"])
	assert.False(t, status["last_run_started_at"].(time.Time).IsZero())
	assert.False(t, status["last_run_completed_at"].(time.Time).IsZero())
}

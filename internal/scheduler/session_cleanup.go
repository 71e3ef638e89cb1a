package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/keyword-intel-api/infrastructure/repository"
	"github.com/vfg2006/keyword-intel-api/internal/config"
)

// SessionCleanupConfig representa a configuração da varredura de sessão
type SessionCleanupConfig struct {
	CronSchedule string
	TTLMinutes   int
	Enabled      bool
}

// SessionCleanupService descarta a sessão de relatórios quando ela fica
// ociosa além do TTL configurado. É higiene de memória, não um requisito
// de corretude: o dataset só existe enquanto alguém o usa.
type SessionCleanupService struct {
	scheduler          *gocron.Scheduler
	config             SessionCleanupConfig
	sessionRepo        repository.ReportSessionRepository
	runMutex           sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRunCleared     bool
}

// NewSessionCleanupService cria uma nova instância do serviço de varredura
func NewSessionCleanupService(
	sessionRepo repository.ReportSessionRepository,
	appConfig *config.Config,
) *SessionCleanupService {
	cleanupConfig := SessionCleanupConfig{
		CronSchedule: appConfig.SessionCleanup.CronSchedule,
		TTLMinutes:   appConfig.SessionCleanup.TTLMinutes,
		Enabled:      appConfig.SessionCleanup.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": cleanupConfig.CronSchedule,
		"ttl_minutes":   cleanupConfig.TTLMinutes,
		"enabled":       cleanupConfig.Enabled,
	}).Info("Configuração da varredura de sessão carregada")

	return &SessionCleanupService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      cleanupConfig,
		sessionRepo: sessionRepo,
	}
}

// Start inicia o agendador
func (s *SessionCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled || s.config.TTLMinutes <= 0 {
		logrus.Info("Varredura de sessão desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runCleanup(time.Now())
	})
	if err != nil {
		return errors.Wrap(err, "erro ao agendar a varredura de sessão")
	}

	s.scheduler.StartAsync()

	// Parar o agendador quando o contexto da aplicação for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando a varredura de sessão")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualCleanup executa a varredura imediatamente, fora do cron
func (s *SessionCleanupService) TriggerManualCleanup() {
	go s.runCleanup(time.Now())
}

// GetStatus devolve o estado da última execução da varredura
func (s *SessionCleanupService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron_schedule":         s.config.CronSchedule,
		"ttl_minutes":           s.config.TTLMinutes,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_run_cleared":      s.lastRunCleared,
	}
}

// runCleanup descarta a sessão se a última atividade for mais antiga que
// o TTL. Devolve true quando uma sessão foi descartada.
func (s *SessionCleanupService) runCleanup(now time.Time) bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	s.lastRunStartedAt = now
	s.lastRunCleared = false

	defer func() {
		s.lastRunCompletedAt = time.Now()
	}()

	lastActivity, ok := s.sessionRepo.LastActivity()
	if !ok {
		return false
	}

	idle := now.Sub(lastActivity)
	ttl := time.Duration(s.config.TTLMinutes) * time.Minute
	if idle < ttl {
		return false
	}

	if s.sessionRepo.Clear() {
		s.lastRunCleared = true
		logrus.WithFields(logrus.Fields{
			"idle_minutes": int(idle.Minutes()),
			"ttl_minutes":  s.config.TTLMinutes,
		}).Info("Sessão de relatórios ociosa descartada pela varredura")
		return true
	}

	return false
}

package repository

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/keyword-intel-api/internal/domain"
	"github.com/vfg2006/keyword-intel-api/pkg/utils"
)

// ReportSessionRepository guarda a sessão de relatórios corrente. Nada é
// persistido: o dataset vive apenas na memória do processo e existe no
// máximo uma sessão por instância.
type ReportSessionRepository interface {
	// Save substitui a sessão corrente pelo dataset recém-ingerido
	Save(dataset domain.Dataset, files []string, fileErrors []domain.FileError) (*domain.ReportSession, error)

	// Get devolve a sessão corrente (nil se não houver) e registra
	// atividade para fins de expiração
	Get() *domain.ReportSession

	// Clear descarta a sessão corrente; devolve false se não havia sessão
	Clear() bool

	// LastActivity devolve o instante do último uso da sessão, sem
	// contar como atividade (usado pela varredura de expiração)
	LastActivity() (time.Time, bool)
}

type InMemorySessionRepository struct {
	mu      sync.RWMutex
	session *domain.ReportSession
}

// NewReportSessionRepository cria o repositório de sessão em memória
func NewReportSessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{}
}

// Save implementa ReportSessionRepository
func (r *InMemorySessionRepository) Save(dataset domain.Dataset, files []string, fileErrors []domain.FileError) (*domain.ReportSession, error) {
	batchID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar o ID do lote de upload")
	}

	now := time.Now()
	session := &domain.ReportSession{
		BatchID:      batchID,
		Dataset:      dataset,
		Files:        files,
		FileErrors:   fileErrors,
		UploadedAt:   now,
		LastActivity: now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = session

	return session, nil
}

// Get implementa ReportSessionRepository
func (r *InMemorySessionRepository) Get() *domain.ReportSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return nil
	}

	r.session.LastActivity = time.Now()
	return r.session
}

// Clear implementa ReportSessionRepository
func (r *InMemorySessionRepository) Clear() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	had := r.session != nil
	r.session = nil
	return had
}

// LastActivity implementa ReportSessionRepository
func (r *InMemorySessionRepository) LastActivity() (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.session == nil {
		return time.Time{}, false
	}
	return r.session.LastActivity, true
}

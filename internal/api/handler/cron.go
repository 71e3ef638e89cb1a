package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/keyword-intel-api/internal/scheduler"
	"github.com/vfg2006/keyword-intel-api/pkg/apiErrors"
)

// Tipos de cron job que podem ser disparadas manualmente
const (
	CronJobTypeSessionCleanup = "session-cleanup"
)

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(cleanupService *scheduler.SessionCleanupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeSessionCleanup:
			if cleanupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de varredura de sessão não disponível", nil)
				return
			}
			cleanupService.TriggerManualCleanup()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: session-cleanup", nil)
			return
		}

		logrus.WithField("type", cronType).Info("cron: execução manual disparada")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(cleanupService *scheduler.SessionCleanupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"session-cleanup": cleanupService.GetStatus(),
		})
	}
}

package handler

import (
	"net/http"

	"github.com/vfg2006/keyword-intel-api/infrastructure/repository"
	"github.com/vfg2006/keyword-intel-api/internal/domain"
	"github.com/vfg2006/keyword-intel-api/internal/metrics"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/advising"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/analyzing"
	"github.com/vfg2006/keyword-intel-api/pkg/apiErrors"
	"github.com/vfg2006/keyword-intel-api/pkg/log"
)

// InsightRequest é a seleção de filtros corrente do usuário no momento
// do clique em "gerar insights"
type InsightRequest struct {
	Account  string `json:"account"`
	Campaign string `json:"campaign"`
}

// InsightResponse carrega o texto devolvido pelo modelo
type InsightResponse struct {
	Campaign string `json:"campaign"`
	Content  string `json:"content"`
}

// GenerateInsights faz a única chamada externa do serviço: serializa a
// visão de termos mais clicados num prompt e solicita sugestões de
// marketing ao modelo. Falhas nunca derrubam a sessão: o diagnóstico
// bruto volta na resposta de erro.
func GenerateInsights(
	advisor advising.Advisor,
	analyzer analyzing.Analyzer,
	sessionRepo repository.ReportSessionRepository,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request InsightRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", err.Error())
				return
			}
		}

		session := activeSession(w, sessionRepo)
		if session == nil {
			return
		}

		filters := domain.FilterContext{
			Account:  request.Account,
			Campaign: request.Campaign,
		}

		topTerms := analyzer.TopTerms(session.Dataset, filters)

		content, err := advisor.GenerateInsights(filters, topTerms)
		if err != nil {
			metrics.InsightRequestsTotal.WithLabelValues(metrics.ResultError).Inc()

			if err == advising.ErrNoTopTerms {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
				return
			}

			logger.WithError(err).Error("insights: falha na requisição ao modelo")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Falha ao gerar insights", err.Error())
			return
		}

		metrics.InsightRequestsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
		logger.WithField("campaign", filters.Campaign).Info("insights: sugestões geradas com sucesso")

		campaignName := filters.Campaign
		if !filters.CampaignActive() {
			campaignName = "all campaigns"
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(InsightResponse{
			Campaign: campaignName,
			Content:  content,
		}); err != nil {
			logger.WithError(err).Error("insights: erro ao codificar a resposta")
		}
	})
}

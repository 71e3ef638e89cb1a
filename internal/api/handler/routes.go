package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/keyword-intel-api/infrastructure/repository"
	"github.com/vfg2006/keyword-intel-api/internal/api/handler/router"
	"github.com/vfg2006/keyword-intel-api/internal/config"
	"github.com/vfg2006/keyword-intel-api/internal/scheduler"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/advising"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/analyzing"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/covering"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/ingesting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Reports retorna as rotas de upload e das visões de análise
func Reports(
	cfg *config.Config,
	ingester ingesting.Ingester,
	analyzer analyzing.Analyzer,
	coverer covering.Coverer,
	sessionRepo repository.ReportSessionRepository,
) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports",
			Method:  http.MethodPost,
			Handler: UploadReports(cfg, ingester, sessionRepo),
		},
		{
			Path:    "/v1/reports",
			Method:  http.MethodGet,
			Handler: GetReportSession(sessionRepo),
		},
		{
			Path:    "/v1/reports",
			Method:  http.MethodDelete,
			Handler: ClearReportSession(sessionRepo),
		},
		{
			Path:    "/v1/reports/filters",
			Method:  http.MethodGet,
			Handler: GetFilterOptions(analyzer, sessionRepo),
		},
		{
			Path:    "/v1/reports/summary",
			Method:  http.MethodGet,
			Handler: GetKeywordSummary(analyzer, sessionRepo),
		},
		{
			Path:    "/v1/reports/keywords/terms",
			Method:  http.MethodGet,
			Handler: GetTermDetails(analyzer, sessionRepo),
		},
		{
			Path:    "/v1/reports/top-terms",
			Method:  http.MethodGet,
			Handler: GetTopTerms(analyzer, sessionRepo),
		},
		{
			Path:    "/v1/reports/coverage",
			Method:  http.MethodGet,
			Handler: GetCoverage(analyzer, coverer, sessionRepo),
		},
		{
			Path:    "/v1/reports/mapping",
			Method:  http.MethodGet,
			Handler: GetMapping(analyzer, sessionRepo),
		},
	}
}

// Insights retorna a rota de geração de insights de campanha
func Insights(
	advisor advising.Advisor,
	analyzer analyzing.Analyzer,
	sessionRepo repository.ReportSessionRepository,
) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/insights",
			Method:  http.MethodPost,
			Handler: GenerateInsights(advisor, analyzer, sessionRepo),
		},
	}
}

// CronJobs retorna as rotas de disparo manual e status da varredura
func CronJobs(cleanupService *scheduler.SessionCleanupService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(cleanupService),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(cleanupService),
		},
	}
}

// Metrics expõe os contadores Prometheus do serviço
func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de operação do serviço, expostos em /metrics
var (
	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keyword_intel_uploads_total",
		Help: "Total de uploads de relatórios recebidos",
	})

	FilesParsedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keyword_intel_files_parsed_total",
		Help: "Total de arquivos CSV lidos com sucesso",
	})

	FileErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keyword_intel_file_errors_total",
		Help: "Total de arquivos CSV descartados por erro de leitura",
	})

	RowsIngestedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keyword_intel_rows_ingested_total",
		Help: "Total de linhas normalizadas incorporadas ao dataset",
	})

	InsightRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keyword_intel_insight_requests_total",
		Help: "Total de requisições de insights por resultado",
	}, []string{"result"})
)

// Valores do rótulo result de InsightRequestsTotal
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/keyword-intel-api/infrastructure/repository"
	"github.com/vfg2006/keyword-intel-api/internal/config"
	"github.com/vfg2006/keyword-intel-api/internal/domain"
	"github.com/vfg2006/keyword-intel-api/internal/metrics"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/analyzing"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/covering"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/ingesting"
	"github.com/vfg2006/keyword-intel-api/pkg/apiErrors"
	"github.com/vfg2006/keyword-intel-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// uploadFieldName é o campo do multipart que carrega os relatórios CSV
const uploadFieldName = "files"

// ReportSessionResponse resume a sessão corrente sem expor o dataset
type ReportSessionResponse struct {
	BatchID    string             `json:"batch_id"`
	Files      []string           `json:"files"`
	FileErrors []domain.FileError `json:"file_errors,omitempty"`
	RowCount   int                `json:"row_count"`
	UploadedAt string             `json:"uploaded_at"`
}

func sessionResponse(session *domain.ReportSession) ReportSessionResponse {
	return ReportSessionResponse{
		BatchID:    session.BatchID,
		Files:      session.Files,
		FileErrors: session.FileErrors,
		RowCount:   len(session.Dataset),
		UploadedAt: session.UploadedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// filtersFromQuery monta o FilterContext a partir da query string.
// Ausência de parâmetro equivale a "All".
func filtersFromQuery(r *http.Request) domain.FilterContext {
	return domain.FilterContext{
		Account:  r.URL.Query().Get("account"),
		Campaign: r.URL.Query().Get("campaign"),
	}
}

// activeSession devolve a sessão corrente ou escreve o erro padronizado
// quando nenhum relatório foi carregado ainda.
func activeSession(w http.ResponseWriter, sessionRepo repository.ReportSessionRepository) *domain.ReportSession {
	session := sessionRepo.Get()
	if session == nil {
		apiErrors.WriteError(w, apiErrors.ErrNoActiveSession, "Nenhum relatório carregado. Envie os arquivos CSV primeiro.", nil)
		return nil
	}
	return session
}

// UploadReports recebe os relatórios CSV via multipart e constrói a
// sessão corrente. Substitui qualquer sessão anterior.
func UploadReports(
	cfg *config.Config,
	ingester ingesting.Ingester,
	sessionRepo repository.ReportSessionRepository,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		metrics.UploadsTotal.Inc()

		maxMemory := cfg.Upload.MaxUploadMB << 20
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			logger.WithError(err).Warn("reports: corpo multipart inválido no upload")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo multipart inválido", err.Error())
			return
		}

		headers := r.MultipartForm.File[uploadFieldName]
		if len(headers) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrNoReportFiles, "Nenhum arquivo de relatório enviado", nil)
			return
		}

		files := make([]ingesting.UploadedFile, 0, len(headers))
		names := make([]string, 0, len(headers))
		for _, header := range headers {
			opened, err := header.Open()
			if err != nil {
				logger.WithFields(log.Fields{
					"file":  header.Filename,
					"error": err.Error(),
				}).Error("reports: erro ao abrir arquivo do upload")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler o upload", err.Error())
				return
			}
			defer opened.Close()

			files = append(files, ingesting.UploadedFile{Name: header.Filename, Reader: opened})
			names = append(names, header.Filename)
		}

		dataset, fileErrors, err := ingester.Ingest(files)
		if err != nil {
			// Falha fatal: nenhuma sessão é criada nem substituída
			logger.WithError(err).Warn("reports: ingestão não produziu dataset")

			code := apiErrors.ErrNoReportFiles
			if err == ingesting.ErrNoParsableFiles {
				code = apiErrors.ErrAllFilesFailed
			}
			apiErrors.WriteError(w, code, err.Error(), fileErrors)
			return
		}

		metrics.FilesParsedTotal.Add(float64(len(names) - len(fileErrors)))
		metrics.FileErrorsTotal.Add(float64(len(fileErrors)))
		metrics.RowsIngestedTotal.Add(float64(len(dataset)))

		session, err := sessionRepo.Save(dataset, names, fileErrors)
		if err != nil {
			logger.WithError(err).Error("reports: erro ao salvar a sessão")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao salvar a sessão de relatórios", nil)
			return
		}

		logger.WithFields(log.Fields{
			"batch_id": session.BatchID,
			"files":    len(names),
			"rows":     len(dataset),
		}).Info("reports: sessão de relatórios criada")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(sessionResponse(session)); err != nil {
			logger.WithError(err).Error("reports: erro ao codificar a resposta do upload")
		}
	})
}

// GetReportSession devolve o resumo da sessão corrente
func GetReportSession(sessionRepo repository.ReportSessionRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := activeSession(w, sessionRepo)
		if session == nil {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sessionResponse(session)); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("reports: erro ao codificar a resposta")
		}
	})
}

// ClearReportSession descarta a sessão corrente
func ClearReportSession(sessionRepo repository.ReportSessionRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sessionRepo.Clear() {
			apiErrors.WriteError(w, apiErrors.ErrNoActiveSession, "Nenhum relatório carregado", nil)
			return
		}

		log.ForContext(r.Context()).Info("reports: sessão de relatórios descartada")
		w.WriteHeader(http.StatusNoContent)
	})
}

// GetFilterOptions lista contas e campanhas para os seletores
func GetFilterOptions(analyzer analyzing.Analyzer, sessionRepo repository.ReportSessionRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := activeSession(w, sessionRepo)
		if session == nil {
			return
		}

		options := analyzer.FilterOptions(session.Dataset, filtersFromQuery(r))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(options); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("reports: erro ao codificar a resposta")
		}
	})
}

// GetKeywordSummary devolve a visão de resumo por palavra-chave
func GetKeywordSummary(analyzer analyzing.Analyzer, sessionRepo repository.ReportSessionRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := activeSession(w, sessionRepo)
		if session == nil {
			return
		}

		filters := filtersFromQuery(r)
		rows := analyzer.KeywordSummary(session.Dataset, filters)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"filters": filters,
			"rows":    rows,
		}); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("reports: erro ao codificar a resposta")
		}
	})
}

// GetTermDetails devolve os termos exatos da palavra-chave escolhida
func GetTermDetails(analyzer analyzing.Analyzer, sessionRepo repository.ReportSessionRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keyword := r.URL.Query().Get("keyword")
		if keyword == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro keyword não informado", nil)
			return
		}

		session := activeSession(w, sessionRepo)
		if session == nil {
			return
		}

		filters := filtersFromQuery(r)
		rows := analyzer.TermDetails(session.Dataset, filters, keyword)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"keyword":             keyword,
			"filters":             filters,
			"unique_search_terms": len(rows),
			"rows":                rows,
		}); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("reports: erro ao codificar a resposta")
		}
	})
}

// GetTopTerms devolve os 15 termos mais clicados do recorte
func GetTopTerms(analyzer analyzing.Analyzer, sessionRepo repository.ReportSessionRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := activeSession(w, sessionRepo)
		if session == nil {
			return
		}

		filters := filtersFromQuery(r)
		rows := analyzer.TopTerms(session.Dataset, filters)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"filters": filters,
			"rows":    rows,
		}); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("reports: erro ao codificar a resposta")
		}
	})
}

// GetCoverage devolve a análise de lacunas de cobertura do recorte
func GetCoverage(
	analyzer analyzing.Analyzer,
	coverer covering.Coverer,
	sessionRepo repository.ReportSessionRepository,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := activeSession(w, sessionRepo)
		if session == nil {
			return
		}

		filters := filtersFromQuery(r)
		report := coverer.Analyze(analyzer.Filter(session.Dataset, filters))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("reports: erro ao codificar a resposta")
		}
	})
}

// GetMapping devolve a projeção termo de pesquisa → palavra-chave
func GetMapping(analyzer analyzing.Analyzer, sessionRepo repository.ReportSessionRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := activeSession(w, sessionRepo)
		if session == nil {
			return
		}

		filters := filtersFromQuery(r)
		rows := analyzer.Mapping(session.Dataset, filters)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"filters": filters,
			"rows":    rows,
		}); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("reports: erro ao codificar a resposta")
		}
	})
}

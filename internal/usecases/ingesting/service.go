package ingesting

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/keyword-intel-api/internal/config"
	"github.com/vfg2006/keyword-intel-api/internal/domain"
)

// canonicalColumns mapeia os cabeçalhos do exportador do Google Ads para
// os nomes canônicos do domínio. Os nomes canônicos também constam como
// chaves para que a normalização seja idempotente: reprocessar um
// relatório já normalizado não altera nada.
var canonicalColumns = map[string]string{
	"Search term":  "search_term",
	"Keyword":      "keyword",
	"Campaign":     "campaign",
	"Ad group":     "ad_group",
	"Impr.":        "impressions",
	"Interactions": "clicks",
	"Cost":         "cost",
	"Match type":   "match_type",

	"search_term": "search_term",
	"keyword":     "keyword",
	"campaign":    "campaign",
	"ad_group":    "ad_group",
	"impressions": "impressions",
	"clicks":      "clicks",
	"cost":        "cost",
	"match_type":  "match_type",
}

// UploadedFile é um arquivo CSV recebido no upload, identificado pelo
// nome original. O nome vira o campo account de cada linha resultante.
type UploadedFile struct {
	Name   string
	Reader io.Reader
}

// Ingester define a interface de ingestão de relatórios
type Ingester interface {
	// Ingest lê todos os arquivos enviados e produz o Dataset combinado.
	// Falhas por arquivo são recuperadas localmente e devolvidas como
	// FileError; o erro de retorno só é não-nulo quando nenhum dataset
	// pôde ser produzido.
	Ingest(files []UploadedFile) (domain.Dataset, []domain.FileError, error)
}

type Service struct {
	metadataLines int
}

// NewService cria uma nova instância do serviço de ingestão
func NewService(cfg *config.Config) Ingester {
	metadataLines := cfg.Upload.MetadataLines
	if metadataLines < 0 {
		metadataLines = 0
	}

	return &Service{metadataLines: metadataLines}
}

// Ingest implementa a interface Ingester
func (s *Service) Ingest(files []UploadedFile) (domain.Dataset, []domain.FileError, error) {
	if len(files) == 0 {
		return nil, nil, ErrNoFiles
	}

	var (
		dataset    domain.Dataset
		fileErrors []domain.FileError
		parsed     int
	)

	for _, file := range files {
		rows, err := s.parseReport(file)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"file":  file.Name,
				"error": err.Error(),
			}).Warn("ingest: falha ao ler arquivo de relatório, arquivo ignorado")

			fileErrors = append(fileErrors, domain.FileError{
				File:    file.Name,
				Message: err.Error(),
			})
			continue
		}

		parsed++

		// Arquivo válido porém sem nenhuma linha aproveitável (por
		// exemplo, todas sem termo de pesquisa). Não é fatal, mas o
		// usuário precisa ver o aviso.
		if len(rows) == 0 {
			fileErrors = append(fileErrors, domain.FileError{
				File:    file.Name,
				Message: "nenhuma linha utilizável no relatório",
			})
		}

		dataset = append(dataset, rows...)
	}

	if parsed == 0 {
		return nil, fileErrors, ErrNoParsableFiles
	}

	logrus.WithFields(logrus.Fields{
		"files":       len(files),
		"parsed":      parsed,
		"file_errors": len(fileErrors),
		"rows":        len(dataset),
	}).Info("ingest: dataset combinado produzido")

	return dataset, fileErrors, nil
}

// parseReport lê um único relatório: pula as linhas de metadados do
// exportador, lê o cabeçalho, normaliza os nomes de coluna e converte
// cada registro em uma domain.Row.
func (s *Service) parseReport(file UploadedFile) ([]domain.Row, error) {
	buffered := bufio.NewReader(file.Reader)

	for i := 0; i < s.metadataLines; i++ {
		if _, err := buffered.ReadString('\n'); err != nil {
			return nil, ErrTruncatedMetadata
		}
	}

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1 // relatórios reais têm larguras irregulares

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrMissingHeader
		}
		return nil, errors.Wrap(err, "erro ao ler cabeçalho do relatório")
	}

	// Índice de coluna por nome canônico. Colunas desconhecidas são
	// ignoradas; colunas ausentes resultam em campos vazios (decisão
	// registrada no DESIGN.md).
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if canonical, ok := canonicalColumns[strings.TrimSpace(name)]; ok {
			columns[canonical] = i
		}
	}

	var rows []domain.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler registro do relatório")
		}

		row := domain.Row{
			SearchTerm:  field(record, columns, "search_term"),
			Keyword:     field(record, columns, "keyword"),
			Campaign:    field(record, columns, "campaign"),
			AdGroup:     field(record, columns, "ad_group"),
			MatchType:   field(record, columns, "match_type"),
			Impressions: coerceNumber(field(record, columns, "impressions")),
			Clicks:      coerceNumber(field(record, columns, "clicks")),
			Cost:        coerceNumber(field(record, columns, "cost")),
			Account:     file.Name,
		}

		// Linha sem termo de pesquisa é descartada silenciosamente
		if strings.TrimSpace(row.SearchTerm) == "" {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// coerceNumber converte o texto da célula em número. Falhas de conversão
// e valores negativos viram 0: campos numéricos nunca são nulos nem
// negativos no Dataset.
func coerceNumber(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

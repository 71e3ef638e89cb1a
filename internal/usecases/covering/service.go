package covering

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vfg2006/keyword-intel-api/internal/domain"
)

// Caracteres de sintaxe de correspondência do Google Ads removidos da
// palavra-chave antes da comparação: [exata] e "frase"
var matchSyntax = regexp.MustCompile(`[\[\]"]`)

// Coverer define a análise de lacunas de cobertura: termos de pesquisa
// que nenhuma palavra-chave paga cobre. A comparação é puramente léxica
// (igualdade do texto limpo), uma aproximação assumida — não reproduz a
// lógica de correspondência da plataforma de anúncios.
type Coverer interface {
	Analyze(dataset domain.Dataset) domain.CoverageReport
}

type Service struct{}

// NewService cria uma nova instância do analisador de cobertura
func NewService() Coverer {
	return &Service{}
}

// CleanKeyword remove colchetes e aspas da sintaxe de correspondência,
// apara espaços e converte para minúsculas.
func CleanKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(matchSyntax.ReplaceAllString(keyword, "")))
}

// CleanTerm apara espaços e converte para minúsculas. Termos de pesquisa
// não carregam sintaxe de correspondência, então nada mais é removido.
func CleanTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Analyze implementa a interface Coverer. Recebe o dataset já filtrado:
// os conjuntos de termos e de palavras-chave são sempre do mesmo recorte.
func (s *Service) Analyze(dataset domain.Dataset) domain.CoverageReport {
	// KeywordSet: palavras-chave limpas não vazias observadas no recorte.
	// Linhas sem palavra-chave não contribuem para a cobertura.
	keywordSet := make(map[string]struct{})
	for _, row := range dataset {
		if cleaned := CleanKeyword(row.Keyword); cleaned != "" {
			keywordSet[cleaned] = struct{}{}
		}
	}

	// UncoveredSet = TermSet − KeywordSet
	uncoveredSet := make(map[string]struct{})
	for _, row := range dataset {
		cleaned := CleanTerm(row.SearchTerm)
		if _, covered := keywordSet[cleaned]; !covered {
			uncoveredSet[cleaned] = struct{}{}
		}
	}

	if len(uncoveredSet) == 0 {
		return domain.CoverageReport{Covered: true}
	}

	// uncovered_df: todas as linhas cujo termo limpo está descoberto
	aggregates := make(map[string]*domain.CoverageSummaryRow)
	order := make([]string, 0)
	details := make([]domain.UncoveredRow, 0)

	for _, row := range dataset {
		if _, ok := uncoveredSet[CleanTerm(row.SearchTerm)]; !ok {
			continue
		}

		// Resumo agregado agrupado pelo termo bruto
		agg, ok := aggregates[row.SearchTerm]
		if !ok {
			agg = &domain.CoverageSummaryRow{SearchTerm: row.SearchTerm}
			aggregates[row.SearchTerm] = agg
			order = append(order, row.SearchTerm)
		}
		agg.TotalImpressions += row.Impressions
		agg.TotalClicks += row.Clicks
		agg.TotalCost += row.Cost

		details = append(details, domain.UncoveredRow{
			SearchTerm:  row.SearchTerm,
			MatchType:   row.MatchType,
			Campaign:    row.Campaign,
			AdGroup:     row.AdGroup,
			Impressions: row.Impressions,
			Clicks:      row.Clicks,
			Cost:        row.Cost,
			Keyword:     row.Keyword,
		})
	}

	summary := make([]domain.CoverageSummaryRow, 0, len(order))
	for _, term := range order {
		summary = append(summary, *aggregates[term])
	}

	sort.SliceStable(summary, func(i, j int) bool {
		if summary[i].TotalClicks != summary[j].TotalClicks {
			return summary[i].TotalClicks > summary[j].TotalClicks
		}
		return summary[i].TotalImpressions > summary[j].TotalImpressions
	})

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].Clicks > details[j].Clicks
	})

	return domain.CoverageReport{
		Covered: false,
		Summary: summary,
		Details: details,
	}
}

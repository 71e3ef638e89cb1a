package domain

// KeywordSummaryRow é uma linha da visão de resumo por palavra-chave.
// CTR é definido como 0 quando não há impressões; CPC é definido como 0
// quando não há cliques.
type KeywordSummaryRow struct {
	Keyword          string  `json:"keyword"`
	TotalSearchTerms int     `json:"total_search_terms"`
	TotalImpressions float64 `json:"total_impressions"`
	TotalClicks      float64 `json:"total_clicks"`
	TotalCost        float64 `json:"total_cost"`
	CTR              float64 `json:"ctr"`
	CPC              float64 `json:"cpc"`
}

// TermDetailRow é uma linha da visão de termos exatos de uma palavra-chave
type TermDetailRow struct {
	SearchTerm  string  `json:"search_term"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Cost        float64 `json:"cost"`
}

// TopTermRow é uma linha da visão global de termos mais clicados
type TopTermRow struct {
	SearchTerm  string  `json:"search_term"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`
}

// MappingRow é a projeção linha a linha termo de pesquisa → palavra-chave,
// sem agregação.
type MappingRow struct {
	SearchTerm  string  `json:"search_term"`
	Keyword     string  `json:"keyword"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Cost        float64 `json:"cost"`
}

// CoverageSummaryRow agrega as métricas dos termos não cobertos por
// palavra-chave, agrupadas pelo termo de pesquisa bruto.
type CoverageSummaryRow struct {
	SearchTerm       string  `json:"search_term"`
	TotalImpressions float64 `json:"total_impressions"`
	TotalClicks      float64 `json:"total_clicks"`
	TotalCost        float64 `json:"total_cost"`
}

// UncoveredRow é uma linha detalhada de termo não coberto
type UncoveredRow struct {
	SearchTerm  string  `json:"search_term"`
	MatchType   string  `json:"match_type"`
	Campaign    string  `json:"campaign"`
	AdGroup     string  `json:"ad_group"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Cost        float64 `json:"cost"`
	Keyword     string  `json:"keyword"`
}

// CoverageReport é o resultado da análise de lacunas de cobertura.
// Covered indica cobertura total (nenhum termo fora do conjunto de
// palavras-chave); nesse caso as listas ficam vazias.
type CoverageReport struct {
	Covered bool                 `json:"covered"`
	Summary []CoverageSummaryRow `json:"summary,omitempty"`
	Details []UncoveredRow       `json:"details,omitempty"`
}

// FilterOptions lista os valores disponíveis para os seletores de filtro
type FilterOptions struct {
	Accounts  []string `json:"accounts"`
	Campaigns []string `json:"campaigns"`
}

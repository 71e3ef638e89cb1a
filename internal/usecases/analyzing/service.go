package analyzing

import (
	"sort"

	"github.com/vfg2006/keyword-intel-api/internal/domain"
	"github.com/vfg2006/keyword-intel-api/pkg/utils"
)

// topTermsLimit é o tamanho fixo da visão de termos mais clicados
const topTermsLimit = 15

// Analyzer define as visões de agregação calculadas sobre o dataset
// filtrado. Todas são funções puras: cada chamada recalcula a visão a
// partir do Dataset e do FilterContext correntes.
type Analyzer interface {
	// Filter aplica o seletor de conta e depois o de campanha
	Filter(dataset domain.Dataset, filters domain.FilterContext) domain.Dataset

	// KeywordSummary agrupa por palavra-chave com contagem de termos
	// distintos, somas e métricas derivadas (CTR/CPC)
	KeywordSummary(dataset domain.Dataset, filters domain.FilterContext) []domain.KeywordSummaryRow

	// TermDetails agrupa por termo de pesquisa as linhas da palavra-chave
	// escolhida
	TermDetails(dataset domain.Dataset, filters domain.FilterContext, keyword string) []domain.TermDetailRow

	// TopTerms agrupa por termo de pesquisa e devolve os 15 mais clicados
	TopTerms(dataset domain.Dataset, filters domain.FilterContext) []domain.TopTermRow

	// Mapping é a projeção linha a linha termo → palavra-chave
	Mapping(dataset domain.Dataset, filters domain.FilterContext) []domain.MappingRow

	// FilterOptions lista contas e campanhas disponíveis nos seletores
	FilterOptions(dataset domain.Dataset, filters domain.FilterContext) domain.FilterOptions
}

type Service struct{}

// NewService cria uma nova instância do motor de agregação
func NewService() Analyzer {
	return &Service{}
}

// Filter aplica primeiro o filtro de conta e depois o de campanha.
// Seletor vazio ou "All" é passthrough.
func (s *Service) Filter(dataset domain.Dataset, filters domain.FilterContext) domain.Dataset {
	filtered := dataset

	if filters.AccountActive() {
		byAccount := make(domain.Dataset, 0, len(filtered))
		for _, row := range filtered {
			if row.Account == filters.Account {
				byAccount = append(byAccount, row)
			}
		}
		filtered = byAccount
	}

	if filters.CampaignActive() {
		byCampaign := make(domain.Dataset, 0, len(filtered))
		for _, row := range filtered {
			if row.Campaign == filters.Campaign {
				byCampaign = append(byCampaign, row)
			}
		}
		filtered = byCampaign
	}

	return filtered
}

type keywordAggregate struct {
	terms       map[string]struct{}
	impressions float64
	clicks      float64
	cost        float64
}

// KeywordSummary implementa a visão de resumo por palavra-chave
func (s *Service) KeywordSummary(dataset domain.Dataset, filters domain.FilterContext) []domain.KeywordSummaryRow {
	filtered := s.Filter(dataset, filters)

	aggregates := make(map[string]*keywordAggregate)
	order := make([]string, 0)

	for _, row := range filtered {
		// Linhas sem palavra-chave não formam grupo no resumo; elas
		// seguem aparecendo nas visões de termos e de mapeamento
		if row.Keyword == "" {
			continue
		}

		agg, ok := aggregates[row.Keyword]
		if !ok {
			agg = &keywordAggregate{terms: make(map[string]struct{})}
			aggregates[row.Keyword] = agg
			order = append(order, row.Keyword)
		}

		agg.terms[row.SearchTerm] = struct{}{}
		agg.impressions += row.Impressions
		agg.clicks += row.Clicks
		agg.cost += row.Cost
	}

	summary := make([]domain.KeywordSummaryRow, 0, len(order))
	for _, keyword := range order {
		agg := aggregates[keyword]

		// CTR indefinido sem impressões vira 0; CPC indefinido ou
		// infinito sem cliques vira 0
		ctr := 0.0
		if agg.impressions > 0 {
			ctr = agg.clicks / agg.impressions
		}

		cpc := 0.0
		if agg.clicks > 0 {
			cpc = agg.cost / agg.clicks
		}

		summary = append(summary, domain.KeywordSummaryRow{
			Keyword:          keyword,
			TotalSearchTerms: len(agg.terms),
			TotalImpressions: agg.impressions,
			TotalClicks:      agg.clicks,
			TotalCost:        utils.RoundWithTwoDecimalPlace(agg.cost),
			CTR:              ctr,
			CPC:              utils.RoundWithTwoDecimalPlace(cpc),
		})
	}

	// Empates preservam a ordem de primeira aparição no dataset
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].TotalSearchTerms > summary[j].TotalSearchTerms
	})

	return summary
}

// TermDetails implementa a visão de termos exatos por palavra-chave
func (s *Service) TermDetails(dataset domain.Dataset, filters domain.FilterContext, keyword string) []domain.TermDetailRow {
	filtered := s.Filter(dataset, filters)

	aggregates := make(map[string]*domain.TermDetailRow)
	order := make([]string, 0)

	for _, row := range filtered {
		if row.Keyword != keyword {
			continue
		}

		agg, ok := aggregates[row.SearchTerm]
		if !ok {
			agg = &domain.TermDetailRow{SearchTerm: row.SearchTerm}
			aggregates[row.SearchTerm] = agg
			order = append(order, row.SearchTerm)
		}

		agg.Impressions += row.Impressions
		agg.Clicks += row.Clicks
		agg.Cost += row.Cost
	}

	details := make([]domain.TermDetailRow, 0, len(order))
	for _, term := range order {
		details = append(details, *aggregates[term])
	}

	sort.SliceStable(details, func(i, j int) bool {
		return details[i].Clicks > details[j].Clicks
	})

	return details
}

// TopTerms implementa a visão global de termos mais clicados
func (s *Service) TopTerms(dataset domain.Dataset, filters domain.FilterContext) []domain.TopTermRow {
	filtered := s.Filter(dataset, filters)

	aggregates := make(map[string]*domain.TopTermRow)
	order := make([]string, 0)

	for _, row := range filtered {
		agg, ok := aggregates[row.SearchTerm]
		if !ok {
			agg = &domain.TopTermRow{SearchTerm: row.SearchTerm}
			aggregates[row.SearchTerm] = agg
			order = append(order, row.SearchTerm)
		}

		agg.Clicks += row.Clicks
		agg.Impressions += row.Impressions
	}

	terms := make([]domain.TopTermRow, 0, len(order))
	for _, term := range order {
		terms = append(terms, *aggregates[term])
	}

	// Corte dos 15 primeiros só depois da ordenação; empates preservam
	// a ordem original dos grupos
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Clicks > terms[j].Clicks
	})

	if len(terms) > topTermsLimit {
		terms = terms[:topTermsLimit]
	}

	return terms
}

// Mapping implementa a projeção termo de pesquisa → palavra-chave,
// linha a linha e sem agregação.
func (s *Service) Mapping(dataset domain.Dataset, filters domain.FilterContext) []domain.MappingRow {
	filtered := s.Filter(dataset, filters)

	mapping := make([]domain.MappingRow, 0, len(filtered))
	for _, row := range filtered {
		mapping = append(mapping, domain.MappingRow{
			SearchTerm:  row.SearchTerm,
			Keyword:     row.Keyword,
			Impressions: row.Impressions,
			Clicks:      row.Clicks,
			Cost:        row.Cost,
		})
	}

	sort.SliceStable(mapping, func(i, j int) bool {
		return mapping[i].Clicks > mapping[j].Clicks
	})

	return mapping
}

// FilterOptions lista as contas de todo o dataset e as campanhas do
// recorte da conta selecionada, na ordem de primeira aparição — o mesmo
// encadeamento dos seletores da barra lateral original.
func (s *Service) FilterOptions(dataset domain.Dataset, filters domain.FilterContext) domain.FilterOptions {
	options := domain.FilterOptions{
		Accounts:  distinct(dataset, func(r domain.Row) string { return r.Account }),
		Campaigns: nil,
	}

	accountView := s.Filter(dataset, domain.FilterContext{Account: filters.Account})
	options.Campaigns = distinct(accountView, func(r domain.Row) string { return r.Campaign })

	return options
}

func distinct(dataset domain.Dataset, value func(domain.Row) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)

	for _, row := range dataset {
		v := value(row)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	return values
}

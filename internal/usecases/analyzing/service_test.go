package analyzing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/keyword-intel-api/internal/domain"
)

// Dataset do cenário de referência: dois arquivos, três linhas
func referenceDataset() domain.Dataset {
	return domain.Dataset{
		{SearchTerm: "buy shoes", Keyword: "[shoes]", Campaign: "C1", Impressions: 100, Clicks: 10, Cost: 5.0, Account: "A"},
		{SearchTerm: "cheap boots", Keyword: "", Campaign: "C1", Impressions: 50, Clicks: 5, Cost: 2.0, Account: "A"},
		{SearchTerm: "buy shoes", Keyword: "[shoes]", Campaign: "C2", Impressions: 80, Clicks: 8, Cost: 4.0, Account: "B"},
	}
}

func TestService_Filter(t *testing.T) {
	service := NewService()
	dataset := referenceDataset()

	tests := []struct {
		name    string
		filters domain.FilterContext
		want    int
	}{
		{
			name:    "sem filtros devolve o dataset inteiro",
			filters: domain.FilterContext{},
			want:    3,
		},
		{
			name:    "seletor All é passthrough",
			filters: domain.FilterContext{Account: domain.FilterAll, Campaign: domain.FilterAll},
			want:    3,
		},
		{
			name:    "filtro de conta",
			filters: domain.FilterContext{Account: "A"},
			want:    2,
		},
		{
			name:    "filtro de conta e campanha compostos",
			filters: domain.FilterContext{Account: "A", Campaign: "C1"},
			want:    2,
		},
		{
			name:    "campanha fora da conta selecionada devolve vazio",
			filters: domain.FilterContext{Account: "A", Campaign: "C2"},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := service.Filter(dataset, tt.filters)
			assert.Len(t, filtered, tt.want)
		})
	}
}

// Restringir o filtro nunca aumenta o recorte
func TestService_Filter_NarrowingIsMonotonic(t *testing.T) {
	service := NewService()
	dataset := referenceDataset()

	all := service.Filter(dataset, domain.FilterContext{})
	byAccount := service.Filter(dataset, domain.FilterContext{Account: "A"})
	byBoth := service.Filter(dataset, domain.FilterContext{Account: "A", Campaign: "C1"})

	assert.LessOrEqual(t, len(byAccount), len(all))
	assert.LessOrEqual(t, len(byBoth), len(byAccount))
}

func TestService_KeywordSummary(t *testing.T) {
	service := NewService()

	t.Run("cenário de referência: linha sem palavra-chave não forma grupo", func(t *testing.T) {
		summary := service.KeywordSummary(referenceDataset(), domain.FilterContext{})

		require.Len(t, summary, 1)
		row := summary[0]
		assert.Equal(t, "[shoes]", row.Keyword)
		assert.Equal(t, 1, row.TotalSearchTerms)
		assert.Equal(t, 180.0, row.TotalImpressions)
		assert.Equal(t, 18.0, row.TotalClicks)
		assert.Equal(t, 9.0, row.TotalCost)
		assert.Equal(t, 0.1, row.CTR)
		assert.Equal(t, 0.5, row.CPC)
	})

	t.Run("CTR é 0 sem impressões e CPC é 0 sem cliques", func(t *testing.T) {
		dataset := domain.Dataset{
			{SearchTerm: "a", Keyword: "k1", Impressions: 0, Clicks: 0, Cost: 3.0},
			{SearchTerm: "b", Keyword: "k2", Impressions: 10, Clicks: 0, Cost: 1.0},
		}

		summary := service.KeywordSummary(dataset, domain.FilterContext{})
		require.Len(t, summary, 2)

		assert.Equal(t, 0.0, summary[0].CTR)
		assert.Equal(t, 0.0, summary[0].CPC)
		assert.Equal(t, 0.0, summary[1].CTR)
		assert.Equal(t, 0.0, summary[1].CPC)
	})

	t.Run("ordena por termos distintos decrescente com empate estável", func(t *testing.T) {
		dataset := domain.Dataset{
			{SearchTerm: "t1", Keyword: "primeiro", Clicks: 1},
			{SearchTerm: "t2", Keyword: "segundo", Clicks: 1},
			{SearchTerm: "t3", Keyword: "segundo", Clicks: 1},
			{SearchTerm: "t4", Keyword: "terceiro", Clicks: 1},
		}

		summary := service.KeywordSummary(dataset, domain.FilterContext{})
		require.Len(t, summary, 3)

		assert.Equal(t, "segundo", summary[0].Keyword)
		assert.Equal(t, 2, summary[0].TotalSearchTerms)

		// Empate entre "primeiro" e "terceiro" mantém a ordem de
		// primeira aparição
		assert.Equal(t, "primeiro", summary[1].Keyword)
		assert.Equal(t, "terceiro", summary[2].Keyword)
	})

	t.Run("termo repetido conta uma vez por palavra-chave", func(t *testing.T) {
		dataset := domain.Dataset{
			{SearchTerm: "mesmo termo", Keyword: "k", Impressions: 10, Clicks: 1},
			{SearchTerm: "mesmo termo", Keyword: "k", Impressions: 20, Clicks: 2},
		}

		summary := service.KeywordSummary(dataset, domain.FilterContext{})
		require.Len(t, summary, 1)
		assert.Equal(t, 1, summary[0].TotalSearchTerms)
		assert.Equal(t, 30.0, summary[0].TotalImpressions)
	})
}

func TestService_TermDetails(t *testing.T) {
	service := NewService()

	dataset := domain.Dataset{
		{SearchTerm: "buy shoes", Keyword: "[shoes]", Impressions: 100, Clicks: 10, Cost: 5.0},
		{SearchTerm: "running shoes", Keyword: "[shoes]", Impressions: 40, Clicks: 12, Cost: 3.0},
		{SearchTerm: "buy shoes", Keyword: "[shoes]", Impressions: 10, Clicks: 1, Cost: 0.5},
		{SearchTerm: "cheap boots", Keyword: "[boots]", Impressions: 50, Clicks: 50, Cost: 2.0},
	}

	details := service.TermDetails(dataset, domain.FilterContext{}, "[shoes]")

	require.Len(t, details, 2)

	// Ordenado por cliques decrescente; linhas do mesmo termo somadas
	assert.Equal(t, "running shoes", details[0].SearchTerm)
	assert.Equal(t, 12.0, details[0].Clicks)

	assert.Equal(t, "buy shoes", details[1].SearchTerm)
	assert.Equal(t, 110.0, details[1].Impressions)
	assert.Equal(t, 11.0, details[1].Clicks)
	assert.Equal(t, 5.5, details[1].Cost)

	t.Run("palavra-chave desconhecida devolve vazio", func(t *testing.T) {
		assert.Empty(t, service.TermDetails(dataset, domain.FilterContext{}, "[hats]"))
	})
}

func TestService_TopTerms(t *testing.T) {
	service := NewService()

	t.Run("agrupa, ordena por cliques e inclui linhas sem palavra-chave", func(t *testing.T) {
		terms := service.TopTerms(referenceDataset(), domain.FilterContext{})

		require.Len(t, terms, 2)
		assert.Equal(t, "buy shoes", terms[0].SearchTerm)
		assert.Equal(t, 18.0, terms[0].Clicks)
		assert.Equal(t, 180.0, terms[0].Impressions)
		assert.Equal(t, "cheap boots", terms[1].SearchTerm)
	})

	t.Run("corta em 15 depois de ordenar", func(t *testing.T) {
		dataset := make(domain.Dataset, 0, 20)
		for i := 0; i < 20; i++ {
			dataset = append(dataset, domain.Row{
				SearchTerm: fmt.Sprintf("termo %02d", i),
				Clicks:     float64(i),
			})
		}

		terms := service.TopTerms(dataset, domain.FilterContext{})

		require.Len(t, terms, 15)
		// O mais clicado lidera; os 5 menos clicados ficam de fora
		assert.Equal(t, "termo 19", terms[0].SearchTerm)
		assert.Equal(t, "termo 05", terms[14].SearchTerm)
	})

	t.Run("empate preserva a ordem de primeira aparição", func(t *testing.T) {
		dataset := domain.Dataset{
			{SearchTerm: "alfa", Clicks: 3},
			{SearchTerm: "beta", Clicks: 3},
			{SearchTerm: "gama", Clicks: 3},
		}

		terms := service.TopTerms(dataset, domain.FilterContext{})

		require.Len(t, terms, 3)
		assert.Equal(t, "alfa", terms[0].SearchTerm)
		assert.Equal(t, "beta", terms[1].SearchTerm)
		assert.Equal(t, "gama", terms[2].SearchTerm)
	})
}

func TestService_Mapping(t *testing.T) {
	service := NewService()

	dataset := domain.Dataset{
		{SearchTerm: "buy shoes", Keyword: "[shoes]", Impressions: 100, Clicks: 1, Cost: 5.0},
		{SearchTerm: "buy shoes", Keyword: "[shoes]", Impressions: 10, Clicks: 9, Cost: 0.5},
		{SearchTerm: "cheap boots", Keyword: "", Impressions: 50, Clicks: 5, Cost: 2.0},
	}

	mapping := service.Mapping(dataset, domain.FilterContext{})

	// Linha a linha, sem agregação: linhas repetidas do mesmo termo
	// permanecem separadas e a linha sem palavra-chave aparece
	require.Len(t, mapping, 3)
	assert.Equal(t, 9.0, mapping[0].Clicks)
	assert.Equal(t, 5.0, mapping[1].Clicks)
	assert.Equal(t, "", mapping[1].Keyword)
	assert.Equal(t, 1.0, mapping[2].Clicks)
}

func TestService_FilterOptions(t *testing.T) {
	service := NewService()
	dataset := referenceDataset()

	t.Run("contas vêm do dataset inteiro, campanhas do recorte da conta", func(t *testing.T) {
		options := service.FilterOptions(dataset, domain.FilterContext{Account: "A"})

		assert.Equal(t, []string{"A", "B"}, options.Accounts)
		assert.Equal(t, []string{"C1"}, options.Campaigns)
	})

	t.Run("sem conta selecionada as campanhas cobrem o dataset inteiro", func(t *testing.T) {
		options := service.FilterOptions(dataset, domain.FilterContext{})

		assert.Equal(t, []string{"A", "B"}, options.Accounts)
		assert.Equal(t, []string{"C1", "C2"}, options.Campaigns)
	})
}

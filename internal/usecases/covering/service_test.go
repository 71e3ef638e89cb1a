package covering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/keyword-intel-api/internal/domain"
)

func TestCleanKeyword(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		want    string
	}{
		{"correspondência exata", "[shoes]", "shoes"},
		{"correspondência de frase", `"running shoes"`, "running shoes"},
		{"espaços e maiúsculas", "  [Buy Shoes]  ", "buy shoes"},
		{"sem sintaxe permanece igual", "cheap boots", "cheap boots"},
		{"apenas sintaxe vira vazio", `[""]`, ""},
		{"vazio permanece vazio", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanKeyword(tt.keyword))
		})
	}
}

func TestCleanTerm(t *testing.T) {
	// Colchetes em termo de pesquisa são texto do usuário, não sintaxe
	assert.Equal(t, "[shoes]", CleanTerm(" [Shoes] "))
	assert.Equal(t, "buy shoes", CleanTerm("Buy Shoes"))
}

func TestService_Analyze(t *testing.T) {
	service := NewService()

	t.Run("cenário de referência: ambos os termos descobertos", func(t *testing.T) {
		// "buy shoes" ≠ "shoes" na comparação léxica, então nem o termo
		// associado à palavra-chave é considerado coberto
		dataset := domain.Dataset{
			{SearchTerm: "buy shoes", Keyword: "[shoes]", Campaign: "C1", MatchType: "Exact", Impressions: 100, Clicks: 10, Cost: 5.0},
			{SearchTerm: "cheap boots", Keyword: "", Campaign: "C1", Impressions: 50, Clicks: 5, Cost: 2.0},
		}

		report := service.Analyze(dataset)

		assert.False(t, report.Covered)
		require.Len(t, report.Summary, 2)
		assert.Equal(t, "buy shoes", report.Summary[0].SearchTerm)
		assert.Equal(t, 10.0, report.Summary[0].TotalClicks)
		assert.Equal(t, "cheap boots", report.Summary[1].SearchTerm)

		require.Len(t, report.Details, 2)
		assert.Equal(t, "buy shoes", report.Details[0].SearchTerm)
		assert.Equal(t, "[shoes]", report.Details[0].Keyword)
		assert.Equal(t, "Exact", report.Details[0].MatchType)
	})

	t.Run("cobertura total devolve relatório vazio", func(t *testing.T) {
		dataset := domain.Dataset{
			{SearchTerm: "Shoes", Keyword: "[shoes]", Clicks: 10},
			{SearchTerm: "running shoes ", Keyword: `"Running Shoes"`, Clicks: 5},
		}

		report := service.Analyze(dataset)

		assert.True(t, report.Covered)
		assert.Empty(t, report.Summary)
		assert.Empty(t, report.Details)
	})

	t.Run("termo coberto por palavra-chave de outra linha", func(t *testing.T) {
		// O conjunto de palavras-chave é global ao recorte: a cobertura
		// não exige que termo e palavra-chave estejam na mesma linha
		dataset := domain.Dataset{
			{SearchTerm: "shoes", Keyword: "", Clicks: 3},
			{SearchTerm: "boots", Keyword: "[shoes]", Clicks: 1},
		}

		report := service.Analyze(dataset)

		assert.False(t, report.Covered)
		require.Len(t, report.Summary, 1)
		assert.Equal(t, "boots", report.Summary[0].SearchTerm)
	})

	t.Run("resumo agrupa pelo termo bruto e soma as linhas", func(t *testing.T) {
		dataset := domain.Dataset{
			{SearchTerm: "cheap boots", Keyword: "", Impressions: 10, Clicks: 2, Cost: 1.0},
			{SearchTerm: "cheap boots", Keyword: "", Impressions: 30, Clicks: 4, Cost: 2.5},
			{SearchTerm: "warm hats", Keyword: "", Impressions: 5, Clicks: 6, Cost: 0.5},
		}

		report := service.Analyze(dataset)

		require.Len(t, report.Summary, 2)
		assert.Equal(t, "warm hats", report.Summary[0].SearchTerm)
		assert.Equal(t, "cheap boots", report.Summary[1].SearchTerm)
		assert.Equal(t, 40.0, report.Summary[1].TotalImpressions)
		assert.Equal(t, 6.0, report.Summary[1].TotalClicks)
		assert.Equal(t, 3.5, report.Summary[1].TotalCost)

		// Detalhes continuam linha a linha, por cliques decrescente
		require.Len(t, report.Details, 3)
		assert.Equal(t, "warm hats", report.Details[0].SearchTerm)
		assert.Equal(t, 4.0, report.Details[1].Clicks)
		assert.Equal(t, 2.0, report.Details[2].Clicks)
	})

	t.Run("empate de cliques no resumo desempata por impressões", func(t *testing.T) {
		dataset := domain.Dataset{
			{SearchTerm: "menos impressões", Keyword: "", Impressions: 10, Clicks: 5},
			{SearchTerm: "mais impressões", Keyword: "", Impressions: 90, Clicks: 5},
		}

		report := service.Analyze(dataset)

		require.Len(t, report.Summary, 2)
		assert.Equal(t, "mais impressões", report.Summary[0].SearchTerm)
	})

	t.Run("dataset vazio é coberto por vacuidade", func(t *testing.T) {
		report := service.Analyze(nil)
		assert.True(t, report.Covered)
	})
}

// Nenhum termo do relatório de descobertos pode pertencer ao conjunto de
// palavras-chave limpo do mesmo recorte.
func TestService_Analyze_PartitionInvariant(t *testing.T) {
	service := NewService()

	dataset := domain.Dataset{
		{SearchTerm: "buy shoes", Keyword: "[shoes]", Clicks: 10},
		{SearchTerm: "shoes", Keyword: "[shoes]", Clicks: 8},
		{SearchTerm: "cheap boots", Keyword: `"boots"`, Clicks: 5},
		{SearchTerm: "boots", Keyword: "", Clicks: 2},
		{SearchTerm: "warm hats", Keyword: "", Clicks: 1},
	}

	keywordSet := make(map[string]struct{})
	for _, row := range dataset {
		if cleaned := CleanKeyword(row.Keyword); cleaned != "" {
			keywordSet[cleaned] = struct{}{}
		}
	}

	report := service.Analyze(dataset)

	require.False(t, report.Covered)
	for _, row := range report.Summary {
		_, covered := keywordSet[CleanTerm(row.SearchTerm)]
		assert.Falsef(t, covered, "termo %q está no conjunto de palavras-chave", row.SearchTerm)
	}

	// "shoes" e "boots" são cobertos; "buy shoes", "cheap boots" e
	// "warm hats" não
	assert.Len(t, report.Summary, 3)
}

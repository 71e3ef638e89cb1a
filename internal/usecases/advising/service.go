package advising

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/keyword-intel-api/infrastructure/integrator/openrouter/openrouterclient"
	"github.com/vfg2006/keyword-intel-api/internal/config"
	"github.com/vfg2006/keyword-intel-api/internal/domain"
)

// systemPrompt configura o papel do assistente na conversa
const systemPrompt = "You are a marketing strategist AI."

// allCampaigns é o nome usado no prompt quando nenhuma campanha
// específica está selecionada
const allCampaigns = "all campaigns"

// Advisor define a geração de insights de campanha. É acionada somente
// por ação explícita do usuário, nunca automaticamente.
type Advisor interface {
	// GenerateInsights monta o prompt com a campanha selecionada e a
	// lista ordenada de termos mais clicados e faz uma única chamada
	// bloqueante ao modelo de linguagem
	GenerateInsights(filters domain.FilterContext, topTerms []domain.TopTermRow) (string, error)
}

type Service struct {
	cfg    *config.Config
	client openrouterclient.Client
}

// NewService cria uma nova instância do serviço de insights
func NewService(cfg *config.Config, client openrouterclient.Client) Advisor {
	return &Service{
		cfg:    cfg,
		client: client,
	}
}

// GenerateInsights implementa a interface Advisor
func (s *Service) GenerateInsights(filters domain.FilterContext, topTerms []domain.TopTermRow) (string, error) {
	if len(topTerms) == 0 {
		return "", ErrNoTopTerms
	}

	campaignName := allCampaigns
	if filters.CampaignActive() {
		campaignName = filters.Campaign
	}

	prompt := buildPrompt(campaignName, topTerms)

	logrus.WithFields(logrus.Fields{
		"campaign": campaignName,
		"terms":    len(topTerms),
	}).Info("advising: solicitando insights de campanha")

	content, err := s.client.CreateChatCompletion(systemPrompt, prompt)
	if err != nil {
		// O diagnóstico bruto do cliente segue no erro; o restante do
		// dashboard continua utilizável
		return "", errors.Wrap(err, "falha na requisição de insights")
	}

	return content, nil
}

// buildPrompt monta o prompt com o nome da campanha e a lista literal de
// termos, na ordem da visão de termos mais clicados.
func buildPrompt(campaignName string, topTerms []domain.TopTermRow) string {
	terms := make([]string, 0, len(topTerms))
	for _, term := range topTerms {
		terms = append(terms, term.SearchTerm)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a marketing strategist. These are the top search terms from campaign: %s.\n", campaignName)
	fmt.Fprintf(&b, "Search terms: [%s]\n\n", strings.Join(terms, ", "))
	b.WriteString("Provide actionable business suggestions:\n")
	b.WriteString("- What do these searches reveal about customer needs?\n")
	b.WriteString("- What services or content should the company improve?\n")
	b.WriteString("- What growth opportunities are visible?\n")
	b.WriteString("Keep it simple, clear, and focused ONLY on this campaign.\n")

	return b.String()
}

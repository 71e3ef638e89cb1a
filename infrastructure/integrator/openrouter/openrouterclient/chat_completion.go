package openrouterclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/keyword-intel-api/internal/config"
	"github.com/vfg2006/keyword-intel-api/pkg/utils"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CreateChatCompletion implementa a interface Client
func (c *OpenRouterClient) CreateChatCompletion(systemPrompt, userPrompt string) (string, error) {
	// A credencial é lida do cofre no momento da chamada e nunca logada
	apiKey, ok := c.secrets.Get(config.SecretOpenRouterAPIKey)
	if !ok || apiKey == "" {
		return "", ErrMissingCredential
	}

	payload := chatCompletionRequest{
		Model: c.cfg.OpenRouter.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens: c.cfg.OpenRouter.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar a requisição de chat completion")
	}

	req, err := http.NewRequest(http.MethodPost, c.cfg.OpenRouter.URL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "erro ao criar a requisição de chat completion")
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", c.cfg.OpenRouter.Referer)
	req.Header.Set("X-Title", c.cfg.OpenRouter.Title)

	logrus.WithFields(logrus.Fields{
		"model":      c.cfg.OpenRouter.Model,
		"max_tokens": c.cfg.OpenRouter.MaxTokens,
	}).Debug("openrouter: enviando requisição de chat completion")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "erro de transporte na chamada ao OpenRouter")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "erro ao ler a resposta do OpenRouter")
	}

	logrus.Debug("openrouter: resposta recebida:\n", utils.PrettyJson(raw))

	// A resposta bruta acompanha qualquer falha de formato para que o
	// diagnóstico chegue inteiro ao usuário
	var response chatCompletionResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return "", errors.Wrapf(err, "resposta do OpenRouter não é JSON válido: %s", string(raw))
	}

	if len(response.Choices) == 0 {
		return "", errors.Errorf("resposta do OpenRouter sem o campo choices: %s", string(raw))
	}

	return response.Choices[0].Message.Content, nil
}

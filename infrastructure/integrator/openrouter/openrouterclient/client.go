package openrouterclient

import (
	"errors"
	"net/http"
	"time"

	"github.com/vfg2006/keyword-intel-api/internal/config"
)

// ErrMissingCredential indica que a credencial do OpenRouter não está
// presente no cofre de secrets do processo.
var ErrMissingCredential = errors.New("credencial do OpenRouter ausente no cofre de secrets")

// Client define a interface do cliente de chat completions do OpenRouter
type Client interface {
	// CreateChatCompletion envia uma única requisição síncrona com as
	// mensagens de sistema e de usuário e devolve o texto da primeira
	// escolha retornada. Sem retry e sem streaming.
	CreateChatCompletion(systemPrompt, userPrompt string) (string, error)
}

type OpenRouterClient struct {
	httpClient *http.Client
	cfg        *config.Config
	secrets    config.SecretStorage
}

// NewClient cria uma nova instância do cliente do OpenRouter. O timeout
// limita a única chamada bloqueante de rede do serviço.
func NewClient(cfg *config.Config, secrets config.SecretStorage) Client {
	timeout := time.Duration(cfg.OpenRouter.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenRouterClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cfg:     cfg,
		secrets: secrets,
	}
}

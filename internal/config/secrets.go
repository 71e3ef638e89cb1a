package config

import (
	"sync"

	"github.com/spf13/viper"
)

// Nomes das secrets conhecidas pelo serviço
const (
	SecretOpenRouterAPIKey = "openrouter_api_key"
)

// SecretStorage é a interface de leitura de credenciais. As credenciais
// nunca entram na Config nem nos logs: quem precisa delas consulta o
// store no momento do uso.
type SecretStorage interface {
	Get(name string) (string, bool)
}

// SecretStore é um cofre de processo: as secrets são carregadas uma vez
// do ambiente na inicialização e mantidas apenas em memória.
type SecretStore struct {
	mu      sync.RWMutex
	secrets map[string]string
}

// NewSecretStore carrega as secrets conhecidas a partir do ambiente
func NewSecretStore() *SecretStore {
	store := &SecretStore{
		secrets: make(map[string]string),
	}

	if key := viper.GetString("OPENROUTER_API_KEY"); key != "" {
		store.secrets[SecretOpenRouterAPIKey] = key
	}

	return store
}

// Get retorna a secret pelo nome, se existir
func (s *SecretStore) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	secret, ok := s.secrets[name]
	return secret, ok
}

// Set adiciona ou substitui uma secret. Usado apenas em testes e na
// carga inicial.
func (s *SecretStore) Set(name, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.secrets[name] = content
}

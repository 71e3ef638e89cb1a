package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Upload         Upload         `mapstructure:",squash"`
	OpenRouter     OpenRouter     `mapstructure:",squash"`
	SessionCleanup SessionCleanup `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Upload struct {
	// Limite total em memória para o parse do multipart, em MB
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`
	// Linhas de metadados do exportador que precedem o cabeçalho do CSV
	MetadataLines int `mapstructure:"metadata_lines"`
}

type OpenRouter struct {
	URL            string `mapstructure:"openrouter_url"`
	Model          string `mapstructure:"openrouter_model"`
	Referer        string `mapstructure:"openrouter_referer"`
	Title          string `mapstructure:"openrouter_title"`
	MaxTokens      int    `mapstructure:"openrouter_max_tokens"`
	TimeoutSeconds int    `mapstructure:"openrouter_timeout_seconds"`
	// A credencial não fica na Config: é lida do SecretStore no momento
	// da chamada (ver secrets.go)
}

type SessionCleanup struct {
	CronSchedule string `mapstructure:"session_cleanup_cron"`
	TTLMinutes   int    `mapstructure:"session_ttl_minutes"`
	Enabled      bool   `mapstructure:"session_cleanup_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("MAX_UPLOAD_MB", 32)
	viper.SetDefault("METADATA_LINES", 2) // exportações do Google Ads têm 2 linhas de banner

	viper.SetDefault("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions")
	viper.SetDefault("OPENROUTER_MODEL", "meta-llama/llama-3.3-70b-instruct:free")
	viper.SetDefault("OPENROUTER_REFERER", "http://localhost")
	viper.SetDefault("OPENROUTER_TITLE", "Keyword Intelligence Dashboard")
	viper.SetDefault("OPENROUTER_MAX_TOKENS", 400)
	viper.SetDefault("OPENROUTER_TIMEOUT_SECONDS", 30)

	viper.SetDefault("SESSION_CLEANUP_CRON", "*/15 * * * *") // varredura a cada 15 minutos
	viper.SetDefault("SESSION_TTL_MINUTES", 240)
	viper.SetDefault("SESSION_CLEANUP_ENABLED", true)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}

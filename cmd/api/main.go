package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/keyword-intel-api/infrastructure/integrator/openrouter/openrouterclient"
	"github.com/vfg2006/keyword-intel-api/infrastructure/repository"
	"github.com/vfg2006/keyword-intel-api/internal/api"
	"github.com/vfg2006/keyword-intel-api/internal/config"
	"github.com/vfg2006/keyword-intel-api/internal/scheduler"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/advising"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/analyzing"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/covering"
	"github.com/vfg2006/keyword-intel-api/internal/usecases/ingesting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cofre de secrets do processo: a credencial do OpenRouter só é
	// lida daqui, no momento da chamada
	secrets := config.NewSecretStore()

	sessionRepo := repository.NewReportSessionRepository()

	ingestService := ingesting.NewService(cfg)
	analyzeService := analyzing.NewService()
	coverService := covering.NewService()

	openRouterClient := openrouterclient.NewClient(cfg, secrets)
	adviseService := advising.NewService(cfg, openRouterClient)

	// Varredura de sessão ociosa em background
	cleanupService := scheduler.NewSessionCleanupService(sessionRepo, cfg)
	if err := cleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar a varredura de sessão")
	} else {
		logrus.Info("Varredura de sessão iniciada com sucesso")
	}

	server, err := api.New(
		cfg,
		ingestService,
		analyzeService,
		coverService,
		adviseService,
		sessionRepo,
		cleanupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/infrastructure/portal"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/infrastructure/preferences"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/api"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/auth"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/config"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/dashboards"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/usecases/dashboarding"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/view"
)

func main() {
	// Inicializa configuração de logs
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
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	intervals, err := cfg.AutoRefresh.IntervalByDashboard()
	if err != nil {
		logrus.WithError(err).Fatal("AUTO_REFRESH_INTERVALS inválido")
	}

	portalClient := portal.NewClient(cfg.Portal)
	views := view.NewStore()

	registry, err := dashboards.NewRegistry(dashboards.Catalog(), dashboards.Deps{
		Source:       portalClient,
		Renderer:     views,
		CacheTTL:     cfg.Cache.TTL,
		CycleTimeout: cfg.Cache.CycleTimeout,
		Intervals:    intervals,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao montar o catálogo de dashboards")
	}

	prefs, closePrefs, err := preferences.NewStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir o armazenamento de preferências")
	}
	defer func() {
		if err := closePrefs(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar o armazenamento de preferências")
		}
	}()

	dashboardService := dashboarding.NewService(registry, views, prefs)
	if err := dashboardService.Start(ctx, cfg.AutoRefresh.Enabled); err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar os dashboards")
	}
	defer dashboardService.Stop()

	logrus.WithFields(logrus.Fields{
		"dashboards":   len(registry.All()),
		"auto_refresh": cfg.AutoRefresh.Enabled,
		"preferences":  cfg.Preferences.Driver,
	}).Info("Dashboards iniciados")

	validator := auth.NewValidator(cfg.Auth.Secret)

	server := api.New(cfg, dashboardService, validator)
	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

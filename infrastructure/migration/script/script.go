// Script que copia as preferências salvas em arquivos locais para o backend
// configurado em PREFERENCES_DRIVER (postgres ou redis).
package main

import (
	"context"
	"flag"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/infrastructure/preferences"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/config"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/dashboards"
)

func main() {
	sourceDir := flag.String("from", "", "diretório com os arquivos de preferências (padrão: PREFERENCES_DIR)")
	dryRun := flag.Bool("dry-run", false, "apenas lista o que seria migrado")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando migração de preferências...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	if cfg.Preferences.Driver == preferences.DriverFile || cfg.Preferences.Driver == "" {
		logrus.Fatal("PREFERENCES_DRIVER deve apontar para postgres ou redis")
	}

	dir := cfg.Preferences.Dir
	if *sourceDir != "" {
		dir = *sourceDir
	}

	source, err := preferences.NewFileStore(dir)
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	target, closeTarget, err := preferences.NewStore(ctx, cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer closeTarget()

	startTime := time.Now()
	migrated, skipped, failed := 0, 0, 0

	for _, def := range dashboards.Catalog() {
		logger := logrus.WithField("dashboard", def.Name)

		copied, err := migrate(ctx, source, target, def.Name, *dryRun)
		switch {
		case err != nil:
			failed++
			logger.WithError(err).Error("Falha ao migrar preferências")
		case !copied:
			skipped++
			logger.Debug("Sem preferências salvas")
		default:
			migrated++
			logger.Info("Preferências migradas")
		}
	}

	logrus.WithFields(logrus.Fields{
		"migradas":  migrated,
		"ignoradas": skipped,
		"falhas":    failed,
		"dry_run":   *dryRun,
		"duracao":   time.Since(startTime).String(),
	}).Info("Migração concluída")

	if failed > 0 {
		logrus.Fatal("Migração terminou com falhas")
	}
}

func migrate(ctx context.Context, source, target preferences.Store, dashboard string, dryRun bool) (bool, error) {
	prefs, err := source.Load(ctx, dashboard)
	if errors.Is(err, preferences.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if dryRun {
		return true, nil
	}
	return true, target.Save(ctx, dashboard, prefs)
}

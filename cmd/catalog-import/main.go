package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/tair/smartskin/internal/catalog/domain"
	catalogrepo "github.com/tair/smartskin/internal/catalog/repository"
	"github.com/tair/smartskin/internal/config"
	"github.com/tair/smartskin/internal/suitability"
	"github.com/tair/smartskin/pkg/database"
	"github.com/tair/smartskin/pkg/logger"
)

func main() {
	cfg := config.Load()
	// COPY is Postgres-only.
	cfg.Database.Driver = database.DriverPostgres

	csvPath := flag.String("csv", cfg.CatalogPath, "catalog CSV to import")
	modelsDir := flag.String("models", cfg.ModelsDir, "directory for the fitted vectorizer")
	saveVectorizer := flag.Bool("save-vectorizer", false, "fit the TF-IDF vectorizer on the catalog and store it in -models")
	flag.Parse()

	logger.Init("catalog-import", cfg.Development())
	logger.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	entries, err := catalogrepo.NewCSVSource(*csvPath).Load(ctx)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("path", *csvPath).Msg("Failed to read catalog")
	}
	logger.Logger.Info().Int("rows", len(entries)).Str("path", *csvPath).Msg("Catalog parsed")

	// Create the table through gorm so its schema matches what the service reads.
	gormDB, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := catalogrepo.NewGormCatalogRepository(gormDB).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate catalog table")
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	n, err := catalogrepo.NewCopyImporter(db).Import(ctx, entries)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Catalog import failed")
	}
	logger.Logger.Info().Int("rows", n).Msg("Catalog imported")

	if *saveVectorizer {
		if err := writeVectorizer(*modelsDir, entries); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to store vectorizer")
		}
	}
}

func writeVectorizer(dir string, entries []domain.Entry) error {
	corpus := make([]string, len(entries))
	for i, e := range entries {
		corpus[i] = e.Ingredients
	}
	v := suitability.NewVectorizer(suitability.DefaultConfig())
	if err := v.Fit(corpus); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, suitability.VectorizerFile)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := v.Save(f); err != nil {
		f.Close()
		return err
	}
	logger.Logger.Info().Str("path", path).Int("features", v.Dimension()).Msg("Vectorizer stored")
	return f.Close()
}

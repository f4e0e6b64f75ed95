package main

import (
	"errors"
	"os"

	"foreclosure-scraper/config"
	"foreclosure-scraper/models"
	"foreclosure-scraper/scraper/civilview"
	"foreclosure-scraper/services"
	"foreclosure-scraper/storage"
	"foreclosure-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Foreclosure Scraping System starting ===")
	logger.Info("Config — city: %s | cache dir: %s | cache expiry: %v | wait timeout: %v",
		cfg.TargetCity, cfg.CacheDir, cfg.CacheExpiry, cfg.WaitTimeout)

	if cfg.AirtableAPIKey == "" {
		logger.Error("AIRTABLE_API_KEY environment variable is not set")
		logger.Error("Please create a .env file with your Airtable API key")
		os.Exit(1)
	}

	cache, err := storage.NewHTMLCache(cfg.CacheDir, cfg.CacheExpiry, logger)
	if err != nil {
		logger.Error("Failed to create cache directory: %v", err)
		os.Exit(1)
	}

	store, err := storage.NewAirtableClient(cfg.AirtableAPIKey, cfg.AirtableBaseID, cfg.AirtableTableID)
	if err != nil {
		logger.Error("Failed to create Airtable client: %v", err)
		os.Exit(1)
	}

	manager, err := services.NewUpsertManager(store, logger)
	if err != nil {
		logger.Error("Failed to create upsert manager: %v", err)
		os.Exit(1)
	}

	logger.Info("Fetching property details")
	fetcher := civilview.New(cfg, logger, cache)
	pages, err := fetcher.FetchAll()
	if err != nil {
		logger.Error("Fetch failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Retrieved %d property detail pages", len(pages))

	parser := services.NewParser(logger)

	var processed []*models.PropertyRecord
	var created, updated, failed int

	for _, html := range pages {
		details, history, err := parser.Parse(html)
		if err != nil {
			logger.Error("Failed to parse property page: %v", err)
			failed++
			continue
		}

		action, err := manager.CreateOrUpdate(details, history)
		if err != nil {
			if errors.Is(err, services.ErrMissingSheriffNumber) {
				logger.Error("Failed to process property: %v", err)
			} else {
				logger.Error("Failed to store property %s: %v",
					details[models.FieldSheriffNumber], err)
			}
			failed++
			continue
		}

		switch action {
		case services.ActionCreated:
			created++
		case services.ActionUpdated:
			updated++
		}
		processed = append(processed, &models.PropertyRecord{Details: details, History: history})
	}

	writeSnapshots(cfg, logger, processed)

	logger.Info("Property scraping process completed")
	logger.Info("Successfully processed: %d properties", len(processed))
	if failed > 0 {
		logger.Warn("Failed to process: %d properties", failed)
	}

	summary := services.NewSummaryService(logger)
	summary.Print(summary.Generate(processed, created, updated, failed))
}

// writeSnapshots persists the optional per-run artifacts: a CSV of parsed
// records, and the local Postgres archive when enabled. Both are best-effort;
// failures are logged without affecting the run outcome.
func writeSnapshots(cfg *config.Config, logger *utils.Logger, records []*models.PropertyRecord) {
	if len(records) == 0 {
		return
	}

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
	} else {
		defer csvWriter.Close()
		if err := csvWriter.Write(records); err != nil {
			logger.Error("CSV write failed: %v", err)
		} else {
			logger.Info("Parsed records saved to %s", cfg.CSVOutputPath)
		}
	}

	if !cfg.ArchiveEnabled {
		return
	}

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), logger)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL archive: %v", err)
		return
	}
	defer pgWriter.Close()

	if err := pgWriter.Write(records); err != nil {
		logger.Error("PostgreSQL archive write failed: %v", err)
	} else {
		logger.Info("Records archived in PostgreSQL (table: properties)")
	}
}

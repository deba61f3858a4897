// Command tally stages statement rows delivered on stdin (already split
// into CSV records by the shell pipeline), commits them to an in-memory
// ledger using the persisted categories and rules, and prints a JSON report
// with per-category totals, percentages and limit statuses.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"tally/internal/config"
	"tally/internal/database"
	"tally/internal/importer"
	"tally/internal/logger"
	"tally/internal/models"
	"tally/internal/services"
	"tally/internal/storage"
	"tally/internal/validator"
)

// currencyFormatKey is where the chosen format is remembered between runs.
const currencyFormatKey = "currency_format"

// formatInput validates a currency format read back from persisted settings.
type formatInput struct {
	Format string `validate:"required,currency_format"`
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

// report is the JSON document printed for the caller to render or persist.
type report struct {
	Batch       *models.ImportBatch    `json:"batch"`
	Records     []models.StagingRecord `json:"records"`
	Totals      map[string]float64     `json:"totals"`
	Percentages map[string]float64     `json:"percentages"`
	Limits      []models.LimitStatus   `json:"limits,omitempty"`
	Format      models.CurrencyFormat  `json:"format"`
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open settings database: %w", err)
	}
	defer dbManager.Close()

	store, err := storage.NewGormStore(dbManager.DB())
	if err != nil {
		return fmt.Errorf("failed to prepare settings store: %w", err)
	}
	kv := storage.NewGormKV(dbManager.DB())

	categorySvc, err := services.NewCategoryService(store)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	format := appConfig.CurrencyFormat
	if saved, ok, kvErr := kv.Get(currencyFormatKey); kvErr == nil && ok {
		// The persisted value is untrusted; ignore anything but a known format.
		input := formatInput{Format: saved}
		if err := validator.Get().Struct(input); err == nil {
			format = models.CurrencyFormat(saved)
		} else {
			logger.Get().Warnf("ignoring persisted currency format %q", saved)
		}
	}

	session, err := importer.FromSource(csvSource{r: os.Stdin}, format, importer.Options{
		Categories: categorySvc.Categories(),
		Rules:      categorySvc.Rules(),
	})
	if err != nil {
		return err
	}

	ledger := services.NewLedgerService(appConfig.HistoryLimit, appConfig.AmountFilterMode)
	txs, batch := session.Commit("stdin")
	if err := ledger.AppendBatch(txs, batch); err != nil {
		return err
	}

	categories := categorySvc.Categories()
	order := make([]string, len(categories))
	for i, cat := range categories {
		order[i] = cat.ID
	}
	totals := services.CategoryTotals(ledger.Transactions(), categories)

	out := report{
		Batch:       batch,
		Records:     session.Records(),
		Totals:      totals,
		Percentages: services.Percentages(totals, order),
		Limits:      services.NewLimitEvaluator(categorySvc.Limits()).CheckAll(totals),
		Format:      format,
	}

	if err := kv.Set(currencyFormatKey, string(format)); err != nil {
		// The report is still useful when remembering the format fails.
		logger.Get().Warnf("failed to persist currency format: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// csvSource adapts stdin to the importer's RowSource contract.
type csvSource struct {
	r io.Reader
}

func (s csvSource) Name() string { return "stdin" }

func (s csvSource) Rows() ([][]string, error) {
	reader := csv.NewReader(s.r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

// Package importer turns raw statement rows into validated staging records
// awaiting review, and commits accepted records into ledger transactions.
package importer

import (
	"fmt"
	"strings"

	"tally/internal/logger"
	"tally/internal/models"
	"tally/internal/money"
	"tally/internal/rules"
	"tally/internal/uuid"

	apperrors "tally/internal/errors"
)

// RowSource supplies raw statement rows. Field/row splitting (CSV, XLSX)
// happens on the caller's side; the importer never touches files.
type RowSource interface {
	// Name identifies the source (typically the original filename).
	Name() string
	// Rows materializes the full row set. A non-nil error is fatal for the
	// whole import.
	Rows() ([][]string, error)
}

// Options carries the read-only collections consulted while staging.
type Options struct {
	// Categories resolves the category cell, by exact id first and then by
	// case-insensitive name.
	Categories []models.Category
	// Rules auto-assigns a candidate category to records whose category
	// cell did not resolve.
	Rules []models.AutoCategoryRule
}

// Session is the result of staging one row set. It keeps the ordered
// records together with running valid/invalid counts and a decimal-safe
// running total of valid amounts, all maintained incrementally.
type Session struct {
	format  models.CurrencyFormat
	records []models.StagingRecord

	validCount   int
	invalidCount int
	total        float64

	headerDetected bool
}

// Stage parses the full row set into a review session. Malformed rows never
// abort the batch; they become invalid records carrying an error kind.
func Stage(rows [][]string, format models.CurrencyFormat, opts Options) *Session {
	s := &Session{format: format}

	cols := positionalColumns()
	start := 0
	if len(rows) > 0 {
		if detected, ok := detectHeader(rows[0]); ok {
			cols = detected
			s.headerDetected = true
			start = 1
		}
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if skippable(row) {
			continue
		}
		rec := s.stageRow(i+1, row, cols, opts)
		s.records = append(s.records, rec)
		s.apply(rec, +1)
	}
	return s
}

// FromSource stages every row the source delivers. A fatal read failure
// abandons the import entirely: no partial staging state is retained and the
// caller is notified once through ErrParseAbort.
func FromSource(src RowSource, format models.CurrencyFormat, opts Options) (*Session, error) {
	rows, err := src.Rows()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrParseAbort, err)
	}
	s := Stage(rows, format, opts)
	logger.Get().Infow("staged import",
		"source", src.Name(),
		"valid", s.validCount,
		"invalid", s.invalidCount,
		"total", s.total,
	)
	return s, nil
}

// skippable reports whether a row carries no data at all: at most one cell,
// and that cell blank.
func skippable(row []string) bool {
	if len(row) == 0 {
		return true
	}
	return len(row) == 1 && strings.TrimSpace(row[0]) == ""
}

func (s *Session) stageRow(line int, row []string, cols columnMap, opts Options) models.StagingRecord {
	rec := models.StagingRecord{
		Line:      line,
		RawDate:   strings.TrimSpace(cellAt(row, cols.date)),
		RawTitle:  strings.TrimSpace(cellAt(row, cols.title)),
		RawAmount: strings.TrimSpace(cellAt(row, cols.amount)),
	}

	amount, amountOK := money.Parse(rec.RawAmount, s.format)

	switch {
	case rec.RawDate == "":
		rec.Error = models.RowErrorMissingDate
	case rec.RawTitle == "":
		rec.Error = models.RowErrorMissingTitle
	case !amountOK:
		rec.Error = models.RowErrorInvalidAmount
	default:
		rec.Valid = true
		rec.Amount = amount
	}

	rec.CategoryID = resolveCategory(cellAt(row, cols.category), opts.Categories)
	if rec.CategoryID == nil {
		rec.CategoryID = rules.Match(rec.RawTitle, opts.Rules)
	}
	rec.Tags = splitTags(cellAt(row, cols.tags))
	return rec
}

// resolveCategory resolves a category cell by exact id match first, then by
// case-insensitive exact name match. Unresolved cells stay nil.
func resolveCategory(cell string, categories []models.Category) *string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	for i := range categories {
		if categories[i].ID == cell {
			id := categories[i].ID
			return &id
		}
	}
	for i := range categories {
		if strings.EqualFold(categories[i].Name, cell) {
			id := categories[i].ID
			return &id
		}
	}
	return nil
}

// splitTags comma-splits a tags cell, trimming entries and dropping empties.
func splitTags(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(cell, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// apply updates the running aggregates for a record entering (sign +1) or
// leaving (sign -1) the session.
func (s *Session) apply(rec models.StagingRecord, sign int) {
	if rec.Valid {
		s.validCount += sign
		s.total = money.Add(s.total, float64(sign)*rec.Amount)
	} else {
		s.invalidCount += sign
	}
}

// Records returns the ordered staging records.
func (s *Session) Records() []models.StagingRecord { return s.records }

// ValidCount returns the number of valid records currently staged.
func (s *Session) ValidCount() int { return s.validCount }

// InvalidCount returns the number of invalid records currently staged.
func (s *Session) InvalidCount() int { return s.invalidCount }

// Total returns the decimal-safe running total of valid amounts.
func (s *Session) Total() float64 { return s.total }

// HeaderDetected reports whether row 0 was consumed as a header row.
func (s *Session) HeaderDetected() bool { return s.headerDetected }

// SetCategory overrides the candidate category of the record at the given
// line during review.
func (s *Session) SetCategory(line int, categoryID *string) bool {
	for i := range s.records {
		if s.records[i].Line == line {
			s.records[i].CategoryID = categoryID
			return true
		}
	}
	return false
}

// Remove discards the record at the given line, updating the running counts
// and total without re-scanning the session.
func (s *Session) Remove(line int) bool {
	for i := range s.records {
		if s.records[i].Line == line {
			s.apply(s.records[i], -1)
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Commit turns the valid staging records into ledger transactions grouped
// under a new import batch. Invalid records are reported on the batch but
// never block the valid ones: the batch status is "partial" when both kinds
// are present and "error" when nothing was importable.
func (s *Session) Commit(filename string) ([]models.Transaction, *models.ImportBatch) {
	batch := &models.ImportBatch{
		ID:         uuid.New(),
		Filename:   filename,
		ItemCount:  s.validCount,
		TotalValue: s.total,
	}

	var txs []models.Transaction
	for _, rec := range s.records {
		if !rec.Valid {
			batch.Errors = append(batch.Errors,
				fmt.Sprintf("line %d: %s", rec.Line, rec.Error))
			continue
		}
		batchID := batch.ID
		tx := models.Transaction{
			ID:            uuid.New(),
			Date:          rec.RawDate,
			Title:         rec.RawTitle,
			Amount:        rec.Amount,
			CategoryID:    rec.CategoryID,
			Tags:          rec.Tags,
			ImportBatchID: &batchID,
		}
		txs = append(txs, tx)
		batch.TransactionIDs = append(batch.TransactionIDs, tx.ID)
	}

	switch {
	case s.validCount == 0:
		batch.Status = models.ImportStatusError
	case s.invalidCount > 0:
		batch.Status = models.ImportStatusPartial
	default:
		batch.Status = models.ImportStatusSuccess
	}
	return txs, batch
}

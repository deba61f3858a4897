package importer

import (
	"errors"
	"testing"

	apperrors "tally/internal/errors"
	"tally/internal/models"
)

func TestDetectHeader(t *testing.T) {
	t.Run("two or more matches is a header", func(t *testing.T) {
		cols, ok := detectHeader([]string{"Date", "Description", "Amount"})
		if !ok {
			t.Fatal("expected header detection")
		}
		if cols.date != 0 || cols.title != 1 || cols.amount != 2 {
			t.Errorf("unexpected column map: %+v", cols)
		}
	})

	t.Run("portuguese headers", func(t *testing.T) {
		cols, ok := detectHeader([]string{"Data", "Descrição", "Valor", "Categoria", "Tags"})
		if !ok {
			t.Fatal("expected header detection")
		}
		if cols.category != 3 || cols.tags != 4 {
			t.Errorf("unexpected column map: %+v", cols)
		}
	})

	t.Run("single match falls back to positional", func(t *testing.T) {
		cols, ok := detectHeader([]string{"Date", "foo", "bar"})
		if ok {
			t.Fatal("expected positional fallback")
		}
		if cols.date != 0 || cols.title != 1 || cols.amount != 2 || cols.category != -1 {
			t.Errorf("unexpected column map: %+v", cols)
		}
	})

	t.Run("no matches falls back to positional", func(t *testing.T) {
		if _, ok := detectHeader([]string{"2023-01-01", "Supermarket", "-150,00"}); ok {
			t.Fatal("data row misread as header")
		}
	})
}

func TestStage(t *testing.T) {
	t.Run("positional rows", func(t *testing.T) {
		rows := [][]string{
			{"2023-01-01", "Supermarket", "-150,00"},
			{"2023-01-05", "Salary", "5000,00"},
		}
		s := Stage(rows, models.FormatPTBR, Options{})

		if s.HeaderDetected() {
			t.Fatal("no header should be detected")
		}
		recs := s.Records()
		if len(recs) != 2 {
			t.Fatalf("expected 2 records, got %d", len(recs))
		}
		if !recs[0].Valid || recs[0].Amount != -150 {
			t.Errorf("record 0: %+v", recs[0])
		}
		if !recs[1].Valid || recs[1].Amount != 5000 {
			t.Errorf("record 1: %+v", recs[1])
		}
		if recs[0].CategoryID != nil || recs[1].CategoryID != nil {
			t.Error("expected nil category ids without rules")
		}
		if s.ValidCount() != 2 || s.InvalidCount() != 0 {
			t.Errorf("counts: valid=%d invalid=%d", s.ValidCount(), s.InvalidCount())
		}
		if s.Total() != 4850 {
			t.Errorf("expected running total 4850, got %v", s.Total())
		}
	})

	t.Run("rule auto-resolves candidate category", func(t *testing.T) {
		rows := [][]string{
			{"2023-01-01", "Supermarket", "-150,00"},
			{"2023-01-05", "Salary", "5000,00"},
		}
		opts := Options{Rules: []models.AutoCategoryRule{
			{Term: "market", CategoryID: "C1", Active: true},
		}}
		s := Stage(rows, models.FormatPTBR, opts)

		recs := s.Records()
		if recs[0].CategoryID == nil || *recs[0].CategoryID != "C1" {
			t.Errorf("expected C1 on record 0, got %v", recs[0].CategoryID)
		}
		if recs[1].CategoryID != nil {
			t.Errorf("expected nil on record 1, got %v", *recs[1].CategoryID)
		}
	})

	t.Run("header row with category and tags cells", func(t *testing.T) {
		cat := models.Category{Name: "Groceries"}
		cat.ID = "CAT-1"
		rows := [][]string{
			{"Date", "Description", "Amount", "Category", "Tags"},
			{"2023-01-01", "Supermarket", "-150.00", "groceries", "food, weekly, "},
		}
		s := Stage(rows, models.FormatENUS, Options{Categories: []models.Category{cat}})

		if !s.HeaderDetected() {
			t.Fatal("expected header detection")
		}
		recs := s.Records()
		if len(recs) != 1 {
			t.Fatalf("expected 1 record, got %d", len(recs))
		}
		if recs[0].CategoryID == nil || *recs[0].CategoryID != "CAT-1" {
			t.Errorf("expected case-insensitive name resolution, got %v", recs[0].CategoryID)
		}
		if len(recs[0].Tags) != 2 || recs[0].Tags[0] != "food" || recs[0].Tags[1] != "weekly" {
			t.Errorf("unexpected tags: %v", recs[0].Tags)
		}
	})

	t.Run("validation error kinds", func(t *testing.T) {
		rows := [][]string{
			{"", "No date", "10,00"},
			{"2023-01-01", "", "10,00"},
			{"2023-01-01", "Bad amount", "abc"},
		}
		s := Stage(rows, models.FormatPTBR, Options{})

		recs := s.Records()
		wants := []models.RowErrorKind{
			models.RowErrorMissingDate,
			models.RowErrorMissingTitle,
			models.RowErrorInvalidAmount,
		}
		for i, want := range wants {
			if recs[i].Valid {
				t.Errorf("record %d should be invalid", i)
			}
			if recs[i].Error != want {
				t.Errorf("record %d: expected %s, got %s", i, want, recs[i].Error)
			}
		}
		if s.ValidCount() != 0 || s.InvalidCount() != 3 {
			t.Errorf("counts: valid=%d invalid=%d", s.ValidCount(), s.InvalidCount())
		}
	})

	t.Run("blank single-cell rows are skipped", func(t *testing.T) {
		rows := [][]string{
			{""},
			{"2023-01-01", "Salary", "5000,00"},
			{"   "},
		}
		s := Stage(rows, models.FormatPTBR, Options{})
		if len(s.Records()) != 1 {
			t.Fatalf("expected 1 record, got %d", len(s.Records()))
		}
	})
}

func TestSessionRemove(t *testing.T) {
	rows := [][]string{
		{"2023-01-01", "Supermarket", "-150,00"},
		{"2023-01-05", "Salary", "5000,00"},
		{"2023-01-06", "Broken", "xx"},
	}
	s := Stage(rows, models.FormatPTBR, Options{})

	if !s.Remove(1) { // the -150 record, staged from row 0 (line 1)
		t.Fatal("expected removal")
	}
	if s.ValidCount() != 1 || s.InvalidCount() != 1 {
		t.Errorf("counts after remove: valid=%d invalid=%d", s.ValidCount(), s.InvalidCount())
	}
	if s.Total() != 5000 {
		t.Errorf("expected total 5000, got %v", s.Total())
	}

	if !s.Remove(3) { // invalid record
		t.Fatal("expected removal")
	}
	if s.InvalidCount() != 0 {
		t.Errorf("expected 0 invalid, got %d", s.InvalidCount())
	}
	if s.Remove(99) {
		t.Error("removing an unknown line should report false")
	}
}

func TestCommit(t *testing.T) {
	t.Run("success batch", func(t *testing.T) {
		rows := [][]string{
			{"2023-01-01", "Supermarket", "-150,00"},
			{"2023-01-05", "Salary", "5000,00"},
		}
		s := Stage(rows, models.FormatPTBR, Options{})
		txs, batch := s.Commit("statement.csv")

		if batch.Status != models.ImportStatusSuccess {
			t.Errorf("expected success, got %s", batch.Status)
		}
		if batch.ItemCount != 2 || batch.TotalValue != 4850 {
			t.Errorf("batch: %+v", batch)
		}
		if len(txs) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(txs))
		}
		for i, tx := range txs {
			if tx.ID == "" {
				t.Errorf("transaction %d missing id", i)
			}
			if tx.ImportBatchID == nil || *tx.ImportBatchID != batch.ID {
				t.Errorf("transaction %d not linked to batch", i)
			}
		}
		if len(batch.TransactionIDs) != 2 {
			t.Errorf("expected 2 linked ids, got %d", len(batch.TransactionIDs))
		}
	})

	t.Run("partial batch reports row errors", func(t *testing.T) {
		rows := [][]string{
			{"2023-01-01", "OK", "10,00"},
			{"", "No date", "10,00"},
		}
		s := Stage(rows, models.FormatPTBR, Options{})
		txs, batch := s.Commit("mixed.csv")

		if batch.Status != models.ImportStatusPartial {
			t.Errorf("expected partial, got %s", batch.Status)
		}
		if len(txs) != 1 || len(batch.Errors) != 1 {
			t.Errorf("txs=%d errors=%v", len(txs), batch.Errors)
		}
	})

	t.Run("all invalid is an error batch", func(t *testing.T) {
		s := Stage([][]string{{"", "", ""}}, models.FormatPTBR, Options{})
		txs, batch := s.Commit("bad.csv")
		if batch.Status != models.ImportStatusError || len(txs) != 0 {
			t.Errorf("status=%s txs=%d", batch.Status, len(txs))
		}
	})
}

type stubSource struct {
	rows [][]string
	err  error
}

func (s stubSource) Name() string { return "stub.csv" }
func (s stubSource) Rows() ([][]string, error) { return s.rows, s.err }

func TestFromSource(t *testing.T) {
	t.Run("fatal read error aborts the import", func(t *testing.T) {
		_, err := FromSource(stubSource{err: errors.New("disk gone")}, models.FormatPTBR, Options{})
		if err == nil {
			t.Fatal("expected error")
		}
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != "PARSE_ABORT" {
			t.Fatalf("expected PARSE_ABORT, got %v", err)
		}
	})

	t.Run("delivers staged session", func(t *testing.T) {
		s, err := FromSource(stubSource{rows: [][]string{{"2023-01-01", "Salary", "5000,00"}}}, models.FormatPTBR, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.ValidCount() != 1 {
			t.Errorf("expected 1 valid record, got %d", s.ValidCount())
		}
	})
}

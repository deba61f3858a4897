package services

import (
	"strings"
	"time"

	apperrors "tally/internal/errors"
	"tally/internal/history"
	"tally/internal/logger"
	"tally/internal/models"
	"tally/internal/pagination"
	"tally/internal/uuid"
	"tally/internal/validator"
)

// ledgerState is one snapshot of everything the ledger owns: the committed
// transactions plus the import-batch registry. Both travel through the
// history manager together, so undo and redo keep a reverted batch and its
// transactions consistent with each other.
type ledgerState struct {
	Transactions []models.Transaction
	Batches      map[string]models.ImportBatch
}

// clone deep-copies the state so mutations never alias history entries.
// Batch values are copied by assignment; their slices are never mutated
// after registration.
func (st ledgerState) clone() ledgerState {
	out := ledgerState{
		Transactions: models.CloneTransactions(st.Transactions),
		Batches:      make(map[string]models.ImportBatch, len(st.Batches)),
	}
	if out.Transactions == nil {
		out.Transactions = []models.Transaction{}
	}
	for id, batch := range st.Batches {
		out.Batches[id] = batch
	}
	return out
}

// ledgerService owns the committed transaction collection. Every mutation
// builds a fresh snapshot and records it in the history manager, so undo and
// redo can retain and compare prior snapshots without aliasing. The service
// assumes a single logical owner; concurrent callers need external
// synchronization.
type ledgerService struct {
	history    *history.Manager[ledgerState]
	filterMode models.AmountFilterMode
}

// NewLedgerService creates an empty ledger with the given history bound
// (0 means the default of 50) and amount-filter mode.
func NewLedgerService(historyLimit int, filterMode models.AmountFilterMode) LedgerServicer {
	initial := ledgerState{
		Transactions: []models.Transaction{},
		Batches:      map[string]models.ImportBatch{},
	}
	return &ledgerService{
		history:    history.New(initial, historyLimit),
		filterMode: filterMode,
	}
}

// AddTransaction appends a manually entered transaction.
func (s *ledgerService) AddTransaction(date, title string, amount float64, categoryID *string, tags []string) (*models.Transaction, error) {
	date = strings.TrimSpace(date)
	title = strings.TrimSpace(title)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be an ISO date (YYYY-MM-DD)")
	}
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}

	tx := models.Transaction{
		ID:         uuid.New(),
		Date:       date,
		Title:      title,
		Amount:     amount,
		CategoryID: categoryID,
		Tags:       normalizeTags(tags),
	}

	next := s.snapshot()
	next.Transactions = append(next.Transactions, tx)
	s.history.Push(next)
	return &tx, nil
}

// AppendBatch commits the transactions produced by one import into the
// ledger and registers the batch for later revert, in one history step.
func (s *ledgerService) AppendBatch(txs []models.Transaction, batch *models.ImportBatch) error {
	if batch == nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "batch is required")
	}
	if _, exists := s.history.Present().Batches[batch.ID]; exists {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "batch already committed")
	}

	next := s.snapshot()
	next.Transactions = append(next.Transactions, models.CloneTransactions(txs)...)
	next.Batches[batch.ID] = *batch
	s.history.Push(next)

	logger.Get().Infow("committed import batch",
		"batch_id", batch.ID,
		"filename", batch.Filename,
		"items", batch.ItemCount,
		"status", batch.Status,
	)
	return nil
}

// RevertBatch atomically removes every transaction created by the batch and
// unregisters the batch, in one history step. Undoing the revert restores
// both.
func (s *ledgerService) RevertBatch(batchID string) error {
	next := s.snapshot()
	batch, ok := next.Batches[batchID]
	if !ok {
		return apperrors.ErrBatchNotFound
	}

	kept := next.Transactions[:0]
	for _, tx := range next.Transactions {
		if tx.ImportBatchID == nil || *tx.ImportBatchID != batchID {
			kept = append(kept, tx)
		}
	}
	next.Transactions = append([]models.Transaction{}, kept...)
	delete(next.Batches, batchID)
	s.history.Push(next)

	logger.Get().Infow("reverted import batch", "batch_id", batchID, "filename", batch.Filename)
	return nil
}

// Batch returns a committed batch by id, as of the present snapshot.
func (s *ledgerService) Batch(batchID string) (*models.ImportBatch, error) {
	batch, ok := s.history.Present().Batches[batchID]
	if !ok {
		return nil, apperrors.ErrBatchNotFound
	}
	return &batch, nil
}

// Categorize assigns (or clears, when categoryID is nil) the category of
// every listed transaction in one history step.
func (s *ledgerService) Categorize(ids []string, categoryID *string) error {
	return s.mutateByID(ids, func(tx *models.Transaction) {
		if categoryID == nil {
			tx.CategoryID = nil
			return
		}
		id := *categoryID
		tx.CategoryID = &id
	})
}

// Tag appends the given tags to every listed transaction, preserving order
// and dropping duplicates, in one history step.
func (s *ledgerService) Tag(ids []string, tags []string) error {
	cleaned := normalizeTags(tags)
	if len(cleaned) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one tag is required")
	}
	return s.mutateByID(ids, func(tx *models.Transaction) {
		tx.Tags = normalizeTags(append(tx.Tags, cleaned...))
	})
}

// Delete removes the listed transactions in one history step.
func (s *ledgerService) Delete(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	wanted := idSet(ids)
	next := s.snapshot()
	kept := next.Transactions[:0]
	removed := 0
	for _, tx := range next.Transactions {
		if wanted[tx.ID] {
			removed++
			continue
		}
		kept = append(kept, tx)
	}
	if removed != len(wanted) {
		return apperrors.ErrTransactionNotFound
	}
	next.Transactions = append([]models.Transaction{}, kept...)
	s.history.Push(next)
	return nil
}

// ClearCategory nils the category reference on every transaction pointing at
// categoryID and returns how many were touched. Used after a category is
// deleted.
func (s *ledgerService) ClearCategory(categoryID string) int {
	next := s.snapshot()
	touched := 0
	for i := range next.Transactions {
		if next.Transactions[i].CategoryID != nil && *next.Transactions[i].CategoryID == categoryID {
			next.Transactions[i].CategoryID = nil
			touched++
		}
	}
	if touched > 0 {
		s.history.Push(next)
	}
	return touched
}

// Undo restores the previous ledger snapshot, batch registry included. ok is
// false when there is nothing to undo.
func (s *ledgerService) Undo() ([]models.Transaction, bool) {
	snap, ok := s.history.Undo()
	if !ok {
		return nil, false
	}
	return models.CloneTransactions(snap.Transactions), true
}

// Redo restores the next ledger snapshot, batch registry included. ok is
// false when there is nothing to redo.
func (s *ledgerService) Redo() ([]models.Transaction, bool) {
	snap, ok := s.history.Redo()
	if !ok {
		return nil, false
	}
	return models.CloneTransactions(snap.Transactions), true
}

// Transactions returns a copy of the current ledger snapshot.
func (s *ledgerService) Transactions() []models.Transaction {
	return models.CloneTransactions(s.history.Present().Transactions)
}

// List returns one page of the ledger, filtered by date range, category and
// amount bounds. Amount bounds follow the configured filter mode. Page
// parameters outside their validated bounds fall back to the defaults.
func (s *ledgerService) List(page pagination.PageRequest, filter TransactionFilter) pagination.PageResponse[models.Transaction] {
	if err := validator.Get().Struct(page); err != nil {
		page = pagination.PageRequest{}
	}

	filtered := models.CloneTransactions(s.history.Present().Transactions)

	if filter.FromDate != nil || filter.ToDate != nil || filter.CategoryID != nil {
		kept := filtered[:0]
		for _, tx := range filtered {
			if filter.FromDate != nil && tx.Date < *filter.FromDate {
				continue
			}
			if filter.ToDate != nil && tx.Date > *filter.ToDate {
				continue
			}
			if filter.CategoryID != nil && (tx.CategoryID == nil || *tx.CategoryID != *filter.CategoryID) {
				continue
			}
			kept = append(kept, tx)
		}
		filtered = kept
	}
	filtered = FilterByAmount(filtered, filter.MinAmount, filter.MaxAmount, s.filterMode)

	return pagination.Paginate(filtered, page)
}

// snapshot deep-copies the present ledger state so mutations never alias
// history entries.
func (s *ledgerService) snapshot() ledgerState {
	return s.history.Present().clone()
}

// mutateByID applies fn to each listed transaction inside a single snapshot
// push. Unknown ids fail the whole mutation.
func (s *ledgerService) mutateByID(ids []string, fn func(*models.Transaction)) error {
	if len(ids) == 0 {
		return nil
	}
	wanted := idSet(ids)
	next := s.snapshot()
	found := 0
	for i := range next.Transactions {
		if wanted[next.Transactions[i].ID] {
			fn(&next.Transactions[i])
			found++
		}
	}
	if found != len(wanted) {
		return apperrors.ErrTransactionNotFound
	}
	s.history.Push(next)
	return nil
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// normalizeTags trims entries, drops empties and removes duplicates while
// preserving first-seen order.
func normalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	return out
}

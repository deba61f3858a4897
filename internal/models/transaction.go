package models

// Transaction represents one committed ledger entry.
type Transaction struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"` // ISO 8601 date (YYYY-MM-DD)
	Title         string   `json:"title"`
	Amount        float64  `json:"amount"` // signed; expenses negative
	CategoryID    *string  `json:"category_id,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	ImportBatchID *string  `json:"import_batch_id,omitempty"`
}

// Clone returns a deep copy of the transaction. Ledger snapshots must not
// alias tag slices across history entries.
func (t Transaction) Clone() Transaction {
	out := t
	if t.CategoryID != nil {
		id := *t.CategoryID
		out.CategoryID = &id
	}
	if t.ImportBatchID != nil {
		id := *t.ImportBatchID
		out.ImportBatchID = &id
	}
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	return out
}

// CloneTransactions deep-copies a transaction slice.
func CloneTransactions(txs []Transaction) []Transaction {
	if txs == nil {
		return nil
	}
	out := make([]Transaction, len(txs))
	for i, t := range txs {
		out[i] = t.Clone()
	}
	return out
}

package models

// RowErrorKind classifies why a staged row failed validation. Row problems
// are data on the record, never returned as errors: malformed rows must not
// abort an import.
type RowErrorKind string

const (
	RowErrorNone          RowErrorKind = ""
	RowErrorMissingDate   RowErrorKind = "missing_date"
	RowErrorMissingTitle  RowErrorKind = "missing_title"
	RowErrorInvalidAmount RowErrorKind = "invalid_amount"
)

// StagingRecord is a provisional parsed row awaiting review. It lives only
// during import review and is discarded on commit or cancel.
type StagingRecord struct {
	Line       int          `json:"line"`
	RawDate    string       `json:"raw_date"`
	RawTitle   string       `json:"raw_title"`
	RawAmount  string       `json:"raw_amount"`
	Amount     float64      `json:"amount"`
	Valid      bool         `json:"valid"`
	Error      RowErrorKind `json:"error,omitempty"`
	CategoryID *string      `json:"category_id,omitempty"`
	Tags       []string     `json:"tags,omitempty"`
}

// ImportStatus summarizes the outcome of one import batch.
type ImportStatus string

const (
	ImportStatusSuccess ImportStatus = "success"
	ImportStatusPartial ImportStatus = "partial"
	ImportStatusError   ImportStatus = "error"
)

// ImportBatch groups the transactions created by one import action so the
// whole batch can be reverted atomically.
type ImportBatch struct {
	ID             string       `json:"id"`
	Filename       string       `json:"filename"`
	ItemCount      int          `json:"item_count"`
	TotalValue     float64      `json:"total_value"`
	Status         ImportStatus `json:"status"`
	Errors         []string     `json:"errors,omitempty"`
	TransactionIDs []string     `json:"transaction_ids"`
}

package services

import (
	"tally/internal/models"
	"tally/internal/pagination"
)

// CategoryServicer defines the contract for category, rule and limit
// management. Mutations persist through the storage collaborator when one
// is configured.
type CategoryServicer interface {
	CreateCategory(name, icon, color string, isDefault bool) (*models.Category, error)
	UpdateCategory(categoryID, name, icon, color string, active bool) (*models.Category, error)
	DeleteCategory(categoryID string) error
	GetCategoryByID(categoryID string) (*models.Category, error)
	Categories() []models.Category
	ActiveCategories() []models.Category

	CreateRule(term, categoryID string) (*models.AutoCategoryRule, error)
	UpdateRule(ruleID, term, categoryID string, active bool) (*models.AutoCategoryRule, error)
	DeleteRule(ruleID string) error
	Rules() []models.AutoCategoryRule

	SetLimit(categoryID string, value float64, period models.LimitPeriod, alertPercent float64) (*models.CategoryLimit, error)
	RemoveLimit(categoryID string) error
	Limits() []models.CategoryLimit
}

// TransactionFilter holds optional filter parameters for listing ledger
// transactions. Date bounds compare ISO date strings; amount bounds follow
// the ledger's configured AmountFilterMode.
type TransactionFilter struct {
	FromDate   *string
	ToDate     *string
	CategoryID *string
	MinAmount  *float64
	MaxAmount  *float64
}

// LedgerServicer defines the contract for the committed transaction
// collection. Every mutation produces a fresh snapshot recorded in the
// undo/redo history.
type LedgerServicer interface {
	AddTransaction(date, title string, amount float64, categoryID *string, tags []string) (*models.Transaction, error)
	AppendBatch(txs []models.Transaction, batch *models.ImportBatch) error
	RevertBatch(batchID string) error
	Batch(batchID string) (*models.ImportBatch, error)

	Categorize(ids []string, categoryID *string) error
	Tag(ids []string, tags []string) error
	Delete(ids []string) error
	ClearCategory(categoryID string) int

	Undo() ([]models.Transaction, bool)
	Redo() ([]models.Transaction, bool)

	Transactions() []models.Transaction
	List(page pagination.PageRequest, filter TransactionFilter) pagination.PageResponse[models.Transaction]
}

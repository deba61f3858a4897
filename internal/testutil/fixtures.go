package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"tally/internal/models"
	"tally/internal/uuid"
)

var nameCounter atomic.Int64

// NewCategory builds an in-memory category with a unique name.
func NewCategory(t *testing.T) models.Category {
	t.Helper()

	cat := models.Category{
		Name:   fmt.Sprintf("Category %d", nameCounter.Add(1)),
		Icon:   "cart",
		Color:  "#3366ff",
		Active: true,
	}
	cat.ID = uuid.New()
	return cat
}

// NewRule builds an active rule targeting the given category.
func NewRule(t *testing.T, term, categoryID string, position int) models.AutoCategoryRule {
	t.Helper()

	rule := models.AutoCategoryRule{
		Term:       term,
		CategoryID: categoryID,
		Active:     true,
		Position:   position,
	}
	rule.ID = uuid.New()
	return rule
}

// NewLimit builds a monthly limit for the given category.
func NewLimit(t *testing.T, categoryID string, value, alertPercent float64) models.CategoryLimit {
	t.Helper()

	limit := models.CategoryLimit{
		CategoryID:   categoryID,
		Value:        value,
		Period:       models.LimitPeriodMonthly,
		AlertPercent: alertPercent,
	}
	limit.ID = uuid.New()
	return limit
}

// NewTransaction builds a categorized ledger transaction.
func NewTransaction(t *testing.T, date, title string, amount float64, categoryID *string) models.Transaction {
	t.Helper()

	return models.Transaction{
		ID:         uuid.New(),
		Date:       date,
		Title:      title,
		Amount:     amount,
		CategoryID: categoryID,
	}
}

package services

import (
	"sort"

	"tally/internal/models"
)

// LimitEvaluator grades per-category spending against configured limits.
// It is a pure query over the limit set it was built from; callers rebuild
// it after limit mutations.
type LimitEvaluator struct {
	limits map[string]models.CategoryLimit
}

// NewLimitEvaluator indexes the given limits by category id.
func NewLimitEvaluator(limits []models.CategoryLimit) *LimitEvaluator {
	indexed := make(map[string]models.CategoryLimit, len(limits))
	for _, limit := range limits {
		indexed[limit.CategoryID] = limit
	}
	return &LimitEvaluator{limits: indexed}
}

// Check evaluates the current spend of a category against its limit. It
// returns nil when the category has no configured limit; that is not an
// error. Boundary values resolve to the higher severity: percentage equal
// to the alert threshold is a warning, percentage equal to 100 is exceeded.
func (e *LimitEvaluator) Check(categoryID string, current float64) *models.LimitStatus {
	limit, ok := e.limits[categoryID]
	if !ok || limit.Value <= 0 {
		return nil
	}

	percentage := round2(current / limit.Value * 100)
	status := &models.LimitStatus{
		CategoryID: categoryID,
		Limit:      limit.Value,
		Current:    current,
		Percentage: percentage,
	}
	switch {
	case percentage >= 100:
		status.Level = models.LimitStatusExceeded
	case percentage >= limit.AlertPercent:
		status.Level = models.LimitStatusWarning
	default:
		status.Level = models.LimitStatusOK
	}
	return status
}

// CheckAll evaluates every configured limit against the given totals.
// Categories without a limit are skipped; categories without spend evaluate
// at 0.
func (e *LimitEvaluator) CheckAll(totals map[string]float64) []models.LimitStatus {
	var statuses []models.LimitStatus
	for categoryID := range e.limits {
		if status := e.Check(categoryID, totals[categoryID]); status != nil {
			statuses = append(statuses, *status)
		}
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].CategoryID < statuses[j].CategoryID
	})
	return statuses
}

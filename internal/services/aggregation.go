package services

import (
	"math"
	"sort"

	"tally/internal/models"
	"tally/internal/money"
)

// CategoryTotals sums transaction amounts per category with decimal-safe
// accumulation. Every known category starts at 0 so empty categories still
// appear in the result; transactions without a resolved category are
// ignored.
func CategoryTotals(txs []models.Transaction, categories []models.Category) map[string]float64 {
	totals := make(map[string]float64, len(categories))
	known := make(map[string]bool, len(categories))
	for _, cat := range categories {
		totals[cat.ID] = 0
		known[cat.ID] = true
	}
	for _, tx := range txs {
		if tx.CategoryID == nil || !known[*tx.CategoryID] {
			continue
		}
		totals[*tx.CategoryID] = money.Add(totals[*tx.CategoryID], tx.Amount)
	}
	return totals
}

// Percentages converts per-category totals into two-decimal percentages that
// sum to exactly 100.00. The last key in order absorbs the rounding
// remainder of all previous keys, so the exact-100 property holds regardless
// of rounding error elsewhere. Iteration is pinned to the caller-supplied
// order (category creation order); totals keys missing from order are
// appended in sorted order to keep the result deterministic. A zero grand
// total maps every key to 0.
func Percentages(totals map[string]float64, order []string) map[string]float64 {
	grand := 0.0
	for _, v := range totals {
		grand = money.Add(grand, v)
	}

	keys := orderedKeys(totals, order)
	out := make(map[string]float64, len(keys))
	if grand == 0 {
		for _, key := range keys {
			out[key] = 0
		}
		return out
	}

	allocated := 0.0
	for i, key := range keys {
		if i == len(keys)-1 {
			out[key] = round2(100 - allocated)
			break
		}
		pct := math.Round(totals[key]/grand*10000) / 100
		out[key] = pct
		allocated += pct
	}
	return out
}

// orderedKeys returns totals' keys in the pinned order, appending any keys
// absent from order in sorted order.
func orderedKeys(totals map[string]float64, order []string) []string {
	keys := make([]string, 0, len(totals))
	seen := make(map[string]bool, len(totals))
	for _, key := range order {
		if _, ok := totals[key]; ok && !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var rest []string
	for key := range totals {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FilterByAmount keeps transactions whose amount falls within [min, max].
// The mode selects whether bounds apply to the signed amount or to its
// absolute magnitude.
func FilterByAmount(txs []models.Transaction, min, max *float64, mode models.AmountFilterMode) []models.Transaction {
	if min == nil && max == nil {
		return txs
	}
	var out []models.Transaction
	for _, tx := range txs {
		amount := tx.Amount
		if mode == models.AmountFilterAbsolute {
			amount = math.Abs(amount)
		}
		if min != nil && amount < *min {
			continue
		}
		if max != nil && amount > *max {
			continue
		}
		out = append(out, tx)
	}
	return out
}

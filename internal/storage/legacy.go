package storage

import (
	"strings"

	"tally/internal/models"
)

// CategoryRef is the tagged union of the two category representations that
// have existed in persisted data: old exports wrote the category *name*
// (Legacy), current data writes the category id (Current). Exactly one side
// is expected to be set.
type CategoryRef struct {
	Legacy  *string
	Current *string
}

// Resolve turns a CategoryRef into a category id, resolving legacy names by
// case-insensitive match against the known categories. Unresolvable refs
// yield nil rather than an error: an orphaned legacy name simply leaves the
// record uncategorized.
func (r CategoryRef) Resolve(categories []models.Category) *string {
	if r.Current != nil && *r.Current != "" {
		id := *r.Current
		return &id
	}
	if r.Legacy == nil {
		return nil
	}
	for i := range categories {
		if strings.EqualFold(categories[i].Name, *r.Legacy) {
			id := categories[i].ID
			return &id
		}
	}
	return nil
}

// MigrateLegacyRules rewrites rules that still carry a legacy category name
// into id-based rules. It runs once at load time, never at mutation sites,
// and returns the number of rules migrated.
func MigrateLegacyRules(ruleList []models.AutoCategoryRule, categories []models.Category) int {
	migrated := 0
	for i := range ruleList {
		rule := &ruleList[i]
		if rule.LegacyCategory == nil {
			continue
		}
		ref := CategoryRef{Legacy: rule.LegacyCategory}
		if rule.CategoryID != "" {
			ref.Current = &rule.CategoryID
		}
		id := ref.Resolve(categories)
		if id == nil {
			// Orphaned name: keep the legacy value so a later category
			// rename can still resolve it.
			continue
		}
		if rule.CategoryID == "" {
			migrated++
		}
		rule.CategoryID = *id
		rule.LegacyCategory = nil
	}
	return migrated
}

// Package rules implements auto-categorization of imported records from
// user-defined term rules.
package rules

import (
	"strings"

	"tally/internal/models"
)

// Match returns the category id of the first active rule whose term is a
// case-insensitive substring of title, or nil when no rule matches. Rules
// are evaluated in the order supplied; ties resolve to the first-registered
// rule. The function is pure with respect to the rule list.
func Match(title string, ruleList []models.AutoCategoryRule) *string {
	lowered := strings.ToLower(title)
	for i := range ruleList {
		rule := &ruleList[i]
		if !rule.Active || rule.Term == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(rule.Term)) {
			id := rule.CategoryID
			return &id
		}
	}
	return nil
}

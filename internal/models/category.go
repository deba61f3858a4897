package models

// Category represents a user-defined transaction category.
type Category struct {
	Base
	Name      string `gorm:"not null" json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	Active    bool   `gorm:"default:true" json:"active"`
	IsDefault bool   `gorm:"default:false" json:"is_default"`
}

// AutoCategoryRule assigns a category to imported records whose title
// contains the rule term. Rules are evaluated in Position order; the first
// active match wins.
type AutoCategoryRule struct {
	Base
	Term       string `gorm:"not null" json:"term"`
	CategoryID string `gorm:"type:uuid" json:"category_id"`
	Active     bool   `gorm:"default:true" json:"active"`
	Position   int    `gorm:"not null" json:"position"`

	// LegacyCategory holds the category *name* written by old exports that
	// predate category ids. It is resolved to CategoryID once at load time
	// and never written back.
	LegacyCategory *string `gorm:"column:legacy_category" json:"-"`
}

// LimitPeriod is the window a spending limit applies to.
type LimitPeriod string

const (
	LimitPeriodDaily   LimitPeriod = "daily"
	LimitPeriodWeekly  LimitPeriod = "weekly"
	LimitPeriodMonthly LimitPeriod = "monthly"
)

// CategoryLimit configures a budget threshold for one category. At most one
// limit exists per category.
type CategoryLimit struct {
	Base
	CategoryID   string      `gorm:"type:uuid;not null;uniqueIndex" json:"category_id"`
	Value        float64     `gorm:"not null" json:"value"`
	Period       LimitPeriod `gorm:"not null" json:"period"`
	AlertPercent float64     `gorm:"not null;default:80" json:"alert_percent"`
}

// LimitStatusLevel grades spending against a configured limit.
type LimitStatusLevel string

const (
	LimitStatusOK       LimitStatusLevel = "ok"
	LimitStatusWarning  LimitStatusLevel = "warning"
	LimitStatusExceeded LimitStatusLevel = "exceeded"
)

// LimitStatus is the evaluated state of one category against its limit.
type LimitStatus struct {
	CategoryID string           `json:"category_id"`
	Limit      float64          `json:"limit"`
	Current    float64          `json:"current"`
	Percentage float64          `json:"percentage"`
	Level      LimitStatusLevel `json:"level"`
}

package services

import (
	"strings"

	apperrors "tally/internal/errors"
	"tally/internal/logger"
	"tally/internal/models"
	"tally/internal/storage"
	"tally/internal/uuid"
	"tally/internal/validator"
)

// categoryInput carries validated fields for category creation and update.
type categoryInput struct {
	Name  string `validate:"required,max=100"`
	Color string `validate:"hex_color"`
}

type limitInput struct {
	Value        float64 `validate:"required,gt=0"`
	Period       string  `validate:"limit_period"`
	AlertPercent float64 `validate:"gte=0,lte=100"`
}

// categoryService owns the category, rule and limit collections in memory
// and persists them through the storage collaborator after each mutation.
type categoryService struct {
	store      storage.Store
	categories []models.Category
	rules      []models.AutoCategoryRule
	limits     []models.CategoryLimit
}

// NewCategoryService creates a CategoryServicer. When store is non-nil the
// previously persisted settings are loaded, including the one-time legacy
// rule migration performed by the store.
func NewCategoryService(store storage.Store) (CategoryServicer, error) {
	s := &categoryService{store: store}
	if store == nil {
		return s, nil
	}
	snap, err := store.Load()
	if err != nil {
		return nil, err
	}
	if snap != nil {
		s.categories = snap.Categories
		s.rules = snap.Rules
		s.limits = snap.Limits
	}
	return s, nil
}

// CreateCategory creates a new category.
func (s *categoryService) CreateCategory(name, icon, color string, isDefault bool) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validator.Get().Struct(categoryInput{Name: name, Color: color}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	for i := range s.categories {
		if strings.EqualFold(s.categories[i].Name, name) {
			return nil, apperrors.ErrDuplicateCategory
		}
	}

	category := models.Category{
		Name:      name,
		Icon:      icon,
		Color:     color,
		Active:    true,
		IsDefault: isDefault,
	}
	category.ID = uuid.New()
	s.categories = append(s.categories, category)

	if err := s.persist(); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory updates a category's fields.
func (s *categoryService) UpdateCategory(categoryID, name, icon, color string, active bool) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validator.Get().Struct(categoryInput{Name: name, Color: color}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	for i := range s.categories {
		if s.categories[i].ID != categoryID && strings.EqualFold(s.categories[i].Name, name) {
			return nil, apperrors.ErrDuplicateCategory
		}
	}

	idx := s.categoryIndex(categoryID)
	if idx == -1 {
		return nil, apperrors.ErrCategoryNotFound
	}
	cat := &s.categories[idx]
	cat.Name = name
	cat.Icon = icon
	cat.Color = color
	cat.Active = active

	if err := s.persist(); err != nil {
		return nil, err
	}
	updated := *cat
	return &updated, nil
}

// DeleteCategory removes a category along with its rules and limit. Default
// categories are protected: deleting one fails with ErrCategoryProtected.
func (s *categoryService) DeleteCategory(categoryID string) error {
	idx := s.categoryIndex(categoryID)
	if idx == -1 {
		return apperrors.ErrCategoryNotFound
	}
	if s.categories[idx].IsDefault {
		return apperrors.ErrCategoryProtected
	}

	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)

	kept := s.rules[:0]
	for _, rule := range s.rules {
		if rule.CategoryID != categoryID {
			kept = append(kept, rule)
		}
	}
	s.rules = kept
	s.reposition()

	for i := range s.limits {
		if s.limits[i].CategoryID == categoryID {
			s.limits = append(s.limits[:i], s.limits[i+1:]...)
			break
		}
	}

	logger.Get().Infow("deleted category", "category_id", categoryID)
	return s.persist()
}

// GetCategoryByID retrieves a category by id.
func (s *categoryService) GetCategoryByID(categoryID string) (*models.Category, error) {
	idx := s.categoryIndex(categoryID)
	if idx == -1 {
		return nil, apperrors.ErrCategoryNotFound
	}
	cat := s.categories[idx]
	return &cat, nil
}

// Categories returns all categories in creation order.
func (s *categoryService) Categories() []models.Category {
	return append([]models.Category(nil), s.categories...)
}

// ActiveCategories returns the active categories in creation order. This is
// a plain derived query recomputed on demand.
func (s *categoryService) ActiveCategories() []models.Category {
	var active []models.Category
	for _, cat := range s.categories {
		if cat.Active {
			active = append(active, cat)
		}
	}
	return active
}

// CreateRule appends a rule at the end of the evaluation order.
func (s *categoryService) CreateRule(term, categoryID string) (*models.AutoCategoryRule, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rule term is required")
	}
	if s.categoryIndex(categoryID) == -1 {
		return nil, apperrors.ErrCategoryNotFound
	}

	rule := models.AutoCategoryRule{
		Term:       term,
		CategoryID: categoryID,
		Active:     true,
		Position:   len(s.rules),
	}
	rule.ID = uuid.New()
	s.rules = append(s.rules, rule)

	if err := s.persist(); err != nil {
		return nil, err
	}
	return &rule, nil
}

// UpdateRule rewrites a rule's term, target category and active flag.
func (s *categoryService) UpdateRule(ruleID, term, categoryID string, active bool) (*models.AutoCategoryRule, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rule term is required")
	}
	if s.categoryIndex(categoryID) == -1 {
		return nil, apperrors.ErrCategoryNotFound
	}
	for i := range s.rules {
		if s.rules[i].ID == ruleID {
			s.rules[i].Term = term
			s.rules[i].CategoryID = categoryID
			s.rules[i].Active = active
			if err := s.persist(); err != nil {
				return nil, err
			}
			updated := s.rules[i]
			return &updated, nil
		}
	}
	return nil, apperrors.ErrRuleNotFound
}

// DeleteRule removes a rule and closes the position gap.
func (s *categoryService) DeleteRule(ruleID string) error {
	for i := range s.rules {
		if s.rules[i].ID == ruleID {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			s.reposition()
			return s.persist()
		}
	}
	return apperrors.ErrRuleNotFound
}

// Rules returns the rules in evaluation order.
func (s *categoryService) Rules() []models.AutoCategoryRule {
	return append([]models.AutoCategoryRule(nil), s.rules...)
}

// SetLimit creates or replaces the limit for a category; at most one limit
// exists per category.
func (s *categoryService) SetLimit(categoryID string, value float64, period models.LimitPeriod, alertPercent float64) (*models.CategoryLimit, error) {
	if s.categoryIndex(categoryID) == -1 {
		return nil, apperrors.ErrCategoryNotFound
	}
	input := limitInput{Value: value, Period: string(period), AlertPercent: alertPercent}
	if err := validator.Get().Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}

	for i := range s.limits {
		if s.limits[i].CategoryID == categoryID {
			s.limits[i].Value = value
			s.limits[i].Period = period
			s.limits[i].AlertPercent = alertPercent
			if err := s.persist(); err != nil {
				return nil, err
			}
			updated := s.limits[i]
			return &updated, nil
		}
	}

	limit := models.CategoryLimit{
		CategoryID:   categoryID,
		Value:        value,
		Period:       period,
		AlertPercent: alertPercent,
	}
	limit.ID = uuid.New()
	s.limits = append(s.limits, limit)

	if err := s.persist(); err != nil {
		return nil, err
	}
	return &limit, nil
}

// RemoveLimit deletes the limit configured for a category.
func (s *categoryService) RemoveLimit(categoryID string) error {
	for i := range s.limits {
		if s.limits[i].CategoryID == categoryID {
			s.limits = append(s.limits[:i], s.limits[i+1:]...)
			return s.persist()
		}
	}
	return apperrors.ErrLimitNotFound
}

// Limits returns the configured limits.
func (s *categoryService) Limits() []models.CategoryLimit {
	return append([]models.CategoryLimit(nil), s.limits...)
}

func (s *categoryService) categoryIndex(categoryID string) int {
	for i := range s.categories {
		if s.categories[i].ID == categoryID {
			return i
		}
	}
	return -1
}

func (s *categoryService) reposition() {
	for i := range s.rules {
		s.rules[i].Position = i
	}
}

func (s *categoryService) persist() error {
	if s.store == nil {
		return nil
	}
	return s.store.Save(s.categories, s.rules, s.limits)
}

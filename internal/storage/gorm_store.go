package storage

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tally/internal/errors"
	"tally/internal/logger"
	"tally/internal/models"
)

// persistedModels is the list of GORM models owned by the settings store.
var persistedModels = []interface{}{
	&models.Category{},
	&models.AutoCategoryRule{},
	&models.CategoryLimit{},
	&Setting{},
}

// GormStore persists settings through GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the settings schema and returns a store bound to db.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(persistedModels...); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrSyncFailure, err)
	}
	return &GormStore{db: db}, nil
}

// Save replaces the persisted settings set in a single transaction.
func (s *GormStore) Save(categories []models.Category, rules []models.AutoCategoryRule, limits []models.CategoryLimit) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Category{}, &models.AutoCategoryRule{}, &models.CategoryLimit{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if len(categories) > 0 {
			if err := tx.Create(&categories).Error; err != nil {
				return err
			}
		}
		if len(rules) > 0 {
			if err := tx.Create(&rules).Error; err != nil {
				return err
			}
		}
		if len(limits) > 0 {
			if err := tx.Create(&limits).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrSyncFailure, err)
	}
	return nil
}

// Load reads the persisted settings set. It returns (nil, nil) when nothing
// has been persisted yet. Rules written by old exports carry a category name
// instead of an id; those are migrated here, once, and nowhere else.
func (s *GormStore) Load() (*Snapshot, error) {
	var snap Snapshot

	// UUIDv7 ids are time-ordered, so sorting by id recovers creation order
	// even when batch inserts share one created_at timestamp.
	if err := s.db.Order("created_at, id").Find(&snap.Categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrSyncFailure, err)
	}
	if err := s.db.Order("position").Find(&snap.Rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrSyncFailure, err)
	}
	if err := s.db.Find(&snap.Limits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrSyncFailure, err)
	}

	if len(snap.Categories) == 0 && len(snap.Rules) == 0 && len(snap.Limits) == 0 {
		return nil, nil
	}

	migrated := MigrateLegacyRules(snap.Rules, snap.Categories)
	if migrated > 0 {
		logger.Get().Infow("migrated legacy rules", "count", migrated)
	}
	return &snap, nil
}

// Setting is one persisted key-value entry.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// GormKV implements the KV capability on the settings database.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV returns a KV bound to db. NewGormStore must have migrated the
// schema first.
func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

// Get reads a value; ok is false when the key is absent.
func (kv *GormKV) Get(key string) (string, bool, error) {
	var setting Setting
	err := kv.db.First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.Wrap(apperrors.ErrSyncFailure, err)
	}
	return setting.Value, true, nil
}

// Set writes a value with upsert semantics.
func (kv *GormKV) Set(key, value string) error {
	err := kv.db.Save(&Setting{Key: key, Value: value}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrSyncFailure, err)
	}
	return nil
}

// Remove deletes a key. Removing an absent key is not an error.
func (kv *GormKV) Remove(key string) error {
	err := kv.db.Delete(&Setting{}, "key = ?", key).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrSyncFailure, err)
	}
	return nil
}

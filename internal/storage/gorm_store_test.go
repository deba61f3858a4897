package storage

import (
	"testing"

	"tally/internal/models"
	"tally/internal/testutil"
	"tally/internal/uuid"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	store, err := NewGormStore(db)
	testutil.AssertNoError(t, err)
	return store
}

func TestGormStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	t.Run("empty store loads nil", func(t *testing.T) {
		snap, err := store.Load()
		testutil.AssertNoError(t, err)
		if snap != nil {
			t.Fatalf("expected nil snapshot, got %+v", snap)
		}
	})

	t.Run("save then load", func(t *testing.T) {
		cat := testutil.NewCategory(t)
		rule := testutil.NewRule(t, "market", cat.ID, 0)
		limit := testutil.NewLimit(t, cat.ID, 500, 80)

		testutil.AssertNoError(t, store.Save(
			[]models.Category{cat},
			[]models.AutoCategoryRule{rule},
			[]models.CategoryLimit{limit},
		))

		snap, err := store.Load()
		testutil.AssertNoError(t, err)
		if snap == nil {
			t.Fatal("expected snapshot")
		}
		if len(snap.Categories) != 1 || snap.Categories[0].Name != cat.Name {
			t.Errorf("categories: %+v", snap.Categories)
		}
		if len(snap.Rules) != 1 || snap.Rules[0].Term != "market" {
			t.Errorf("rules: %+v", snap.Rules)
		}
		if len(snap.Limits) != 1 || snap.Limits[0].Value != 500 {
			t.Errorf("limits: %+v", snap.Limits)
		}
	})

	t.Run("save replaces previous content", func(t *testing.T) {
		replacement := testutil.NewCategory(t)
		testutil.AssertNoError(t, store.Save([]models.Category{replacement}, nil, nil))

		snap, err := store.Load()
		testutil.AssertNoError(t, err)
		if len(snap.Categories) != 1 || snap.Categories[0].ID != replacement.ID {
			t.Errorf("expected replacement only, got %+v", snap.Categories)
		}
		if len(snap.Rules) != 0 {
			t.Errorf("expected rules cleared, got %+v", snap.Rules)
		}
	})
}

func TestGormStoreLegacyMigration(t *testing.T) {
	store := newTestStore(t)
	cat := testutil.NewCategory(t)
	testutil.AssertNoError(t, store.Save([]models.Category{cat}, nil, nil))

	// Simulate a rule written by an old export: category name, no id.
	legacyName := cat.Name
	legacyRule := models.AutoCategoryRule{
		Term:           "market",
		Active:         true,
		LegacyCategory: &legacyName,
	}
	legacyRule.ID = uuid.New()
	testutil.AssertNoError(t, store.db.Create(&legacyRule).Error)

	snap, err := store.Load()
	testutil.AssertNoError(t, err)
	if len(snap.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(snap.Rules))
	}
	if snap.Rules[0].CategoryID != cat.ID {
		t.Errorf("expected migrated category id %s, got %q", cat.ID, snap.Rules[0].CategoryID)
	}
	if snap.Rules[0].LegacyCategory != nil {
		t.Error("legacy field should be cleared after migration")
	}
}

func TestGormKV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	_, err := NewGormStore(db)
	testutil.AssertNoError(t, err)
	kv := NewGormKV(db)

	t.Run("missing key", func(t *testing.T) {
		_, ok, err := kv.Get("currency_format")
		testutil.AssertNoError(t, err)
		if ok {
			t.Fatal("expected missing key")
		}
	})

	t.Run("set, get, overwrite, remove", func(t *testing.T) {
		testutil.AssertNoError(t, kv.Set("currency_format", "pt-BR"))
		value, ok, err := kv.Get("currency_format")
		testutil.AssertNoError(t, err)
		if !ok || value != "pt-BR" {
			t.Fatalf("got %q ok=%v", value, ok)
		}

		testutil.AssertNoError(t, kv.Set("currency_format", "en-US"))
		value, _, err = kv.Get("currency_format")
		testutil.AssertNoError(t, err)
		if value != "en-US" {
			t.Fatalf("expected overwrite, got %q", value)
		}

		testutil.AssertNoError(t, kv.Remove("currency_format"))
		_, ok, err = kv.Get("currency_format")
		testutil.AssertNoError(t, err)
		if ok {
			t.Fatal("expected key removed")
		}
	})
}

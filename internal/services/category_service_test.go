package services

import (
	"testing"

	"tally/internal/models"
	"tally/internal/storage"
	"tally/internal/testutil"
)

func newTestCategoryService(t *testing.T) CategoryServicer {
	t.Helper()
	svc, err := NewCategoryService(nil)
	testutil.AssertNoError(t, err)
	return svc
}

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc := newTestCategoryService(t)
		cat, err := svc.CreateCategory("Groceries", "cart", "#00ff00", false)
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected non-empty category ID")
		}
		if !cat.Active {
			t.Error("expected new category to be active")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		svc := newTestCategoryService(t)
		_, err := svc.CreateCategory("   ", "", "", false)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("bad color", func(t *testing.T) {
		svc := newTestCategoryService(t)
		_, err := svc.CreateCategory("Groceries", "", "green", false)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate name is case-insensitive", func(t *testing.T) {
		svc := newTestCategoryService(t)
		_, err := svc.CreateCategory("Groceries", "", "", false)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory("groceries", "", "", false)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("default categories are protected", func(t *testing.T) {
		svc := newTestCategoryService(t)
		cat, err := svc.CreateCategory("Others", "", "", true)
		testutil.AssertNoError(t, err)

		testutil.AssertAppError(t, svc.DeleteCategory(cat.ID), "CATEGORY_PROTECTED")
		if _, err := svc.GetCategoryByID(cat.ID); err != nil {
			t.Error("protected category should survive the attempt")
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		svc := newTestCategoryService(t)
		testutil.AssertAppError(t, svc.DeleteCategory("nope"), "CATEGORY_NOT_FOUND")
	})

	t.Run("cascades to rules and limit", func(t *testing.T) {
		svc := newTestCategoryService(t)
		cat, err := svc.CreateCategory("Groceries", "", "", false)
		testutil.AssertNoError(t, err)
		other, err := svc.CreateCategory("Transport", "", "", false)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateRule("market", cat.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateRule("uber", other.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.SetLimit(cat.ID, 500, models.LimitPeriodMonthly, 80)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteCategory(cat.ID))

		ruleList := svc.Rules()
		if len(ruleList) != 1 || ruleList[0].Term != "uber" {
			t.Errorf("expected only the uber rule, got %v", ruleList)
		}
		if ruleList[0].Position != 0 {
			t.Errorf("expected repositioned rule, got position %d", ruleList[0].Position)
		}
		if len(svc.Limits()) != 0 {
			t.Error("expected the limit to be removed")
		}
	})
}

func TestActiveCategories(t *testing.T) {
	svc := newTestCategoryService(t)
	a, err := svc.CreateCategory("A", "", "", false)
	testutil.AssertNoError(t, err)
	b, err := svc.CreateCategory("B", "", "", false)
	testutil.AssertNoError(t, err)

	_, err = svc.UpdateCategory(a.ID, "A", "", "", false)
	testutil.AssertNoError(t, err)

	active := svc.ActiveCategories()
	if len(active) != 1 || active[0].ID != b.ID {
		t.Fatalf("expected only B active, got %v", active)
	}
}

func TestRules(t *testing.T) {
	t.Run("create requires existing category", func(t *testing.T) {
		svc := newTestCategoryService(t)
		_, err := svc.CreateRule("market", "ghost")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("ordered by creation", func(t *testing.T) {
		svc := newTestCategoryService(t)
		cat, err := svc.CreateCategory("Groceries", "", "", false)
		testutil.AssertNoError(t, err)

		first, err := svc.CreateRule("super", cat.ID)
		testutil.AssertNoError(t, err)
		second, err := svc.CreateRule("market", cat.ID)
		testutil.AssertNoError(t, err)

		if first.Position != 0 || second.Position != 1 {
			t.Errorf("positions: %d, %d", first.Position, second.Position)
		}
	})

	t.Run("update unknown rule", func(t *testing.T) {
		svc := newTestCategoryService(t)
		cat, err := svc.CreateCategory("Groceries", "", "", false)
		testutil.AssertNoError(t, err)
		_, err = svc.UpdateRule("ghost", "term", cat.ID, true)
		testutil.AssertAppError(t, err, "RULE_NOT_FOUND")
	})
}

func TestLimits(t *testing.T) {
	t.Run("set is an upsert", func(t *testing.T) {
		svc := newTestCategoryService(t)
		cat, err := svc.CreateCategory("Groceries", "", "", false)
		testutil.AssertNoError(t, err)

		_, err = svc.SetLimit(cat.ID, 500, models.LimitPeriodMonthly, 80)
		testutil.AssertNoError(t, err)
		updated, err := svc.SetLimit(cat.ID, 700, models.LimitPeriodWeekly, 90)
		testutil.AssertNoError(t, err)

		if len(svc.Limits()) != 1 {
			t.Fatalf("expected a single limit, got %d", len(svc.Limits()))
		}
		if updated.Value != 700 || updated.Period != models.LimitPeriodWeekly {
			t.Errorf("limit not replaced: %+v", updated)
		}
	})

	t.Run("rejects non-positive values", func(t *testing.T) {
		svc := newTestCategoryService(t)
		cat, err := svc.CreateCategory("Groceries", "", "", false)
		testutil.AssertNoError(t, err)
		_, err = svc.SetLimit(cat.ID, 0, models.LimitPeriodMonthly, 80)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("remove unknown limit", func(t *testing.T) {
		svc := newTestCategoryService(t)
		cat, err := svc.CreateCategory("Groceries", "", "", false)
		testutil.AssertNoError(t, err)
		testutil.AssertAppError(t, svc.RemoveLimit(cat.ID), "LIMIT_NOT_FOUND")
	})
}

func TestCategoryServicePersistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	store, err := storage.NewGormStore(db)
	testutil.AssertNoError(t, err)

	svc, err := NewCategoryService(store)
	testutil.AssertNoError(t, err)
	cat, err := svc.CreateCategory("Groceries", "cart", "#00ff00", false)
	testutil.AssertNoError(t, err)
	_, err = svc.CreateRule("market", cat.ID)
	testutil.AssertNoError(t, err)
	_, err = svc.SetLimit(cat.ID, 500, models.LimitPeriodMonthly, 80)
	testutil.AssertNoError(t, err)

	// A second service over the same store sees the saved settings.
	reloaded, err := NewCategoryService(store)
	testutil.AssertNoError(t, err)
	if len(reloaded.Categories()) != 1 || len(reloaded.Rules()) != 1 || len(reloaded.Limits()) != 1 {
		t.Fatalf("reload mismatch: %d categories, %d rules, %d limits",
			len(reloaded.Categories()), len(reloaded.Rules()), len(reloaded.Limits()))
	}
	if reloaded.Categories()[0].Name != "Groceries" {
		t.Errorf("unexpected category: %+v", reloaded.Categories()[0])
	}
}

package services

import (
	"context"
	"testing"

	"opsdeck/internal/notify"
	"opsdeck/internal/querycache"
	"opsdeck/internal/testutil"
)

func TestCreateTarget(t *testing.T) {
	t.Run("creates_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db, querycache.New(), notify.Nop{})
		user := testutil.CreateTestUser(t, db)

		target, err := svc.CreateTarget(user.ID, "Emergency fund", 10000, 2500, nil)
		testutil.AssertNoError(t, err)
		if target.ID == 0 {
			t.Fatal("expected non-zero target ID")
		}
	})

	t.Run("zero_target_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db, querycache.New(), notify.Nop{})
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTarget(user.ID, "Broken", 0, 0, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_current_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db, querycache.New(), notify.Nop{})
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTarget(user.ID, "Broken", 1000, -5, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateTarget(t *testing.T) {
	t.Run("updates_current_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cache := querycache.New()
		svc := NewSavingsService(db, cache, notify.Nop{})
		user := testutil.CreateTestUser(t, db)
		target := testutil.CreateTestSavingsTarget(t, db, user.ID, 10000, 1000)
		ctx := context.Background()

		_, err := svc.GetUserTargets(ctx, user.ID)
		testutil.AssertNoError(t, err)

		current := 5000.0
		_, err = svc.UpdateTarget(user.ID, target.ID, "", nil, &current, nil)
		testutil.AssertNoError(t, err)

		targets, err := svc.GetUserTargets(ctx, user.ID)
		testutil.AssertNoError(t, err)
		if targets[0].CurrentAmount != 5000 {
			t.Errorf("expected refetched current 5000, got %.2f", targets[0].CurrentAmount)
		}
	})

	t.Run("rejects_zero_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db, querycache.New(), notify.Nop{})
		user := testutil.CreateTestUser(t, db)
		target := testutil.CreateTestSavingsTarget(t, db, user.ID, 10000, 0)

		zero := 0.0
		_, err := svc.UpdateTarget(user.ID, target.ID, "", &zero, nil, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteTarget(t *testing.T) {
	t.Run("deletes_own_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db, querycache.New(), notify.Nop{})
		user := testutil.CreateTestUser(t, db)
		target := testutil.CreateTestSavingsTarget(t, db, user.ID, 10000, 0)

		testutil.AssertNoError(t, svc.DeleteTarget(user.ID, target.ID))
		testutil.AssertAppError(t, svc.DeleteTarget(user.ID, target.ID), "SAVINGS_TARGET_NOT_FOUND")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db, querycache.New(), notify.Nop{})
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		target := testutil.CreateTestSavingsTarget(t, db, user1.ID, 10000, 0)

		testutil.AssertAppError(t, svc.DeleteTarget(user2.ID, target.ID), "SAVINGS_TARGET_NOT_FOUND")
	})
}

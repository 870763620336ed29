package services

import (
	"context"
	"testing"

	"opsdeck/internal/notify"
	"opsdeck/internal/querycache"
	"opsdeck/internal/testutil"
)

func TestCreateInvestment(t *testing.T) {
	t.Run("creates_position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, querycache.New(), notify.Nop{})
		user := testutil.CreateTestUser(t, db)

		inv, err := svc.CreateInvestment(user.ID, "Index fund", "stocks", 1000, 1100, "")
		testutil.AssertNoError(t, err)
		if inv.Gain() != 100 {
			t.Errorf("expected gain 100, got %.2f", inv.Gain())
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, querycache.New(), notify.Nop{})
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateInvestment(user.ID, "Index fund", "stocks", 0, 0, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, querycache.New(), notify.Nop{})
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateInvestment(user.ID, "Index fund", "", 1000, 1000, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateInvestment(t *testing.T) {
	t.Run("updates_current_value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cache := querycache.New()
		svc := NewInvestmentService(db, cache, notify.Nop{})
		user := testutil.CreateTestUser(t, db)
		inv := testutil.CreateTestInvestment(t, db, user.ID, 1000, 1000)
		ctx := context.Background()

		_, err := svc.GetUserInvestments(ctx, user.ID)
		testutil.AssertNoError(t, err)

		value := 1250.0
		_, err = svc.UpdateInvestment(user.ID, inv.ID, "", &value, "")
		testutil.AssertNoError(t, err)

		positions, err := svc.GetUserInvestments(ctx, user.ID)
		testutil.AssertNoError(t, err)
		if positions[0].CurrentValue != 1250 {
			t.Errorf("expected refetched value 1250, got %.2f", positions[0].CurrentValue)
		}
	})

	t.Run("negative_value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, querycache.New(), notify.Nop{})
		user := testutil.CreateTestUser(t, db)
		inv := testutil.CreateTestInvestment(t, db, user.ID, 1000, 1000)

		value := -1.0
		_, err := svc.UpdateInvestment(user.ID, inv.ID, "", &value, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteInvestment(t *testing.T) {
	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewInvestmentService(db, querycache.New(), notify.Nop{})
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		inv := testutil.CreateTestInvestment(t, db, user1.ID, 1000, 1000)

		testutil.AssertAppError(t, svc.DeleteInvestment(user2.ID, inv.ID), "INVESTMENT_NOT_FOUND")
	})
}

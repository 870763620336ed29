package metrics

import (
	"testing"

	"opsdeck/internal/models"
)

func TestNetBalance(t *testing.T) {
	t.Run("income_minus_expenses", func(t *testing.T) {
		txs := []models.Transaction{
			{Type: models.TransactionTypeIncome, Amount: 1000},
			{Type: models.TransactionTypeIncome, Amount: 250.50},
			{Type: models.TransactionTypeExpense, Amount: 300},
			{Type: models.TransactionTypeExpense, Amount: 42.50},
		}

		if got := TotalIncome(txs); got != 1250.50 {
			t.Errorf("expected income 1250.50, got %f", got)
		}
		if got := TotalExpenses(txs); got != 342.50 {
			t.Errorf("expected expenses 342.50, got %f", got)
		}
		if got := NetBalance(txs); got != 908.00 {
			t.Errorf("expected net 908.00, got %f", got)
		}
	})

	t.Run("nil_collection_is_zero", func(t *testing.T) {
		if got := NetBalance(nil); got != 0 {
			t.Errorf("expected 0 for nil collection, got %f", got)
		}
	})

	t.Run("does_not_mutate_input", func(t *testing.T) {
		txs := []models.Transaction{
			{Type: models.TransactionTypeIncome, Amount: 100},
		}
		_ = NetBalance(txs)
		if txs[0].Amount != 100 {
			t.Error("input slice was mutated")
		}
	})
}

func TestTotalRevenue(t *testing.T) {
	businesses := []models.Business{
		{Revenue: 50000, Status: models.BusinessStatusActive},
		{Revenue: 0, Status: models.BusinessStatusPending},
		{Revenue: 12500.75, Status: models.BusinessStatusActive},
	}

	if got := TotalRevenue(businesses); got != 62500.75 {
		t.Errorf("expected 62500.75, got %f", got)
	}
	if got := CountByStatus(businesses, models.BusinessStatusActive); got != 2 {
		t.Errorf("expected 2 active, got %d", got)
	}
	if got := CountByStatus(nil, models.BusinessStatusActive); got != 0 {
		t.Errorf("expected 0 for nil, got %d", got)
	}
}

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		name            string
		current, target float64
		want            float64
	}{
		{"halfway", 50, 100, 50},
		{"complete", 100, 100, 100},
		{"over_target_clamps", 150, 100, 100},
		{"zero_target_is_zero_not_panic", 500, 0, 0},
		{"negative_target_is_zero", 500, -10, 0},
		{"empty", 0, 1000, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ProgressPercent(tc.current, tc.target); got != tc.want {
				t.Errorf("ProgressPercent(%f, %f) = %f, want %f", tc.current, tc.target, got, tc.want)
			}
		})
	}
}

func TestGainPercent(t *testing.T) {
	if got := GainPercent(1000, 1500); got != 50 {
		t.Errorf("expected 50%%, got %f", got)
	}
	if got := GainPercent(1000, 500); got != -50 {
		t.Errorf("expected -50%%, got %f", got)
	}
	// Zero cost must not divide by zero.
	if got := GainPercent(0, 500); got != 0 {
		t.Errorf("expected 0 for zero cost, got %f", got)
	}
}

func TestPortfolio(t *testing.T) {
	investments := []models.Investment{
		{Amount: 1000, CurrentValue: 1200},
		{Amount: 500, CurrentValue: 400},
	}

	if got := TotalInvested(investments); got != 1500 {
		t.Errorf("expected invested 1500, got %f", got)
	}
	if got := PortfolioValue(investments); got != 1600 {
		t.Errorf("expected value 1600, got %f", got)
	}
}

func TestCountGoals(t *testing.T) {
	goals := []models.Goal{
		{Status: models.GoalStatusCompleted},
		{Status: models.GoalStatusCompleted},
		{Status: models.GoalStatusInProgress},
		{Status: models.GoalStatusNotStarted},
		{Status: models.GoalStatusOnHold},
	}

	counts := CountGoals(goals)
	if counts.Completed != 2 {
		t.Errorf("expected 2 completed, got %d", counts.Completed)
	}
	if counts.InProgress != 1 {
		t.Errorf("expected 1 in progress, got %d", counts.InProgress)
	}
	if got := ActiveGoals(goals); got != 3 {
		t.Errorf("expected 3 active, got %d", got)
	}
}

func TestCompletionCounts(t *testing.T) {
	events := []models.PlannerEvent{
		{Completed: true},
		{Completed: false},
		{Completed: true},
	}

	completed, total := CompletionCounts(events)
	if completed != 2 || total != 3 {
		t.Errorf("expected 2/3, got %d/%d", completed, total)
	}

	completed, total = CompletionCounts(nil)
	if completed != 0 || total != 0 {
		t.Errorf("expected 0/0 for nil, got %d/%d", completed, total)
	}
}

func TestTotalSaved(t *testing.T) {
	targets := []models.SavingsTarget{
		{CurrentAmount: 2500, TargetAmount: 10000},
		{CurrentAmount: 750.25, TargetAmount: 1000},
	}

	if got := TotalSaved(targets); got != 3250.25 {
		t.Errorf("expected 3250.25, got %f", got)
	}
}

// Package metrics derives dashboard summary values from fetched
// collections. Every function is a pure fold: no I/O, no mutation of
// the input slice, nil input treated as empty. Safe to recompute on
// every request.
package metrics

import "opsdeck/internal/models"

// TotalRevenue sums revenue across all businesses.
func TotalRevenue(businesses []models.Business) float64 {
	var total float64
	for _, b := range businesses {
		total += b.Revenue
	}
	return total
}

// CountByStatus counts businesses in the given status.
func CountByStatus(businesses []models.Business, status models.BusinessStatus) int {
	var n int
	for _, b := range businesses {
		if b.Status == status {
			n++
		}
	}
	return n
}

// TotalIncome sums the amounts of income transactions.
func TotalIncome(transactions []models.Transaction) float64 {
	return sumByType(transactions, models.TransactionTypeIncome)
}

// TotalExpenses sums the amounts of expense transactions.
func TotalExpenses(transactions []models.Transaction) float64 {
	return sumByType(transactions, models.TransactionTypeExpense)
}

// NetBalance is income minus expenses.
func NetBalance(transactions []models.Transaction) float64 {
	return TotalIncome(transactions) - TotalExpenses(transactions)
}

func sumByType(transactions []models.Transaction, t models.TransactionType) float64 {
	var total float64
	for _, tx := range transactions {
		if tx.Type == t {
			total += tx.Amount
		}
	}
	return total
}

// TotalSaved sums the current amounts across savings targets.
func TotalSaved(targets []models.SavingsTarget) float64 {
	var total float64
	for _, s := range targets {
		total += s.CurrentAmount
	}
	return total
}

// ProgressPercent returns current/target as a percentage clamped to
// [0, 100]. A non-positive target yields 0 rather than a division
// fault; invalid targets are rejected at input, not at display.
func ProgressPercent(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := current / target * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// TotalInvested sums the cost basis across investments.
func TotalInvested(investments []models.Investment) float64 {
	var total float64
	for _, i := range investments {
		total += i.Amount
	}
	return total
}

// PortfolioValue sums the current values across investments.
func PortfolioValue(investments []models.Investment) float64 {
	var total float64
	for _, i := range investments {
		total += i.CurrentValue
	}
	return total
}

// GainPercent returns the gain on a position as a percentage of its
// cost. A zero cost yields 0.
func GainPercent(cost, currentValue float64) float64 {
	if cost == 0 {
		return 0
	}
	return (currentValue - cost) / cost * 100
}

// GoalStatusCounts holds per-status goal tallies.
type GoalStatusCounts struct {
	NotStarted int `json:"not_started"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	OnHold     int `json:"on_hold"`
}

// CountGoals tallies goals by status.
func CountGoals(goals []models.Goal) GoalStatusCounts {
	var c GoalStatusCounts
	for _, g := range goals {
		switch g.Status {
		case models.GoalStatusNotStarted:
			c.NotStarted++
		case models.GoalStatusInProgress:
			c.InProgress++
		case models.GoalStatusCompleted:
			c.Completed++
		case models.GoalStatusOnHold:
			c.OnHold++
		}
	}
	return c
}

// ActiveGoals counts goals that are not yet completed.
func ActiveGoals(goals []models.Goal) int {
	var n int
	for _, g := range goals {
		if g.Status != models.GoalStatusCompleted {
			n++
		}
	}
	return n
}

// CompletionCounts returns (completed, total) for a set of planner
// events, e.g. the "2/5 completed" counter on the day view.
func CompletionCounts(events []models.PlannerEvent) (completed, total int) {
	for _, e := range events {
		if e.Completed {
			completed++
		}
	}
	return completed, len(events)
}

package services

import (
	"context"

	"opsdeck/internal/metrics"
	"opsdeck/internal/models"
)

// dashboardService composes the other services' cached reads into one
// summary. It owns no table and performs no writes.
type dashboardService struct {
	businesses   BusinessServicer
	transactions TransactionServicer
	savings      SavingsServicer
	goals        GoalServicer
	planner      PlannerServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(businesses BusinessServicer, transactions TransactionServicer, savings SavingsServicer, goals GoalServicer, planner PlannerServicer) DashboardServicer {
	return &dashboardService{
		businesses:   businesses,
		transactions: transactions,
		savings:      savings,
		goals:        goals,
		planner:      planner,
	}
}

// Summary builds the full dashboard view model. Each collection comes
// through the query cache, so a warm dashboard costs no queries; the
// folds themselves are cheap enough to run on every request.
func (s *dashboardService) Summary(ctx context.Context, userID uint) (*DashboardSummary, error) {
	businesses, err := s.businesses.GetUserBusinesses(ctx, userID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactions.GetUserTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	targets, err := s.savings.GetUserTargets(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.GetUserGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	todayEvents, err := s.planner.EventsForToday(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed, total := metrics.CompletionCounts(todayEvents)

	summary := &DashboardSummary{
		BusinessCount:      len(businesses),
		ActiveBusinesses:   metrics.CountByStatus(businesses, models.BusinessStatusActive),
		TotalRevenue:       metrics.TotalRevenue(businesses),
		TotalIncome:        metrics.TotalIncome(transactions),
		TotalExpenses:      metrics.TotalExpenses(transactions),
		NetBalance:         metrics.NetBalance(transactions),
		TotalSavings:       metrics.TotalSaved(targets),
		ActiveGoals:        metrics.ActiveGoals(goals),
		GoalCounts:         metrics.CountGoals(goals),
		CompletedToday:     completed,
		TotalToday:         total,
		TodaySchedule:      todayEvents,
		ActiveGoalList:     topActiveGoals(goals, 5),
		RecentTransactions: recentTransactions(transactions, 10),
	}
	return summary, nil
}

// topActiveGoals keeps the first n goals that are not completed,
// preserving the newest-first order of the cached collection.
func topActiveGoals(goals []models.Goal, n int) []models.Goal {
	active := make([]models.Goal, 0, n)
	for _, g := range goals {
		if g.Status == models.GoalStatusCompleted {
			continue
		}
		active = append(active, g)
		if len(active) == n {
			break
		}
	}
	return active
}

// recentTransactions keeps the first n entries of the ledger, which is
// already ordered newest first.
func recentTransactions(transactions []models.Transaction, n int) []models.Transaction {
	if len(transactions) > n {
		return transactions[:n]
	}
	return transactions
}

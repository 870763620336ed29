package services

import (
	"context"
	"time"

	"opsdeck/internal/metrics"
	"opsdeck/internal/models"
)

// UserServicer defines the contract for user and profile logic.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
	GetProfile(ctx context.Context, userID uint) (*models.Profile, error)
	UpdateProfile(userID uint, fullName string) (*models.Profile, error)
}

// BusinessServicer defines the contract for business tracking.
type BusinessServicer interface {
	CreateBusiness(userID uint, name, description, industry string, revenue float64, status models.BusinessStatus) (*models.Business, error)
	GetUserBusinesses(ctx context.Context, userID uint) ([]models.Business, error)
	GetBusinessByID(userID, businessID uint) (*models.Business, error)
	UpdateBusiness(userID, businessID uint, name, description, industry string, revenue *float64, status *models.BusinessStatus) (*models.Business, error)
	DeleteBusiness(userID, businessID uint) error
}

// DepartmentServicer defines the contract for business departments.
type DepartmentServicer interface {
	CreateDepartment(userID, businessID uint, name string) (*models.Department, error)
	GetUserDepartments(ctx context.Context, userID uint) ([]models.Department, error)
	DeleteDepartment(userID, departmentID uint) error
}

// TransactionServicer defines the contract for the income/expense ledger.
type TransactionServicer interface {
	CreateTransaction(userID uint, txType models.TransactionType, amount float64, category, description, date string) (*models.Transaction, error)
	GetUserTransactions(ctx context.Context, userID uint) ([]models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}

// SavingsServicer defines the contract for savings targets.
type SavingsServicer interface {
	CreateTarget(userID uint, name string, targetAmount, currentAmount float64, deadline *time.Time) (*models.SavingsTarget, error)
	GetUserTargets(ctx context.Context, userID uint) ([]models.SavingsTarget, error)
	UpdateTarget(userID, targetID uint, name string, targetAmount, currentAmount *float64, deadline *time.Time) (*models.SavingsTarget, error)
	DeleteTarget(userID, targetID uint) error
}

// InvestmentServicer defines the contract for investment positions.
type InvestmentServicer interface {
	CreateInvestment(userID uint, name, invType string, amount, currentValue float64, notes string) (*models.Investment, error)
	GetUserInvestments(ctx context.Context, userID uint) ([]models.Investment, error)
	UpdateInvestment(userID, investmentID uint, name string, currentValue *float64, notes string) (*models.Investment, error)
	DeleteInvestment(userID, investmentID uint) error
}

// GoalServicer defines the contract for goal tracking.
type GoalServicer interface {
	CreateGoal(userID uint, title, description, category string, priority models.GoalPriority, status models.GoalStatus, progress int, targetDate *time.Time) (*models.Goal, error)
	GetUserGoals(ctx context.Context, userID uint) ([]models.Goal, error)
	UpdateGoal(userID, goalID uint, title, description, category string, priority *models.GoalPriority, status *models.GoalStatus, progress *int, targetDate *time.Time) (*models.Goal, error)
	UpdateProgress(userID, goalID uint, progress int) (*models.Goal, error)
	DeleteGoal(userID, goalID uint) error
}

// PlannerServicer defines the contract for the day planner.
type PlannerServicer interface {
	CreateEvent(userID uint, title, description string, eventType models.EventType, priority, date, startTime, endTime string) (*models.PlannerEvent, error)
	EventsForDay(ctx context.Context, userID uint, date string) ([]models.PlannerEvent, error)
	EventsForWeek(ctx context.Context, userID uint, day string) ([]models.PlannerEvent, error)
	EventsForToday(ctx context.Context, userID uint) ([]models.PlannerEvent, error)
	ToggleComplete(userID, eventID uint) (*models.PlannerEvent, error)
	DeleteEvent(userID, eventID uint) error
}

// DashboardSummary aggregates every stat card and widget shown on the
// dashboard, derived entirely from cached collections.
type DashboardSummary struct {
	BusinessCount      int                      `json:"business_count"`
	ActiveBusinesses   int                      `json:"active_businesses"`
	TotalRevenue       float64                  `json:"total_revenue"`
	TotalIncome        float64                  `json:"total_income"`
	TotalExpenses      float64                  `json:"total_expenses"`
	NetBalance         float64                  `json:"net_balance"`
	TotalSavings       float64                  `json:"total_savings"`
	ActiveGoals        int                      `json:"active_goals"`
	GoalCounts         metrics.GoalStatusCounts `json:"goal_counts"`
	CompletedToday     int                      `json:"completed_today"`
	TotalToday         int                      `json:"total_today"`
	TodaySchedule      []models.PlannerEvent    `json:"today_schedule"`
	ActiveGoalList     []models.Goal            `json:"active_goal_list"`
	RecentTransactions []models.Transaction     `json:"recent_transactions"`
}

// DashboardServicer composes cache reads and aggregator folds into the
// dashboard view model.
type DashboardServicer interface {
	Summary(ctx context.Context, userID uint) (*DashboardSummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}

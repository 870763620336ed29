package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"opsdeck/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
		Profile: &models.Profile{
			FullName: fmt.Sprintf("Test User %d", counter.Load()),
		},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBusiness creates an active business with the given revenue.
func CreateTestBusiness(t *testing.T, db *gorm.DB, userID uint, revenue float64) *models.Business {
	t.Helper()

	business := &models.Business{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Business %d", nextID()),
		Industry: "Technology",
		Revenue:  revenue,
		Status:   models.BusinessStatusActive,
	}
	if err := db.Create(business).Error; err != nil {
		t.Fatalf("failed to create test business: %v", err)
	}
	return business
}

// CreateTestTransaction creates a ledger entry of the given type and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, txType models.TransactionType, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:   userID,
		Type:     txType,
		Amount:   amount,
		Category: fmt.Sprintf("Test Category %d", nextID()),
		Date:     time.Now().Format(models.DateLayout),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestSavingsTarget creates a savings target with the given amounts.
func CreateTestSavingsTarget(t *testing.T, db *gorm.DB, userID uint, target, current float64) *models.SavingsTarget {
	t.Helper()

	st := &models.SavingsTarget{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Target %d", nextID()),
		TargetAmount:  target,
		CurrentAmount: current,
	}
	if err := db.Create(st).Error; err != nil {
		t.Fatalf("failed to create test savings target: %v", err)
	}
	return st
}

// CreateTestInvestment creates an investment position.
func CreateTestInvestment(t *testing.T, db *gorm.DB, userID uint, amount, currentValue float64) *models.Investment {
	t.Helper()

	inv := &models.Investment{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Position %d", nextID()),
		Type:         "stocks",
		Amount:       amount,
		CurrentValue: currentValue,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}

// CreateTestGoal creates a goal with the given progress and its derived status.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, progress int) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:   userID,
		Title:    fmt.Sprintf("Test Goal %d", nextID()),
		Category: "personal",
		Priority: models.GoalPriorityMedium,
		Status:   models.StatusForProgress(progress),
		Progress: progress,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestEvent creates a planner event on the given date.
func CreateTestEvent(t *testing.T, db *gorm.DB, userID uint, date string, completed bool) *models.PlannerEvent {
	t.Helper()

	event := &models.PlannerEvent{
		UserID:    userID,
		Title:     fmt.Sprintf("Test Event %d", nextID()),
		Type:      models.EventTypeTask,
		Priority:  "medium",
		Date:      date,
		StartTime: "09:00",
		EndTime:   "10:00",
		Completed: completed,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

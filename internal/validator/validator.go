// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("business_status", validateBusinessStatus)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("goal_priority", validateGoalPriority)
		_ = v.RegisterValidation("goal_status", validateGoalStatus)
		_ = v.RegisterValidation("event_type", validateEventType)
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("clock_time", validateClockTime)
	}
}

func validateBusinessStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "inactive", "pending":
		return true
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateGoalPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "low", "medium", "high":
		return true
	}
	return false
}

func validateGoalStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "not_started", "in_progress", "completed", "on_hold":
		return true
	}
	return false
}

func validateEventType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "task", "event", "meeting", "reminder":
		return true
	}
	return false
}

func validateISODate(fl validator.FieldLevel) bool {
	return dateRegex.MatchString(fl.Field().String())
}

func validateClockTime(fl validator.FieldLevel) bool {
	return timeRegex.MatchString(fl.Field().String())
}

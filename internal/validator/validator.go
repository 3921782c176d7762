// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("friendship_status", validateFriendshipStatus)
	}
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "food", "transport", "entertainment", "utilities", "rent", "travel", "shopping", "other":
		return true
	}
	return false
}

func validateFriendshipStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "accepted", "blocked":
		return true
	}
	return false
}

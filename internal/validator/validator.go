// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register installs the custom validators on Gin's binding engine. Call once
// at startup before handling requests.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("txn_type", validTransactionType)
	_ = v.RegisterValidation("isodate", validISODate)
}

// validTransactionType accepts the two record types.
func validTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	default:
		return false
	}
}

// validISODate accepts calendar dates in the fixed-width YYYY-MM-DD form the
// store orders and filters lexicographically.
func validISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

package dto

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// usernamePattern: starts with a word character, allows dots but never
// consecutive or trailing ones, 30 characters max.
var usernamePattern = regexp.MustCompile(`^\w(?:\w|\.\w)*$`)

func validUsername(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if len(name) > 30 {
		return false
	}
	return usernamePattern.MatchString(name)
}

// validTxDirection checks the type against the sibling Amount field sign:
// a negative amount must be EXPENSE, a non-negative one INCOME. On partial
// patches the amount may be absent, in which case the type stands alone.
func validTxDirection(fl validator.FieldLevel) bool {
	amountField := fl.Parent().FieldByName("Amount")
	if !amountField.IsValid() {
		return true
	}
	if amountField.Kind() == reflect.Ptr {
		if amountField.IsNil() {
			return true
		}
		amountField = amountField.Elem()
	}
	amount, ok := amountField.Interface().(decimal.Decimal)
	if !ok {
		return true
	}
	if amount.IsNegative() {
		return fl.Field().String() == "EXPENSE"
	}
	return fl.Field().String() == "INCOME"
}

// RegisterCustomValidations installs the username and transaction-direction
// rules on the binding validator engine.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("username", validUsername); err != nil {
		return err
	}
	return v.RegisterValidation("txdirection", validTxDirection)
}

package handlers

import (
	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators installs enum validations used by the binding tags
// on request DTOs. Must run before the first request is bound.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool { //nolint:errcheck // registration only fails on empty tag
		return domain.ValidAccountType(domain.AccountType(fl.Field().String()))
	})
	v.RegisterValidation("loantype", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return domain.ValidLoanType(domain.LoanType(fl.Field().String()))
	})
}

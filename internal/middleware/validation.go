package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/pkg/helpers"
	"github.com/kerem/schoolhub/internal/pkg/logger"
)

// RegisterCustomValidators attaches the ledger's validation tags to gin's
// binding engine. Call once during startup.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		logger.Warn().Msg("Could not access validator engine, custom validators not registered")
		return
	}

	if err := v.RegisterValidation("month", validMonth); err != nil {
		logger.Error().Err(err).Msg("Failed to register month validator")
	}
	if err := v.RegisterValidation("paymentmethod", validPaymentMethod); err != nil {
		logger.Error().Err(err).Msg("Failed to register paymentmethod validator")
	}
}

// validMonth accepts the 12 full English month names
func validMonth(fl validator.FieldLevel) bool {
	return helpers.ValidMonthName(fl.Field().String())
}

// validPaymentMethod accepts the supported payment methods
func validPaymentMethod(fl validator.FieldLevel) bool {
	return models.ValidPaymentMethod(models.PaymentMethod(fl.Field().String()))
}

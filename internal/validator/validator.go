// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"gatherly/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("rsvp_status", validateRSVPStatus)
		_ = v.RegisterValidation("access_mode", validateAccessMode)
		_ = v.RegisterValidation("analysis_type", validateAnalysisType)
		_ = v.RegisterValidation("time_period", validateTimePeriod)
		_ = v.RegisterValidation("config_date", validateConfigDate)
		_ = v.RegisterValidation("coordinates", validateCoordinates)
	}
}

func validateRSVPStatus(fl validator.FieldLevel) bool {
	return models.RSVPStatus(fl.Field().String()).Valid()
}

func validateAccessMode(fl validator.FieldLevel) bool {
	return models.AccessMode(fl.Field().String()).Valid()
}

func validateAnalysisType(fl validator.FieldLevel) bool {
	return models.AnalysisType(fl.Field().String()).Valid()
}

func validateTimePeriod(fl validator.FieldLevel) bool {
	switch models.TimePeriod(fl.Field().String()) {
	case models.TimePeriodAllTime, models.TimePeriodLastMonth,
		models.TimePeriodLastYear, models.TimePeriodCustom:
		return true
	}
	return false
}

// validateConfigDate accepts the "2006-01-02" form used by panel configs.
func validateConfigDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateCoordinates(fl validator.FieldLevel) bool {
	_, _, err := models.ParseCoordinates(fl.Field().String())
	return err == nil
}

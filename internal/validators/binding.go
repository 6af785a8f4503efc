package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

// RegisterBindings adds the enum and time tags used in request structs to gin's validator.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"plan": func(fl validator.FieldLevel) bool {
			return models.Plan(fl.Field().String()).Valid()
		},
		"member_status": func(fl validator.FieldLevel) bool {
			return models.MemberStatus(fl.Field().String()).Valid()
		},
		"booking_status": func(fl validator.FieldLevel) bool {
			return models.BookingStatus(fl.Field().String()).Valid()
		},
		"category": func(fl validator.FieldLevel) bool {
			return models.Category(fl.Field().String()).Valid()
		},
		"contact_status": func(fl validator.FieldLevel) bool {
			return models.ContactStatus(fl.Field().String()).Valid()
		},
		"hhmm": func(fl validator.FieldLevel) bool {
			_, ok := ParseHM(fl.Field().String())
			return ok
		},
		"gym_email": func(fl validator.FieldLevel) bool {
			return IsEmail(NormalizeEmail(fl.Field().String()))
		},
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

package model

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validSpecializations = map[Specialization]bool{
	SpecializationGeneralPhysician: true,
	SpecializationCardiologist:     true,
	SpecializationDermatologist:    true,
	SpecializationGynecologist:     true,
	SpecializationPediatrician:     true,
	SpecializationOrthopedic:       true,
	SpecializationENT:              true,
	SpecializationOphthalmologist:  true,
	SpecializationPsychiatrist:     true,
	SpecializationNeurologist:      true,
	SpecializationGastro:           true,
	SpecializationUrologist:        true,
	SpecializationDentist:          true,
	SpecializationEmergency:        true,
	SpecializationOther:            true,
}

// IsValidSpecialization reports whether s is one of the directory's
// known specializations.
func IsValidSpecialization(s Specialization) bool {
	return validSpecializations[s]
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("specialization", func(fl validator.FieldLevel) bool {
			return IsValidSpecialization(Specialization(fl.Field().String()))
		})
	}
}

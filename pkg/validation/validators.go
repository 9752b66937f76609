package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go-jobboard-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("skill_name", SkillName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
}

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// SkillName accepts names that are not blank once trimmed and fit the vocabulary column
func SkillName(fl validator.FieldLevel) bool {
	name := strings.Join(strings.Fields(fl.Field().String()), " ")
	if name == "" {
		return false
	}
	if utf8.RuneCountInString(name) > domain.MaxSkillNameLength {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary planes are mostly emoji and pictographs
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) { // Symbol, other / Symbol, modifier
			return false
		}
	}
	return true
}

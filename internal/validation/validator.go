package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"course-compass/internal/domain"
)

const (
	notBlankTag  = "notblank"
	notBlankText = "{0} must not be blank"
)

// Validator checks request DTOs against their validate tags and reports
// failures as domain.ValidationErrors keyed by JSON field name.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	english := en.New()
	translator, _ := ut.New(english, english).GetTranslator("en")

	validate := validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterTranslation(notBlankTag, translator,
		func(t ut.Translator) error { return t.Add(notBlankTag, notBlankText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(notBlankTag, fe.Field())
			return s
		},
	)

	return &Validator{validate: validate, translator: translator}
}

// Struct returns nil or domain.ValidationErrors.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewInvalidInputError(err.Error())
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, domain.ValidationError{
			Field:   fieldPath(fe),
			Message: fe.Translate(v.translator),
			Value:   redact(fe),
		})
	}
	return out
}

// fieldPath drops the top-level struct name: "milestones[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func redact(fe validator.FieldError) interface{} {
	if strings.Contains(strings.ToLower(fe.Field()), "password") {
		return nil
	}
	if s, ok := fe.Value().(string); ok && s == "" {
		return nil
	}
	return fe.Value()
}

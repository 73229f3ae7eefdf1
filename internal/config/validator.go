package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// customMessages holds the English text of tags reported by struct-level validations.
var customMessages = map[string]string{
	"profile_exists": "{0} must name a configured scheduling profile",
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()
	validate.RegisterTagNameFunc(mapstructureName)
	validate.RegisterStructValidation(validateScheduling, SchedulingConfig{})

	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator(locale.Locale())
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("enTranslations.RegisterDefaultTranslations() > %w", err)
	}
	for tag, text := range customMessages {
		if err := validate.RegisterTranslation(tag, trans, addMessage(tag, text), translateField(tag)); err != nil {
			return nil, nil, fmt.Errorf("validate.RegisterTranslation(%s) > %w", tag, err)
		}
	}
	return validate, trans, nil
}

// mapstructureName reports fields by their config key, so messages match the YAML file.
func mapstructureName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func addMessage(tag, text string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, text, true)
	}
}

func translateField(tag string) validator.TranslationFunc {
	return func(trans ut.Translator, fe validator.FieldError) string {
		msg, err := trans.T(tag, strings.TrimPrefix(fe.Namespace(), "Config."))
		if err != nil {
			return fe.Error()
		}
		return msg
	}
}

func validateScheduling(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(SchedulingConfig)
	if cfg.Profile == "" {
		return
	}
	if _, ok := cfg.Profiles[cfg.Profile]; !ok {
		sl.ReportError(cfg.Profile, "profile", "Profile", "profile_exists", "")
	}
}

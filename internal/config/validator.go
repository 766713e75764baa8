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

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("storagekey", isStorageKey); err != nil {
		return nil, nil, fmt.Errorf("failed to register storagekey validation: %w", err)
	}
	if err := validate.RegisterTranslation("storagekey", trans, func(ut ut.Translator) error {
		return ut.Add("storagekey", "{0} must be a plain name without path separators or wildcards", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("storagekey", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register storagekey translation: %w", err)
	}

	return validate, trans, nil
}

// isStorageKey accepts keys every adapter can address: the fs adapter turns
// the key into a file name.
func isStorageKey(fl validator.FieldLevel) bool {
	key := fl.Field().String()
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, `/\*?[]{}`)
}
